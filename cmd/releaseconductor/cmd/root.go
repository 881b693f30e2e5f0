package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "releaseconductor",
	Short: "Tag, changelog and release publishing for GitHub repositories",
	Long: `ReleaseConductor turns a version string into a published GitHub release:
it creates the git tag if missing, builds a changelog from merged pull
requests (falling back to raw commit messages), creates the release,
optionally uploads file assets, and optionally posts a Slack or Microsoft
Teams webhook notification.

Designed to run inside a GitHub Actions job: repository, commit SHA, token
and inputs are picked up from the standard Actions environment when flags
are not given.

Part of the DevOpsOrchestra suite alongside VersionConductor.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.releaseconductor.yaml)")
	rootCmd.PersistentFlags().String("repo", "", "Repository in owner/repo format (or set GITHUB_REPOSITORY)")
	rootCmd.PersistentFlags().String("token", "", "GitHub token (or set GITHUB_TOKEN env var)")
	rootCmd.PersistentFlags().String("format", "table", "Output format: table, json, markdown")
	rootCmd.PersistentFlags().Bool("verbose", false, "Enable verbose output")

	// Bind flags to viper
	_ = viper.BindPFlag("repo", rootCmd.PersistentFlags().Lookup("repo"))
	_ = viper.BindPFlag("token", rootCmd.PersistentFlags().Lookup("token"))
	_ = viper.BindPFlag("format", rootCmd.PersistentFlags().Lookup("format"))
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		// Search config in home directory with name ".releaseconductor" (without extension).
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".releaseconductor")
	}

	// Environment variables
	viper.SetEnvPrefix("RELEASECONDUCTOR")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	// Also check GITHUB_TOKEN and the Actions environment directly
	if viper.GetString("token") == "" {
		if token := os.Getenv("GITHUB_TOKEN"); token != "" {
			viper.Set("token", token)
		} else if token := os.Getenv("INPUT_GITHUB_TOKEN"); token != "" {
			viper.Set("token", token)
		}
	}
	if viper.GetString("repo") == "" {
		if repo := os.Getenv("GITHUB_REPOSITORY"); repo != "" {
			viper.Set("repo", repo)
		}
	}

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		if viper.GetBool("verbose") {
			fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
		}
	}
}
