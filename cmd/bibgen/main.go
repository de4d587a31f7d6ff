// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the bibgen CLI: a web service (and
// one-shot command) that assembles JSON bibliographies from Semantic
// Scholar search queries.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/bibgen/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the bibgen CLI.
var rootCmd = &cobra.Command{
	Use:   "bibgen",
	Short: "Bibliography JSON generator backed by Semantic Scholar",
	Long: `bibgen turns a set of search queries into a downloadable JSON
bibliography. The serve subcommand runs the web service: a form page, a
progress WebSocket, and the generate/download endpoints. The search
subcommand runs the same aggregation once from the command line.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./bibgen.yaml or ~/.config/bibgen/config.yaml)")
}

func initConfig() {
	// Match the original deployment: credentials may live in a .env file.
	_ = godotenv.Load()

	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("bibgen")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "bibgen"))
		}
	}

	viper.SetEnvPrefix("BIBGEN")
	viper.AutomaticEnv()

	viper.SetDefault("port", 8080)
	viper.SetDefault("bind_address", "127.0.0.1")
	viper.SetDefault("data_dir", "data")
	viper.SetDefault("presets_file", "presets.yaml")
	viper.SetDefault("page_size", 100)
	viper.SetDefault("max_retries", 3)
	viper.SetDefault("page_delay", time.Second)
	viper.SetDefault("timeout", 10*time.Second)
	viper.SetDefault("user_agent", "bibgen/"+version)
	viper.SetDefault("secrets_dir", ".secrets")

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// searchConfig assembles the paper-source settings from viper.
func searchConfig(apiKey string) types.SearchConfig {
	return types.SearchConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   viper.GetDuration("timeout"),
			UserAgent: viper.GetString("user_agent"),
		},
		APIKey:     apiKey,
		PageSize:   viper.GetInt("page_size"),
		MaxRetries: viper.GetInt("max_retries"),
		PageDelay:  viper.GetDuration("page_delay"),
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
