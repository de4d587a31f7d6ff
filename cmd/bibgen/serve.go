// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/bibgen/internal/bibliography"
	"github.com/pdiddy/bibgen/internal/docstore"
	"github.com/pdiddy/bibgen/internal/notify"
	"github.com/pdiddy/bibgen/internal/search"
	"github.com/pdiddy/bibgen/internal/secrets"
	"github.com/pdiddy/bibgen/internal/server"
	"github.com/pdiddy/bibgen/pkg/types"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the bibliography web service",
	Long: `Serve starts the HTTP surface: the form page at /, the progress
WebSocket at /ws, and the /generate_json and /download_json endpoints.
Progress lines stream to the session that submitted each job while its
generate request is still pending.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		apiKey := secrets.APIKey(viper.GetString("secrets_dir"))
		if apiKey == "" {
			return fmt.Errorf("%s is not set: export it or add it to .env or %s/",
				secrets.EnvAPIKey, viper.GetString("secrets_dir"))
		}

		store, err := docstore.Open(types.StoreConfig{DataDir: viper.GetString("data_dir")})
		if err != nil {
			return fmt.Errorf("opening document store: %w", err)
		}
		defer store.Close()

		presets, err := search.LoadPresets(viper.GetString("presets_file"))
		if err != nil {
			// Presets only feed the form's autofill; a broken file
			// should not keep the service down.
			fmt.Fprintf(os.Stderr, "warning: %v\n", err)
		}

		registry := notify.NewRegistry()
		cfg := searchConfig(apiKey)

		gen := &bibliography.Generator{
			Source:    search.NewClient(cfg, nil),
			Notifier:  registry,
			Store:     store,
			PageDelay: cfg.PageDelay,
		}

		srv := server.New(server.Config{
			Server: types.ServerConfig{
				Port:        viper.GetInt("port"),
				BindAddress: viper.GetString("bind_address"),
				PresetsFile: viper.GetString("presets_file"),
			},
			Generator: gen,
			Registry:  registry,
			Documents: store,
			Presets:   presets,
		})
		return srv.Start()
	},
}

func init() {
	serveCmd.Flags().Int("port", 8080, "port to listen on")
	viper.BindPFlag("port", serveCmd.Flags().Lookup("port"))

	rootCmd.AddCommand(serveCmd)
}
