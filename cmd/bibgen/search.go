// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/bibgen/internal/bibliography"
	"github.com/pdiddy/bibgen/internal/search"
	"github.com/pdiddy/bibgen/internal/secrets"
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Run one bibliography job from the command line",
	Long: `Search runs the same aggregation the web service performs, once:
it fetches papers for the given queries, deduplicates them, and writes
the bibliography JSON to a file. Progress lines go to stderr.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		apiKey := secrets.APIKey(viper.GetString("secrets_dir"))
		if apiKey == "" {
			return fmt.Errorf("%s is not set: export it or add it to .env or %s/",
				secrets.EnvAPIKey, viper.GetString("secrets_dir"))
		}

		queries, _ := cmd.Flags().GetStringSlice("queries")
		total, _ := cmd.Flags().GetInt("total")
		title, _ := cmd.Flags().GetString("title")
		out, _ := cmd.Flags().GetString("out")

		cfg := searchConfig(apiKey)
		gen := &bibliography.Generator{
			Source:    search.NewClient(cfg, nil),
			Notifier:  stderrNotifier{},
			PageDelay: cfg.PageDelay,
		}

		res, err := gen.Generate(context.Background(), bibliography.Request{
			SessionID: "cli",
			Queries:   queries,
			Total:     total,
			Title:     title,
		})
		if err != nil {
			return err
		}

		if out == "-" {
			fmt.Println(res.JSON)
			return nil
		}
		if out == "" {
			out = res.Filename
		}
		if err := os.WriteFile(out, []byte(res.JSON), 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", out, err)
		}
		fmt.Printf("Wrote %d papers to %s\n", res.Papers, out)
		return nil
	},
}

// stderrNotifier satisfies the generator's Notifier by printing progress
// lines, ignoring the session id.
type stderrNotifier struct{}

func (stderrNotifier) Send(_, message string) {
	fmt.Fprintln(os.Stderr, message)
}

func init() {
	searchCmd.Flags().StringSlice("queries", nil, "search queries (comma-separated or repeated)")
	searchCmd.Flags().Int("total", 20, "number of unique papers to collect across all queries")
	searchCmd.Flags().String("title", "bibliography", "bibliography title, used for the output filename")
	searchCmd.Flags().String("out", "", "output path, or - for stdout (default: derived from the title)")

	rootCmd.AddCommand(searchCmd)
}
