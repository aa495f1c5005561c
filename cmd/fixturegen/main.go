package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/denisok6893-rgb/property-insights/internal/fixtures"
	"github.com/denisok6893-rgb/property-insights/internal/storage"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		count int
		seed  uint64
		out   string
		now   string
	)

	cmd := &cobra.Command{
		Use:   "fixturegen",
		Short: "Generate a reproducible properties.json catalogue",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if count <= 0 {
				return fmt.Errorf("--count must be positive, got %d", count)
			}
			opts := fixtures.Options{Count: count, Seed: seed}
			if now != "" {
				t, err := time.Parse(time.RFC3339, now)
				if err != nil {
					return fmt.Errorf("--now: %w", err)
				}
				opts.Now = t.UTC()
			}

			props := fixtures.Generate(opts)
			if err := storage.WritePropertiesFile(out, props); err != nil {
				return err
			}
			// Re-read through the schema so a broken file never ships.
			if _, err := storage.LoadPropertiesFromFile(out); err != nil {
				return fmt.Errorf("generated file failed validation: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %d properties to %s\n", len(props), out)
			return nil
		},
	}

	cmd.Flags().IntVarP(&count, "count", "n", 50, "number of properties")
	cmd.Flags().Uint64Var(&seed, "seed", 1, "random seed")
	cmd.Flags().StringVarP(&out, "out", "o", "data/properties.json", "output file")
	cmd.Flags().StringVar(&now, "now", "", "RFC3339 time that anchors created_at (default: current time)")
	return cmd
}
