package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newValidateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Load and validate the configuration.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			source := a.configPath
			if source == "" {
				source = "built-in defaults"
			}

			purge := a.cfg.PurgeConfig
			extractorDesc := "built-in"
			if purge.DefaultExtractor.Pattern != "" {
				extractorDesc = purge.DefaultExtractor.Pattern
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Configuration OK (%s)\n", source)
			fmt.Fprintf(out, "  content globs:       %d\n", len(purge.Content))
			fmt.Fprintf(out, "  default extractor:   %s\n", extractorDesc)
			fmt.Fprintf(out, "  extension overrides: %d\n", len(purge.Extractors))
			fmt.Fprintf(out, "  persistent cache:    %t\n", a.cfg.CacheConfig.Enabled)
			return nil
		},
	}
}
