package main

import (
	"fmt"
	"strings"

	"github.com/aleister1102/purgeconf/internal/common"
	"github.com/aleister1102/purgeconf/internal/content"

	"github.com/spf13/cobra"
)

func newMatchCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "match <path>...",
		Short: "Show which content globs select each path.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cs, err := content.NewContentSet(a.cfg.PurgeConfig.Content)
			if err != nil {
				return common.WrapError(err, "failed to compile content globs")
			}

			out := cmd.OutOrStdout()
			for _, p := range args {
				rel := content.RelativeTo(a.cfg.HarvestConfig.ProjectRoot, p)
				matched := cs.MatchingPatterns(rel)
				if len(matched) == 0 {
					fmt.Fprintf(out, "%s\t-\n", p)
					continue
				}
				fmt.Fprintf(out, "%s\t%s\n", p, strings.Join(matched, ", "))
			}
			return nil
		},
	}
}
