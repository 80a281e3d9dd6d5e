package main

import (
	"fmt"
	"time"

	"github.com/aleister1102/purgeconf/internal/common"
	"github.com/aleister1102/purgeconf/internal/datastore"

	"github.com/spf13/cobra"
)

func newCacheCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect or prune the persistent token cache.",
	}
	cmd.AddCommand(newCachePruneCmd(a), newCacheStatsCmd(a))
	return cmd
}

func newCachePruneCmd(a *app) *cobra.Command {
	var olderThan time.Duration

	cmd := &cobra.Command{
		Use:   "prune",
		Short: "Delete cached extraction results older than --older-than.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if olderThan <= 0 {
				return common.NewValidationError("older-than", olderThan, "must be positive")
			}

			store, ok, err := a.openExistingCache()
			if err != nil || !ok {
				return err
			}
			defer store.Close()

			removed, err := store.Prune(cmd.Context(), time.Now().Add(-olderThan))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Pruned %d cached entries\n", removed)
			return nil
		},
	}

	cmd.Flags().DurationVar(&olderThan, "older-than", 720*time.Hour, "Age beyond which entries are removed")
	return cmd
}

func newCacheStatsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print the number of cached extraction results.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, ok, err := a.openExistingCache()
			if err != nil || !ok {
				return err
			}
			defer store.Close()

			count, err := store.Count(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d cached entries\n", a.cfg.CacheConfig.SQLitePath, count)
			return nil
		},
	}
}

// openExistingCache opens the SQLite cache only when its file exists, so
// maintenance commands never create an empty database.
func (a *app) openExistingCache() (*datastore.TokenStore, bool, error) {
	path := a.cfg.CacheConfig.SQLitePath
	if path == "" || !common.NewFileManager(a.zl).FileExists(path) {
		a.zl.Info().Str("path", path).Msg("No token cache found")
		return nil, false, nil
	}

	store, err := datastore.NewTokenStore(path, a.zl)
	if err != nil {
		return nil, false, common.WrapError(err, "failed to open token cache")
	}
	return store, true, nil
}
