package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/aleister1102/purgeconf/internal/common"
	"github.com/aleister1102/purgeconf/internal/content"
	"github.com/aleister1102/purgeconf/internal/datastore"
	"github.com/aleister1102/purgeconf/internal/extractor"
	"github.com/aleister1102/purgeconf/internal/harvester"
	"github.com/aleister1102/purgeconf/internal/models"

	"github.com/spf13/cobra"
)

type extractOptions struct {
	format  string
	all     bool
	perFile bool
}

func newExtractCmd(a *app) *cobra.Command {
	opts := &extractOptions{}

	cmd := &cobra.Command{
		Use:   "extract [files...]",
		Short: "Print the tokens the configured extractors find in the given files.",
		Long: `Runs the default extractor (or the override registered for a file's extension)
over each named file and prints the sorted, de-duplicated tokens. With no files,
standard input is read. Files outside the content globs are skipped unless --all is set.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runExtract(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", "text", "Output format: text or json")
	cmd.Flags().BoolVar(&opts.all, "all", false, "Extract from every named file, ignoring the content globs")
	cmd.Flags().BoolVar(&opts.perFile, "per-file", false, "Report tokens per input instead of the merged set")
	return cmd
}

func (a *app) runExtract(cmd *cobra.Command, args []string, opts *extractOptions) error {
	format := strings.ToLower(opts.format)
	if format != "text" && format != "json" {
		return common.NewValidationError("format", opts.format, "must be one of: text, json")
	}

	inputs, err := collectInputs(cmd.InOrStdin(), args)
	if err != nil {
		return err
	}

	registry, err := extractor.NewRegistryFromConfig(a.cfg.PurgeConfig, a.cfg.CacheConfig.MemoryEntries, a.zl)
	if err != nil {
		return err
	}

	var hopts []harvester.Option
	if !opts.all {
		cs, err := content.NewContentSet(a.cfg.PurgeConfig.Content)
		if err != nil {
			return common.WrapError(err, "failed to compile content globs")
		}
		hopts = append(hopts, harvester.WithContentSet(cs))
	}
	if a.cfg.CacheConfig.Enabled {
		store, err := datastore.NewTokenStore(a.cfg.CacheConfig.SQLitePath, a.zl)
		if err != nil {
			return common.WrapError(err, "failed to open token cache")
		}
		defer func() {
			if cerr := store.Close(); cerr != nil {
				a.zl.Warn().Err(cerr).Msg("Failed to close token cache")
			}
		}()
		hopts = append(hopts, harvester.WithCache(store))
	}

	h, err := harvester.NewHarvester(registry, a.cfg.HarvestConfig, a.zl, hopts...)
	if err != nil {
		return err
	}

	result, err := h.Harvest(cmd.Context(), inputs)
	if err != nil {
		if common.IsContextError(err) {
			a.zl.Warn().Int("inputs", len(inputs)).Msg("Extraction interrupted")
		}
		return err
	}

	out := cmd.OutOrStdout()
	if format == "json" {
		err = writeExtractJSON(out, result, opts.perFile)
	} else {
		err = writeExtractText(out, result, opts.perFile)
	}
	if err != nil {
		return common.WrapError(err, "failed to write tokens")
	}

	if result.ErrorCount > 0 {
		return fmt.Errorf("%d of %d inputs could not be read", result.ErrorCount, len(result.Files))
	}
	return nil
}

// collectInputs turns the positional arguments into harvest inputs, reading
// stdin when there are none.
func collectInputs(stdin io.Reader, args []string) ([]harvester.Input, error) {
	if len(args) > 0 {
		inputs := make([]harvester.Input, 0, len(args))
		for _, arg := range args {
			inputs = append(inputs, harvester.Input{Path: arg})
		}
		return inputs, nil
	}

	data, err := io.ReadAll(stdin)
	if err != nil {
		return nil, common.WrapError(err, "failed to read standard input")
	}
	if data == nil {
		data = []byte{}
	}
	return []harvester.Input{{Path: harvester.StdinPath, Content: data}}, nil
}

func writeExtractText(w io.Writer, result *models.HarvestResult, perFile bool) error {
	if !perFile {
		for _, token := range result.Tokens {
			if _, err := fmt.Fprintln(w, token); err != nil {
				return err
			}
		}
		return nil
	}

	for _, file := range result.Files {
		header := "# " + file.Path
		if file.Skipped {
			header += fmt.Sprintf(" (skipped: %s)", file.Reason)
		}
		if _, err := fmt.Fprintln(w, header); err != nil {
			return err
		}
		for _, token := range extractor.Dedupe(file.Tokens) {
			if _, err := fmt.Fprintln(w, token); err != nil {
				return err
			}
		}
	}
	return nil
}

func writeExtractJSON(w io.Writer, result *models.HarvestResult, perFile bool) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if perFile {
		return enc.Encode(result)
	}
	return enc.Encode(struct {
		Tokens []string `json:"tokens"`
	}{Tokens: result.Tokens})
}
