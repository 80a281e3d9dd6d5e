package main

import (
	"bytes"

	"github.com/aleister1102/purgeconf/internal/common"
	"github.com/aleister1102/purgeconf/internal/exporter"

	"github.com/spf13/cobra"
)

func newExportCmd(a *app) *cobra.Command {
	var format, output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Render the purge configuration for the purging tool's loader.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := exporter.ParseFormat(format)
			if err != nil {
				return err
			}

			var buf bytes.Buffer
			if err := exporter.Export(&buf, a.cfg.PurgeConfig, f); err != nil {
				return err
			}

			if output == "" || output == "-" {
				_, err := cmd.OutOrStdout().Write(buf.Bytes())
				return err
			}

			fm := common.NewFileManager(a.zl)
			if err := fm.WriteFile(output, buf.Bytes(), common.DefaultFileWriteOptions()); err != nil {
				return common.WrapErrorf(err, "failed to write export to %s", output)
			}
			a.zl.Info().Str("path", output).Str("format", string(f)).Msg("Configuration exported")
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "js", "Export format: js or json")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write to this file instead of stdout")
	return cmd
}
