package main

import (
	"context"

	"github.com/aleister1102/purgeconf/internal/common"
	"github.com/aleister1102/purgeconf/internal/config"
	"github.com/aleister1102/purgeconf/internal/logger"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// app carries state shared by every subcommand once the root pre-run has
// loaded the configuration.
type app struct {
	configFlag   string
	logLevelFlag string

	configPath string
	cfg        *config.GlobalConfig
	log        *logger.Logger
	zl         zerolog.Logger
}

func newRootCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:          "purgeconf",
		Short:        "Manage the content globs and token extractors of a CSS purge configuration.",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}

	cmd.PersistentFlags().StringVarP(&a.configFlag, "config", "c", "", "Path to a purgeconf YAML/JSON file (default: $"+config.ConfigPathEnvVar+" or ./purgeconf.yaml)")
	cmd.PersistentFlags().StringVar(&a.logLevelFlag, "log-level", "", "Override the configured log level (debug, info, warn, error)")

	cmd.AddCommand(
		newExtractCmd(a),
		newValidateCmd(a),
		newExportCmd(a),
		newMatchCmd(a),
		newCacheCmd(a),
	)
	return cmd
}

// setup resolves, loads and validates the configuration, then builds the
// logger the subcommands use. Logs go to stderr so stdout stays pipeable.
func (a *app) setup(cmd *cobra.Command) error {
	bootstrap, err := logger.NewLoggerBuilder().
		WithLevel(zerolog.WarnLevel).
		WithConsoleOutput(cmd.ErrOrStderr()).
		Build()
	if err != nil {
		return common.WrapError(err, "failed to create bootstrap logger")
	}

	a.configPath = config.GetConfigPath(a.configFlag)
	cfg, err := config.LoadGlobalConfig(a.configPath, *bootstrap.GetZerolog())
	if err != nil {
		return common.WrapError(err, "failed to load configuration")
	}
	if a.logLevelFlag != "" {
		cfg.LogConfig.LogLevel = a.logLevelFlag
	}
	if err := config.ValidateConfig(cfg); err != nil {
		return common.WrapError(err, "invalid configuration")
	}

	log, err := logger.NewLoggerBuilder().
		WithConfig(cfg.LogConfig).
		WithConsoleOutput(cmd.ErrOrStderr()).
		Build()
	if err != nil {
		return common.WrapError(err, "failed to create logger")
	}

	a.cfg = cfg
	a.log = log
	a.zl = log.GetZerolog().With().Str("command", cmd.Name()).Logger()
	a.zl.Debug().Str("config_path", a.configPath).Msg("Configuration loaded")
	return nil
}

// execute runs cmd and releases the logger afterwards. Cobra skips
// post-run hooks when a command fails, so this cannot live in one.
func (a *app) execute(ctx context.Context, cmd *cobra.Command) error {
	err := cmd.ExecuteContext(ctx)
	if cerr := a.close(); cerr != nil && err == nil {
		err = cerr
	}
	return err
}

func (a *app) close() error {
	if a.log == nil {
		return nil
	}
	err := a.log.Close()
	a.log = nil
	return err
}
