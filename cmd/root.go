// Package cmd implements the adfc CLI commands.
package cmd

import (
	"fmt"
	"strconv"
	"sync/atomic"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/eykd/adfconv/internal/config"
	"github.com/eykd/adfconv/internal/convert"
	"github.com/eykd/adfconv/internal/logger"
)

// NewRootCmd creates the root adfc command with all subcommands registered.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "adfc",
		Short:         "adfc - convert between Atlassian Document Format, HTML and Markdown",
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		RunE:          rootRunE,
	}
	root.PersistentFlags().String("config", config.FileName, "configuration file")
	root.PersistentFlags().String("log-level", "", "log level (debug, info, warn, error); overrides the configuration file")

	root.AddCommand(NewConvertCmd(newDefaultConvertIO()))
	root.AddCommand(NewValidateCmd(newDefaultConvertIO()))
	root.AddCommand(NewInitCmd(newDefaultInitIO()))
	root.AddCommand(NewServeCmd(newDefaultServeRunner()))
	return root
}

func rootRunE(cmd *cobra.Command, _ []string) error {
	return cmd.Help()
}

// loadSettings reads the configuration named by --config and applies the
// --log-level override. Commands built on their own, as in tests, fall back
// to the default file name.
func loadSettings(cmd *cobra.Command) (config.Config, error) {
	path, err := cmd.Flags().GetString("config")
	if err != nil || path == "" {
		path = config.FileName
	}
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, err
	}
	if level, err := cmd.Flags().GetString("log-level"); err == nil && level != "" {
		cfg.Log.Level = level
		if err := cfg.Validate(); err != nil {
			return config.Config{}, fmt.Errorf("--log-level: %w", err)
		}
	}
	return cfg, nil
}

// newLogger builds the logger for a command, writing to its stderr.
func newLogger(cmd *cobra.Command, cfg config.Config) (*zap.Logger, error) {
	return logger.New(cfg.Log, cmd.ErrOrStderr())
}

// newConverter builds a Converter from the convert section of cfg.
func newConverter(cfg config.Config, log *zap.Logger) *convert.Converter {
	opts := []convert.Option{
		convert.WithLogger(log),
		convert.WithSanitize(cfg.Convert.Sanitize),
	}
	if cfg.Convert.IDs == config.IDModeSequential {
		var n atomic.Int64
		opts = append(opts, convert.WithIDs(func() string {
			return "task-" + strconv.FormatInt(n.Add(1), 10)
		}))
	}
	return convert.New(opts...)
}

// setup loads settings and builds the logger and converter for cmd.
func setup(cmd *cobra.Command) (config.Config, *zap.Logger, *convert.Converter, error) {
	cfg, err := loadSettings(cmd)
	if err != nil {
		return config.Config{}, nil, nil, err
	}
	log, err := newLogger(cmd, cfg)
	if err != nil {
		return config.Config{}, nil, nil, err
	}
	return cfg, log, newConverter(cfg, log), nil
}
