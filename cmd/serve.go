package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/eykd/adfconv/internal/server"
)

// ServeRunner runs an HTTP server until ctx is done.
type ServeRunner interface {
	Run(ctx context.Context, srv *server.Server, addr string) error
}

// NewServeCmd creates the serve subcommand.
func NewServeCmd(runner ServeRunner) *cobra.Command {
	cmd := &cobra.Command{
		Use:          "serve",
		Short:        "Serve the converters over HTTP",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, conv, err := setup(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			addr := cfg.Server.Addr
			if a, _ := cmd.Flags().GetString("addr"); a != "" {
				addr = a
			}
			srv := server.New(cfg.Server, conv, log)
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			if err := runner.Run(ctx, srv, addr); err != nil {
				return fmt.Errorf("serving: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().String("addr", "", "listen address (default: server.addr from the configuration)")

	return cmd
}

// listenRunner serves until the context is cancelled, then shuts down.
type listenRunner struct{}

func newDefaultServeRunner() *listenRunner {
	return &listenRunner{}
}

func (listenRunner) Run(ctx context.Context, srv *server.Server, addr string) error {
	errc := make(chan error, 1)
	go func() { errc <- srv.Listen(addr) }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		if err := srv.Shutdown(); err != nil {
			return err
		}
		if err := <-errc; err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	}
}
