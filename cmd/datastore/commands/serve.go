// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/automa-saga/logx"
	"github.com/joomcode/errorx"
	"github.com/spf13/cobra"

	"github.com/sciportal/portal-datastore/internal/config"
	"github.com/sciportal/portal-datastore/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the provisioning HTTP server",
	Long:  "Open a data store session and serve the provisioning API until interrupted",
	RunE: func(cmd *cobra.Command, args []string) error {
		b, err := openBackend()
		if err != nil {
			return err
		}
		defer b.Close()

		srv := server.NewServer(config.Get().HTTP.Listen, b.provisioner, b.access, *logx.As())

		serveErr := make(chan error, 1)
		go func() {
			serveErr <- srv.Open()
		}()

		stop := make(chan os.Signal, 1)
		signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

		select {
		case err := <-serveErr:
			if err != nil {
				return errorx.IllegalState.Wrap(err, "HTTP server failed")
			}
			return nil
		case sig := <-stop:
			logx.As().Info().Str("signal", sig.String()).Msg("Shutting down")
		}

		shutdownCtx, cancel := context.WithTimeout(cmd.Context(), 15*time.Second)
		defer cancel()
		return srv.Close(shutdownCtx)
	},
}
