package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/reoring/xsdform/formapi"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve field descriptors over HTTP",
	Long: `Start an HTTP server exposing the types of the loaded schema.

Routes:
  GET  /types                       - complex type names
  GET  /types/{name}/descriptors    - field descriptors (query params set values)
  GET  /types/{name}/instance?root= - new element with default attributes
  POST /types/{name}/check          - validate the root attributes of a document

Examples:
  xsdform serve --schema order.xsd
  xsdform serve --schema order.xsd --addr 127.0.0.1:9000`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default: server.addr from config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	e, err := setup(cmd)
	if err != nil {
		return err
	}
	addr := e.cfg.Server.Addr
	if serveAddr != "" {
		addr = serveAddr
	}
	h := formapi.NewHandler(e.set, e.options(), e.logger)
	srv := &http.Server{
		Addr:         addr,
		Handler:      h.Router(),
		ReadTimeout:  e.cfg.Server.ReadTimeout,
		WriteTimeout: e.cfg.Server.WriteTimeout,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		e.logger.Info().Str("addr", addr).Msg("listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	e.logger.Info().Msg("shutting down")
	return srv.Shutdown(shutdownCtx)
}
