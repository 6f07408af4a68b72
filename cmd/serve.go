package cmd

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/apex/log"
	"github.com/apex/log/handlers/cli"
	"github.com/gin-gonic/gin"
	"github.com/helmcode/agridetect/pkg/mockapi"
	"github.com/spf13/cobra"
)

var serveAddr string

func NewServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run a local AgriDetect API that returns sample data",
		Long: `Start an HTTP server implementing every endpoint the client calls, with
sample responses. Useful to try the CLI without the real detection service.

Examples:
  agridetect serve
  agridetect serve --addr 127.0.0.1:9000`,
		Args: cobra.NoArgs,
		RunE: runServe,
	}

	cmd.Flags().StringVar(&serveAddr, "addr", ":8000", "Listen address")

	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	log.SetHandler(cli.Default)
	if !verbose {
		gin.SetMode(gin.ReleaseMode)
	}

	srv := &http.Server{
		Addr:              serveAddr,
		Handler:           mockapi.NewServer().Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Infof("mock AgriDetect API listening on %s", serveAddr)
		errCh <- srv.ListenAndServe()
	}()

	ctx := contextOrBackground(cmd.Context())
	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
