package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdelacruz/newscred/internal/pipeline"
	"github.com/pdelacruz/newscred/internal/server"
	"github.com/pdelacruz/newscred/internal/store"
)

var (
	serveAddr     string
	serveStoreDir string
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the JSON API server",
	Long: `Serve exposes the analysis pipeline over HTTP:

  POST /api/v1/analyze        run one analysis
  GET  /api/v1/analyses/{id}  fetch a persisted verdict
  GET  /api/v1/analyses       list persisted verdicts
  GET  /healthz               liveness check

Example:
  newscred serve --addr :8080 --store-dir ./verdicts`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from config, :8080)")
	serveCmd.Flags().StringVar(&serveStoreDir, "store-dir", "", "persist verdicts to this directory")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	if serveAddr != "" {
		cfg.Server.Addr = serveAddr
	}
	if serveStoreDir != "" {
		cfg.Store.Enabled = true
		cfg.Store.Dir = serveStoreDir
	}

	var persistence store.Store = store.NewNoop()
	if cfg.Store.Enabled {
		persistence = store.NewDiskStore(cfg.Store.Dir)
	}

	o := pipeline.New(cfg)
	srv := server.New(cfg.Server, o, persistence)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case sig := <-stop:
		fmt.Fprintf(os.Stderr, "\nReceived %s, shutting down...\n", sig)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	return nil
}
