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

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"unitoken/internal/adapter/http/router"
	"unitoken/internal/adapter/memstore"
	"unitoken/internal/port"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the tokenization HTTP API",
	Long: `Serve the HTTP API. Runs saved through the API go to the run database when
store.enabled is set in the config, and are kept in memory otherwise.

Examples:
  unitoken serve
  unitoken serve --addr 127.0.0.1:9000`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()
	log := GetLogger()

	addr := cfg.Server.Addr
	if serveAddr != "" {
		addr = serveAddr
	}

	gin.SetMode(cfg.Server.Mode)

	uc, err := newTokenizeUseCase(cfg, log)
	if err != nil {
		return err
	}

	var runStore port.RunStore
	if cfg.Store.Enabled {
		st, err := openRunStore(cfg, GetRootDir(), true)
		if err != nil {
			return err
		}
		runStore = st
		log.Info("Using run database", zap.String("path", cfg.StoreDBPath(GetRootDir())))
	} else {
		runStore = memstore.NewMemoryStore()
		log.Info("Run database disabled, keeping runs in memory")
	}
	defer runStore.Close()

	srv := &http.Server{
		Addr:         addr,
		Handler:      router.Setup(uc, runStore, cfg.Tokenize.ScoreThreshold, log),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info("Starting server", zap.String("address", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited")
	return nil
}
