package cmd

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ecolink/ecolink/internal/matching"
	"github.com/ecolink/ecolink/internal/server"
)

const shutdownTimeout = 15 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the classifier and the matcher over HTTP",
	Run: func(_ *cobra.Command, _ []string) {
		serve()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("addr", "", "listen address (default is server.addr, :8080)")

	viper.BindPFlag("server.addr", serveCmd.Flags().Lookup("addr"))
}

func serve() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger, config := setup()

	d, err := loadDirectory(config, logger)
	if err != nil {
		logger.Fatal("loading directory", zap.Error(err))
	}

	classifier, err := newClassifier(ctx, config.Classifier, logger)
	if err != nil {
		logger.Fatal("building classifier", zap.Error(err))
	}

	srv := &http.Server{
		Addr:         config.Server.Addr,
		Handler:      server.New(classifier, matching.New(d), logger).Handler(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: config.Classifier.Timeout*time.Duration(config.Classifier.MaxRetries+1) + 10*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("server starting", zap.String("addr", srv.Addr), zap.String("version", version))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Fatal("server error", zap.Error(err))
	}
	logger.Info("server stopped")
}
