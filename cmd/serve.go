package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"fan-pulse/handler"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the API server and the background classify loop",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := newApplication(ctx)
	if err != nil {
		return err
	}
	defer app.Close()

	e := echo.New()
	e.HideBanner = true
	e.Server.ReadTimeout = cfg.Server.ReadTimeout
	e.Server.WriteTimeout = cfg.Server.WriteTimeout

	handlers := handler.NewHandlers(app.stats, app.wordCloud, app.classifier, app.health, app.tweetRepo, log)
	handler.RegisterRoutes(e, handlers, app.collector, log)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		addr := fmt.Sprintf(":%d", cfg.Server.Port)
		log.Info("starting HTTP server", "addr", addr)

		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}

		return nil
	})

	g.Go(func() error {
		return runClassifyLoop(gctx, app)
	})

	g.Go(func() error {
		<-gctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		log.Info("shutting down HTTP server")

		return e.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	log.Info("server stopped")

	return nil
}

// healthWaitTimeout bounds the startup wait for the hosted model. The loop
// starts regardless; the lexicon fallback covers while the model is down.
const healthWaitTimeout = time.Minute

// runClassifyLoop periodically drains newly ingested tweets through the
// classifier until the process is stopped.
func runClassifyLoop(ctx context.Context, app *application) error {
	waitCtx, cancel := context.WithTimeout(ctx, healthWaitTimeout)
	defer cancel()

	if err := app.health.WaitForHealthy(waitCtx); err != nil {
		if ctx.Err() != nil {
			return nil
		}

		log.Warn("classifier not healthy at startup, relying on lexicon fallback", "error", err)
	}

	ticker := time.NewTicker(cfg.Classifier.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			pending, err := app.classifier.HasUnclassifiedTweets(ctx)
			if err != nil {
				log.Error("failed to check for unclassified tweets", "error", err)
				continue
			}

			if !pending {
				continue
			}

			if _, err := app.classifier.ClassifyBatch(ctx, cfg.Classifier.BatchSize); err != nil {
				log.Error("classification batch failed", "error", err)
			}
		}
	}
}
