// Command sensorlog keeps one append-only reading log per configured sensor
// and serves health and metrics endpoints while the ingest pool runs.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"

	"sensorlog-service/internal/config"
	"sensorlog-service/internal/domain"
	"sensorlog-service/internal/infrastructure/metrics"
)

func main() {
	app, err := initApplication(os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "sensorlog: startup failed: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, app); err != nil {
		app.Logger.Error("sensorlog stopped with error", "error", err.Error())
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, app *application) error {
	ctx, stop := context.WithCancel(ctx)
	defer stop()

	logger := app.Logger
	logger.SetDefault()
	config.LogConfig(logger, app.Config)
	metrics.InitMetrics()

	var workers sync.WaitGroup
	workers.Add(1)
	go func() {
		defer workers.Done()
		app.WorkerPool.Run(ctx, app.Ingest)
	}()

	if app.Config.SimulationEnabled() {
		simulated := make(chan domain.Batch)
		workers.Add(2)
		go func() {
			defer workers.Done()
			app.Generator.Run(ctx, simulated)
		}()
		go func() {
			defer workers.Done()
			forward(ctx, simulated, app.Ingest)
		}()
		logger.Info("simulated sensor feed started", "interval", app.Config.SimulateInterval().String())
	}

	var serveErr error
	if app.Config.OpsPort != "" {
		go func() {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := app.OpsServer.Shutdown(shutdownCtx); err != nil {
				logger.Error("ops server shutdown error", "error", err.Error())
			}
		}()

		logger.Info("ops server listening", "addr", app.OpsServer.Addr)
		if err := app.OpsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr = fmt.Errorf("ops server: %w", err)
		}
		stop()
	} else {
		<-ctx.Done()
	}

	workers.Wait()
	logger.Info("sensorlog stopped", "sensors", len(app.Registry.Names()))
	return serveErr
}

// forward copies generator output onto the shared ingest queue. The queue
// itself is never closed here since other producers may still hold it.
func forward(ctx context.Context, in <-chan domain.Batch, out chan<- domain.Batch) {
	for batch := range in {
		select {
		case out <- batch:
		case <-ctx.Done():
			return
		}
	}
}
