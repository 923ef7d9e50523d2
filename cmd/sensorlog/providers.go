package main

import (
	"fmt"
	"io"
	"net/http"
	"time"

	httpapi "sensorlog-service/internal/api/http"
	"sensorlog-service/internal/application/generator"
	"sensorlog-service/internal/application/readings"
	"sensorlog-service/internal/application/worker"
	"sensorlog-service/internal/config"
	"sensorlog-service/internal/domain"
	"sensorlog-service/internal/logging"
	"sensorlog-service/internal/registry"
)

const (
	serviceName         = "sensorlog"
	defaultIngestBuffer = 100
)

func provideConfig() config.Config {
	return config.Load()
}

func provideLogger(out io.Writer, cfg config.Config) *logging.Logger {
	return logging.New(cfg.LogLevel, logging.WithWriter(out), logging.WithService(serviceName))
}

func provideRegistry(cfg config.Config, logger *logging.Logger) (*registry.Registry, error) {
	reg, err := registry.Open(cfg.LogRoot, cfg.SensorNames, logger)
	if err != nil {
		return nil, fmt.Errorf("open registry: %w", err)
	}
	return reg, nil
}

func provideReadingService(reg *registry.Registry, logger *logging.Logger) *readings.Service {
	return readings.New(reg, logger)
}

func provideWorkerPool(cfg config.Config, svc *readings.Service, logger *logging.Logger) *worker.Pool {
	return worker.New(cfg.WorkerCount, svc, logger)
}

func provideIngestQueue(cfg config.Config) chan domain.Batch {
	size := cfg.SubmissionBufferSize
	if size <= 0 {
		size = defaultIngestBuffer
	}
	return make(chan domain.Batch, size)
}

func provideGenerator(cfg config.Config, reg *registry.Registry, logger *logging.Logger) *generator.Generator {
	return generator.New(generator.Config{
		Interval: cfg.SimulateInterval(),
		Sensors:  reg.Names(),
	}, logger)
}

func provideOpsServer(cfg config.Config, svc *readings.Service) *http.Server {
	return &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.OpsPort),
		Handler:           httpapi.NewServer(svc),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}
