package main

import (
	"net/http"

	"sensorlog-service/internal/application/generator"
	"sensorlog-service/internal/application/readings"
	"sensorlog-service/internal/application/worker"
	"sensorlog-service/internal/config"
	"sensorlog-service/internal/domain"
	"sensorlog-service/internal/logging"
	"sensorlog-service/internal/registry"
)

// application holds the wired components. Ingest is the queue drained by the
// worker pool; in-process producers send batches on it.
type application struct {
	Config     config.Config
	Logger     *logging.Logger
	Registry   *registry.Registry
	Service    *readings.Service
	WorkerPool *worker.Pool
	Ingest     chan domain.Batch
	Generator  *generator.Generator
	OpsServer  *http.Server
}

func newApplication(
	cfg config.Config,
	logger *logging.Logger,
	reg *registry.Registry,
	service *readings.Service,
	pool *worker.Pool,
	ingest chan domain.Batch,
	gen *generator.Generator,
	opsServer *http.Server,
) *application {
	return &application{
		Config:     cfg,
		Logger:     logger,
		Registry:   reg,
		Service:    service,
		WorkerPool: pool,
		Ingest:     ingest,
		Generator:  gen,
		OpsServer:  opsServer,
	}
}
