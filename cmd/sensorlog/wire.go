//go:build wireinject

package main

import (
	"io"

	"github.com/google/wire"
)

func initApplication(out io.Writer) (*application, error) {
	wire.Build(
		provideConfig,
		provideLogger,
		provideRegistry,
		provideReadingService,
		provideWorkerPool,
		provideIngestQueue,
		provideGenerator,
		provideOpsServer,
		newApplication,
	)
	return nil, nil
}
