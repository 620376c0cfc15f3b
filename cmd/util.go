package cmd

import (
	"database/sql"
	"fmt"
	"os"
	"strings"
	"time"

	"stockbuddy/api"
	"stockbuddy/internal/logger"
	"stockbuddy/internal/repository"
	"stockbuddy/internal/service"
	"stockbuddy/internal/util"
	"stockbuddy/pkg/simulation"

	_ "github.com/lib/pq"
)

func CloseDependencies(handler *api.ApiHandler) {
	if handler.Db == nil {
		return
	}
	if err := handler.Db.Close(); err != nil {
		logger.New().Errorw("failed to close db", "error", err)
	}
}

// InitializeDependencies wires the api. without a database host the
// cache lives in memory and requests are not recorded
func InitializeDependencies() (*api.ApiHandler, *util.Secrets, error) {
	secrets, err := util.LoadSecrets()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load secrets: %w", err)
	}
	log := logger.New()

	var simulationClient simulation.Client = simulation.NewClient(simulation.Config{
		BaseUrl:    secrets.Simulation.BaseUrl,
		MaxTries:   secrets.Simulation.MaxTries,
		RetryDelay: time.Duration(secrets.Simulation.RetryDelayMs) * time.Millisecond,
	})
	if strings.EqualFold(os.Getenv(logger.EnvVar), "test") || secrets.Simulation.BaseUrl == UseMockSimulation {
		log.Infow("using mock simulation client")
		simulationClient = NewMockSimulationClient()
	}

	handler := &api.ApiHandler{}
	if secrets.Db.Enabled() {
		dbConn, err := sql.Open("postgres", secrets.Db.ToConnectionStr())
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to db: %w", err)
		}
		handler.Db = dbConn
		handler.PerformanceCacheRepository = repository.NewPerformanceCacheRepository(dbConn)
		handler.ApiRequestRepository = repository.ApiRequestRepositoryHandler{}
		handler.LatencyTrackingRepository = repository.NewLatencyTrackingRepository(dbConn)
	} else {
		log.Infow("no database configured, caching projections in memory")
		handler.PerformanceCacheRepository = repository.NewMemoryPerformanceCacheRepository()
	}

	handler.ProjectionService = service.NewProjectionService(
		simulationClient,
		handler.PerformanceCacheRepository,
	)

	return handler, secrets, nil
}
