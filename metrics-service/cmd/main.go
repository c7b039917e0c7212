package main

import (
	_ "time/tzdata"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"

	"tpv/internal/clock"
	"tpv/internal/config"
	"tpv/internal/database"
	"tpv/internal/logging"
	"tpv/internal/server"
	"tpv/metrics-service/internal/api"
	"tpv/metrics-service/internal/repository"
	"tpv/metrics-service/internal/service"
)

const (
	serviceName    = "Microservicio de Métricas"
	serviceVersion = "1.0.0"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load(serviceName, "5003")
	logger := logging.Setup("metricas", cfg.LogLevel, cfg.LogFile)

	loc, err := cfg.Location()
	if err != nil {
		logger.Fatal().Err(err).Str("timezone", cfg.Timezone).Msg("invalid time zone")
	}

	// Read-only: the sales service owns the schema and creates the tables.
	db, err := database.Connect(cfg.DB, loc)
	if err != nil {
		logger.Fatal().Err(err).Msg("database unavailable")
	}
	defer db.Close()

	clk := clock.InLocation(loc)
	metricsRepo := repository.NewMetricsRepository(sqlx.NewDb(db, "mysql"))
	metricsService := service.NewMetricsService(metricsRepo, clk)
	metricsHandler := api.NewMetricsHandler(metricsService)

	e := server.New(server.Options{
		Service:    serviceName,
		Version:    serviceVersion,
		RateLimit:  cfg.RateLimit,
		RateBurst:  cfg.RateBurst,
		Prometheus: cfg.PrometheusEnabled,
		Clock:      clk,
		Logger:     logger,
	})
	metricsHandler.Register(e)

	if err := server.Run(e, ":"+cfg.HTTPPort, logger); err != nil {
		logger.Fatal().Err(err).Msg("http server stopped")
	}
}
