package main

import (
	"context"
	"time"
	_ "time/tzdata"

	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"

	"tpv/internal/clock"
	"tpv/internal/config"
	"tpv/internal/database"
	"tpv/internal/logging"
	"tpv/internal/server"
	"tpv/sales-service/internal/api"
	"tpv/sales-service/internal/repository"
	"tpv/sales-service/internal/service"
	"tpv/sales-service/migrations"
)

const (
	serviceName    = "Microservicio de Ventas"
	serviceVersion = "1.0.0"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load(serviceName, "5001")
	logger := logging.Setup("ventas", cfg.LogLevel, cfg.LogFile)

	loc, err := cfg.Location()
	if err != nil {
		logger.Fatal().Err(err).Str("timezone", cfg.Timezone).Msg("invalid time zone")
	}

	db, err := database.Connect(cfg.DB, loc)
	if err != nil {
		logger.Fatal().Err(err).Msg("database unavailable")
	}
	defer db.Close()

	ctx := context.Background()
	if err := migrations.AutoMigrateVentas(ctx, db, 3); err != nil {
		logger.Fatal().Err(err).Msg("Failed to migrate venta table")
	}
	if err := migrations.AutoMigrateComandas(ctx, db, 3); err != nil {
		logger.Fatal().Err(err).Msg("Failed to migrate comanda table")
	}

	var idempotency service.IdempotencyStore
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		defer rdb.Close()
		idempotency = service.NewRedisIdempotencyStore(rdb, 24*time.Hour)
		logger.Info().Str("addr", cfg.RedisAddr).Msg("idempotency keys enabled")
	}

	var events service.EventPublisher
	if len(cfg.KafkaBrokers) > 0 {
		kafkaWriter := config.NewKafkaWriter(cfg.KafkaBrokers, cfg.KafkaTopic)
		defer kafkaWriter.Close()
		events = service.NewKafkaEventPublisher(kafkaWriter)
		logger.Info().Strs("brokers", cfg.KafkaBrokers).Str("topic", cfg.KafkaTopic).Msg("venta events enabled")
	}

	clk := clock.InLocation(loc)
	ventaRepo := repository.NewVentaRepository(db)
	ventaService := service.NewVentaService(ventaRepo, clk, idempotency, events)
	ventaHandler := api.NewVentaHandler(ventaService)

	e := server.New(server.Options{
		Service:    serviceName,
		Version:    serviceVersion,
		RateLimit:  cfg.RateLimit,
		RateBurst:  cfg.RateBurst,
		Prometheus: cfg.PrometheusEnabled,
		Clock:      clk,
		Logger:     logger,
	})
	ventaHandler.Register(e)

	if err := server.Run(e, ":"+cfg.HTTPPort, logger); err != nil {
		logger.Fatal().Err(err).Msg("http server stopped")
	}
}
