// main.go
package main

import (
	"log"

	"venue-scheduler/cmd"
	"venue-scheduler/internal/data/repository"
	"venue-scheduler/internal/wire"
	"venue-scheduler/pkg/database"
	"venue-scheduler/pkg/events"
	"venue-scheduler/pkg/lock"
	"venue-scheduler/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.String("timezone", config.App.Location().String()),
		zap.Bool("strict_midnight", config.Schedule.StrictMidnight),
		zap.Bool("debug", config.App.Debug),
	)

	db, err := database.InitDB(config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connected successfully")

	repos := repository.NewRepository(db, logger)

	// Redis and the broker are optional; the database row locks keep
	// admissions and bookings correct without them.
	var infra wire.Infra
	if config.Redis.Addr != "" {
		rdb, err := lock.NewRedisClient(config.Redis.Addr, config.Redis.Password, config.Redis.DB)
		if err != nil {
			logger.Warn("Redis unavailable, running without lock and rate limit", zap.Error(err))
		} else {
			defer rdb.Close()
			infra.Redis = rdb
			logger.Info("Redis connected", zap.String("addr", config.Redis.Addr))
		}
	}
	if config.AMQP.URL != "" {
		publisher, err := events.NewAMQPPublisher(config.AMQP.URL, config.AMQP.Exchange, logger)
		if err != nil {
			logger.Warn("Broker unavailable, events disabled", zap.Error(err))
		} else {
			defer publisher.Close()
			infra.Publisher = publisher
			logger.Info("Broker connected", zap.String("exchange", config.AMQP.Exchange))
		}
	}

	app := wire.Wiring(repos, config, infra, logger)

	if err := cmd.APIServer(app.Router, config.App.Port, logger); err != nil {
		logger.Error("Server stopped with error", zap.Error(err))
	}
}
