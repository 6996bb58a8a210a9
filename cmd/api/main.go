package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	app "github.com/mohammadpnp/rental-import/internal/application/importing"
	"github.com/mohammadpnp/rental-import/internal/bootstrap"
	"github.com/mohammadpnp/rental-import/internal/config"
	"github.com/mohammadpnp/rental-import/internal/infrastructure/db/models"
	"github.com/mohammadpnp/rental-import/internal/infrastructure/objectstore"
	"github.com/mohammadpnp/rental-import/internal/infrastructure/repository"
	"github.com/mohammadpnp/rental-import/pkg/retry"
)

func main() {
	if err := godotenv.Load(); err != nil {
		logrus.Info("no .env file found, relying on system env")
	}

	log := logrus.StandardLogger()
	if level, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL")); err == nil {
		log.SetLevel(level)
	}

	cfg := config.Load()
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is required")
	}

	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{})
	if err != nil {
		log.WithError(err).Fatal("failed to connect database")
	}

	if err := db.AutoMigrate(
		&models.ImportJob{},
		&models.Customer{},
		&models.Agreement{},
		&models.Payment{},
		&models.Transaction{},
		&models.Installment{},
	); err != nil {
		log.WithError(err).Fatal("failed to migrate database")
	}

	pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
	if err != nil {
		log.WithError(err).Fatal("failed to create pgx pool")
	}
	defer pool.Close()

	store := objectstore.NewLocal(cfg.ObjectStoreDir, cfg.PublicBaseURL)
	server := bootstrap.NewHTTPServer(db, store, cfg)

	workerCtx, stopWorkers := context.WithCancel(context.Background())
	defer stopWorkers()

	importJobRepo := repository.NewImportJobRepository(db)
	recordWriter := repository.NewRentalRecordRepository(pool)
	processor := app.NewProcessor(importJobRepo, store, recordWriter, retry.Config{
		MaxAttempts: cfg.RetryMaxAttempts,
		BaseDelay:   cfg.RetryBaseDelay,
		JitterBound: cfg.RetryJitterMax,
	}, log)

	worker := app.NewWorker(importJobRepo, processor, app.WorkerConfig{
		Workers:      cfg.Workers,
		PollInterval: cfg.WorkerPollInterval,
	}, log)
	worker.Start(workerCtx)

	go func() {
		if err := server.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	stopWorkers()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.WithError(err).Fatal("graceful shutdown failed")
	}
}
