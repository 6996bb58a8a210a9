package bootstrap

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"gorm.io/gorm"

	app "github.com/mohammadpnp/rental-import/internal/application/importing"
	"github.com/mohammadpnp/rental-import/internal/config"
	domain "github.com/mohammadpnp/rental-import/internal/domain/importing"
	"github.com/mohammadpnp/rental-import/internal/infrastructure/repository"
	httpecho "github.com/mohammadpnp/rental-import/internal/interfaces/http/echo"
)

func NewHTTPServer(db *gorm.DB, store domain.ObjectStore, cfg config.Config) *echo.Echo {
	server := echo.New()
	server.HideBanner = true

	server.Use(middleware.Recover())
	server.Use(middleware.RequestID())
	server.Use(middleware.BodyLimit("10M"))

	importJobRepo := repository.NewImportJobRepository(db)

	startImport := app.NewStartImport(importJobRepo, store)
	getJob := app.NewGetImportJob(importJobRepo)
	listJobs := app.NewListImportJobs(importJobRepo)
	stats := app.NewGetImportStats(importJobRepo, cfg.StatsCacheTTL, nil)
	poller := app.NewPoller(importJobRepo, cfg.PollInterval, cfg.PollTimeout)

	importHandler := httpecho.NewImportHandler(startImport, getJob, listJobs, stats, poller)
	httpecho.RegisterRoutes(server, importHandler)

	server.GET("/healthz", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok"})
	})

	return server
}
