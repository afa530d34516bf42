package main

import (
	"aftech-backend/config"
	"aftech-backend/controllers/idgen"
	"aftech-backend/database"
	"aftech-backend/migration"
	"aftech-backend/routes"
	"aftech-backend/services"
	"aftech-backend/utils"
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"gorm.io/gorm"
)

func main() {
	config.LoadConfig()
	logg := config.GetLogger()
	idgen.Init(int64(config.SnowflakeNode))

	db, err := database.OpenDatabaseConnection()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	if err := migration.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate: %v", err)
	}
	database.RunSeeders(db)
	checkCounter(db)

	deps := routes.Dependencies{
		DB:           db,
		ReportCache:  services.NopReportCache{},
		ImportLocker: services.NewLocalImportLocker(),
		Hooks:        services.DefaultHooks(db),
	}
	if err := config.ConnectRedis(context.Background()); err != nil {
		config.LogWarn(logg, "main", "main", "redis unavailable, reports are not cached", err.Error())
	} else if rdb := config.GetRedisDB(); rdb != nil {
		deps.ReportCache = services.NewRedisReportCache(rdb, time.Duration(config.ReportCacheTTL)*time.Second)
		deps.ImportLocker = services.NewRedisImportLocker(config.GetRedisLock())
	}
	defer config.CloseRedis()

	app := fiber.New(fiber.Config{
		BodyLimit: 16 * 1024 * 1024,
	})
	app.Use(recover.New())
	app.Use(logger.New())
	config.SetupCORS(app)
	routes.SetupRoutes(app, deps)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-quit
		logg.Info("shutting down")
		_ = app.ShutdownWithTimeout(10 * time.Second)
	}()

	port := config.APP_PORT
	fmt.Println("Server running on port " + port)

	if err := app.Listen(":" + port); err != nil {
		log.Fatal(err)
	}
}

// checkCounter refuses to start on a broken counter and seeds a missing one
// when JOBCARD_COUNTER_SEED is set.
func checkCounter(db *gorm.DB) {
	logg := config.GetLogger()
	counter, err := services.CheckCounter(db)
	switch {
	case err == nil:
		logg.WithField("current_number", counter.CurrentNumber).Info("job card counter ready")
	case errors.Is(err, utils.ErrCounterNotInitialized) && config.JobCardCounterSeed > 0:
		counter, err = services.InitCounter(db, int64(config.JobCardCounterSeed))
		if err != nil {
			log.Fatalf("Failed to initialize job card counter: %v", err)
		}
		logg.WithField("current_number", counter.CurrentNumber).Info("job card counter initialized")
	case errors.Is(err, utils.ErrCounterNotInitialized):
		config.LogWarn(logg, "main", "checkCounter", "job card counter missing, job card creation will fail until it is initialized", nil)
	default:
		log.Fatalf("Job card counter check failed: %v", err)
	}
}
