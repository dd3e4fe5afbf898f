package main

import (
	"context"
	"database/sql"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	analyticsHttp "brand-analytics-service/internal/analytics/adapters/http/fiber"
	analyticsRepoPg "brand-analytics-service/internal/analytics/adapters/postgres"
	analyticsUsecase "brand-analytics-service/internal/analytics/core/usecase"

	txHttp "brand-analytics-service/internal/transactions/adapters/http/fiber"
	txRepoPg "brand-analytics-service/internal/transactions/adapters/postgres"
	txUsecase "brand-analytics-service/internal/transactions/core/usecase"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	_ "github.com/lib/pq"
	fiberSwagger "github.com/swaggo/fiber-swagger"

	_ "brand-analytics-service/docs"
)

func main() {
	// Config
	dsn := os.Getenv("POSTGRES_DSN")
	if dsn == "" {
		log.Fatal("POSTGRES_DSN is not set")
	}
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	// The transactions table stores the month as a name; MONTH_STYLE=index
	// switches the reader for deployments with the numeric-month table.
	monthStyle := analyticsRepoPg.MonthStyleName
	if os.Getenv("MONTH_STYLE") == "index" {
		monthStyle = analyticsRepoPg.MonthStyleIndex
	}

	// DB connection
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		log.Fatalf("failed to open postgres: %v", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)

	if err := db.Ping(); err != nil {
		log.Fatalf("failed to ping postgres: %v", err)
	}

	// Adapter-level DB wrappers
	txDB := txRepoPg.NewSQLDB(db)
	analyticsDB := analyticsRepoPg.NewSQLDB(db)

	// Repositories
	txRepository := txRepoPg.NewTransactionRepository(txDB)
	rowRepository := analyticsRepoPg.NewRowRepository(analyticsDB, monthStyle)

	// Usecases
	storeTxUC := txUsecase.NewStoreTransactionUseCase(txRepository)
	summaryUC := analyticsUsecase.NewGetSummaryUseCase(rowRepository)
	lifecycleUC := analyticsUsecase.NewGetLifecycleUseCase(rowRepository)
	movementUC := analyticsUsecase.NewGetMovementUseCase(rowRepository)

	// HTTP (Fiber) app + handlers
	app := fiber.New()
	app.Use(recover.New())
	app.Use(logger.New())

	app.Get("/healthz", func(c *fiber.Ctx) error {
		if err := db.PingContext(c.UserContext()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "down"})
		}
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// transactions endpoints
	txHandler := txHttp.NewTransactionHandler(storeTxUC)
	app.Post("/transactions", txHandler.CreateTransaction)
	app.Post("/transactions/bulk", txHandler.BulkCreateTransactions)

	// analytics endpoints
	analyticsHandler := analyticsHttp.NewAnalyticsHandler(summaryUC, lifecycleUC, movementUC)
	app.Get("/analytics/summary", analyticsHandler.GetSummary)
	app.Get("/analytics/summary/export", analyticsHandler.ExportSummary)
	app.Get("/analytics/lifecycle", analyticsHandler.GetLifecycle)
	app.Get("/analytics/lifecycle/export", analyticsHandler.ExportLifecycle)
	app.Get("/analytics/movement", analyticsHandler.GetMovement)

	// Swagger
	app.Get("/docs/*", fiberSwagger.WrapHandler)

	// Graceful shutdown
	go func() {
		if err := app.Listen(":" + port); err != nil {
			log.Printf("fiber stopped: %v", err)
		}
	}()

	log.Printf("server started on :%s", port)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit

	log.Println("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("fiber shutdown error: %v", err)
	}

	log.Println("server exiting")
}
