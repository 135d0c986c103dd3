package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/notuna/order-service/docs"
	"github.com/notuna/order-service/internal/app"
	"github.com/notuna/order-service/internal/client"
	"github.com/notuna/order-service/internal/config"
	"github.com/notuna/order-service/internal/events"
	"github.com/notuna/order-service/internal/handler"
	"github.com/notuna/order-service/internal/middleware"
	"github.com/notuna/order-service/internal/postgres"
	"github.com/notuna/order-service/internal/repo"
	"github.com/notuna/order-service/internal/service"
	"github.com/notuna/order-service/pkg/trm"

	"github.com/joho/godotenv"
)

// @title           Trade Orders API
// @version         1.0
// @description     REST API for a B2B trade order marketplace.
func main() {
	conf := config.New()
	logger := newLogger(conf.Env)
	panicIfErr("invalid config", conf.Validate())

	db, err := postgres.New(conf.Postgres)
	panicIfErr("failed to connect to db", err)
	defer db.Close()
	logger.Info("postgres connected")

	store := repo.NewPostgresRepo(db)
	txManager := trm.NewManager(db)

	producer := events.NewProducer(logger, conf.Kafka)
	docsAPI := client.NewDocumentsClient(logger, conf.DocsAPI)

	orderService := service.NewOrderService(logger, txManager, store, producer)
	statsService := service.NewStatsService(logger, store)
	documentService := service.NewDocumentService(logger, store, docsAPI)
	userService := service.NewUserService(logger, store, conf.Auth)
	productService := service.NewProductService(logger, store)
	messageService := service.NewMessageService(logger, store, store)

	guard := middleware.APIKey(conf.Auth.APIKeys)

	application := app.New(logger, conf)
	application.SetHttpHandlers(
		handler.NewOrderHandler(logger, orderService, userService, guard),
		handler.NewStatsHandler(logger, statsService),
		handler.NewDocumentHandler(logger, documentService, guard),
		handler.NewUserHandler(logger, userService),
		handler.NewProductHandler(logger, productService, guard),
		handler.NewMessageHandler(logger, messageService),
	)
	application.SetClosers(producer)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	if err := application.Run(ctx); err != nil {
		logger.Error("application failed", slog.Any("error", err))
		os.Exit(1)
	}
}

func init() {
	godotenv.Load()
}

func newLogger(env string) *slog.Logger {
	switch env {
	case "production":
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	default:
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
}

func panicIfErr(prefix string, err error) {
	if err != nil {
		panic(prefix + ": " + err.Error())
	}
}
