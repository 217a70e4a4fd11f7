package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ordering/cmd"
	ordershttp "ordering/internal/adapters/in/http"
	"ordering/internal/adapters/out/kafka"
	ordersredis "ordering/internal/adapters/out/redis"
)

const shutdownTimeout = 15 * time.Second

func main() {
	if err := run(); err != nil {
		slog.Error("Service stopped with error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	configs, err := cmd.LoadConfig(".env")
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: configs.SlogLevel()}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gormDB, err := cmd.OpenDatabase(configs.DSN())
	if err != nil {
		return err
	}
	defer func() {
		if err := cmd.CloseDatabase(gormDB); err != nil {
			logger.Error("Failed to close database", "error", err)
		}
	}()

	rdb, err := ordersredis.Connect(ctx, configs.RedisURL)
	if err != nil {
		return err
	}
	defer func() {
		if err := rdb.Close(); err != nil {
			logger.Error("Failed to close redis client", "error", err)
		}
	}()

	publisher := kafka.NewEventPublisher(configs.KafkaBrokers, configs.KafkaOrderChangedTopic)
	defer func() {
		if err := publisher.Close(); err != nil {
			logger.Error("Failed to close kafka writer", "error", err)
		}
	}()

	app := cmd.NewCompositionRoot(configs, gormDB, rdb, publisher, logger)

	jobManager := app.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		return err
	}
	defer jobManager.StopAll()

	e, err := ordershttp.NewRouter(ctx, app.CreateHTTPServer(), logger, configs.RequestTimeout)
	if err != nil {
		return fmt.Errorf("build router: %w", err)
	}

	serverErr := make(chan error, 1)
	go func() {
		addr := net.JoinHostPort("0.0.0.0", configs.HTTPPort)
		logger.Info("HTTP server listening", "addr", addr)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err = <-serverErr:
		return err
	case <-ctx.Done():
		logger.Info("Shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	return e.Shutdown(shutdownCtx)
}
