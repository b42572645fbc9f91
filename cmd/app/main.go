package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"workorders/cmd"
	httpin "workorders/internal/adapters/in/http"
	"workorders/internal/adapters/out/amqp"
	"workorders/internal/core/ports"

	"github.com/labstack/gommon/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

func main() {
	configs := cmd.LoadConfig()
	logger := cmd.NewLogger(configs, os.Stdout)
	slog.SetDefault(logger)

	db, err := cmd.OpenDatabase(configs)
	if err != nil {
		log.Fatalf("Error opening database: %v", err)
	}

	publisher, closeBroker := connectBroker(configs, logger)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	app := cmd.NewCompositionRoot(configs, db, publisher, registry, logger)

	jobManager := app.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		log.Fatalf("Error starting jobs: %v", err)
	}

	e, err := httpin.NewEcho(app.CreateServer(), logger, registry)
	if err != nil {
		log.Fatalf("Error building HTTP server: %v", err)
	}

	go func() {
		addr := fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort)
		logger.Info("Server started", "addr", addr, "env", configs.AppEnv)
		if startErr := e.Start(addr); startErr != nil && !errors.Is(startErr, http.ErrServerClosed) {
			log.Fatalf("Error starting server: %v", startErr)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	shutdown(e.Shutdown, jobManager.StopAll, closeBroker, db, logger)
}

// connectBroker returns a RabbitMQ publisher when AMQP_URL is set. Without a
// broker, or when it cannot be reached, events are only counted.
func connectBroker(configs cmd.Config, logger *slog.Logger) (ports.EventPublisher, func()) {
	if configs.AMQPURL == "" {
		return amqp.NopPublisher{}, func() {}
	}

	conn, err := amqp.Dial(configs.AMQPURL, configs.AMQPExchange, logger)
	if err != nil {
		logger.Error("RabbitMQ unavailable, domain events will not be published", "error", err)
		return amqp.NopPublisher{}, func() {}
	}
	return conn.Publisher(), func() {
		if closeErr := conn.Close(); closeErr != nil {
			logger.Error("Error closing RabbitMQ connection", "error", closeErr)
		}
	}
}

func shutdown(
	stopServer func(context.Context) error,
	stopJobs func(),
	closeBroker func(),
	db *gorm.DB,
	logger *slog.Logger,
) {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := stopServer(ctx); err != nil {
		logger.Error("Error stopping server", "error", err)
	}
	stopJobs()
	closeBroker()
	if err := cmd.CloseDatabase(db); err != nil {
		logger.Error("Error closing database", "error", err)
	}
	logger.Info("Server stopped")
}
