package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hrmslite/hrms-backend/internal/hrms/clock"
	"github.com/hrmslite/hrms-backend/internal/hrms/events"
	"github.com/hrmslite/hrms-backend/internal/hrms/handler"
	"github.com/hrmslite/hrms-backend/internal/hrms/repository"
	"github.com/hrmslite/hrms-backend/internal/hrms/schema"
	"github.com/hrmslite/hrms-backend/internal/hrms/service"
	"github.com/hrmslite/hrms-backend/internal/hrms/validation"
	"github.com/hrmslite/hrms-backend/pkg/config"
	"github.com/hrmslite/hrms-backend/pkg/database"
	"github.com/hrmslite/hrms-backend/pkg/logger"
	"github.com/hrmslite/hrms-backend/pkg/messaging"
)

const serviceName = "hrms-service"

func main() {
	// Load configuration with validation (fails fast in production if required config is missing)
	cfg, err := config.LoadWithValidation(serviceName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(serviceName, cfg.Server.Environment)
	log.Info().Msg("starting HRMS service")

	loc, err := cfg.Server.Location()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid timezone")
	}
	clk := clock.New(loc)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db, err := database.New(&cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	// Tables must exist before the first request is served.
	if err := schema.Ensure(ctx, db.DB.DB, log); err != nil {
		log.Fatal().Err(err).Msg("failed to initialize database schema")
	}

	health := map[string]handler.HealthCheck{
		"database": db.Health,
	}

	var publisher service.EventPublisher = events.Noop{}
	if cfg.RabbitMQ.Enabled {
		rmq, err := messaging.New(ctx, &cfg.RabbitMQ, log)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to RabbitMQ")
		}
		defer rmq.Close()

		hrmsPublisher, err := events.NewHRMSEventPublisher(rmq, cfg.RabbitMQ.Exchange, log)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to create event publisher")
		}
		publisher = hrmsPublisher
		health["rabbitmq"] = func(context.Context) map[string]string { return rmq.Health() }
	} else {
		health["rabbitmq"] = func(context.Context) map[string]string { return map[string]string{"status": "disabled"} }
	}

	rules, err := validation.New(clk, cfg.Validation)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build validation rules")
	}

	// Repositories
	employeeRepo := repository.NewEmployeeRepository(db)
	attendanceRepo := repository.NewAttendanceRepository(db)
	dashboardRepo := repository.NewDashboardRepository(db)

	// Services
	employeeService := service.NewEmployeeService(employeeRepo, publisher, log)
	attendanceService := service.NewAttendanceService(attendanceRepo, employeeRepo, publisher, log)
	dashboardService := service.NewDashboardService(dashboardRepo, clk)

	router := handler.NewRouter(
		handler.RouterConfig{
			Service:        serviceName,
			AllowedOrigins: cfg.Server.AllowedOrigins,
			RequestTimeout: cfg.Server.RequestTimeout,
			Health:         health,
			Logger:         log,
		},
		handler.NewEmployeeHandler(employeeService, rules, log),
		handler.NewAttendanceHandler(attendanceService, rules, log),
		handler.NewDashboardHandler(dashboardService, log),
	)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Info().Str("addr", addr).Str("timezone", loc.String()).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
