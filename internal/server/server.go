// Package server wires the application together and runs the HTTP listener.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pawvilla/pawvilla/app/repositories"
	"github.com/pawvilla/pawvilla/app/routes"
	"github.com/pawvilla/pawvilla/config"
	"github.com/pawvilla/pawvilla/database/seeders"
	"github.com/pawvilla/pawvilla/pkg/cache"
	"github.com/pawvilla/pawvilla/pkg/database"
	"github.com/pawvilla/pawvilla/pkg/logger"
	"github.com/pawvilla/pawvilla/pkg/metrics"
	"github.com/pawvilla/pawvilla/pkg/middleware"
	"github.com/pawvilla/pawvilla/pkg/reqid"
	"github.com/pawvilla/pawvilla/pkg/router"
	"github.com/pawvilla/pawvilla/pkg/storage"
	"github.com/pawvilla/pawvilla/pkg/ws"
)

// Run boots every subsystem and serves until SIGINT/SIGTERM.
func Run() error {
	if err := config.Load(); err != nil {
		logger.Warn("no .env file loaded", "error", err)
	}

	if err := database.Connect(); err != nil {
		return err
	}
	defer database.Disconnect()

	if err := cache.Connect(); err != nil {
		logger.Warn("redis unavailable, caching disabled", "error", err)
	}
	storage.Connect()

	// Ship application logs to Mongo as well when configured.
	var mongoLogs *logger.MongoHandler
	if uri := config.LogMongoURI(); uri != "" {
		h, err := logger.NewMongoHandler(uri, config.LogMongoDB(), "logs")
		if err != nil {
			logger.Warn("mongo log handler unavailable", "error", err)
		} else {
			mongoLogs = h
			logger.UseHandler(logger.NewMultiHandler(
				slog.NewJSONHandler(os.Stdout, nil), h,
			))
		}
	}
	if mongoLogs != nil {
		defer mongoLogs.Close()
	}

	deps := routes.Deps{
		Users:        repositories.NewUserRepository(),
		Pets:         repositories.NewPetRepository(),
		Doctors:      repositories.NewDoctorRepository(),
		Products:     repositories.NewProductRepository(),
		Orders:       repositories.NewOrderRepository(),
		Appointments: repositories.NewAppointmentRepository(),
		Hub:          ws.NewHub(),
	}
	go deps.Hub.Run()

	seedCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	seeders.Run(seedCtx, seeders.All(deps.Doctors, deps.Products))
	cancel()

	r := NewRouter(deps)

	srv := &http.Server{
		Addr:              ":" + config.AppPort(),
		Handler:           r.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", srv.Addr, "env", config.AppEnv())
		errCh <- srv.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	case sig := <-stop:
		logger.Info("shutting down", "signal", sig.String())
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
	}
	return nil
}

// NewRouter builds the router with the standard middleware chain and the
// full route table mounted.
func NewRouter(deps routes.Deps) *router.Router {
	r := router.New()
	r.Use(
		reqid.Middleware(),
		middleware.Logger,
		middleware.Recovery,
		middleware.CORS(middleware.DefaultCORSOptions()),
		metrics.Middleware(),
	)
	routes.Register(r, deps)
	return r
}
