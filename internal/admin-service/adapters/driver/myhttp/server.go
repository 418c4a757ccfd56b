package myhttp

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"transfer-admin/internal/admin-service/adapters/driven/bm"
	"transfer-admin/internal/admin-service/adapters/driven/cache"
	"transfer-admin/internal/admin-service/adapters/driven/db"
	"transfer-admin/internal/admin-service/adapters/driven/geo"
	"transfer-admin/internal/admin-service/adapters/driver/myhttp/handle"
	"transfer-admin/internal/admin-service/adapters/driver/myhttp/middleware"
	"transfer-admin/internal/admin-service/adapters/driver/myhttp/ws"
	"transfer-admin/internal/admin-service/core/ports"
	"transfer-admin/internal/admin-service/core/services"
	"transfer-admin/internal/config"
	"transfer-admin/internal/mylogger"

	"github.com/go-chi/cors"
	"github.com/shopspring/decimal"
)

const WaitTime = 10

// defaultZoneMultiplier applies until per-zone geometry is wired in.
var defaultZoneMultiplier = decimal.RequireFromString("1.2")

type Server struct {
	mux    *http.ServeMux
	cfg    *config.Config
	srv    *http.Server
	mylog  mylogger.Logger
	db     *db.DB
	mb     ports.IEventsBroker
	ctx    context.Context
	appCtx context.Context
	mu     sync.Mutex
	wg     sync.WaitGroup
}

func NewServer(ctx, appCtx context.Context, mylog mylogger.Logger, cfg *config.Config) *Server {
	s := &Server{
		ctx:    ctx,
		appCtx: appCtx,
		cfg:    cfg,
		mylog:  mylog,
		mux:    http.NewServeMux(),
	}

	return s
}

// Run initializes routes and starts listening. It returns when the server stops.
func (s *Server) Run() error {
	mylog := s.mylog.Action("server_started")

	database, err := db.Start(s.ctx, s.cfg.DB, mylog)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	s.db = database
	mylog.Info("Successful database connection")

	mb, err := bm.New(s.appCtx, *s.cfg.RabbitMq, s.mylog)
	if err != nil {
		return fmt.Errorf("failed to connect to rabbitmq: %w", err)
	}
	s.mb = mb
	mylog.Info("Successful message broker connection")

	s.Configure()

	corsWrapper := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	})

	s.mu.Lock()
	s.srv = &http.Server{
		Addr:    fmt.Sprintf(":%v", s.cfg.Srv.AdminServicePort),
		Handler: corsWrapper.Handler(s.mux),
	}
	s.mu.Unlock()

	mylog = mylog.WithGroup("details").With("port", s.cfg.Srv.AdminServicePort)

	mylog.Info("server is running")
	return s.startHTTPServer()
}

// Stop provides a programmatic shutdown. Accepts a context for timeout control.
func (s *Server) Stop(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.mylog.Info("Shutting down HTTP server...")

	s.wg.Wait()

	if s.srv != nil {
		shutdownCtx, cancel := context.WithTimeout(ctx, WaitTime*time.Second)
		defer cancel()

		if err := s.srv.Shutdown(shutdownCtx); err != nil {
			s.mylog.Error("Failed to shut down HTTP server gracefully", err)
			return fmt.Errorf("http server shutdown: %w", err)
		}
	}

	if s.mb != nil {
		if err := s.mb.Close(); err != nil {
			s.mylog.Error("Failed to close message broker", err)
		}
	}

	if s.db != nil {
		if err := s.db.Close(); err != nil {
			s.mylog.Error("Failed to close database", err)
			return fmt.Errorf("db close: %w", err)
		}
		s.mylog.Info("Database closed")
	}

	s.mylog.Info("HTTP server shut down gracefully")
	return nil
}

func (s *Server) startHTTPServer() error {
	errCh := make(chan error, 1)

	go func() {
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		} else {
			errCh <- nil
		}
	}()

	select {
	case <-s.ctx.Done():
		return nil
	case err := <-errCh:
		return err
	}
}

// Configure wires repositories, services and handlers and registers the routes.
func (s *Server) Configure() {
	// Repositories
	pricingRepo := db.NewPricingRepo(s.db.Pool())
	changeLogRepo := db.NewChangeLogRepo(s.db.Pool())
	activityRepo := db.NewActivityRepo(s.db.Pool())
	bookingsRepo := db.NewBookingsRepo(s.db.Pool())
	driversRepo := db.NewDriversRepo(s.db.Pool())

	// sidecars
	refresher := cache.New(*s.cfg.Cache, s.mylog)
	dispatcher := ws.NewDispatcher(s.mylog)

	// services
	pricingService := services.NewPricingService(
		s.mylog, pricingRepo, changeLogRepo,
		geo.NewEstimator(), geo.NewStaticZoneResolver(defaultZoneMultiplier),
		refresher, s.mb,
	)
	activityService := services.NewActivityService(s.mylog, activityRepo, dispatcher, s.mb)
	bookingsService := services.NewBookingsService(s.mylog, bookingsRepo, activityService)
	driversService := services.NewDriversService(s.mylog, driversRepo, activityService)

	// handlers
	pricingHandler := handle.NewPricingHandler(pricingService, s.mylog)
	bookingsHandler := handle.NewBookingsHandler(bookingsService, s.mylog)
	driversHandler := handle.NewDriversHandler(driversService, s.mylog)
	activityHandler := handle.NewActivityHandler(activityService, s.mylog)
	healthHandler := handle.NewHealthHandler(s.db, s.mb)

	authMiddleware := middleware.NewAuthMiddleware(s.cfg.App.JwtSecret)

	// Register routes
	s.mux.Handle("POST /admin/pricing/quote", authMiddleware.Wrap(pricingHandler.Quote(), "ADMIN"))
	s.mux.Handle("GET /admin/pricing", authMiddleware.Wrap(pricingHandler.Tables(), "ADMIN", "PARTNER"))
	s.mux.Handle("POST /admin/pricing/update", authMiddleware.Wrap(pricingHandler.Update(), "ADMIN"))
	s.mux.Handle("GET /admin/pricing/changes", authMiddleware.Wrap(pricingHandler.Changes(), "ADMIN"))

	s.mux.Handle("GET /admin/bookings", authMiddleware.Wrap(bookingsHandler.List(), "ADMIN", "SUPPORT"))
	s.mux.Handle("PUT /admin/bookings/{booking_id}/status", authMiddleware.Wrap(bookingsHandler.UpdateStatus(), "ADMIN", "SUPPORT"))

	s.mux.Handle("GET /admin/drivers", authMiddleware.Wrap(driversHandler.List(), "ADMIN", "SUPPORT"))
	s.mux.Handle("PUT /admin/drivers/{driver_id}/verification", authMiddleware.Wrap(driversHandler.SetVerification(), "ADMIN"))

	s.mux.Handle("GET /admin/activity", authMiddleware.Wrap(activityHandler.Recent(), "ADMIN", "SUPPORT"))

	// websocket routes
	s.mux.Handle("GET /admin/activity/ws", authMiddleware.Wrap(dispatcher.WsHandler(), "ADMIN", "SUPPORT"))

	s.mux.Handle("GET /health", healthHandler.Health())
}
