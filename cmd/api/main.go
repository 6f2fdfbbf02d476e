package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/mobile-barber/internal/audit"
	"github.com/BruksfildServices01/mobile-barber/internal/config"
	dbpkg "github.com/BruksfildServices01/mobile-barber/internal/db"
	"github.com/BruksfildServices01/mobile-barber/internal/domain/booking"
	"github.com/BruksfildServices01/mobile-barber/internal/domain/customer"
	"github.com/BruksfildServices01/mobile-barber/internal/events"
	"github.com/BruksfildServices01/mobile-barber/internal/infra/cache"
	"github.com/BruksfildServices01/mobile-barber/internal/infra/objectstore"
	infraRepo "github.com/BruksfildServices01/mobile-barber/internal/infra/repository"
	"github.com/BruksfildServices01/mobile-barber/internal/infra/repository/memstore"
	"github.com/BruksfildServices01/mobile-barber/internal/logging"
	"github.com/BruksfildServices01/mobile-barber/internal/routes"
	"github.com/BruksfildServices01/mobile-barber/internal/timezone"
	ucReport "github.com/BruksfildServices01/mobile-barber/internal/usecase/report"
)

const memoryDSN = "memory://"

func init() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()
}

func main() {
	cfg := config.Load()
	log := logging.NewLogger("mobile-barber", cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// ------------------------------
	// Storage
	// ------------------------------
	var (
		db        *gorm.DB
		bookings  booking.Repository
		customers customer.Repository
	)
	if strings.HasPrefix(cfg.DBUrl, memoryDSN) {
		log.Warn("using in-memory storage, data is lost on restart")
		store := memstore.New()
		bookings, customers = store, store
	} else {
		var err error
		db, err = dbpkg.NewDB(cfg)
		if err != nil {
			log.Error("database unavailable", "error", err)
			os.Exit(1)
		}
		bookings = infraRepo.NewBookingGormRepository(db)
		customers = infraRepo.NewCustomerGormRepository(db)
	}

	// ------------------------------
	// Optional infra
	// ------------------------------
	rdb := cache.NewRedisClient(cfg)
	if rdb == nil {
		log.Info("redis disabled, slot cache and rate limiting off")
	} else {
		defer rdb.Close()
	}

	var uploader ucReport.Uploader
	s3, err := objectstore.NewS3Uploader(cfg)
	if err != nil {
		log.Error("report export misconfigured", "error", err)
		os.Exit(1)
	}
	if s3 != nil {
		uploader = s3
	}

	var sinks []audit.Sink
	if db != nil {
		sinks = append(sinks, audit.New(db))
	}
	if cfg.RabbitMQURL != "" {
		pub := events.NewAMQPPublisher(cfg.RabbitMQURL, events.DefaultQueue)
		defer pub.Close()
		sinks = append(sinks, pub)
	}
	dispatcher := audit.NewDispatcher(log, sinks...)

	// ------------------------------
	// HTTP
	// ------------------------------
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	rt := routes.RegisterRoutes(r, routes.Infra{
		DB:        db,
		Bookings:  bookings,
		Customers: customers,
		Redis:     rdb,
		Uploader:  uploader,
		Audit:     dispatcher,
		Clock:     timezone.SystemClock(cfg.Timezone),
		Log:       log,
	}, cfg)

	scheduler, err := rt.Reconciler.Start(cfg.LoyaltyReconcileCron)
	if err != nil {
		log.Error("invalid loyalty reconcile schedule", "schedule", cfg.LoyaltyReconcileCron, "error", err)
		os.Exit(1)
	}

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("server running", "addr", cfg.Addr(), "timezone", cfg.Timezone)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Warn("http shutdown", "error", err)
	}
	<-scheduler.Stop().Done()
	if err := dispatcher.Close(shutdownCtx); err != nil {
		log.Warn("audit drain incomplete", "error", err)
	}
}
