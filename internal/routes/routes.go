package routes

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/mobile-barber/internal/audit"
	"github.com/BruksfildServices01/mobile-barber/internal/auth"
	"github.com/BruksfildServices01/mobile-barber/internal/config"
	"github.com/BruksfildServices01/mobile-barber/internal/domain/booking"
	"github.com/BruksfildServices01/mobile-barber/internal/domain/customer"
	"github.com/BruksfildServices01/mobile-barber/internal/handlers"
	"github.com/BruksfildServices01/mobile-barber/internal/infra/cache"
	"github.com/BruksfildServices01/mobile-barber/internal/jobs"
	"github.com/BruksfildServices01/mobile-barber/internal/middleware"
	"github.com/BruksfildServices01/mobile-barber/internal/timezone"
	ucBooking "github.com/BruksfildServices01/mobile-barber/internal/usecase/booking"
	ucCustomer "github.com/BruksfildServices01/mobile-barber/internal/usecase/customer"
	ucLoyalty "github.com/BruksfildServices01/mobile-barber/internal/usecase/loyalty"
	ucReport "github.com/BruksfildServices01/mobile-barber/internal/usecase/report"
	"github.com/BruksfildServices01/mobile-barber/internal/validators"
)

// Infra is everything main opens before routes are wired.
// DB, Redis and Uploader are optional.
type Infra struct {
	DB        *gorm.DB
	Bookings  booking.Repository
	Customers customer.Repository
	Redis     *redis.Client
	Uploader  ucReport.Uploader
	Audit     *audit.Dispatcher
	Clock     timezone.Clock
	Log       *slog.Logger
}

// Runtime holds the pieces main has to start or stop.
type Runtime struct {
	Reconciler *jobs.LoyaltyReconciler
}

func RegisterRoutes(r *gin.Engine, in Infra, cfg *config.Config) *Runtime {

	// ======================================================
	// GLOBAL MIDDLEWARE
	// ======================================================
	r.Use(middleware.RequestID())
	r.Use(middleware.AccessLog(in.Log))
	r.Use(middleware.CORSMiddleware())

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	slotCache := cache.NewSlotCache(in.Redis, cfg.SlotCacheTTL, in.Log)
	limiter := middleware.NewRateLimiter(in.Redis, cfg.RateLimitPerMinute, time.Minute, in.Log)
	tokens := auth.NewTokenIssuer(cfg.JWTSecret, cfg.JWTTTL)
	authorizer := auth.NewRoleAuthorizer(in.Customers)

	var emailCheck ucCustomer.EmailCheck
	if cfg.EmailMXCheck {
		emailCheck = validators.IsEmailDomainValid
	}

	// ======================================================
	// USE CASES - LOYALTY
	// ======================================================
	recordCompletionUC := ucLoyalty.NewRecordCompletion()
	redeemUC := ucLoyalty.NewRedeemFreeCut(in.Bookings, in.Audit)
	progressUC := ucLoyalty.NewGetProgress(in.Bookings, in.Log)
	ensureAccountUC := ucLoyalty.NewEnsureAccount(in.Bookings)

	// ======================================================
	// USE CASES - BOOKINGS
	// ======================================================
	createBookingUC := ucBooking.NewCreateBooking(in.Bookings, slotCache, in.Audit, in.Clock, in.Log)
	transitionUC := ucBooking.NewTransitionBooking(in.Bookings, slotCache, recordCompletionUC, in.Audit, in.Clock, in.Log)
	cancelBookingUC := ucBooking.NewCancelBooking(in.Bookings, slotCache, in.Audit, in.Clock)
	listCustomerBookingsUC := ucBooking.NewListCustomerBookings(in.Bookings, in.Clock, in.Log)
	listAllBookingsUC := ucBooking.NewListAllBookings(in.Bookings, in.Log)
	availabilityUC := ucBooking.NewGetAvailability(in.Bookings, slotCache, in.Clock, in.Log)

	// ======================================================
	// USE CASES - CUSTOMERS / REPORTS
	// ======================================================
	signUpUC := ucCustomer.NewSignUp(in.Customers, ensureAccountUC, cfg.IsAdminEmail, emailCheck, in.Audit)
	signInUC := ucCustomer.NewSignIn(in.Customers, ensureAccountUC, cfg.IsAdminEmail)
	profileUC := ucCustomer.NewGetProfile(in.Customers, in.Bookings, in.Log)
	updateProfileUC := ucCustomer.NewUpdateProfile(in.Customers, ensureAccountUC)
	listCustomersUC := ucCustomer.NewListCustomers(in.Customers, in.Bookings, in.Log)

	dashboardUC := ucReport.NewGetDashboard(in.Bookings, in.Customers, in.Clock, in.Log)
	exportUC := ucReport.NewExportBookings(in.Bookings, in.Uploader, in.Audit, in.Clock)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(signUpUC, signInUC, tokens)
	meHandler := handlers.NewMeHandler(profileUC, updateProfileUC, progressUC)
	bookingHandler := handlers.NewBookingHandler(createBookingUC, cancelBookingUC, listCustomerBookingsUC)
	publicHandler := handlers.NewPublicHandler(availabilityUC)
	adminHandler := handlers.NewAdminHandler(handlers.AdminDeps{
		ListBookings:     listAllBookingsUC,
		Transition:       transitionUC,
		CustomerBookings: listCustomerBookingsUC,
		ListCustomers:    listCustomersUC,
		Progress:         progressUC,
		Redeem:           redeemUC,
		Dashboard:        dashboardUC,
		Export:           exportUC,
	})

	// ======================================================
	// API (JSON)
	// ======================================================
	r.GET("/health", publicHandler.Health)

	api := r.Group("/api")
	{
		// ------------------------------
		// PUBLIC
		// ------------------------------
		public := api.Group("/public")
		{
			public.GET("/locations", publicHandler.Locations)
			public.GET("/availability", publicHandler.Availability)
		}

		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/signup", limiter.Limit("auth"), authHandler.SignUp)
		api.POST("/auth/login", limiter.Limit("auth"), authHandler.Login)

		// ------------------------------
		// CUSTOMER
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(tokens, authorizer, in.Log))
		{
			secured.GET("/me", meHandler.GetMe)
			secured.PATCH("/me", meHandler.UpdateMe)
			secured.GET("/me/loyalty", meHandler.Loyalty)

			secured.POST("/me/bookings", limiter.Limit("bookings"), bookingHandler.Create)
			secured.GET("/me/bookings", bookingHandler.List)
			secured.PATCH("/me/bookings/:id/cancel", bookingHandler.Cancel)
		}

		// ------------------------------
		// ADMIN
		// ------------------------------
		admin := api.Group("/admin")
		admin.Use(middleware.AuthMiddleware(tokens, authorizer, in.Log), middleware.RequireAdmin())
		{
			admin.GET("/bookings", adminHandler.ListBookings)
			admin.PATCH("/bookings/:id/status", adminHandler.UpdateStatus)

			admin.GET("/customers", adminHandler.ListCustomers)
			admin.GET("/customers/:id/bookings", adminHandler.CustomerBookings)
			admin.GET("/customers/:id/loyalty", adminHandler.CustomerLoyalty)
			admin.POST("/customers/:id/loyalty/redeem", adminHandler.RedeemFreeCut)

			admin.GET("/dashboard", adminHandler.Dashboard)
			admin.POST("/reports/bookings", adminHandler.ExportBookings)

			if in.DB != nil {
				admin.GET("/audit-logs", handlers.NewAuditLogsHandler(in.DB).List)
			}
		}
	}

	return &Runtime{
		Reconciler: jobs.NewLoyaltyReconciler(in.Bookings, recordCompletionUC, in.Log),
	}
}
