package routes

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/northlight-studio/studio-scheduler/internal/audit"
	"github.com/northlight-studio/studio-scheduler/internal/cache"
	"github.com/northlight-studio/studio-scheduler/internal/config"
	"github.com/northlight-studio/studio-scheduler/internal/contract"
	"github.com/northlight-studio/studio-scheduler/internal/handlers"
	infraRepo "github.com/northlight-studio/studio-scheduler/internal/infra/repository"
	"github.com/northlight-studio/studio-scheduler/internal/middleware"
	"github.com/northlight-studio/studio-scheduler/internal/notification"
	"github.com/northlight-studio/studio-scheduler/internal/payment"
	"github.com/northlight-studio/studio-scheduler/internal/storage"
	ucBooking "github.com/northlight-studio/studio-scheduler/internal/usecase/booking"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, log *zap.Logger) {

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	bookingRepo := infraRepo.NewBookingGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger, log)

	// Optional collaborators. Each constructor returns a nil pointer when
	// unconfigured; assign to the interface only when non-nil so the
	// usecases see a nil interface, not a typed nil.
	var slotCache ucBooking.SlotCache
	if ac := cache.NewAvailabilityCache(cache.NewRedisClient(cfg, log), log); ac != nil {
		slotCache = ac
	}

	var sender notification.EmailSender
	if sg := notification.NewSendGridSender(cfg); sg != nil {
		sender = sg
	}
	notifier := notification.NewService(sender, log)

	var deposits payment.DepositCollector
	if sc := payment.NewStripeCollector(cfg); sc != nil {
		deposits = sc
	}

	var contracts contract.SignatureService
	if ds := contract.NewDocuSignService(cfg); ds != nil {
		contracts = ds
	}

	var media storage.StorageService
	if cs, err := storage.NewCloudinaryStorage(cfg); err != nil {
		log.Warn("cloudinary init failed, gallery uploads disabled", zap.Error(err))
	} else if cs != nil {
		media = cs
	}

	// ======================================================
	// USE CASES - BOOKINGS
	// ======================================================
	availabilityUC := ucBooking.NewGetAvailability(bookingRepo, slotCache)

	createBookingUC := ucBooking.NewCreateBooking(
		bookingRepo,
		auditDispatcher,
		slotCache,
		notifier,
		deposits,
		contracts,
		cfg.DepositAmountCents,
		log,
	)

	confirmBookingUC := ucBooking.NewConfirmBooking(bookingRepo, auditDispatcher, slotCache, notifier)
	cancelBookingUC := ucBooking.NewCancelBooking(bookingRepo, auditDispatcher, slotCache, notifier)
	completeBookingUC := ucBooking.NewCompleteBooking(bookingRepo, auditDispatcher, slotCache)

	listBookingsByDateUC := ucBooking.NewListBookingsByDate(bookingRepo)
	listBookingsByMonthUC := ucBooking.NewListBookingsByMonth(bookingRepo)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	meHandler := handlers.NewMeHandler(db)
	studioHandler := handlers.NewStudioHandler(db)

	serviceHandler := handlers.NewServiceHandler(db)
	clientHandler := handlers.NewClientHandler(db)
	workingHoursHandler := handlers.NewWorkingHoursHandler(db)
	galleryHandler := handlers.NewGalleryHandler(db, media)

	bookingHandler := handlers.NewBookingHandler(
		db,
		createBookingUC,
		confirmBookingUC,
		cancelBookingUC,
		completeBookingUC,
		listBookingsByDateUC,
		listBookingsByMonthUC,
	)

	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	publicHandler := handlers.NewPublicHandler(db, availabilityUC, createBookingUC, media)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// PUBLIC API (widget + site)
		// ------------------------------
		publicAPI := api.Group("/public")
		{
			publicAPI.GET("/:slug/services", publicHandler.ListServices)
			publicAPI.GET("/:slug/availability", publicHandler.Availability)
			publicAPI.POST("/:slug/bookings", publicHandler.CreateBooking)
			publicAPI.GET("/:slug/gallery", publicHandler.Gallery)
		}

		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// PRIVATE API
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", meHandler.GetMe)

			secured.GET("/me/studio", studioHandler.GetMeStudio)
			secured.PATCH("/me/studio", studioHandler.UpdateMeStudio)

			secured.GET("/me/clients", clientHandler.List)
			secured.POST("/me/clients", clientHandler.Create)
			secured.PATCH("/me/clients/:id", clientHandler.Update)

			secured.GET("/me/services", serviceHandler.List)
			secured.POST("/me/services", serviceHandler.Create)
			secured.PATCH("/me/services/:id", serviceHandler.Update)

			secured.GET("/me/working-hours", workingHoursHandler.Get)
			secured.PUT("/me/working-hours", workingHoursHandler.Update)

			// ------------------------------
			// BOOKINGS
			// ------------------------------
			secured.POST("/me/bookings", bookingHandler.Create)
			secured.GET("/me/bookings", bookingHandler.ListByDate)
			secured.GET("/me/bookings/month", bookingHandler.ListByMonth)
			secured.PATCH("/me/bookings/:id/confirm", bookingHandler.Confirm)
			secured.PATCH("/me/bookings/:id/cancel", bookingHandler.Cancel)
			secured.PATCH("/me/bookings/:id/complete", bookingHandler.Complete)

			// ------------------------------
			// GALLERY
			// ------------------------------
			secured.GET("/me/gallery", galleryHandler.List)
			secured.POST("/me/gallery", galleryHandler.Create)
			secured.PATCH("/me/gallery/:id", galleryHandler.Update)
			secured.POST("/me/gallery/:id/cover", galleryHandler.UploadCover)

			secured.GET("/me/audit-logs", auditLogsHandler.List)
		}
	}
}
