package router

import (
	"time"

	"saunapos/internal/config"
	"saunapos/internal/handler"
	"saunapos/internal/middleware"
	"saunapos/internal/repository"
	"saunapos/internal/service"
	"saunapos/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, loc *time.Location) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	staffRepo := repository.NewStaffRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	feeRepo := repository.NewFeeRepository(db)
	rentalRepo := repository.NewRentalRepository(db)
	summaryRepo := repository.NewSummaryRepository(db)
	closingRepo := repository.NewClosingRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(staffRepo, cfg)
	settingsSvc := service.NewSettingsService(settingsRepo, loc)
	sessionSvc := service.NewSessionService(sessionRepo, feeRepo, rentalRepo, settingsSvc)
	rentalSvc := service.NewRentalService(rentalRepo, sessionRepo, settingsSvc)
	boardSvc := service.NewBoardService(sessionRepo, settingsSvc, rdb, cfg.LockerCount)

	// Worker dispatcher — injected into services that enqueue async jobs
	dispatcher := worker.NewDispatcher(rdb)

	closingSvc := service.NewClosingService(closingRepo, sessionRepo, feeRepo, rentalRepo, summaryRepo, settingsSvc, dispatcher)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	staffH := handler.NewStaffHandler(authSvc)
	sessionsH := handler.NewSessionsHandler(sessionSvc)
	rentalsH := handler.NewRentalsHandler(rentalSvc)
	boardH := handler.NewBoardHandler(boardSvc)
	closingH := handler.NewClosingHandler(closingSvc)
	settingsH := handler.NewSettingsHandler(settingsSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	v1 := r.Group("/v1", jwtMW)
	{
		// Roles: staff, manager — declared per-endpoint
		sessions := v1.Group("/sessions", middleware.RequireRole("staff", "manager"))
		{
			sessions.POST("", sessionsH.CheckIn)
			sessions.GET("", sessionsH.List)
			sessions.GET("/:id", sessionsH.Get)
			sessions.PUT("/:id/option", sessionsH.ChangeOption)
			sessions.POST("/:id/checkout", sessionsH.CheckOut)
			sessions.DELETE("/:id", sessionsH.Cancel)
			sessions.POST("/:id/rentals", rentalsH.Attach)
			sessions.GET("/:id/rentals", rentalsH.ListBySession)
		}

		v1.POST("/rentals/:id/settle", middleware.RequireRole("staff", "manager"), rentalsH.Settle)

		v1.GET("/board", middleware.RequireRole("staff", "manager"), boardH.Board)

		closing := v1.Group("/closing", middleware.RequireRole("manager"))
		{
			closing.POST("", closingH.CloseDay)
			closing.GET("/:date", closingH.GetClosing)
		}

		// Settings — all authenticated staff can read, only managers write
		v1.GET("/settings", middleware.RequireRole("staff", "manager"), settingsH.Get)
		v1.PUT("/settings", middleware.RequireRole("manager"), settingsH.Update)

		staff := v1.Group("/staff", middleware.RequireRole("manager"))
		{
			staff.POST("", staffH.Create)
			staff.GET("", staffH.List)
			staff.DELETE("/:id", staffH.Deactivate)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
