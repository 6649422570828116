package router

import (
	"time"

	"github.com/SistemasCRMC/credenciales/internal/config"
	"github.com/SistemasCRMC/credenciales/internal/handler"
	"github.com/SistemasCRMC/credenciales/internal/infra"
	"github.com/SistemasCRMC/credenciales/internal/middleware"
	"github.com/SistemasCRMC/credenciales/internal/repository"
	"github.com/SistemasCRMC/credenciales/internal/service"
	"github.com/SistemasCRMC/credenciales/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, fotos *infra.FotoStore, mailCB *infra.CircuitBreaker) *gin.Engine {
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
	usuarioRepo := repository.NewUsuarioRepository(db)
	credencialRepo := repository.NewCredencialRepository(db)
	bitacoraRepo := repository.NewBitacoraRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(usuarioRepo, cfg)

	// Worker dispatcher — injected into services that enqueue async jobs
	dispatcher := worker.NewDispatcher(rdb)

	credencialSvc := service.NewCredencialService(credencialRepo, bitacoraRepo, fotos, dispatcher, rdb, cfg)
	bitacoraSvc := service.NewBitacoraService(bitacoraRepo)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	usuariosH := handler.NewUsuariosHandler(authSvc)
	credencialesH := handler.NewCredencialesHandler(credencialSvc)
	bitacoraH := handler.NewBitacoraHandler(bitacoraSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb, mailCB))

	// Stored photos, QR codes and card art
	r.Static("/static", cfg.StoragePath)
	r.Static("/assets", cfg.AssetsPath)

	// Auth (public)
	auth := r.Group("/api/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/register", authH.Registro)
	}

	// Public validation — the printed QR points here, no auth required
	r.GET("/api/credentials/:id/validate", credencialesH.Validar)

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	api := r.Group("/api", jwtMW)
	{
		creds := api.Group("/credentials", middleware.RequireRole("usuario", "admin"))
		{
			creds.POST("", credencialesH.Crear)
			creds.POST("/import", credencialesH.Importar)
			creds.PUT("/:id", credencialesH.Actualizar)
			creds.GET("/search", credencialesH.Buscar)
			creds.GET("/:id", credencialesH.ObtenerPorID)
		}

		// Lifecycle state changes — admin only
		estado := api.Group("/credentials", middleware.RequireRole("admin"))
		{
			estado.POST("/:id/disable", credencialesH.Deshabilitar)
			estado.POST("/:id/enable", credencialesH.Habilitar)
		}

		api.GET("/bitacora", middleware.RequireRole("admin"), bitacoraH.Listar)

		usuarios := api.Group("/usuarios", middleware.RequireRole("admin"))
		{
			usuarios.GET("", usuariosH.Listar)
			usuarios.POST("/:id/reset-password", usuariosH.ResetPassword)
			usuarios.DELETE("/:id", usuariosH.Desactivar)
			usuarios.PATCH("/:id/reactivar", usuariosH.Reactivar)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
