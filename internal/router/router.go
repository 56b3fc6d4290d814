package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/noah-isme/it-institute-cms/api/swagger"
	"github.com/noah-isme/it-institute-cms/internal/handler"
	"github.com/noah-isme/it-institute-cms/internal/middleware"
	"github.com/noah-isme/it-institute-cms/internal/service"
	"github.com/noah-isme/it-institute-cms/pkg/config"
	"github.com/noah-isme/it-institute-cms/pkg/logger"
	corsmiddleware "github.com/noah-isme/it-institute-cms/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/it-institute-cms/pkg/middleware/requestid"
)

// Handlers groups every HTTP handler mounted by the router.
type Handlers struct {
	Auth         *handler.AuthHandler
	Subjects     *handler.SubjectHandler
	Features     *handler.FeatureHandler
	Specialities *handler.SpecialityHandler
	Achievements *handler.AchievementHandler
	Directions   *handler.DirectionHandler
	Disciplines  *handler.DisciplineHandler
	Teachers     *handler.TeacherHandler
	Upload       *handler.UploadHandler
	Catalog      *handler.CatalogHandler
	Health       *handler.HealthHandler
	Admin        *handler.AdminHandler
}

// Dependencies carries the shared collaborators used by middleware.
type Dependencies struct {
	Config  *config.Config
	Logger  *zap.Logger
	Tokens  middleware.TokenVerifier
	Metrics *service.MetricsService
	Cache   *service.CacheService
	Audit   *service.AuditService

	// CSRFKey must be 32 bytes.
	CSRFKey []byte

	// MediaDir is served under the upload prefix when set.
	MediaDir string
}

// New builds the gin engine with every route registered.
func New(deps Dependencies, h Handlers) *gin.Engine {
	cfg := deps.Config
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(deps.Logger))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(deps.Metrics))

	loginLimit := middleware.RateLimit(cfg.RateLimit.LoginBurst, cfg.RateLimit.LoginInterval)
	sessionCookie := cfg.Admin.CookieName
	// One token cookie scoped to /admin covers the panel and cookie-authenticated CMS writes.
	csrfProtect := middleware.CSRF(deps.CSRFKey, cfg.Admin.CookieSecure, "/admin", cfg.CORS.AllowedOrigins)

	api := r.Group("/api")
	{
		api.GET("/health", h.Health.Health)

		authGroup := api.Group("/auth")
		authGroup.POST("/login", loginLimit, h.Auth.Login)
		authGroup.POST("/hash-password", h.Auth.HashPassword)
		authGroup.GET("/me", middleware.JWT(deps.Tokens, sessionCookie), h.Auth.Me)
	}

	r.GET("/metrics", h.Health.Prometheus)

	r.GET("/achievements", h.Catalog.Achievements)
	r.GET("/features", h.Catalog.Features)
	r.GET("/speciality", h.Catalog.Specialities)
	r.GET("/subjects", h.Catalog.Subjects)
	r.GET("/teachers", h.Catalog.Teachers)
	r.GET("/directions-with-disciplines", h.Catalog.DirectionsWithDisciplines)
	r.GET("/directions/:id/plan", h.Catalog.StudyPlan)

	cms := r.Group("/admin/cms")
	cms.Use(
		middleware.JWT(deps.Tokens, sessionCookie),
		middleware.CSRFForSession(csrfProtect),
		middleware.Audit(deps.Audit),
		middleware.InvalidateCache(deps.Cache, service.PublicCachePattern),
	)
	{
		registerCRUD(cms, "/subject", h.Subjects.Create, h.Subjects.Update, h.Subjects.Delete)
		registerCRUD(cms, "/feature", h.Features.Create, h.Features.Update, h.Features.Delete)
		registerCRUD(cms, "/speciality", h.Specialities.Create, h.Specialities.Update, h.Specialities.Delete)
		registerCRUD(cms, "/achievements", h.Achievements.Create, h.Achievements.Update, h.Achievements.Delete)
		registerCRUD(cms, "/directions", h.Directions.Create, h.Directions.Update, h.Directions.Delete)
		registerCRUD(cms, "/disciplines", h.Disciplines.Create, h.Disciplines.Update, h.Disciplines.Delete)
		registerCRUD(cms, "/teacher", h.Teachers.Create, h.Teachers.Update, h.Teachers.Delete)
		cms.POST("/upload", h.Upload.Upload)
	}

	panel := r.Group("/admin/panel")
	{
		panel.POST("/login", loginLimit, h.Admin.Login)
		panel.POST("/logout", h.Admin.Logout)

		protected := panel.Group("")
		protected.Use(
			middleware.AdminSession(deps.Tokens, sessionCookie),
			csrfProtect,
			middleware.Audit(deps.Audit),
			middleware.InvalidateCache(deps.Cache, service.PublicCachePattern),
		)
		protected.GET("/session", h.Admin.Session)
		protected.GET("/csrf", h.Admin.CSRFToken)
		protected.GET("/models", h.Admin.Models)
		protected.GET("/models/:model", h.Admin.ModelRows)
		protected.POST("/users", h.Admin.CreateUser)
		protected.PUT("/users/:id", h.Admin.UpdateUser)
		protected.DELETE("/users/:id", h.Admin.DeleteUser)
		protected.POST("/teachers", h.Admin.CreateTeacher)
		protected.PUT("/teachers/:id", h.Admin.UpdateTeacher)
		protected.GET("/audit", h.Admin.AuditLog)
	}

	if deps.MediaDir != "" {
		r.StaticFS(cfg.Uploads.PublicPrefix, gin.Dir(deps.MediaDir, false))
	}

	if !cfg.IsProduction() {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}

func registerCRUD(group *gin.RouterGroup, path string, create, update, remove gin.HandlerFunc) {
	group.POST(path, create)
	group.PUT(path+"/:id", update)
	group.DELETE(path+"/:id", remove)
}
