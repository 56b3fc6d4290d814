package main

import (
	"context"
	"crypto/sha256"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/noah-isme/it-institute-cms/internal/auth"
	"github.com/noah-isme/it-institute-cms/internal/handler"
	"github.com/noah-isme/it-institute-cms/internal/repository"
	"github.com/noah-isme/it-institute-cms/internal/router"
	"github.com/noah-isme/it-institute-cms/internal/service"
	"github.com/noah-isme/it-institute-cms/pkg/cache"
	"github.com/noah-isme/it-institute-cms/pkg/config"
	"github.com/noah-isme/it-institute-cms/pkg/database"
	"github.com/noah-isme/it-institute-cms/pkg/storage"
)

type repositories struct {
	users        *repository.UserRepository
	subjects     *repository.SubjectRepository
	features     *repository.FeatureRepository
	specialities *repository.SpecialityRepository
	achievements *repository.AchievementRepository
	directions   *repository.DirectionRepository
	disciplines  *repository.DisciplineRepository
	teachers     *repository.TeacherRepository
	audit        *repository.AuditRepository
}

type services struct {
	auth         *service.AuthService
	users        *service.UserService
	subjects     *service.SubjectService
	features     *service.FeatureService
	specialities *service.SpecialityService
	achievements *service.AchievementService
	directions   *service.DirectionService
	disciplines  *service.DisciplineService
	teachers     *service.TeacherService
	uploads      *service.UploadService
	catalog      *service.CatalogService
	exports      *service.ExportService
	admin        *service.AdminService
	health       *service.HealthService
	metrics      *service.MetricsService
	cache        *service.CacheService
	audit        *service.AuditService
}

// app owns the process-wide collaborators shared by the commands.
type app struct {
	cfg      *config.Config
	logger   *zap.Logger
	db       *sqlx.DB
	redis    *redis.Client
	tokens   *auth.TokenManager
	repos    repositories
	svc      services
	janitor  *service.MediaJanitor
	mediaDir string
}

// newApp connects to Postgres and builds every repository and service.
// Redis and the upload backend are only wired when withServer is set.
func newApp(ctx context.Context, cfg *config.Config, logger *zap.Logger, withServer bool) (*app, error) {
	tokens, err := auth.NewTokenManager(cfg.JWT.Secret, cfg.JWT.Expiration)
	if err != nil && withServer {
		return nil, fmt.Errorf("jwt: %w", err)
	}

	db, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	a := &app{cfg: cfg, logger: logger, db: db, tokens: tokens}
	a.repos = repositories{
		users:        repository.NewUserRepository(db),
		subjects:     repository.NewSubjectRepository(db),
		features:     repository.NewFeatureRepository(db),
		specialities: repository.NewSpecialityRepository(db),
		achievements: repository.NewAchievementRepository(db),
		directions:   repository.NewDirectionRepository(db),
		disciplines:  repository.NewDisciplineRepository(db),
		teachers:     repository.NewTeacherRepository(db),
		audit:        repository.NewAuditRepository(db),
	}

	var backend storage.Backend
	if withServer {
		if cfg.Cache.Enabled {
			client, err := cache.NewRedis(ctx, cfg.Redis)
			if err != nil {
				logger.Warn("redis unavailable, catalog cache disabled", zap.Error(err))
			} else {
				a.redis = client
			}
		}
		backend, err = a.uploadBackend()
		if err != nil {
			a.close()
			return nil, err
		}
	}

	a.buildServices(backend)
	if a.janitor != nil {
		a.janitor.Start(ctx)
	}
	return a, nil
}

func (a *app) buildServices(backend storage.Backend) {
	validate := validator.New()
	tx := database.NewTransactor(a.db)
	logger := a.logger
	r := a.repos

	metrics := service.NewMetricsService()
	metrics.Registry().MustRegister(collectors.NewDBStatsCollector(a.db.DB, "cms"))

	var cacheRepo service.CacheRepository
	if a.redis != nil {
		cacheRepo = repository.NewCacheRepository(a.redis, logger)
	}
	cacheSvc := service.NewCacheService(cacheRepo, metrics, a.cfg.Cache.TTL, logger, a.cfg.Cache.Enabled && a.redis != nil)

	s := services{
		metrics:      metrics,
		cache:        cacheSvc,
		users:        service.NewUserService(r.users, tx, validate, logger),
		subjects:     service.NewSubjectService(r.subjects, tx, validate, logger),
		features:     service.NewFeatureService(r.features, tx, validate, logger),
		specialities: service.NewSpecialityService(r.specialities, tx, validate, logger),
		achievements: service.NewAchievementService(r.achievements, tx, validate, logger),
		directions:   service.NewDirectionService(r.directions, tx, validate, logger),
		disciplines:  service.NewDisciplineService(r.disciplines, r.directions, tx, validate, logger),
		teachers:     service.NewTeacherService(r.teachers, tx, validate, logger),
		exports:      service.NewExportService(r.directions, r.disciplines, nil, nil, logger),
		health:       service.NewHealthService(a.db, metrics, logger),
		audit:        service.NewAuditService(r.audit, logger),
	}
	if a.tokens != nil {
		s.auth = service.NewAuthService(r.users, a.tokens, validate, logger, service.AuthConfig{SessionTTL: a.cfg.Admin.SessionTTL})
	}
	s.catalog = service.NewCatalogService(service.CatalogRepositories{
		Achievements: r.achievements,
		Features:     r.features,
		Specialities: r.specialities,
		Subjects:     r.subjects,
		Teachers:     r.teachers,
		Directions:   r.directions,
		Disciplines:  r.disciplines,
	}, cacheSvc, logger)
	if backend != nil {
		s.uploads = service.NewUploadService(backend, a.cfg.Uploads.MaxFileSizeBytes, logger)
		a.janitor = service.NewMediaJanitor(backend, logger)
		s.uploads.UseJanitor(a.janitor)
		s.admin = service.NewAdminService(service.AdminSources{
			Users:        r.users,
			Specialities: r.specialities,
			Directions:   r.directions,
			Disciplines:  r.disciplines,
			Teachers:     r.teachers,
			Features:     r.features,
			Subjects:     r.subjects,
			Achievements: r.achievements,
		}, s.teachers, s.uploads, logger)
	}
	a.svc = s
}

func (a *app) uploadBackend() (storage.Backend, error) {
	switch a.cfg.Uploads.Backend {
	case config.UploadBackendSupabase:
		return storage.NewSupabaseStorage(a.cfg.Supabase.URL, a.cfg.Supabase.Key, a.cfg.Supabase.Bucket)
	case config.UploadBackendLocal, "":
		local, err := storage.NewLocalStorage(a.cfg.Uploads.Dir, a.cfg.Uploads.PublicPrefix)
		if err != nil {
			return nil, err
		}
		a.mediaDir = local.Dir()
		return local, nil
	default:
		return nil, fmt.Errorf("unknown upload backend %q", a.cfg.Uploads.Backend)
	}
}

// engine builds the HTTP engine over the wired services.
func (a *app) engine() *gin.Engine {
	s := a.svc
	handlers := router.Handlers{
		Auth:         handler.NewAuthHandler(s.auth),
		Subjects:     handler.NewSubjectHandler(s.subjects),
		Features:     handler.NewFeatureHandler(s.features),
		Specialities: handler.NewSpecialityHandler(s.specialities),
		Achievements: handler.NewAchievementHandler(s.achievements),
		Directions:   handler.NewDirectionHandler(s.directions),
		Disciplines:  handler.NewDisciplineHandler(s.disciplines),
		Teachers:     handler.NewTeacherHandler(s.teachers),
		Upload:       handler.NewUploadHandler(s.uploads, s.metrics),
		Catalog:      handler.NewCatalogHandler(s.catalog, s.exports),
		Health:       handler.NewHealthHandler(s.health, s.metrics.Handler()),
		Admin: handler.NewAdminHandler(s.auth, s.admin, s.users, s.audit,
			handler.SessionCookie{Name: a.cfg.Admin.CookieName, Secure: a.cfg.Admin.CookieSecure},
			a.cfg.Uploads.MaxFileSizeBytes),
	}
	return router.New(router.Dependencies{
		Config:   a.cfg,
		Logger:   a.logger,
		Tokens:   a.tokens,
		Metrics:  s.metrics,
		Cache:    s.cache,
		Audit:    s.audit,
		CSRFKey:  csrfKey(a.cfg),
		MediaDir: a.mediaDir,
	}, handlers)
}

func (a *app) close() {
	if a.janitor != nil {
		a.janitor.Stop()
	}
	if a.redis != nil {
		_ = a.redis.Close()
	}
	if a.db != nil {
		_ = a.db.Close()
	}
}

// csrfKey returns the 32-byte key gorilla/csrf expects. CSRF_KEY is used as is
// when it already has that length; anything else, including the signing
// secret fallback, is hashed down to 32 bytes.
func csrfKey(cfg *config.Config) []byte {
	raw := cfg.Admin.CSRFKey
	if len(raw) == 32 {
		return []byte(raw)
	}
	if raw == "" {
		raw = "csrf:" + cfg.JWT.Secret
	}
	sum := sha256.Sum256([]byte(raw))
	return sum[:]
}
