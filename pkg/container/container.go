package container

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"library-catalog/internal/config"
	infraCache "library-catalog/internal/infrastructure/cache"
	"library-catalog/internal/infrastructure/database"
	"library-catalog/pkg/cache"

	bookRepo "library-catalog/internal/domains/book/repository"
	bookInstanceHandler "library-catalog/internal/domains/bookinstance/handler"
	bookInstanceRepo "library-catalog/internal/domains/bookinstance/repository"
	bookInstanceService "library-catalog/internal/domains/bookinstance/service"
	genreHandler "library-catalog/internal/domains/genre/handler"
	genreRepo "library-catalog/internal/domains/genre/repository"
	genreService "library-catalog/internal/domains/genre/service"
)

// ========================================
// CONTAINER STRUCT
// ========================================

// Container chứa TẤT CẢ dependencies của application
// Pattern: Service Locator + Dependency Injection
type Container struct {
	// ========================================
	// INFRASTRUCTURE LAYER
	// ========================================
	Config *config.Config
	DB     *database.PostgresDB
	Cache  cache.Cache // nil khi Redis tắt hoặc không kết nối được

	// ========================================
	// REPOSITORY LAYER
	// ========================================
	BookRepo         bookRepo.RepositoryInterface
	BookInstanceRepo bookInstanceRepo.RepositoryInterface
	GenreRepo        genreRepo.RepositoryInterface

	// ========================================
	// SERVICE LAYER
	// ========================================
	BookInstanceService bookInstanceService.ServiceInterface
	GenreService        genreService.ServiceInterface

	// ========================================
	// HANDLER LAYER
	// ========================================
	BookInstanceHandler *bookInstanceHandler.BookInstanceHandler
	GenreHandler        *genreHandler.GenreHandler
}

// ========================================
// CONSTRUCTOR: BUILD CONTAINER
// ========================================

// NewContainer tạo và initialize toàn bộ dependency graph
//
// Thứ tự initialization:
// 1. Config
// 2. Infrastructure (DB, Cache)
// 3. Repositories
// 4. Services
// 5. Handlers
func NewContainer() (*Container, error) {
	log.Info().Msg("Initializing DI container")

	c := &Container{}

	// ========================================
	// STEP 1: LOAD CONFIGURATION
	// ========================================
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg
	log.Info().Str("environment", cfg.App.Environment).Msg("Config loaded")

	// ========================================
	// STEP 2: INITIALIZE DATABASE
	// ========================================
	db := database.NewPostgresDB(&cfg.Database)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.HealthCheck(ctx); err != nil {
		return nil, fmt.Errorf("database health check failed: %w", err)
	}
	c.DB = db

	// ========================================
	// STEP 3: INITIALIZE CACHE
	// ========================================
	// Redis failure không critical - pages fall back to the database
	c.Cache = connectCache(ctx, cfg.Redis)

	// ========================================
	// STEP 4-6: REPOSITORIES, SERVICES, HANDLERS
	// ========================================
	c.initRepositories()
	c.initServices()
	c.initHandlers()

	log.Info().Bool("cache_enabled", c.Cache != nil).Msg("DI container initialized")
	return c, nil
}

func connectCache(ctx context.Context, cfg config.RedisConfig) cache.Cache {
	if !cfg.Enabled {
		log.Info().Msg("Redis disabled, caching off")
		return nil
	}

	redisCache := infraCache.NewRedisCache(cfg.Host, cfg.Password, cfg.DB)
	rc, ok := redisCache.(*infraCache.RedisCache)
	if !ok {
		return redisCache
	}

	if err := rc.Connect(ctx); err != nil {
		log.Warn().Err(err).Msg("Redis connection failed (non-critical), caching off")
		_ = rc.Close()
		return nil
	}
	return redisCache
}

// ========================================
// PRIVATE INITIALIZATION METHODS
// ========================================

func (c *Container) initRepositories() {
	pool := c.DB.Pool

	c.BookRepo = bookRepo.NewPostgresRepository(pool)
	c.BookInstanceRepo = bookInstanceRepo.NewPostgresRepository(pool)
	c.GenreRepo = genreRepo.NewPostgresRepository(pool)
}

func (c *Container) initServices() {
	c.BookInstanceService = bookInstanceService.NewBookInstanceService(
		c.BookInstanceRepo,
		c.BookRepo, // Cross-domain: book options for the form
		c.Cache,
		c.Config.Cache.BookOptionsTTL,
	)
	c.GenreService = genreService.NewGenreService(
		c.GenreRepo,
		c.BookRepo, // Cross-domain: books per genre
		c.Cache,
		c.Config.Cache.TTL,
	)
}

func (c *Container) initHandlers() {
	c.BookInstanceHandler = bookInstanceHandler.NewBookInstanceHandler(c.BookInstanceService)
	c.GenreHandler = genreHandler.NewGenreHandler(c.GenreService)
}

// Cleanup dọn dẹp resources khi shutdown
func (c *Container) Cleanup() {
	log.Info().Msg("Cleaning up container resources")

	if c.DB != nil {
		_ = c.DB.Close()
	}

	if rc, ok := c.Cache.(*infraCache.RedisCache); ok {
		if err := rc.Close(); err != nil {
			log.Warn().Err(err).Msg("Failed to close Redis")
		} else {
			log.Info().Msg("Redis connections closed")
		}
	}
}
