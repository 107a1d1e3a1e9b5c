package container

import (
	"context"
	"fmt"
	"time"

	"bestiespace-backend/internal/config"
	adminhandler "bestiespace-backend/internal/domains/admin/handler"
	adminrepo "bestiespace-backend/internal/domains/admin/repository"
	adminservice "bestiespace-backend/internal/domains/admin/service"
	bestiehandler "bestiespace-backend/internal/domains/bestie/handler"
	bestierepo "bestiespace-backend/internal/domains/bestie/repository"
	bestieservice "bestiespace-backend/internal/domains/bestie/service"
	uploadhandler "bestiespace-backend/internal/domains/upload/handler"
	uploadservice "bestiespace-backend/internal/domains/upload/service"
	"bestiespace-backend/internal/infrastructure/cache"
	"bestiespace-backend/internal/infrastructure/database"
	"bestiespace-backend/internal/infrastructure/storage"
	"bestiespace-backend/pkg/jwt"
	"bestiespace-backend/pkg/logger"
)

// Container wires infrastructure, repositories, services and handlers in one
// place. main builds one and hands the handlers to the router.
type Container struct {
	Config     *config.Config
	DB         *database.PostgresDB
	Cache      *cache.RedisCache
	Storage    *storage.MinIOStorage
	JWTManager *jwt.Manager

	AdminHandler  *adminhandler.AdminHandler
	BestieHandler *bestiehandler.BestieHandler
	PublicHandler *bestiehandler.PublicHandler
	UploadHandler *uploadhandler.UploadHandler
}

func New(cfg *config.Config) (*Container, error) {
	c := &Container{Config: cfg}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	c.DB = database.NewPostgresDB(cfg.Database)
	if err := c.DB.Connect(ctx); err != nil {
		return nil, fmt.Errorf("database: %w", err)
	}

	c.Cache = cache.NewRedisCache(cfg.Redis)
	if err := c.Cache.Ping(ctx); err != nil {
		// The cache is an accelerator, not a dependency.
		logger.Warn("redis unavailable at startup", map[string]interface{}{"error": err.Error()})
	}

	var err error
	c.Storage, err = storage.NewMinIOStorage(cfg.MinIO)
	if err != nil {
		c.Cleanup()
		return nil, fmt.Errorf("storage: %w", err)
	}

	c.JWTManager = jwt.NewManager(cfg.JWT.Secret, cfg.JWT.ExpiryHours)

	adminRepo := adminrepo.NewAdminRepository(c.DB.Pool)
	bestieRepo := bestierepo.NewBestieRepository(c.DB.Pool)

	adminSvc := adminservice.NewAdminService(adminRepo, c.JWTManager)
	bestieSvc := bestieservice.NewBestieService(bestieRepo, adminRepo, c.Cache)
	uploadSvc := uploadservice.NewUploadService(c.Storage, bestieSvc, adminRepo, cfg.Upload)

	c.AdminHandler = adminhandler.NewAdminHandler(adminSvc)
	c.BestieHandler = bestiehandler.NewBestieHandler(bestieSvc)
	c.PublicHandler = bestiehandler.NewPublicHandler(bestieSvc)
	c.UploadHandler = uploadhandler.NewUploadHandler(uploadSvc, cfg.Upload)

	return c, nil
}

// Cleanup releases external connections. Safe to call on a partially built
// container.
func (c *Container) Cleanup() {
	if c.Cache != nil {
		if err := c.Cache.Close(); err != nil {
			logger.Error("closing redis", err)
		}
	}
	if c.DB != nil {
		c.DB.Close()
	}
}
