package provider

import (
	"github.com/redutron/backend/internal/cache"
	"github.com/redutron/backend/internal/config"
	"github.com/redutron/backend/internal/logger"
	"github.com/redutron/backend/internal/models"
	"github.com/redutron/backend/internal/repository"
	"github.com/redutron/backend/internal/service"
)

// Container 依赖注入容器
type Container struct {
	Config *config.Config

	// Repositories
	AdminRepo      repository.AdminRepository
	ProductRepo    repository.ProductRepository
	InventoryRepo  repository.InventoryRepository
	StockEntryRepo repository.StockEntryRepository
	SaleRepo       repository.SaleRepository
	SettingRepo    repository.SettingRepository

	// Services
	AuthService      *service.AuthService
	ProductService   *service.ProductService
	InventoryService *service.InventoryService
	SalesService     *service.SalesService
	ReportService    *service.ReportService
	SettingService   *service.SettingService
	ImportService    *service.ImportService
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) *Container {
	// 初始化缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	c := &Container{Config: cfg}

	// 1. 初始化 Repositories
	c.initRepositories()

	// 2. 初始化 Services
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.AdminRepo = repository.NewAdminRepository(db)
	c.ProductRepo = repository.NewProductRepository(db)
	c.InventoryRepo = repository.NewInventoryRepository(db)
	c.StockEntryRepo = repository.NewStockEntryRepository(db)
	c.SaleRepo = repository.NewSaleRepository(db)
	c.SettingRepo = repository.NewSettingRepository(db)
}

func (c *Container) initServices() {
	// 库存与销售共用同一张商品锁表，保证同一商品同时只有一笔变更在途
	locks := service.NewProductLocks()

	c.AuthService = service.NewAuthService(c.Config, c.AdminRepo)
	c.SettingService = service.NewSettingService(c.SettingRepo)
	c.ProductService = service.NewProductService(c.ProductRepo)
	c.InventoryService = service.NewInventoryService(c.ProductRepo, c.InventoryRepo, c.StockEntryRepo, locks)
	c.SalesService = service.NewSalesService(c.SaleRepo, c.ProductRepo, c.InventoryService)
	c.ReportService = service.NewReportService(c.SaleRepo)
	c.ImportService = service.NewImportService(c.ProductService, c.SalesService)
}
