package provider

import (
	"time"

	"github.com/elkdev72/ecommerce-prj/internal/cache"
	"github.com/elkdev72/ecommerce-prj/internal/config"
	"github.com/elkdev72/ecommerce-prj/internal/logger"
	"github.com/elkdev72/ecommerce-prj/internal/models"
	"github.com/elkdev72/ecommerce-prj/internal/queue"
	"github.com/elkdev72/ecommerce-prj/internal/repository"
	"github.com/elkdev72/ecommerce-prj/internal/service"

	"gorm.io/gorm"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Repositories
	UserRepo     repository.UserRepository
	CategoryRepo repository.CategoryRepository
	ProductRepo  repository.ProductRepository
	VariantRepo  repository.VariantRepository
	GalleryRepo  repository.GalleryRepository
	CartRepo     repository.CartRepository
	CouponRepo   repository.CouponRepository
	OrderRepo    repository.OrderRepository
	ReviewRepo   repository.ReviewRepository

	// Services
	UserService     *service.UserService
	CategoryService *service.CategoryService
	ProductService  *service.ProductService
	CartService     *service.CartService
	CouponService   *service.CouponService
	OrderService    *service.OrderService
	ReviewService   *service.ReviewService
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) *Container {
	// 初始化缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	// 初始化队列客户端
	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	return NewContainerWithDB(cfg, models.DB, queueClient)
}

// NewContainerWithDB 基于指定连接初始化容器（不初始化缓存与队列）
func NewContainerWithDB(cfg *config.Config, db *gorm.DB, queueClient *queue.Client) *Container {
	if cfg == nil {
		cfg = &config.Config{}
	}
	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
	}

	// 1. 初始化 Repositories
	c.initRepositories(db)

	// 2. 初始化 Services
	c.initServices()

	return c
}

// Close 释放队列客户端与缓存连接
func (c *Container) Close() {
	if c == nil {
		return
	}
	if err := c.QueueClient.Close(); err != nil {
		logger.Warnw("provider_close_queue_client_failed", "error", err)
	}
	if err := cache.Close(); err != nil {
		logger.Warnw("provider_close_redis_failed", "error", err)
	}
}

func (c *Container) initRepositories(db *gorm.DB) {
	productRepo := repository.NewProductRepository(db)
	productRepo.SetIdentifierAttempts(c.Config.Catalog.IdentifierAttempts)

	c.UserRepo = repository.NewUserRepository(db)
	c.CategoryRepo = repository.NewCategoryRepository(db)
	c.ProductRepo = productRepo
	c.VariantRepo = repository.NewVariantRepository(db)
	c.GalleryRepo = repository.NewGalleryRepository(db)
	c.CartRepo = repository.NewCartRepository(db)
	c.CouponRepo = repository.NewCouponRepository(db)
	c.OrderRepo = repository.NewOrderRepository(db)
	c.ReviewRepo = repository.NewReviewRepository(db)
}

func (c *Container) initServices() {
	c.UserService = service.NewUserService(c.UserRepo)
	c.CategoryService = service.NewCategoryService(c.CategoryRepo)
	c.ProductService = service.NewProductService(service.ProductServiceOptions{
		ProductRepo:  c.ProductRepo,
		VariantRepo:  c.VariantRepo,
		GalleryRepo:  c.GalleryRepo,
		CategoryRepo: c.CategoryRepo,
		UserRepo:     c.UserRepo,
		CacheTTL:     time.Duration(c.Config.Catalog.ProductCacheTTLSeconds) * time.Second,
	})
	c.CartService = service.NewCartService(c.CartRepo, c.ProductRepo)
	c.CouponService = service.NewCouponService(c.CouponRepo, c.UserRepo)
	c.OrderService = service.NewOrderService(c.OrderRepo, c.CartRepo, c.ProductRepo, c.CouponRepo, c.QueueClient)
	c.ReviewService = service.NewReviewService(c.ReviewRepo, c.ProductRepo)
}
