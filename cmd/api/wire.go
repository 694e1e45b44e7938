//go:build wireinject
// +build wireinject

package main

// wire.go 依赖注入配置
// 运行 `wire ./cmd/api` 生成 wire_gen.go
// 说明：main.go中保留了等价的手动注入，便于对照学习

import (
	"github.com/gin-gonic/gin"
	"github.com/google/wire"

	appcategory "github.com/xiebiao/stockroom/internal/application/category"
	appcustomer "github.com/xiebiao/stockroom/internal/application/customer"
	appdashboard "github.com/xiebiao/stockroom/internal/application/dashboard"
	apporder "github.com/xiebiao/stockroom/internal/application/order"
	appproduct "github.com/xiebiao/stockroom/internal/application/product"
	appstock "github.com/xiebiao/stockroom/internal/application/stock"
	appsupplier "github.com/xiebiao/stockroom/internal/application/supplier"
	appuser "github.com/xiebiao/stockroom/internal/application/user"
	"github.com/xiebiao/stockroom/internal/domain/user"
	"github.com/xiebiao/stockroom/internal/infrastructure/config"
	"github.com/xiebiao/stockroom/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/stockroom/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/stockroom/internal/interface/http/handler"
	"github.com/xiebiao/stockroom/internal/interface/http/middleware"
	"github.com/xiebiao/stockroom/pkg/jwt"
	"github.com/xiebiao/stockroom/pkg/metrics"
	"github.com/xiebiao/stockroom/pkg/mq"
)

// infrastructureSet 基础设施层
var infrastructureSet = wire.NewSet(
	config.Load,
	mysql.NewDB,
	redis.NewClient,
	mysql.NewTxManager,
	provideJWTManager,
	provideMQPublisher,
	redis.NewSessionStore,
	redis.NewDashboardCache,
)

// repositorySet 仓储层
var repositorySet = wire.NewSet(
	mysql.NewUserRepository,
	mysql.NewProductRepository,
	mysql.NewCategoryRepository,
	mysql.NewSupplierRepository,
	mysql.NewCustomerRepository,
	mysql.NewStockRepository,
	mysql.NewIncomingOrderRepository,
	mysql.NewOutgoingOrderRepository,
	mysql.NewDashboardRepository,
)

// domainSet 领域服务层
var domainSet = wire.NewSet(
	user.NewService,
)

// applicationSet 应用层
var applicationSet = wire.NewSet(
	appuser.NewRegisterUseCase,
	appuser.NewLoginUseCase,
	appuser.NewLogoutUseCase,
	appuser.NewProfileUseCase,
	appproduct.NewCreateProductUseCase,
	appproduct.NewListProductsUseCase,
	appproduct.NewGetProductUseCase,
	appproduct.NewUpdateProductUseCase,
	appproduct.NewDeleteProductUseCase,
	appcategory.NewManageCategoryUseCase,
	appsupplier.NewManageSupplierUseCase,
	appcustomer.NewManageCustomerUseCase,
	appstock.NewManageStockUseCase,
	apporder.NewCreateIncomingUseCase,
	apporder.NewListIncomingUseCase,
	apporder.NewGetIncomingUseCase,
	apporder.NewUpdateIncomingStatusUseCase,
	apporder.NewCreateOutgoingUseCase,
	apporder.NewListOutgoingUseCase,
	apporder.NewGetOutgoingUseCase,
	appdashboard.NewSummaryUseCase,
)

// middlewareSet 中间件
var middlewareSet = wire.NewSet(
	middleware.NewAuthMiddleware,
)

// handlerSet 接口层
var handlerSet = wire.NewSet(
	handler.NewUserHandler,
	handler.NewProductHandler,
	handler.NewCategoryHandler,
	handler.NewSupplierHandler,
	handler.NewCustomerHandler,
	handler.NewStockHandler,
	handler.NewIncomingOrderHandler,
	handler.NewOutgoingOrderHandler,
	handler.NewDashboardHandler,
)

// provideJWTManager 构造JWT管理器
func provideJWTManager(cfg *config.Config) *jwt.Manager {
	return jwt.NewManager(
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpire,
		cfg.JWT.RefreshTokenExpire,
	)
}

// provideMQPublisher 构造消息发布器
// 未启用MQ时返回nil，Publisher的方法对nil接收者安全
func provideMQPublisher(cfg *config.Config) (*mq.Publisher, error) {
	if !cfg.MQ.Enabled {
		return nil, nil
	}
	return mq.NewPublisher(cfg.MQ.URL, cfg.MQ.Exchange, "topic")
}

// provideGinEngine 构造Gin引擎并注册路由
func provideGinEngine(
	cfg *config.Config,
	userHandler *handler.UserHandler,
	productHandler *handler.ProductHandler,
	categoryHandler *handler.CategoryHandler,
	supplierHandler *handler.SupplierHandler,
	customerHandler *handler.CustomerHandler,
	stockHandler *handler.StockHandler,
	incomingHandler *handler.IncomingOrderHandler,
	outgoingHandler *handler.OutgoingOrderHandler,
	dashboardHandler *handler.DashboardHandler,
	authMiddleware *middleware.AuthMiddleware,
) *gin.Engine {
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()
	r.Use(metrics.GinMiddleware())
	registerRoutes(r, &handlers{
		user:      userHandler,
		product:   productHandler,
		category:  categoryHandler,
		supplier:  supplierHandler,
		customer:  customerHandler,
		stock:     stockHandler,
		incoming:  incomingHandler,
		outgoing:  outgoingHandler,
		dashboard: dashboardHandler,
	}, authMiddleware)
	return r
}

// InitializeApp 组装整个应用
func InitializeApp() (*gin.Engine, error) {
	wire.Build(
		infrastructureSet,
		repositorySet,
		domainSet,
		applicationSet,
		middlewareSet,
		handlerSet,
		provideGinEngine,
	)
	return nil, nil
}
