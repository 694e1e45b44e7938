package main

import (
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

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
	"github.com/xiebiao/stockroom/pkg/response"
)

// main 主程序入口
// 说明：手动依赖注入（wire.go提供编译期注入的等价配置）
func main() {
	// 1. 加载配置
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	fmt.Printf("✓ 配置加载成功\n")
	fmt.Printf("  - 服务端口: %d\n", cfg.Server.Port)
	fmt.Printf("  - 运行模式: %s\n", cfg.Server.Mode)
	fmt.Printf("  - 数据库: %s:%d/%s\n", cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)
	fmt.Printf("  - Redis: %s\n", cfg.Redis.Addr())

	// 2. 初始化数据库连接
	db, err := mysql.NewDB(cfg)
	if err != nil {
		log.Fatalf("初始化数据库失败: %v", err)
	}

	// 3. 初始化Redis连接
	redisClient, err := redis.NewClient(cfg)
	if err != nil {
		log.Fatalf("初始化Redis失败: %v", err)
	}

	// 4. 初始化消息队列（可选；未启用时publisher为nil，发布降级为no-op）
	var publisher *mq.Publisher
	if cfg.MQ.Enabled {
		publisher, err = mq.NewPublisher(cfg.MQ.URL, cfg.MQ.Exchange, "topic")
		if err != nil {
			log.Fatalf("初始化RabbitMQ失败: %v", err)
		}
		defer publisher.Close()
	}

	// 5. 初始化Prometheus指标
	metrics.InitMetrics()

	// 6. 依赖注入（手动组装）
	// Repository ← Service ← UseCase ← Handler

	// 基础设施层
	userRepo := mysql.NewUserRepository(db)
	productRepo := mysql.NewProductRepository(db)
	categoryRepo := mysql.NewCategoryRepository(db)
	supplierRepo := mysql.NewSupplierRepository(db)
	customerRepo := mysql.NewCustomerRepository(db)
	stockRepo := mysql.NewStockRepository(db)
	incomingRepo := mysql.NewIncomingOrderRepository(db)
	outgoingRepo := mysql.NewOutgoingOrderRepository(db)
	dashboardRepo := mysql.NewDashboardRepository(db)
	txManager := mysql.NewTxManager(db)
	sessionStore := redis.NewSessionStore(redisClient)
	dashboardCache := redis.NewDashboardCache(redisClient)
	jwtManager := jwt.NewManager(
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpire,
		cfg.JWT.RefreshTokenExpire,
	)

	// 领域层
	userService := user.NewService(userRepo)

	// 应用层
	registerUseCase := appuser.NewRegisterUseCase(userService)
	loginUseCase := appuser.NewLoginUseCase(userService, jwtManager, sessionStore)
	logoutUseCase := appuser.NewLogoutUseCase(sessionStore)
	profileUseCase := appuser.NewProfileUseCase(userRepo)

	createProductUseCase := appproduct.NewCreateProductUseCase(productRepo, categoryRepo)
	listProductsUseCase := appproduct.NewListProductsUseCase(productRepo)
	getProductUseCase := appproduct.NewGetProductUseCase(productRepo)
	updateProductUseCase := appproduct.NewUpdateProductUseCase(productRepo, categoryRepo)
	deleteProductUseCase := appproduct.NewDeleteProductUseCase(productRepo)

	categoryUseCase := appcategory.NewManageCategoryUseCase(categoryRepo)
	supplierUseCase := appsupplier.NewManageSupplierUseCase(supplierRepo, userRepo)
	customerUseCase := appcustomer.NewManageCustomerUseCase(customerRepo, userRepo)
	stockUseCase := appstock.NewManageStockUseCase(stockRepo, publisher)

	createIncomingUseCase := apporder.NewCreateIncomingUseCase(
		incomingRepo, productRepo, supplierRepo, stockRepo, txManager, publisher)
	listIncomingUseCase := apporder.NewListIncomingUseCase(incomingRepo, supplierRepo, productRepo)
	getIncomingUseCase := apporder.NewGetIncomingUseCase(incomingRepo, supplierRepo, productRepo, stockRepo)
	updateStatusUseCase := apporder.NewUpdateIncomingStatusUseCase(incomingRepo, supplierRepo, productRepo, stockRepo)

	createOutgoingUseCase := apporder.NewCreateOutgoingUseCase(
		outgoingRepo, productRepo, customerRepo, stockRepo, txManager, publisher)
	listOutgoingUseCase := apporder.NewListOutgoingUseCase(outgoingRepo, customerRepo, productRepo)
	getOutgoingUseCase := apporder.NewGetOutgoingUseCase(outgoingRepo, customerRepo, productRepo)

	dashboardUseCase := appdashboard.NewSummaryUseCase(dashboardRepo, dashboardCache)

	// 接口层
	userHandler := handler.NewUserHandler(registerUseCase, loginUseCase, logoutUseCase, profileUseCase)
	productHandler := handler.NewProductHandler(createProductUseCase, listProductsUseCase,
		getProductUseCase, updateProductUseCase, deleteProductUseCase)
	categoryHandler := handler.NewCategoryHandler(categoryUseCase)
	supplierHandler := handler.NewSupplierHandler(supplierUseCase)
	customerHandler := handler.NewCustomerHandler(customerUseCase)
	stockHandler := handler.NewStockHandler(stockUseCase)
	incomingHandler := handler.NewIncomingOrderHandler(createIncomingUseCase,
		listIncomingUseCase, getIncomingUseCase, updateStatusUseCase)
	outgoingHandler := handler.NewOutgoingOrderHandler(createOutgoingUseCase,
		listOutgoingUseCase, getOutgoingUseCase)
	dashboardHandler := handler.NewDashboardHandler(dashboardUseCase)
	authMiddleware := middleware.NewAuthMiddleware(jwtManager, sessionStore)

	// 7. 初始化Gin引擎
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()
	r.Use(metrics.GinMiddleware())

	// 8. 注册路由
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

	// 9. 启动服务
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	fmt.Printf("\n🚀 服务启动成功！\n")
	fmt.Printf("   访问地址: http://localhost%s\n", addr)
	fmt.Printf("   健康检查: http://localhost%s/ping\n", addr)
	fmt.Printf("   API文档:  http://localhost%s/swagger/index.html\n", addr)
	fmt.Printf("   指标采集: http://localhost%s/metrics\n", addr)
	fmt.Printf("\n按Ctrl+C停止服务\n\n")

	if err := r.Run(addr); err != nil {
		log.Fatalf("启动服务失败: %v", err)
	}
}

// handlers 路由注册用的处理器集合
type handlers struct {
	user      *handler.UserHandler
	product   *handler.ProductHandler
	category  *handler.CategoryHandler
	supplier  *handler.SupplierHandler
	customer  *handler.CustomerHandler
	stock     *handler.StockHandler
	incoming  *handler.IncomingOrderHandler
	outgoing  *handler.OutgoingOrderHandler
	dashboard *handler.DashboardHandler
}

// registerRoutes 注册路由
// 鉴权矩阵：
// - admin/staff: 全量管理
// - supplier: 自己的档案和入库单
// - customer: 自己的档案和出库单
func registerRoutes(r *gin.Engine, h *handlers, auth *middleware.AuthMiddleware) {
	// 健康检查
	r.GET("/ping", func(c *gin.Context) {
		response.Success(c, gin.H{
			"message": "pong",
			"status":  "healthy",
		})
	})

	// Prometheus指标
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Swagger文档（访问 /swagger/index.html）
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	staffOnly := auth.RequireRole(user.RoleAdmin, user.RoleStaff)
	adminOnly := auth.RequireRole(user.RoleAdmin)

	v1 := r.Group("/api/v1")
	{
		// 用户模块
		users := v1.Group("/users")
		{
			users.POST("/register", h.user.Register)
			users.POST("/login", h.user.Login)
			users.POST("/logout", auth.RequireAuth(), h.user.Logout)
			users.GET("/profile", auth.RequireAuth(), h.user.Profile)
		}

		// 以下全部需要登录
		authorized := v1.Group("")
		authorized.Use(auth.RequireAuth())

		// 商品模块（读开放给所有登录用户，写仅admin/staff）
		products := authorized.Group("/products")
		{
			products.GET("", h.product.List)
			products.GET("/:id", h.product.Get)
			products.POST("", staffOnly, h.product.Create)
			products.PATCH("/:id", staffOnly, h.product.Update)
			products.DELETE("/:id", adminOnly, h.product.Delete)
		}

		// 分类模块
		categories := authorized.Group("/categories")
		{
			categories.GET("", h.category.List)
			categories.GET("/:id", h.category.Get)
			categories.POST("", staffOnly, h.category.Create)
			categories.PATCH("/:id", staffOnly, h.category.Update)
			categories.DELETE("/:id", adminOnly, h.category.Delete)
		}

		// 供应商模块
		suppliers := authorized.Group("/suppliers")
		{
			suppliers.GET("/me", auth.RequireRole(user.RoleSupplier), h.supplier.Me)
			suppliers.GET("", staffOnly, h.supplier.List)
			suppliers.GET("/:id", staffOnly, h.supplier.Get)
			suppliers.POST("", staffOnly, h.supplier.Create)
			suppliers.PATCH("/:id", staffOnly, h.supplier.Update)
			suppliers.DELETE("/:id", adminOnly, h.supplier.Delete)
		}

		// 客户模块
		customers := authorized.Group("/customers")
		{
			customers.GET("/me", auth.RequireRole(user.RoleCustomer), h.customer.Me)
			customers.GET("", staffOnly, h.customer.List)
			customers.GET("/:id", staffOnly, h.customer.Get)
			customers.POST("", staffOnly, h.customer.Create)
			customers.PATCH("/:id", staffOnly, h.customer.Update)
			customers.DELETE("/:id", adminOnly, h.customer.Delete)
		}

		// 库存模块
		stocks := authorized.Group("/stocks")
		{
			stocks.GET("", staffOnly, h.stock.List)
			stocks.GET("/:id", staffOnly, h.stock.Get)
			stocks.PATCH("/:id", adminOnly, h.stock.Adjust)
		}

		// 入库单模块
		incoming := authorized.Group("/incoming-orders")
		{
			incoming.POST("", auth.RequireRole(user.RoleAdmin, user.RoleStaff, user.RoleSupplier), h.incoming.Create)
			incoming.GET("", staffOnly, h.incoming.List)
			incoming.GET("/me", auth.RequireRole(user.RoleSupplier), h.incoming.ListMine)
			incoming.GET("/:id", h.incoming.Get)
			incoming.PATCH("/:id", h.incoming.UpdateStatus)
		}

		// 出库单模块
		outgoing := authorized.Group("/outgoing-orders")
		{
			outgoing.POST("", auth.RequireRole(user.RoleAdmin, user.RoleStaff, user.RoleCustomer), h.outgoing.Create)
			outgoing.GET("", h.outgoing.List)
			outgoing.GET("/:id", h.outgoing.Get)
		}

		// 看板
		authorized.GET("/dashboard", staffOnly, h.dashboard.Summary)
	}
}
