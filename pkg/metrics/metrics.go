// Package metrics 提供基于Prometheus的指标收集
//
// 核心概念：
// - Counter（计数器）：只增不减的累计值（请求总数、订单总数）
// - Gauge（仪表盘）：可增可减的瞬时值（处理中的请求数）
// - Histogram（直方图）：观测值的分布（请求耗时，自动计算P50/P90/P99）
//
// 命名规范：
// - Counter以_total结尾，Histogram以单位结尾（_seconds）
// - 标签只用有限取值的维度（method/path/status），不要用user_id这类高基数值
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// initialized 标记是否已初始化（防止重复注册）
	initialized bool

	// HTTP请求指标

	// HTTPRequestsTotal HTTP请求总数（Counter）
	// 标签：method（GET/POST）、path（路由模板，不是原始URL）、status
	HTTPRequestsTotal *prometheus.CounterVec

	// HTTPRequestDuration HTTP请求耗时（Histogram）
	HTTPRequestDuration *prometheus.HistogramVec

	// HTTPRequestsInProgress 正在处理的HTTP请求数（Gauge）
	HTTPRequestsInProgress prometheus.Gauge

	// 业务指标

	// IncomingOrdersCreatedTotal 入库单创建总数（Counter）
	IncomingOrdersCreatedTotal prometheus.Counter

	// OutgoingOrdersCreatedTotal 出库单创建总数（Counter）
	OutgoingOrdersCreatedTotal prometheus.Counter

	// OrdersFailedTotal 订单创建失败总数（Counter）
	// 标签：kind（incoming/outgoing）、reason（not_found/insufficient_stock/internal）
	OrdersFailedTotal *prometheus.CounterVec

	// OrderCreationDuration 订单创建耗时（Histogram）
	// 标签：kind（incoming/outgoing）
	OrderCreationDuration *prometheus.HistogramVec

	// StockAdjustmentsTotal 手工库存调整总数（Counter）
	StockAdjustmentsTotal prometheus.Counter

	// 消息队列指标

	// MessagesPublishedTotal 消息发布总数（Counter）
	// 标签：routing_key（stock.incoming/stock.outgoing/stock.adjusted）
	MessagesPublishedTotal *prometheus.CounterVec
)

// InitMetrics 初始化所有Prometheus指标
// 必须在程序启动时调用一次，注册所有指标到默认Registry
func InitMetrics() {
	if initialized {
		return
	}
	initialized = true

	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP请求总数",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP请求耗时（秒）",
			Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1, 5, 10},
		},
		[]string{"method", "path"},
	)

	HTTPRequestsInProgress = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_progress",
			Help: "正在处理的HTTP请求数",
		},
	)

	IncomingOrdersCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "incoming_orders_created_total",
			Help: "入库单创建总数",
		},
	)

	OutgoingOrdersCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "outgoing_orders_created_total",
			Help: "出库单创建总数",
		},
	)

	OrdersFailedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "orders_failed_total",
			Help: "订单创建失败总数",
		},
		[]string{"kind", "reason"},
	)

	OrderCreationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "order_creation_duration_seconds",
			Help:    "订单创建耗时（秒）",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10},
		},
		[]string{"kind"},
	)

	StockAdjustmentsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "stock_adjustments_total",
			Help: "手工库存调整总数",
		},
	)

	MessagesPublishedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "messages_published_total",
			Help: "消息发布总数",
		},
		[]string{"routing_key"},
	)
}

// GinMiddleware HTTP指标采集中间件
// 用路由模板（c.FullPath）做path标签，避免/products/123这种高基数标签
func GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		HTTPRequestsInProgress.Inc()

		c.Next()

		HTTPRequestsInProgress.Dec()

		path := c.FullPath()
		if path == "" {
			path = "unmatched" // 404等未命中路由的请求归到一个桶
		}

		HTTPRequestsTotal.WithLabelValues(
			c.Request.Method,
			path,
			strconv.Itoa(c.Writer.Status()),
		).Inc()

		HTTPRequestDuration.WithLabelValues(c.Request.Method, path).
			Observe(time.Since(start).Seconds())
	}
}
