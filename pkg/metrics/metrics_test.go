package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

// TestInitMetrics 测试指标初始化
func TestInitMetrics(t *testing.T) {
	InitMetrics()

	if HTTPRequestsTotal == nil {
		t.Error("HTTPRequestsTotal未初始化")
	}
	if HTTPRequestDuration == nil {
		t.Error("HTTPRequestDuration未初始化")
	}
	if IncomingOrdersCreatedTotal == nil {
		t.Error("IncomingOrdersCreatedTotal未初始化")
	}
	if OutgoingOrdersCreatedTotal == nil {
		t.Error("OutgoingOrdersCreatedTotal未初始化")
	}
}

// TestInitMetricsIdempotent 重复初始化不应panic（promauto重复注册会panic）
func TestInitMetricsIdempotent(t *testing.T) {
	InitMetrics()
	InitMetrics()
}

// TestOrderCounters 测试业务计数器
func TestOrderCounters(t *testing.T) {
	InitMetrics()

	before := testutil.ToFloat64(OutgoingOrdersCreatedTotal)
	OutgoingOrdersCreatedTotal.Inc()
	OutgoingOrdersCreatedTotal.Inc()

	got := testutil.ToFloat64(OutgoingOrdersCreatedTotal)
	if got != before+2 {
		t.Errorf("Counter值错误: expected=%f, got=%f", before+2, got)
	}
}

// TestFailureCounterLabels 失败计数器按kind/reason分维度
func TestFailureCounterLabels(t *testing.T) {
	InitMetrics()

	c := OrdersFailedTotal.WithLabelValues("outgoing", "insufficient_stock")
	before := testutil.ToFloat64(c)
	c.Inc()

	got := testutil.ToFloat64(c)
	if got != before+1 {
		t.Errorf("CounterVec值错误: expected=%f, got=%f", before+1, got)
	}
}
