package order

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNewIncomingOrderTotalCost 总价在创建时算定：total_cost = unit_cost × quantity
func TestNewIncomingOrderTotalCost(t *testing.T) {
	o, err := NewIncomingOrder(1, 2, "BN-001", 30, 1250, time.Now())
	require.NoError(t, err)

	assert.Equal(t, int64(37500), o.TotalCost, "总价应为30×12.50元")
	assert.Equal(t, StatusPending, o.Status, "新订单状态应为pending")
}

// TestNewIncomingOrderInvalid 非法参数创建入库单
func TestNewIncomingOrderInvalid(t *testing.T) {
	_, err := NewIncomingOrder(1, 2, "BN-001", 0, 100, time.Now())
	assert.ErrorIs(t, err, ErrInvalidQuantity, "数量为0应被拒绝")

	_, err = NewIncomingOrder(1, 2, "BN-001", -3, 100, time.Now())
	assert.ErrorIs(t, err, ErrInvalidQuantity, "负数量应被拒绝")

	_, err = NewIncomingOrder(1, 2, "BN-001", 3, -1, time.Now())
	assert.ErrorIs(t, err, ErrInvalidUnitPrice, "负单价应被拒绝")
}

// TestNewOutgoingOrderTotalPrice 出库单总价 = 单价快照 × 数量
func TestNewOutgoingOrderTotalPrice(t *testing.T) {
	o, err := NewOutgoingOrder(1, 2, 3, 4, 9900, time.Now())
	require.NoError(t, err)

	assert.Equal(t, int64(39600), o.TotalPrice)

	// 未定价商品按0计价
	free, err := NewOutgoingOrder(1, 2, 3, 4, 0, time.Now())
	require.NoError(t, err)
	assert.Equal(t, int64(0), free.TotalPrice)
}

// TestStatusTransitions 状态机：pending → completed|cancelled，终态不可再转
func TestStatusTransitions(t *testing.T) {
	assert.True(t, StatusPending.CanTransitionTo(StatusCompleted))
	assert.True(t, StatusPending.CanTransitionTo(StatusCancelled))

	assert.False(t, StatusCompleted.CanTransitionTo(StatusPending), "终态不能回退")
	assert.False(t, StatusCompleted.CanTransitionTo(StatusCancelled))
	assert.False(t, StatusCancelled.CanTransitionTo(StatusCompleted))
	assert.False(t, StatusPending.CanTransitionTo(StatusPending), "原地转换也不允许")
}

// TestIncomingOrderTransitionTo 实体级状态转换
func TestIncomingOrderTransitionTo(t *testing.T) {
	o, err := NewIncomingOrder(1, 2, "BN-001", 10, 100, time.Now())
	require.NoError(t, err)

	require.NoError(t, o.TransitionTo(StatusCompleted))
	assert.Equal(t, StatusCompleted, o.Status)

	err = o.TransitionTo(StatusCancelled)
	assert.ErrorIs(t, err, ErrInvalidStatusTransition, "completed是终态")
	assert.Equal(t, StatusCompleted, o.Status, "失败的转换不应改变状态")
}

// TestOwnership 订单归属检查
func TestOwnership(t *testing.T) {
	in, err := NewIncomingOrder(7, 2, "BN-001", 10, 100, time.Now())
	require.NoError(t, err)
	assert.True(t, in.IsOwnedBySupplier(7))
	assert.False(t, in.IsOwnedBySupplier(8))

	out, err := NewOutgoingOrder(5, 2, 3, 1, 100, time.Now())
	require.NoError(t, err)
	assert.True(t, out.IsOwnedByCustomer(5))
	assert.False(t, out.IsOwnedByCustomer(6))
}
