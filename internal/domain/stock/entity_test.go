package stock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNewBatch 批次创建的数量校验
func TestNewBatch(t *testing.T) {
	expiry := time.Now().AddDate(1, 0, 0)
	b, err := NewBatch(1, 2, "BN-2026-001", 50, &expiry)
	require.NoError(t, err)
	assert.Equal(t, 50, b.AvailableQuantity)

	_, err = NewBatch(1, 2, "BN-2026-002", 0, nil)
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	_, err = NewBatch(1, 2, "BN-2026-003", -5, nil)
	assert.ErrorIs(t, err, ErrInvalidQuantity)
}

// TestCanFulfill 余量判定
func TestCanFulfill(t *testing.T) {
	b := &Batch{AvailableQuantity: 10}

	assert.True(t, b.CanFulfill(10), "刚好等于余量也可满足")
	assert.True(t, b.CanFulfill(1))
	assert.False(t, b.CanFulfill(11))
	assert.False(t, b.CanFulfill(0), "非正数量不合法")
	assert.False(t, b.CanFulfill(-1))
}

// TestDecrease 实体级扣减与不变式
func TestDecrease(t *testing.T) {
	b := &Batch{AvailableQuantity: 10}

	require.NoError(t, b.Decrease(6))
	assert.Equal(t, 4, b.AvailableQuantity)

	err := b.Decrease(6)
	assert.ErrorIs(t, err, ErrInsufficientStock)
	assert.Equal(t, 4, b.AvailableQuantity, "失败的扣减不应改变数量")

	// 精确扣空
	require.NoError(t, b.Decrease(4))
	assert.Equal(t, 0, b.AvailableQuantity)

	err = b.Decrease(1)
	assert.ErrorIs(t, err, ErrInsufficientStock, "空批次不能再扣")
}

// TestAdjust 手工调整允许任意非负值
func TestAdjust(t *testing.T) {
	b := &Batch{AvailableQuantity: 3}

	require.NoError(t, b.Adjust(100))
	assert.Equal(t, 100, b.AvailableQuantity)

	require.NoError(t, b.Adjust(0))
	assert.Equal(t, 0, b.AvailableQuantity)

	err := b.Adjust(-1)
	assert.ErrorIs(t, err, ErrInvalidQuantity)
}
