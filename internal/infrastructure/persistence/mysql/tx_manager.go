package mysql

import (
	"context"

	"gorm.io/gorm"
)

// TxManager 事务管理器
// 教学要点:
// 1. 封装GORM的Transaction方法
// 2. 通过context传递事务DB(避免全局变量)
// 3. 支持嵌套事务(GORM自动使用Savepoint)
type TxManager struct {
	db *gorm.DB
}

// NewTxManager 创建事务管理器
func NewTxManager(db *gorm.DB) *TxManager {
	return &TxManager{db: db}
}

// Transaction 执行事务
// fn内所有Repository操作都在同一事务中执行；
// fn返回error时自动ROLLBACK，返回nil时自动COMMIT。
//
// 使用示例（出库单创建）:
//
//	err := txManager.Transaction(ctx, func(ctx context.Context) error {
//	    batch, err := stockRepo.FindByID(ctx, stockID)
//	    if err != nil {
//	        return err
//	    }
//	    if err := outgoingRepo.Create(ctx, order); err != nil {
//	        return err // 自动回滚
//	    }
//	    return stockRepo.DecrementQuantity(ctx, stockID, quantity)
//	})
func (m *TxManager) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 将事务DB注入到Context中，Repository的getDB方法会提取它
		txCtx := context.WithValue(ctx, "tx", tx)
		return fn(txCtx)
	})
}
