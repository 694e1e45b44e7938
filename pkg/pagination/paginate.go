package pagination

import (
	"gorm.io/gorm"

	apperrors "github.com/xiebiao/stockroom/pkg/errors"
)

const (
	// DefaultLimit 默认每页条数
	DefaultLimit = 10
	// MaxLimit 每页条数上限
	MaxLimit = 100
)

// Params 分页请求参数
// After/Before是互斥的不透明游标；都为空时从头开始
type Params struct {
	Limit  int    // 每页条数（[1,100]，0取默认值10）
	After  string // 向后翻页游标（取排序键大于该值的行）
	Before string // 向前翻页游标（取排序键小于该值的行）
}

// Page 分页结果
// Next/Prev为nil表示对应方向没有更多数据
type Page[T any] struct {
	Items []T
	Next  *string
	Prev  *string
}

// KeyFunc 从一行记录中提取排序键值
type KeyFunc[T any] func(T) int64

// Paginate 在给定查询上执行游标分页
//
// 执行流程：
// 1. 限制limit到[1,100]
// 2. after → WHERE col > v ORDER BY col ASC
//    before → WHERE col < v ORDER BY col DESC（取紧邻的前序行），结果在内存中反转回升序
// 3. 多取一行（limit+1）探测是否还有下一页，返回前裁掉
//
// column由调用方硬编码（列名，不是用户输入），key提取该列在实体上的值。
// 空结果返回空页而不是错误：是否将空页视为NotFound由调用方决定。
func Paginate[T any](db *gorm.DB, column string, p Params, key KeyFunc[T]) (*Page[T], error) {
	limit := clampLimit(p.Limit)

	if p.After != "" && p.Before != "" {
		return nil, apperrors.New(apperrors.ErrCodeInvalidParams, "after和before不能同时使用")
	}

	query := db
	backward := false

	switch {
	case p.After != "":
		value, err := DecodeCursor(p.After)
		if err != nil {
			return nil, err
		}
		query = query.Where(column+" > ?", value).Order(column + " ASC")
	case p.Before != "":
		value, err := DecodeCursor(p.Before)
		if err != nil {
			return nil, err
		}
		query = query.Where(column+" < ?", value).Order(column + " DESC")
		backward = true
	default:
		query = query.Order(column + " ASC")
	}

	var rows []T
	if err := query.Limit(limit + 1).Find(&rows).Error; err != nil {
		return nil, apperrors.Wrap(err, "分页查询失败")
	}

	return assemblePage(rows, limit, backward, p.After != "", key), nil
}

// clampLimit 将limit限制到[1,100]，0或负数取默认值
func clampLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}

// assemblePage 由查询结果组装分页响应（纯函数，便于单元测试）
//
// 游标规则：
// - 向后翻页（无游标或after）：
//   next = 有下一页时取末行键；prev = 用过after且有结果时取首行键
//   （第一页没有prev：前面没有行可回退）
// - 向前翻页（before，rows为降序抓取结果）：
//   先反转回升序；next = 有结果时取末行键（允许重新向后翻）
//   prev = 降序探测到更多行时取首行键
//
// 这样固定排序键下的往返遍历每行恰好访问一次
func assemblePage[T any](rows []T, limit int, backward, afterUsed bool, key KeyFunc[T]) *Page[T] {
	hasMore := len(rows) > limit
	if hasMore {
		rows = rows[:limit]
	}

	if backward {
		reverse(rows)
	}

	page := &Page[T]{Items: rows}
	if len(rows) == 0 {
		return page
	}

	first := key(rows[0])
	last := key(rows[len(rows)-1])

	if backward {
		next := EncodeCursor(last)
		page.Next = &next
		if hasMore {
			prev := EncodeCursor(first)
			page.Prev = &prev
		}
	} else {
		if hasMore {
			next := EncodeCursor(last)
			page.Next = &next
		}
		if afterUsed {
			prev := EncodeCursor(first)
			page.Prev = &prev
		}
	}

	return page
}

func reverse[T any](rows []T) {
	for i, j := 0, len(rows)-1; i < j; i, j = i+1, j-1 {
		rows[i], rows[j] = rows[j], rows[i]
	}
}
