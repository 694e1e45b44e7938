// Package pagination 提供基于不透明游标的分页能力
//
// 设计说明：
// 1. 游标是排序键值的base64编码（对客户端不透明，不承诺内部格式）
// 2. 采用keyset分页（WHERE key > cursor）而非OFFSET分页：
//    - OFFSET在大偏移量时需要扫描并丢弃前N行，性能随页数线性劣化
//    - keyset分页只要排序键有索引，每页的代价都是常数
// 3. 排序键要求全序且稳定（这里使用自增主键）
package pagination

import (
	"encoding/base64"
	"strconv"

	apperrors "github.com/xiebiao/stockroom/pkg/errors"
)

// EncodeCursor 将排序键值编码为不透明游标
func EncodeCursor(value int64) string {
	return base64.StdEncoding.EncodeToString([]byte(strconv.FormatInt(value, 10)))
}

// DecodeCursor 解码游标，还原排序键值
// 非法输入（非base64、非整数）返回ErrInvalidCursor，不做静默回退：
// 把坏游标当成"无游标"会让客户端拿到第一页却以为在翻页，错误必须显式暴露
func DecodeCursor(cursor string) (int64, error) {
	raw, err := base64.StdEncoding.DecodeString(cursor)
	if err != nil {
		return 0, apperrors.ErrInvalidCursor
	}

	value, err := strconv.ParseInt(string(raw), 10, 64)
	if err != nil {
		return 0, apperrors.ErrInvalidCursor
	}

	return value, nil
}
