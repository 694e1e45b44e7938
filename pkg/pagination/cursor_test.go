package pagination

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/xiebiao/stockroom/pkg/errors"
)

// TestCursorRoundTrip 游标编解码往返律：decode(encode(v)) == v
func TestCursorRoundTrip(t *testing.T) {
	values := []int64{0, 1, 42, 100, 99999, 1<<62 - 1}

	for _, v := range values {
		cursor := EncodeCursor(v)
		decoded, err := DecodeCursor(cursor)
		require.NoError(t, err, "合法游标解码不应失败")
		assert.Equal(t, v, decoded, "往返后的值应该相等")
	}
}

// TestCursorOpaque 游标对客户端不透明（base64，不是裸数字）
func TestCursorOpaque(t *testing.T) {
	cursor := EncodeCursor(42)
	assert.NotEqual(t, "42", cursor, "游标不应该是明文数字")

	raw, err := base64.StdEncoding.DecodeString(cursor)
	require.NoError(t, err)
	assert.Equal(t, "42", string(raw))
}

// TestDecodeInvalidCursor 非法游标必须显式报错，不能静默回退到第一页
func TestDecodeInvalidCursor(t *testing.T) {
	cases := []struct {
		name   string
		cursor string
	}{
		{"非base64字符", "!!!not-base64!!!"},
		{"base64但不是整数", base64.StdEncoding.EncodeToString([]byte("abc"))},
		{"base64的空串", base64.StdEncoding.EncodeToString([]byte(""))},
		{"整数后带垃圾", base64.StdEncoding.EncodeToString([]byte("42x"))},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := DecodeCursor(tc.cursor)
			require.Error(t, err)

			appErr := apperrors.GetAppError(err)
			assert.Equal(t, apperrors.ErrCodeInvalidCursor, appErr.Code, "错误码应为InvalidCursor")
		})
	}
}
