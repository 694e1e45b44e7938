package integration

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// supplierPage 供应商列表响应
type supplierPage struct {
	List   []SupplierData `json:"list"`
	Cursor CursorData     `json:"cursor"`
}

// TestSupplierPagination 测试供应商列表游标分页
//
// 供应商列表和商品列表走同一套游标分页：limit/after/before参数，
// 响应带cursor.next/cursor.prev，顺着next遍历不重不漏
func TestSupplierPagination(t *testing.T) {
	_, staffToken := RegisterTestUser(t, "supplier_page_staff", "staff")

	// 建12份档案，limit=5要翻3页才能见到全部
	created := make(map[uint]bool, 12)
	for i := 0; i < 12; i++ {
		id, _ := CreateTestSupplier(t, staffToken)
		created[id] = true
	}
	t.Logf("✓ 已创建 %d 份供应商档案", len(created))

	t.Run("顺着next遍历不重不漏", func(t *testing.T) {
		seen := make(map[uint]bool)
		url := BaseURL + "/suppliers?limit=5"
		pages := 0

		for {
			resp := GetJSON(t, url, staffToken)
			require.Equal(t, 0, resp.Code, "查询供应商列表失败: %s", resp.Message)

			var page supplierPage
			require.NoError(t, json.Unmarshal(resp.Data, &page))
			require.LessOrEqual(t, len(page.List), 5, "单页不应该超过limit")

			for _, item := range page.List {
				require.False(t, seen[item.ID], "供应商%d在遍历中重复出现", item.ID)
				seen[item.ID] = true
			}

			pages++
			require.Less(t, pages, 1000, "遍历页数异常，可能死循环")

			if page.Cursor.Next == nil {
				break
			}
			url = BaseURL + "/suppliers?limit=5&after=" + *page.Cursor.Next
		}

		for id := range created {
			assert.True(t, seen[id], "供应商%d应该在遍历结果中", id)
		}
		t.Logf("✓ 遍历%d页共%d份档案，无重复无遗漏", pages, len(seen))
	})

	t.Run("篡改游标返回明确错误", func(t *testing.T) {
		resp := GetJSON(t, BaseURL+"/suppliers?limit=5&after=!!!not-a-cursor!!!", staffToken)
		assert.NotEqual(t, 0, resp.Code, "非法游标应该返回错误")
	})
}
