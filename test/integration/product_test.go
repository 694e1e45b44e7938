package integration

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 教学说明：商品/分类模块集成测试
// 重点验证游标分页的不变量：
// 1. 游标是不透明的（客户端不需要理解内容）
// 2. 顺着next遍历不重复、不遗漏
// 3. 篡改游标返回明确错误而非panic

// TestProductCRUD 测试商品增删改查
func TestProductCRUD(t *testing.T) {
	_, staffToken := RegisterTestUser(t, "product_staff", "staff")
	_, adminToken := RegisterTestUser(t, "product_admin", "admin")
	categoryID := CreateTestCategory(t, staffToken, "商品测试分类")

	t.Run("创建并查询商品", func(t *testing.T) {
		productID := CreateTestProduct(t, staffToken, "查询测试商品", categoryID)

		resp := GetJSON(t, fmt.Sprintf("%s/products/%d", BaseURL, productID), staffToken)
		require.Equal(t, 0, resp.Code, "查询商品失败: %s", resp.Message)

		var data ProductData
		require.NoError(t, json.Unmarshal(resp.Data, &data))
		assert.Equal(t, productID, data.ID)
		assert.Equal(t, int64(1250), data.Price)
		assert.Equal(t, categoryID, data.CategoryID)
	})

	t.Run("分类不存在应失败", func(t *testing.T) {
		req := map[string]interface{}{
			"name":        "孤儿商品_" + uniqueSuffix(),
			"price":       100,
			"category_id": 99999999,
		}
		resp := PostJSON(t, BaseURL+"/products", req, staffToken)
		assert.NotEqual(t, 0, resp.Code, "分类不存在应该失败")
		t.Logf("✓ 分类不存在正确返回错误: %s", resp.Message)
	})

	t.Run("部分更新商品", func(t *testing.T) {
		productID := CreateTestProduct(t, staffToken, "更新测试商品", categoryID)

		// 只改价格，名称不动
		resp := PatchJSON(t, fmt.Sprintf("%s/products/%d", BaseURL, productID),
			map[string]interface{}{"price": 9900}, staffToken)
		require.Equal(t, 0, resp.Code, "更新商品失败: %s", resp.Message)

		var data ProductData
		require.NoError(t, json.Unmarshal(resp.Data, &data))
		assert.Equal(t, int64(9900), data.Price, "价格应该被更新")
		assert.Contains(t, data.Name, "更新测试商品", "名称不应该被修改")
	})

	t.Run("删除后查询应404", func(t *testing.T) {
		productID := CreateTestProduct(t, staffToken, "删除测试商品", categoryID)

		deleteResp := DeleteJSON(t, fmt.Sprintf("%s/products/%d", BaseURL, productID), adminToken)
		require.Equal(t, 0, deleteResp.Code, "删除商品失败: %s", deleteResp.Message)

		getResp := GetJSON(t, fmt.Sprintf("%s/products/%d", BaseURL, productID), staffToken)
		assert.NotEqual(t, 0, getResp.Code, "删除后查询应该失败")
	})

	t.Run("非法ID返回参数错误", func(t *testing.T) {
		resp := GetJSON(t, BaseURL+"/products/abc", staffToken)
		assert.NotEqual(t, 0, resp.Code, "非数字ID应该失败")
	})
}

// TestCategoryDuplicate 测试分类名唯一约束
func TestCategoryDuplicate(t *testing.T) {
	_, staffToken := RegisterTestUser(t, "category_staff", "staff")

	name := "唯一分类_" + uniqueSuffix()
	resp1 := PostJSON(t, BaseURL+"/categories", map[string]string{"name": name}, staffToken)
	require.Equal(t, 0, resp1.Code, "第一次创建应该成功")

	resp2 := PostJSON(t, BaseURL+"/categories", map[string]string{"name": name}, staffToken)
	assert.NotEqual(t, 0, resp2.Code, "重名分类应该失败")
	t.Logf("✓ 重名分类正确被拒绝: %s", resp2.Message)
}

// productPage 商品列表响应
type productPage struct {
	List   []ProductData `json:"list"`
	Cursor CursorData    `json:"cursor"`
}

// TestProductPagination 测试游标分页遍历
//
// 教学说明：
// 游标分页 vs 传统offset分页：
// - offset分页在翻页期间有数据插入/删除时会漏行或重行
// - 游标分页基于"上一页最后一行的主键"定位，天然稳定
// 这个测试创建25个商品，按limit=10顺着next遍历，验证不重不漏
func TestProductPagination(t *testing.T) {
	_, staffToken := RegisterTestUser(t, "page_staff", "staff")
	categoryID := CreateTestCategory(t, staffToken, "分页测试分类")

	// 创建25个商品
	created := make(map[uint]bool, 25)
	for i := 0; i < 25; i++ {
		id := CreateTestProduct(t, staffToken, fmt.Sprintf("分页商品%02d", i), categoryID)
		created[id] = true
	}
	t.Logf("✓ 已创建 %d 个测试商品", len(created))

	t.Run("顺着next遍历不重不漏", func(t *testing.T) {
		seen := make(map[uint]bool)
		url := BaseURL + "/products?limit=10"
		pages := 0

		for {
			resp := GetJSON(t, url, staffToken)
			require.Equal(t, 0, resp.Code, "查询列表失败: %s", resp.Message)

			var page productPage
			require.NoError(t, json.Unmarshal(resp.Data, &page))
			require.LessOrEqual(t, len(page.List), 10, "单页不应该超过limit")

			for _, item := range page.List {
				require.False(t, seen[item.ID], "商品%d在遍历中重复出现", item.ID)
				seen[item.ID] = true
			}

			pages++
			require.Less(t, pages, 1000, "遍历页数异常，可能死循环")

			if page.Cursor.Next == nil {
				break
			}
			url = BaseURL + "/products?limit=10&after=" + *page.Cursor.Next
		}

		// 所有本测试创建的商品都应该被遍历到
		for id := range created {
			assert.True(t, seen[id], "商品%d应该在遍历结果中", id)
		}
		t.Logf("✓ 遍历%d页共%d个商品，无重复无遗漏", pages, len(seen))
	})

	t.Run("首页的prev为空", func(t *testing.T) {
		resp := GetJSON(t, BaseURL+"/products?limit=10", staffToken)
		require.Equal(t, 0, resp.Code)

		var page productPage
		require.NoError(t, json.Unmarshal(resp.Data, &page))
		assert.Nil(t, page.Cursor.Prev, "首页没有上一页")
	})

	t.Run("篡改游标返回明确错误", func(t *testing.T) {
		resp := GetJSON(t, BaseURL+"/products?limit=10&after=!!!not-a-cursor!!!", staffToken)
		assert.NotEqual(t, 0, resp.Code, "非法游标应该返回错误")
		t.Logf("✓ 非法游标正确返回错误: %s", resp.Message)
	})

	t.Run("limit超过上限应失败", func(t *testing.T) {
		resp := GetJSON(t, BaseURL+"/products?limit=10000", staffToken)
		assert.NotEqual(t, 0, resp.Code, "limit超过100应该被参数校验拦截")
	})
}
