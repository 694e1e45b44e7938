package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type row struct {
	ID int64
}

func rowKey(r row) int64 { return r.ID }

// makeRows 生成ID为1..n的升序数据集
func makeRows(n int) []row {
	rows := make([]row, n)
	for i := range rows {
		rows[i] = row{ID: int64(i + 1)}
	}
	return rows
}

// fetchPage 在内存数据集上复刻Paginate的查询语义（过滤/排序/limit+1探测），
// 再走同一个assemblePage。与SQL路径的唯一差别是数据来源
func fetchPage(t *testing.T, data []row, p Params) *Page[row] {
	t.Helper()

	limit := clampLimit(p.Limit)
	backward := false
	var filtered []row

	switch {
	case p.After != "":
		v, err := DecodeCursor(p.After)
		require.NoError(t, err)
		for _, r := range data {
			if r.ID > v {
				filtered = append(filtered, r)
			}
		}
	case p.Before != "":
		v, err := DecodeCursor(p.Before)
		require.NoError(t, err)
		// 降序取紧邻的前序行
		for i := len(data) - 1; i >= 0; i-- {
			if data[i].ID < v {
				filtered = append(filtered, data[i])
			}
		}
		backward = true
	default:
		filtered = append(filtered, data...)
	}

	if len(filtered) > limit+1 {
		filtered = filtered[:limit+1]
	}

	return assemblePage(filtered, limit, backward, p.After != "", rowKey)
}

// TestClampLimit limit被限制在[1,100]，0取默认值
func TestClampLimit(t *testing.T) {
	assert.Equal(t, DefaultLimit, clampLimit(0))
	assert.Equal(t, DefaultLimit, clampLimit(-5))
	assert.Equal(t, 1, clampLimit(1))
	assert.Equal(t, 37, clampLimit(37))
	assert.Equal(t, MaxLimit, clampLimit(100))
	assert.Equal(t, MaxLimit, clampLimit(1000))
}

// TestPageSizeNeverExceedsLimit 任意limit下返回行数不超过limit
func TestPageSizeNeverExceedsLimit(t *testing.T) {
	data := makeRows(250)
	for _, limit := range []int{1, 2, 10, 99, 100} {
		page := fetchPage(t, data, Params{Limit: limit})
		assert.LessOrEqual(t, len(page.Items), limit, "返回行数不能超过limit")
	}
}

// TestFirstPage 第一页：无prev，有下一页时有next
func TestFirstPage(t *testing.T) {
	data := makeRows(25)

	page := fetchPage(t, data, Params{Limit: 10})
	require.Len(t, page.Items, 10)
	assert.Equal(t, int64(1), page.Items[0].ID)
	assert.Equal(t, int64(10), page.Items[9].ID)
	require.NotNil(t, page.Next, "还有15行，应有next")
	assert.Nil(t, page.Prev, "第一页没有prev")

	next, err := DecodeCursor(*page.Next)
	require.NoError(t, err)
	assert.Equal(t, int64(10), next, "next游标取自末行的排序键")
}

// TestLastPage 尾页：next为nil
func TestLastPage(t *testing.T) {
	data := makeRows(25)

	after := EncodeCursor(20)
	page := fetchPage(t, data, Params{Limit: 10, After: after})
	require.Len(t, page.Items, 5)
	assert.Nil(t, page.Next, "没有更多数据，next应为nil")
	require.NotNil(t, page.Prev, "使用了after且有结果，应有prev")

	prev, err := DecodeCursor(*page.Prev)
	require.NoError(t, err)
	assert.Equal(t, int64(21), prev, "prev游标取自首行的排序键")
}

// TestForwardTraversal 用next游标向后遍历：每行恰好访问一次且升序
func TestForwardTraversal(t *testing.T) {
	data := makeRows(23)

	var visited []int64
	p := Params{Limit: 5}
	pages := 0
	for {
		page := fetchPage(t, data, p)
		for _, r := range page.Items {
			visited = append(visited, r.ID)
		}
		pages++
		if page.Next == nil {
			break
		}
		p = Params{Limit: 5, After: *page.Next}
	}

	assert.Equal(t, 5, pages, "23行、每页5行应为5页")
	require.Len(t, visited, 23, "每行恰好访问一次")
	for i, id := range visited {
		assert.Equal(t, int64(i+1), id, "必须按排序键升序访问")
	}
}

// TestBackwardTraversal 从尾部用prev游标回溯到起点，顺序与正向相反
func TestBackwardTraversal(t *testing.T) {
	data := makeRows(23)

	// 先正向走到尾页，再从尾页的首行之前开始回溯
	before := EncodeCursor(21) // 尾页是21..23
	var visited []int64
	for {
		page := fetchPage(t, data, Params{Limit: 5, Before: before})
		if len(page.Items) == 0 {
			break
		}
		// 页内保持升序，记录时反转以得到整体逆序
		for i := len(page.Items) - 1; i >= 0; i-- {
			visited = append(visited, page.Items[i].ID)
		}
		if page.Prev == nil {
			break
		}
		before = *page.Prev
	}

	require.Len(t, visited, 20, "回溯应覆盖1..20")
	for i, id := range visited {
		assert.Equal(t, int64(20-i), id, "回溯必须按排序键降序访问")
	}
}

// TestBackwardPageKeepsAscendingOrder before页先降序抓取、返回前反转回升序
func TestBackwardPageKeepsAscendingOrder(t *testing.T) {
	data := makeRows(30)

	page := fetchPage(t, data, Params{Limit: 10, Before: EncodeCursor(25)})
	require.Len(t, page.Items, 10)
	assert.Equal(t, int64(15), page.Items[0].ID, "应取紧邻25之前的10行")
	assert.Equal(t, int64(24), page.Items[9].ID)

	// before页必须有next（允许重新向前翻页）
	require.NotNil(t, page.Next)
	next, err := DecodeCursor(*page.Next)
	require.NoError(t, err)
	assert.Equal(t, int64(24), next)

	// 前面还有1..14，应有prev
	require.NotNil(t, page.Prev)
	prev, err := DecodeCursor(*page.Prev)
	require.NoError(t, err)
	assert.Equal(t, int64(15), prev)
}

// TestBackwardToStart 回溯到最前面一页时prev为nil
func TestBackwardToStart(t *testing.T) {
	data := makeRows(10)

	page := fetchPage(t, data, Params{Limit: 10, Before: EncodeCursor(11)})
	require.Len(t, page.Items, 10)
	assert.Nil(t, page.Prev, "已到起点，prev应为nil")
	assert.NotNil(t, page.Next)
}

// TestEmptyPage 空结果：空列表、两个游标都为nil（是否视为NotFound由调用方决定）
func TestEmptyPage(t *testing.T) {
	page := fetchPage(t, nil, Params{Limit: 10})
	assert.Empty(t, page.Items)
	assert.Nil(t, page.Next)
	assert.Nil(t, page.Prev)

	page = fetchPage(t, makeRows(5), Params{Limit: 10, After: EncodeCursor(5)})
	assert.Empty(t, page.Items)
	assert.Nil(t, page.Next)
	assert.Nil(t, page.Prev)
}

// TestRoundTripTraversal 正向翻一页再用prev回来，应回到同一页（§稳定性）
func TestRoundTripTraversal(t *testing.T) {
	data := makeRows(30)

	first := fetchPage(t, data, Params{Limit: 10})
	require.NotNil(t, first.Next)

	second := fetchPage(t, data, Params{Limit: 10, After: *first.Next})
	require.NotNil(t, second.Prev)
	assert.Equal(t, int64(11), second.Items[0].ID)

	back := fetchPage(t, data, Params{Limit: 10, Before: *second.Prev})
	require.Len(t, back.Items, 10)
	assert.Equal(t, first.Items[0].ID, back.Items[0].ID, "回溯应回到第一页")
	assert.Equal(t, first.Items[9].ID, back.Items[9].ID)
}
