package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// 教学说明：集成测试辅助工具
// 集成测试需要先启动完整服务（go run ./cmd/api），再执行 go test ./test/integration/...
// 将重复的代码（HTTP请求、JSON解析、账号/档案准备）封装成可复用的函数

const (
	// BaseURL API基础URL
	BaseURL = "http://localhost:8080/api/v1"
	// Timeout HTTP请求超时时间
	Timeout = 10 * time.Second
)

// seq 进程内递增序号，和时间戳一起保证测试数据唯一
var seq uint64

// Response 统一响应结构
type Response struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// UserData 用户响应数据
type UserData struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

// LoginData 登录响应数据
type LoginData struct {
	User         UserData `json:"user"`
	AccessToken  string   `json:"access_token"`
	RefreshToken string   `json:"refresh_token"`
}

// ProductData 商品响应数据
type ProductData struct {
	ID         uint   `json:"id"`
	Name       string `json:"name"`
	Price      int64  `json:"price"`
	CategoryID uint   `json:"category_id"`
}

// CategoryData 分类响应数据
type CategoryData struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// SupplierData 供应商响应数据
type SupplierData struct {
	ID     uint   `json:"id"`
	UserID uint   `json:"user_id"`
	Name   string `json:"name"`
}

// CustomerData 客户响应数据
type CustomerData struct {
	ID     uint `json:"id"`
	UserID uint `json:"user_id"`
}

// StockData 库存批次响应数据
type StockData struct {
	ID                uint   `json:"id"`
	ProductID         uint   `json:"product_id"`
	BatchNumber       string `json:"batch_number"`
	AvailableQuantity int    `json:"available_quantity"`
}

// SupplierSummaryData 订单里嵌套的供应商摘要
type SupplierSummaryData struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// ProductSummaryData 订单里嵌套的商品摘要
type ProductSummaryData struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// CustomerSummaryData 订单里嵌套的客户摘要
type CustomerSummaryData struct {
	ID        uint   `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// IncomingOrderData 入库单响应数据
type IncomingOrderData struct {
	ID         uint                 `json:"id"`
	SupplierID uint                 `json:"supplier_id"`
	ProductID  uint                 `json:"product_id"`
	StockID    uint                 `json:"stock_id"`
	Quantity   int                  `json:"quantity"`
	TotalCost  int64                `json:"total_cost"`
	Status     string               `json:"status"`
	Supplier   *SupplierSummaryData `json:"supplier"`
	Product    *ProductSummaryData  `json:"product"`
}

// OutgoingOrderData 出库单响应数据
type OutgoingOrderData struct {
	ID         uint                 `json:"id"`
	CustomerID uint                 `json:"customer_id"`
	StockID    uint                 `json:"stock_id"`
	Quantity   int                  `json:"quantity"`
	UnitPrice  int64                `json:"unit_price"`
	TotalPrice int64                `json:"total_price"`
	Customer   *CustomerSummaryData `json:"customer"`
	Product    *ProductSummaryData  `json:"product"`
}

// CursorData 游标对
type CursorData struct {
	Next *string `json:"next"`
	Prev *string `json:"prev"`
}

// doJSON 发送HTTP请求并解析统一响应
//
// 教学说明：
// - 使用*testing.T参数，可以在失败时立即终止测试
// - 使用require包进行断言，失败会立即停止（不继续执行）
// - 返回*Response而非error，简化调用方代码
func doJSON(t *testing.T, method, url string, data interface{}, token string) *Response {
	t.Helper()

	var body io.Reader
	if data != nil {
		jsonData, err := json.Marshal(data)
		require.NoError(t, err, "JSON序列化失败")
		body = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequest(method, url, body)
	require.NoError(t, err, "创建HTTP请求失败")

	if data != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	client := &http.Client{Timeout: Timeout}
	resp, err := client.Do(req)
	require.NoError(t, err, "发送HTTP请求失败（服务是否已启动？）")
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "读取响应体失败")

	var result Response
	err = json.Unmarshal(respBody, &result)
	require.NoError(t, err, "解析JSON响应失败: %s", string(respBody))

	return &result
}

// PostJSON 发送POST请求
func PostJSON(t *testing.T, url string, data interface{}, token string) *Response {
	t.Helper()
	return doJSON(t, http.MethodPost, url, data, token)
}

// GetJSON 发送GET请求
func GetJSON(t *testing.T, url string, token string) *Response {
	t.Helper()
	return doJSON(t, http.MethodGet, url, nil, token)
}

// PatchJSON 发送PATCH请求
func PatchJSON(t *testing.T, url string, data interface{}, token string) *Response {
	t.Helper()
	return doJSON(t, http.MethodPatch, url, data, token)
}

// DeleteJSON 发送DELETE请求
func DeleteJSON(t *testing.T, url string, token string) *Response {
	t.Helper()
	return doJSON(t, http.MethodDelete, url, nil, token)
}

// uniqueSuffix 生成唯一后缀，避免测试重复运行时用户名/邮箱/批次号冲突
func uniqueSuffix() string {
	return fmt.Sprintf("%d_%d", time.Now().UnixNano(), atomic.AddUint64(&seq, 1))
}

// RegisterTestUser 注册指定角色的测试用户并返回Token
//
// 教学说明：
// 这是一个"高阶"辅助函数，封装了注册+登录的完整流程
// 简化了测试代码，让测试更关注业务逻辑而非基础设施
func RegisterTestUser(t *testing.T, prefix, role string) (userID uint, token string) {
	t.Helper()

	suffix := uniqueSuffix()
	email := fmt.Sprintf("%s_%s@test.com", prefix, suffix)
	registerReq := map[string]string{
		"username":   fmt.Sprintf("%s_%s", prefix, suffix),
		"first_name": "测",
		"last_name":  "试",
		"email":      email,
		"password":   "Test1234",
		"role":       role,
	}

	registerResp := PostJSON(t, BaseURL+"/users/register", registerReq, "")
	require.Equal(t, 0, registerResp.Code, "注册失败: %s", registerResp.Message)

	loginReq := map[string]string{
		"email":    email,
		"password": "Test1234",
	}
	loginResp := PostJSON(t, BaseURL+"/users/login", loginReq, "")
	require.Equal(t, 0, loginResp.Code, "登录失败: %s", loginResp.Message)

	var loginData LoginData
	err := json.Unmarshal(loginResp.Data, &loginData)
	require.NoError(t, err, "解析登录响应失败")

	return loginData.User.ID, loginData.AccessToken
}

// CreateTestCategory 创建测试分类并返回分类ID
func CreateTestCategory(t *testing.T, staffToken, name string) uint {
	t.Helper()

	req := map[string]string{
		"name":        fmt.Sprintf("%s_%s", name, uniqueSuffix()),
		"description": "集成测试分类",
	}
	resp := PostJSON(t, BaseURL+"/categories", req, staffToken)
	require.Equal(t, 0, resp.Code, "创建分类失败: %s", resp.Message)

	var data CategoryData
	require.NoError(t, json.Unmarshal(resp.Data, &data))
	return data.ID
}

// CreateTestProduct 创建测试商品并返回商品ID（单价12.50元）
func CreateTestProduct(t *testing.T, staffToken, name string, categoryID uint) uint {
	t.Helper()

	req := map[string]interface{}{
		"name":        fmt.Sprintf("%s_%s", name, uniqueSuffix()),
		"description": "集成测试商品",
		"price":       1250, // 12.50元
		"category_id": categoryID,
	}
	resp := PostJSON(t, BaseURL+"/products", req, staffToken)
	require.Equal(t, 0, resp.Code, "创建商品失败: %s", resp.Message)

	var data ProductData
	require.NoError(t, json.Unmarshal(resp.Data, &data))
	return data.ID
}

// CreateTestSupplier 注册供应商账号+建档，返回供应商ID和该账号的Token
func CreateTestSupplier(t *testing.T, staffToken string) (supplierID uint, supplierToken string) {
	t.Helper()

	userID, supplierToken := RegisterTestUser(t, "supplier", "supplier")
	req := map[string]interface{}{
		"user_id":      userID,
		"name":         fmt.Sprintf("测试供应商_%s", uniqueSuffix()),
		"phone_number": "021-88886666",
	}
	resp := PostJSON(t, BaseURL+"/suppliers", req, staffToken)
	require.Equal(t, 0, resp.Code, "供应商建档失败: %s", resp.Message)

	var data SupplierData
	require.NoError(t, json.Unmarshal(resp.Data, &data))
	return data.ID, supplierToken
}

// CreateTestCustomer 注册客户账号+建档，返回客户ID和该账号的Token
func CreateTestCustomer(t *testing.T, staffToken string) (customerID uint, customerToken string) {
	t.Helper()

	userID, customerToken := RegisterTestUser(t, "customer", "customer")
	req := map[string]interface{}{
		"user_id":    userID,
		"first_name": "小",
		"last_name":  "王",
	}
	resp := PostJSON(t, BaseURL+"/customers", req, staffToken)
	require.Equal(t, 0, resp.Code, "客户建档失败: %s", resp.Message)

	var data CustomerData
	require.NoError(t, json.Unmarshal(resp.Data, &data))
	return data.ID, customerToken
}

// CreateTestBatch 通过入库单产生一个库存批次，返回批次ID和入库单ID
//
// 教学说明：
// 批次只能通过入库单产生（或者管理员盘点调整），这里封装完整的入库流程
func CreateTestBatch(t *testing.T, staffToken string, supplierID, productID uint, quantity int) (stockID, orderID uint) {
	t.Helper()

	req := map[string]interface{}{
		"supplier_id":  supplierID,
		"product_id":   productID,
		"batch_number": fmt.Sprintf("BN_%s", uniqueSuffix()),
		"quantity":     quantity,
		"unit_cost":    1000, // 10.00元
		"supply_date":  time.Now().Format("2006-01-02"),
	}
	resp := PostJSON(t, BaseURL+"/incoming-orders", req, staffToken)
	require.Equal(t, 0, resp.Code, "创建入库单失败: %s", resp.Message)

	var data IncomingOrderData
	require.NoError(t, json.Unmarshal(resp.Data, &data))
	require.NotZero(t, data.StockID, "入库单应该返回产生的批次ID")
	return data.StockID, data.ID
}
