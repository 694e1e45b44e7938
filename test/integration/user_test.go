package integration

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 教学说明：用户模块集成测试
// 覆盖注册、登录、JWT鉴权、登出（令牌黑名单）的完整闭环

// TestUserRegister 测试用户注册
func TestUserRegister(t *testing.T) {
	t.Run("正常注册", func(t *testing.T) {
		suffix := uniqueSuffix()
		req := map[string]string{
			"username":   "staff_" + suffix,
			"first_name": "四",
			"last_name":  "李",
			"email":      fmt.Sprintf("staff_%s@test.com", suffix),
			"password":   "Test1234",
			"role":       "staff",
		}

		resp := PostJSON(t, BaseURL+"/users/register", req, "")
		assert.Equal(t, 0, resp.Code, "注册应该成功: %s", resp.Message)

		var data UserData
		require.NoError(t, json.Unmarshal(resp.Data, &data))
		assert.NotZero(t, data.ID)
		assert.Equal(t, "staff", data.Role)
	})

	t.Run("重复邮箱应失败", func(t *testing.T) {
		suffix := uniqueSuffix()
		req := map[string]string{
			"username": "dup_" + suffix,
			"email":    fmt.Sprintf("dup_%s@test.com", suffix),
			"password": "Test1234",
			"role":     "staff",
		}

		resp1 := PostJSON(t, BaseURL+"/users/register", req, "")
		require.Equal(t, 0, resp1.Code, "第一次注册应该成功")

		req["username"] = "dup2_" + suffix
		resp2 := PostJSON(t, BaseURL+"/users/register", req, "")
		assert.NotEqual(t, 0, resp2.Code, "重复邮箱应该失败")
		t.Logf("✓ 重复邮箱正确被拒绝: %s", resp2.Message)
	})

	t.Run("非法角色应失败", func(t *testing.T) {
		suffix := uniqueSuffix()
		req := map[string]string{
			"username": "bad_" + suffix,
			"email":    fmt.Sprintf("bad_%s@test.com", suffix),
			"password": "Test1234",
			"role":     "superuser",
		}

		resp := PostJSON(t, BaseURL+"/users/register", req, "")
		assert.NotEqual(t, 0, resp.Code, "非法角色应该被参数校验拦截")
	})

	t.Run("密码太短应失败", func(t *testing.T) {
		suffix := uniqueSuffix()
		req := map[string]string{
			"username": "short_" + suffix,
			"email":    fmt.Sprintf("short_%s@test.com", suffix),
			"password": "123",
			"role":     "staff",
		}

		resp := PostJSON(t, BaseURL+"/users/register", req, "")
		assert.NotEqual(t, 0, resp.Code, "密码太短应该失败")
	})
}

// TestUserLogin 测试登录和鉴权
func TestUserLogin(t *testing.T) {
	suffix := uniqueSuffix()
	email := fmt.Sprintf("login_%s@test.com", suffix)
	registerReq := map[string]string{
		"username": "login_" + suffix,
		"email":    email,
		"password": "Test1234",
		"role":     "staff",
	}
	registerResp := PostJSON(t, BaseURL+"/users/register", registerReq, "")
	require.Equal(t, 0, registerResp.Code, "注册失败: %s", registerResp.Message)

	t.Run("正确密码登录", func(t *testing.T) {
		resp := PostJSON(t, BaseURL+"/users/login", map[string]string{
			"email":    email,
			"password": "Test1234",
		}, "")
		require.Equal(t, 0, resp.Code, "登录应该成功: %s", resp.Message)

		var data LoginData
		require.NoError(t, json.Unmarshal(resp.Data, &data))
		assert.NotEmpty(t, data.AccessToken, "应该返回Access Token")
		assert.NotEmpty(t, data.RefreshToken, "应该返回Refresh Token")
		assert.Equal(t, email, data.User.Email)
	})

	t.Run("错误密码应失败", func(t *testing.T) {
		resp := PostJSON(t, BaseURL+"/users/login", map[string]string{
			"email":    email,
			"password": "WrongPass1",
		}, "")
		assert.NotEqual(t, 0, resp.Code, "错误密码应该失败")
	})

	t.Run("带Token访问个人信息", func(t *testing.T) {
		_, token := RegisterTestUser(t, "profile", "staff")

		resp := GetJSON(t, BaseURL+"/users/profile", token)
		assert.Equal(t, 0, resp.Code, "带Token应该能访问: %s", resp.Message)
	})

	t.Run("不带Token访问应失败", func(t *testing.T) {
		resp := GetJSON(t, BaseURL+"/users/profile", "")
		assert.NotEqual(t, 0, resp.Code, "不带Token应该被拒绝")
	})
}

// TestUserLogout 测试登出后令牌失效（Redis黑名单）
func TestUserLogout(t *testing.T) {
	_, token := RegisterTestUser(t, "logout", "staff")

	// 登出前可以访问
	resp := GetJSON(t, BaseURL+"/users/profile", token)
	require.Equal(t, 0, resp.Code, "登出前应该能访问")

	// 登出
	logoutResp := PostJSON(t, BaseURL+"/users/logout", nil, token)
	require.Equal(t, 0, logoutResp.Code, "登出应该成功: %s", logoutResp.Message)

	// 黑名单写入Redis后旧Token立即失效
	time.Sleep(100 * time.Millisecond)
	afterResp := GetJSON(t, BaseURL+"/users/profile", token)
	assert.NotEqual(t, 0, afterResp.Code, "登出后旧Token应该失效")
	t.Logf("✓ 登出后旧Token正确失效: %s", afterResp.Message)
}

// TestRoleAccess 测试角色权限控制
func TestRoleAccess(t *testing.T) {
	_, customerToken := RegisterTestUser(t, "rbac_customer", "customer")
	_, staffToken := RegisterTestUser(t, "rbac_staff", "staff")

	t.Run("customer不能创建分类", func(t *testing.T) {
		req := map[string]string{"name": "越权分类_" + uniqueSuffix()}
		resp := PostJSON(t, BaseURL+"/categories", req, customerToken)
		assert.NotEqual(t, 0, resp.Code, "customer创建分类应该被拒绝")
	})

	t.Run("customer不能查看库存", func(t *testing.T) {
		resp := GetJSON(t, BaseURL+"/stocks", customerToken)
		assert.NotEqual(t, 0, resp.Code, "customer查看库存应该被拒绝")
	})

	t.Run("staff不能删除商品", func(t *testing.T) {
		categoryID := CreateTestCategory(t, staffToken, "权限测试")
		productID := CreateTestProduct(t, staffToken, "权限测试商品", categoryID)

		resp := DeleteJSON(t, fmt.Sprintf("%s/products/%d", BaseURL, productID), staffToken)
		assert.NotEqual(t, 0, resp.Code, "删除商品仅admin可用，staff应该被拒绝")
	})

	t.Run("staff可以查看看板", func(t *testing.T) {
		resp := GetJSON(t, BaseURL+"/dashboard", staffToken)
		assert.Equal(t, 0, resp.Code, "staff应该能访问看板: %s", resp.Message)
	})
}
