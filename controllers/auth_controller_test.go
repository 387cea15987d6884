package controllers_test

import (
	"net/http"
	"testing"

	"github.com/denilsonbarahona/residencia/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterEndpoint(t *testing.T) {
	db, router := newTestServer(t)

	code, body := doJSON(t, router, http.MethodPost, "/api/auth/register", "", map[string]interface{}{
		"name":                "Juan Pérez",
		"email":               "owner@example.com",
		"password":            "secret123",
		"confirm_password":    "secret123",
		"residential_name":    "Residencial Las Palmas",
		"residential_address": "Av. Principal 123",
	})
	require.Equal(t, http.StatusCreated, code, "body=%v", body)

	data := body["data"].(map[string]interface{})
	assert.Equal(t, "owner", data["role"])
	// 响应中不暴露密码
	_, exposed := data["password"]
	assert.False(t, exposed)
	// 小区ID与业主用户ID相同
	assert.Equal(t, data["id"], data["residential_id"])

	var residential models.Residential
	require.NoError(t, db.First(&residential).Error)
	assert.Equal(t, "Residencial Las Palmas", residential.Name)

	// 重复邮箱
	code, body = doJSON(t, router, http.MethodPost, "/api/auth/register", "", map[string]interface{}{
		"name":             "Juan Pérez",
		"email":            "owner@example.com",
		"password":         "secret123",
		"confirm_password": "secret123",
		"residential_name": "Otro Residencial",
	})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "email already in use", body["message"])
}

func TestRegisterEndpointValidation(t *testing.T) {
	_, router := newTestServer(t)

	// 两次密码不一致
	code, body := doJSON(t, router, http.MethodPost, "/api/auth/register", "", map[string]interface{}{
		"name":             "Juan Pérez",
		"email":            "owner@example.com",
		"password":         "secret123",
		"confirm_password": "different",
		"residential_name": "Residencial Las Palmas",
	})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Passwords do not match", body["message"])

	// 密码过短
	code, body = doJSON(t, router, http.MethodPost, "/api/auth/register", "", map[string]interface{}{
		"name":             "Juan Pérez",
		"email":            "owner@example.com",
		"password":         "abc",
		"confirm_password": "abc",
		"residential_name": "Residencial Las Palmas",
	})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Password must be at least 6 characters", body["message"])

	// 缺少必填字段
	code, _ = doJSON(t, router, http.MethodPost, "/api/auth/register", "", map[string]interface{}{
		"email": "owner@example.com",
	})
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestLoginEndpoint(t *testing.T) {
	_, router := newTestServer(t)

	registerOwner(t, router, "owner@example.com")

	// 正确凭据
	code, body := doJSON(t, router, http.MethodPost, "/api/auth/login", "", map[string]interface{}{
		"email":    "owner@example.com",
		"password": "secret123",
	})
	require.Equal(t, http.StatusOK, code)
	data := body["data"].(map[string]interface{})
	assert.NotEmpty(t, data["token"])
	assert.Equal(t, "owner", data["role"])

	// 错误密码
	code, body = doJSON(t, router, http.MethodPost, "/api/auth/login", "", map[string]interface{}{
		"email":    "owner@example.com",
		"password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "Invalid email or password", body["message"])

	// 不存在的账户与错误密码的响应一致
	code, body = doJSON(t, router, http.MethodPost, "/api/auth/login", "", map[string]interface{}{
		"email":    "nobody@example.com",
		"password": "secret123",
	})
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "Invalid email or password", body["message"])
}

func TestProtectedRouteRejectsBadToken(t *testing.T) {
	_, router := newTestServer(t)

	code, _ := doJSON(t, router, http.MethodGet, "/api/qr", "not-a-jwt", nil)
	assert.Equal(t, http.StatusUnauthorized, code)
}
