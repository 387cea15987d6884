package controllers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 完整走一遍业务主线: 业主注册 -> 邀请住户 -> 住户接受邀请并登录
// -> 签发访客二维码 -> 门卫扫码 -> 业主查看出入记录
func TestInvitationLifecycle(t *testing.T) {
	_, router := newTestServer(t)

	ownerToken := registerOwner(t, router, "owner@example.com")

	// 业主创建邀请
	code, body := doJSON(t, router, http.MethodPost, "/api/invitations", ownerToken, map[string]interface{}{
		"email": "Resident@Example.com",
	})
	require.Equal(t, http.StatusCreated, code, "body=%v", body)

	data := body["data"].(map[string]interface{})
	invitation := data["invitation"].(map[string]interface{})
	token := invitation["token"].(string)
	require.NotEmpty(t, token)
	// 邮箱在入口处被规范为小写
	assert.Equal(t, "resident@example.com", invitation["email"])
	assert.Contains(t, data["link"].(string), "token="+token)

	// 接受页面加载时校验令牌
	code, body = doJSON(t, router, http.MethodGet, "/api/invitations/verify?token="+token, "", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "resident@example.com", body["data"].(map[string]interface{})["email"])

	// 不存在的令牌
	code, _ = doJSON(t, router, http.MethodGet, "/api/invitations/verify?token=no-such-token", "", nil)
	assert.Equal(t, http.StatusNotFound, code)

	// 住户接受邀请
	code, body = doJSON(t, router, http.MethodPost, "/api/invitations/accept", "", map[string]interface{}{
		"token":            token,
		"name":             "Jane Roe",
		"password":         "secret456",
		"confirm_password": "secret456",
		"apartment":        "4B",
	})
	require.Equal(t, http.StatusCreated, code, "body=%v", body)

	// 同一令牌不可二次使用
	code, body = doJSON(t, router, http.MethodPost, "/api/invitations/accept", "", map[string]interface{}{
		"token":            token,
		"name":             "Jane Roe",
		"password":         "secret456",
		"confirm_password": "secret456",
	})
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, "invitation already used or expired", body["message"])

	// 住户登录并签发二维码
	residentToken := login(t, router, "resident@example.com", "secret456")
	code, body = doJSON(t, router, http.MethodPost, "/api/qr", residentToken, map[string]interface{}{
		"visitor_name": "Carlos Mendoza",
	})
	require.Equal(t, http.StatusCreated, code)
	qrData := body["data"].(map[string]interface{})["qr_data"].(string)

	// 门卫扫码放行
	code, body = doJSON(t, router, http.MethodPost, "/api/qr/validate", "", map[string]interface{}{
		"qrData": qrData,
	})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, true, body["valid"])
	assert.Equal(t, "Jane Roe", body["data"].(map[string]interface{})["residentName"])
	assert.Equal(t, "4B", body["data"].(map[string]interface{})["apartment"])

	// 业主查看出入记录
	code, body = doJSON(t, router, http.MethodGet, "/api/access-logs", ownerToken, nil)
	require.Equal(t, http.StatusOK, code)
	logsData := body["data"].(map[string]interface{})
	assert.Equal(t, float64(1), logsData["total"])

	// 住户无权查看出入记录
	code, _ = doJSON(t, router, http.MethodGet, "/api/access-logs", residentToken, nil)
	assert.Equal(t, http.StatusForbidden, code)
}

func TestInvitationRequiresOwnerRole(t *testing.T) {
	_, router := newTestServer(t)

	ownerToken := registerOwner(t, router, "owner@example.com")

	// 创建一个住户
	code, body := doJSON(t, router, http.MethodPost, "/api/invitations", ownerToken, map[string]interface{}{
		"email": "resident@example.com",
	})
	require.Equal(t, http.StatusCreated, code)
	token := body["data"].(map[string]interface{})["invitation"].(map[string]interface{})["token"].(string)

	code, _ = doJSON(t, router, http.MethodPost, "/api/invitations/accept", "", map[string]interface{}{
		"token":            token,
		"name":             "Jane Roe",
		"password":         "secret456",
		"confirm_password": "secret456",
	})
	require.Equal(t, http.StatusCreated, code)
	residentToken := login(t, router, "resident@example.com", "secret456")

	// 住户不能创建邀请
	code, _ = doJSON(t, router, http.MethodPost, "/api/invitations", residentToken, map[string]interface{}{
		"email": "other@example.com",
	})
	assert.Equal(t, http.StatusForbidden, code)

	// 未认证的请求被拒绝
	code, _ = doJSON(t, router, http.MethodPost, "/api/invitations", "", map[string]interface{}{
		"email": "other@example.com",
	})
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestAcceptInvitationPasswordChecks(t *testing.T) {
	_, router := newTestServer(t)

	ownerToken := registerOwner(t, router, "owner@example.com")
	code, body := doJSON(t, router, http.MethodPost, "/api/invitations", ownerToken, map[string]interface{}{
		"email": "resident@example.com",
	})
	require.Equal(t, http.StatusCreated, code)
	token := body["data"].(map[string]interface{})["invitation"].(map[string]interface{})["token"].(string)

	// 两次密码不一致
	code, body = doJSON(t, router, http.MethodPost, "/api/invitations/accept", "", map[string]interface{}{
		"token":            token,
		"name":             "Jane Roe",
		"password":         "secret456",
		"confirm_password": "different",
	})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Passwords do not match", body["message"])

	// 密码过短
	code, body = doJSON(t, router, http.MethodPost, "/api/invitations/accept", "", map[string]interface{}{
		"token":            token,
		"name":             "Jane Roe",
		"password":         "abc",
		"confirm_password": "abc",
	})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Password must be at least 6 characters", body["message"])
}
