package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/symmetric-cedric/lesson-schedule-app/internal/api/middleware"
	"github.com/symmetric-cedric/lesson-schedule-app/pkg/response"
)

// MustGetStaffID 从 Gin 上下文中提取 staff_id。
// JWT 中间件未注入时写入 401 响应并返回 false，调用方应直接 return。
func MustGetStaffID(c *gin.Context) (string, bool) {
	id := c.GetString(middleware.CtxStaffID)
	if id == "" {
		response.Unauthorized(c, 10002, "未认证")
		return "", false
	}
	return id, true
}

// MustGetTokenInfo 提取当前 Token 的 jti 与过期时间（用于注销）
func MustGetTokenInfo(c *gin.Context) (string, time.Time, bool) {
	jti := c.GetString(middleware.CtxTokenJTI)
	if jti == "" {
		response.Unauthorized(c, 10002, "未认证")
		return "", time.Time{}, false
	}
	return jti, c.GetTime(middleware.CtxTokenExp), true
}
