package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/symmetric-cedric/lesson-schedule-app/pkg/jwt"
	"github.com/symmetric-cedric/lesson-schedule-app/pkg/redis"
	"github.com/symmetric-cedric/lesson-schedule-app/pkg/response"
)

// 认证信息在 gin.Context 中的键
const (
	CtxStaffID  = "staff_id"
	CtxRole     = "role"
	CtxBranch   = "branch"
	CtxTokenJTI = "token_jti"
	CtxTokenExp = "token_exp"
)

// JWTAuth 员工 JWT 认证中间件
// 从 Authorization: Bearer <token> 中提取 Access Token，并检查注销黑名单。
// rdb 为 nil 时跳过黑名单检查（降级模式）
func JWTAuth(jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, 10002, "缺少认证头")
			c.Abort()
			return
		}

		scheme, token, found := strings.Cut(authHeader, " ")
		if !found || scheme != "Bearer" || token == "" {
			response.Unauthorized(c, 10002, "认证头格式无效")
			c.Abort()
			return
		}

		claims, err := jwtMgr.ParseToken(token)
		if err != nil {
			response.Unauthorized(c, 10002, "Token 无效或已过期")
			c.Abort()
			return
		}

		if rdb != nil {
			revoked, err := rdb.IsBlacklisted(c.Request.Context(), claims.ID)
			if err != nil {
				logger.Warn("检查 Token 黑名单失败，降级放行", zap.Error(err))
			} else if revoked {
				response.Unauthorized(c, 10002, "Token 已注销")
				c.Abort()
				return
			}
		}

		var exp time.Time
		if claims.ExpiresAt != nil {
			exp = claims.ExpiresAt.Time
		}

		c.Set(CtxStaffID, claims.StaffID)
		c.Set(CtxRole, claims.Role)
		c.Set(CtxBranch, claims.Branch)
		c.Set(CtxTokenJTI, claims.ID)
		c.Set(CtxTokenExp, exp)

		c.Next()
	}
}

// RoleAuth 角色权限中间件，当前员工须具备 allowedRoles 之一
func RoleAuth(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(CtxRole)
		if role == "" {
			response.Unauthorized(c, 10002, "未认证")
			c.Abort()
			return
		}

		for _, r := range allowedRoles {
			if role == r {
				c.Next()
				return
			}
		}

		response.Forbidden(c, 10003, "无权限访问")
		c.Abort()
	}
}
