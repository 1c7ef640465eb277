package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/symmetric-cedric/lesson-schedule-app/pkg/redis"
	"github.com/symmetric-cedric/lesson-schedule-app/pkg/response"
)

const (
	rateLimitPrefix = "lesson:rate_limit:"
	// 本地限流器数量上限，超过后整体重置
	localLimiterCap = 10000
)

// localLimiters Redis 不可用时的进程内令牌桶，按 key 隔离
type localLimiters struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	every    rate.Limit
	burst    int
}

func newLocalLimiters(limit int, window time.Duration) *localLimiters {
	return &localLimiters{
		limiters: make(map[string]*rate.Limiter),
		every:    rate.Every(window / time.Duration(limit)),
		burst:    limit,
	}
}

func (l *localLimiters) allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	limiter, ok := l.limiters[key]
	if !ok {
		if len(l.limiters) >= localLimiterCap {
			l.limiters = make(map[string]*rate.Limiter)
		}
		limiter = rate.NewLimiter(l.every, l.burst)
		l.limiters[key] = limiter
	}
	return limiter.Allow()
}

// RateLimit 限流中间件
// 已登录请求按员工计数，否则按客户端 IP。优先使用 Redis 滑动窗口（多实例共享），
// rdb 为 nil 或 Redis 出错时退回进程内令牌桶；limit <= 0 表示不限流
func RateLimit(rdb *redis.Client, limit int, window time.Duration, logger *zap.Logger) gin.HandlerFunc {
	if limit <= 0 || window <= 0 {
		return func(c *gin.Context) { c.Next() }
	}
	local := newLocalLimiters(limit, window)

	return func(c *gin.Context) {
		subject := c.GetString(CtxStaffID)
		if subject == "" {
			subject = "ip:" + c.ClientIP()
		}
		key := rateLimitPrefix + subject + ":" + c.FullPath()

		var allowed bool
		if rdb != nil {
			ok, err := rdb.CheckRateLimit(c.Request.Context(), key, limit, window)
			if err != nil {
				logger.Warn("Redis 限流检查失败，改用本地限流", zap.String("key", key), zap.Error(err))
				ok = local.allow(key)
			}
			allowed = ok
		} else {
			allowed = local.allow(key)
		}

		if !allowed {
			logger.Warn("请求被限流", zap.String("key", key), zap.String("request_id", GetRequestID(c)))
			response.Error(c, http.StatusTooManyRequests, 10004, "请求过于频繁，请稍后再试")
			c.Abort()
			return
		}

		c.Next()
	}
}
