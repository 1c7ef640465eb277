package errors

import "errors"

// 跨层共用的基础设施错误

// ErrCatalogEmpty 价目表或假期表为空，服务无法启动
var ErrCatalogEmpty = errors.New("价目 / 假期配置为空，请先执行数据库迁移")

// ErrRedisUnavailable Redis 未配置或不可用
var ErrRedisUnavailable = errors.New("Redis 不可用")
