package dto

// ── 认证模块请求 ──

// LoginRequest 员工登录请求
type LoginRequest struct {
	Username string `json:"username" binding:"required,max=50"`
	Password string `json:"password" binding:"required,min=8,max=72"`
}

// CreateStaffRequest 管理员新建员工账号
type CreateStaffRequest struct {
	Username string `json:"username" binding:"required,notblank,max=50"`
	Name     string `json:"name"     binding:"required,notblank,max=50"`
	Branch   string `json:"branch"   binding:"required"`
	Password string `json:"password" binding:"required,min=8,max=72"`
	Admin    bool   `json:"admin"`
}
