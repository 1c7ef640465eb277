package model

// 员工角色
const (
	RoleAdmin = "admin"
	RoleStaff = "staff"
)

// Staff 分校员工账号 — 对应 staff
type Staff struct {
	StaffID      string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"staff_id"`
	Username     string `gorm:"type:varchar(50);not null;uniqueIndex"          json:"username"`
	Name         string `gorm:"type:varchar(50);not null"                      json:"name"`
	PasswordHash string `gorm:"type:varchar(100);not null"                     json:"-"`
	Branch       string `gorm:"type:varchar(20);not null"                      json:"branch"`
	Role         string `gorm:"type:varchar(10);not null;default:'staff'"      json:"role"`
	IsActive     bool   `gorm:"not null;default:true"                          json:"is_active"`
	Timestamps
}

// TableName 指定表名
func (Staff) TableName() string { return "staff" }
