package model

import "time"

// PublicHoliday 公众假期 — 对应 public_holidays
type PublicHoliday struct {
	HolidayDate time.Time `gorm:"type:date;primaryKey"     json:"holiday_date"`
	Name        string    `gorm:"type:varchar(50);not null" json:"name"`
}

// TableName 指定表名
func (PublicHoliday) TableName() string { return "public_holidays" }

// CoursePrice 主科价目 — 对应 course_prices
// Frequency = 0 表示不区分每周次数
type CoursePrice struct {
	Frequency   int   `gorm:"type:smallint;primaryKey" json:"frequency"`
	LessonCount int   `gorm:"type:smallint;primaryKey" json:"lesson_count"`
	Tuition     int64 `gorm:"not null"                 json:"tuition"`
	Materials   int64 `gorm:"not null;default:0"       json:"materials"`
}

// TableName 指定表名
func (CoursePrice) TableName() string { return "course_prices" }

// WeekSpan 收费周数 — 对应 week_spans
// Frequency = 0 的行表示周数直接等于堂数
type WeekSpan struct {
	Frequency   int `gorm:"type:smallint;primaryKey" json:"frequency"`
	LessonCount int `gorm:"type:smallint;primaryKey" json:"lesson_count"`
	Weeks       int `gorm:"type:smallint;not null"   json:"weeks"`
}

// TableName 指定表名
func (WeekSpan) TableName() string { return "week_spans" }

// ValueAddedRate 增值课程每堂单价 — 对应 value_added_rates
type ValueAddedRate struct {
	LessonCount int   `gorm:"type:smallint;primaryKey" json:"lesson_count"`
	UnitFee     int64 `gorm:"not null"                 json:"unit_fee"`
}

// TableName 指定表名
func (ValueAddedRate) TableName() string { return "value_added_rates" }

// OptionalItemPrice 附加项目 — 对应 optional_item_prices
type OptionalItemPrice struct {
	Label    string `gorm:"type:varchar(100);primaryKey" json:"label"`
	Delta    int64  `gorm:"not null"                     json:"delta"`
	IsActive bool   `gorm:"not null;default:true"        json:"is_active"`
}

// TableName 指定表名
func (OptionalItemPrice) TableName() string { return "optional_item_prices" }
