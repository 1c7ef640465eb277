package dto

// ── 认证模块响应 ──

// TokenResponse 登录响应
type TokenResponse struct {
	AccessToken string        `json:"access_token"`
	ExpiresIn   int           `json:"expires_in"` // Access Token 有效期（秒）
	Staff       StaffResponse `json:"staff"`
}

// StaffResponse 员工信息（脱敏）
type StaffResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
	Branch   string `json:"branch"`
	Role     string `json:"role"`
}

// ── 报价响应 ──

// LessonRow 课堂明细
type LessonRow struct {
	Index    int    `json:"index"`
	Date     string `json:"date"` // dd/mm/yyyy
	ISODate  string `json:"iso_date"`
	Weekday  string `json:"weekday"` // 星期X
	TimeSlot string `json:"time_slot"`
}

// SkippedRow 因假期 / 停课顺延的日期
type SkippedRow struct {
	Date    string `json:"date"`
	ISODate string `json:"iso_date"`
	Weekday string `json:"weekday"`
	Reason  string `json:"reason"` // 假期名称或 "停課"
}

// PeriodResponse 收费周期
type PeriodResponse struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Weeks     int    `json:"weeks"`
	Label     string `json:"label"` // dd/mm/yyyy 至 dd/mm/yyyy
}

// OptionalItemRow 附加项目明细
type OptionalItemRow struct {
	Label  string `json:"label"`
	Kind   string `json:"kind"` // fixed | free_text
	Amount int64  `json:"amount"`
}

// FeeResponse 费用明细（港币整数）
type FeeResponse struct {
	Tuition        int64             `json:"tuition"`
	Materials      int64             `json:"materials"`
	ValueAddedUnit int64             `json:"value_added_unit"`
	ValueAdded     int64             `json:"value_added"`
	OptionalItems  []OptionalItemRow `json:"optional_items"`
	OptionalTotal  int64             `json:"optional_total"`
	Total          int64             `json:"total"`
}

// Warning 非致命提示，报价照常返回
type Warning struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// QuoteResponse 报价结果
type QuoteResponse struct {
	StudentName string         `json:"student_name"`
	Branch      string         `json:"branch"`
	BranchLabel string         `json:"branch_label"`
	InvoiceNo   string         `json:"invoice_no,omitempty"`
	Frequency   int            `json:"frequency"` // 每周上课次数
	LessonCount int            `json:"lesson_count"`
	Lessons     []LessonRow    `json:"lessons"`
	Skipped     []SkippedRow   `json:"skipped"`
	Period      PeriodResponse `json:"period"`
	Fees        FeeResponse    `json:"fees"`
	Subjects    string         `json:"subjects"`    // " / " 连接
	ValueAdded  string         `json:"value_added"` // " / " 连接
	Warnings    []Warning      `json:"warnings"`
}

// ── 表单选项响应 ──

// WeekdayOption 星期选项
type WeekdayOption struct {
	Value string `json:"value"` // Monday … Sunday
	Label string `json:"label"` // 星期一 … 星期日
}

// OptionalItemOption 固定附加项目
type OptionalItemOption struct {
	Label  string `json:"label"`
	Amount int64  `json:"amount"`
}

// HolidayItem 公众假期
type HolidayItem struct {
	Date    string `json:"date"` // YYYY-MM-DD
	Label   string `json:"label"`
	Name    string `json:"name"`
	Weekday string `json:"weekday"`
}

// CatalogResponse 录入表单所需的全部选项
type CatalogResponse struct {
	School            string               `json:"school"`
	Branches          []string             `json:"branches"`
	LessonCounts      []int                `json:"lesson_counts"`
	Weekdays          []WeekdayOption      `json:"weekdays"`
	TimeSlots         []string             `json:"time_slots"`
	Subjects          []string             `json:"subjects"`
	ValueAddedCourses []string             `json:"value_added_courses"`
	OptionalItems     []OptionalItemOption `json:"optional_items"`
	Holidays          []HolidayItem        `json:"holidays"`
}

// ── 导出响应 ──

// TextExportResponse 纯文本导出（供复制粘贴）
type TextExportResponse struct {
	Text string `json:"text"`
}
