package dto

// ── 报价 / 导出请求 ──

// LessonDayRequest 每周上课日与时段，时段可省略
type LessonDayRequest struct {
	Weekday  string `json:"weekday"   binding:"required,weekday"`
	TimeSlot string `json:"time_slot"`
}

// QuoteRequest 报价请求，导出接口共用
//
// 日期一律为 YYYY-MM-DD；cancellations 为本次报价额外停课的日期，只在当前请求内生效。
type QuoteRequest struct {
	StudentName       string             `json:"student_name"        binding:"required,max=50"`
	Branch            string             `json:"branch"              binding:"required"`
	InvoiceNo         string             `json:"invoice_no"          binding:"omitempty,max=30"`
	DeclaredFee       *int64             `json:"declared_fee"        binding:"omitempty,min=0"`
	LessonCount       int                `json:"lesson_count"        binding:"required,min=1,max=200"`
	StartDate         string             `json:"start_date"          binding:"required,ymd"`
	Days              []LessonDayRequest `json:"days"                binding:"required,min=1,max=7,dive"`
	Subjects          []string           `json:"subjects"            binding:"required,min=1,dive,required"`
	ValueAddedCourses []string           `json:"value_added_courses" binding:"omitempty,dive,required"`
	OptionalItems     []string           `json:"optional_items"      binding:"omitempty,max=20"`
	Cancellations     []string           `json:"cancellations"       binding:"omitempty,max=60,dive,ymd"`
}
