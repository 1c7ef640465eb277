package lesson

// SchoolName 学校名称，分校标签为 "創憶學坊(分校)"
const SchoolName = "創憶學坊"

// FormOptions 录入表单的固定选项
type FormOptions struct {
	Branches          []string
	LessonCounts      []int
	TimeSlots         []string
	Subjects          []string
	ValueAddedCourses []string
}

// Catalog 进程级静态配置：假期、价目表、周数表与表单选项
//
// 启动时构造一次并注入各服务，之后只读。
type Catalog struct {
	Holidays  *HolidaySet
	Fees      *FeeTable
	WeekSpans *WeekSpanTable
	Options   FormOptions
}

// BranchLabel 分校显示名
func BranchLabel(branch string) string {
	return SchoolName + "(" + branch + ")"
}

// HasBranch 分校是否存在
func (o FormOptions) HasBranch(b string) bool { return containsString(o.Branches, b) }

// HasTimeSlot 时段是否存在
func (o FormOptions) HasTimeSlot(s string) bool { return containsString(o.TimeSlots, s) }

// HasSubject 主科是否存在
func (o FormOptions) HasSubject(s string) bool { return containsString(o.Subjects, s) }

// HasValueAddedCourse 增值课程是否存在
func (o FormOptions) HasValueAddedCourse(s string) bool {
	return containsString(o.ValueAddedCourses, s)
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// ── 内置 2025 年数据 ──

// DefaultHolidays2025 香港 2025 年公众假期，按日期排列
var DefaultHolidays2025 = []HolidayEntry{
	{"1 January 2025", "一月一日"},
	{"29 January 2025", "農曆年初一"},
	{"30 January 2025", "農曆年初二"},
	{"31 January 2025", "農曆年初三"},
	{"4 April 2025", "清明節"},
	{"18 April 2025", "耶穌受難節"},
	{"19 April 2025", "耶穌受難節翌日"},
	{"21 April 2025", "復活節星期一"},
	{"1 May 2025", "勞動節"},
	{"5 May 2025", "佛誕"},
	{"31 May 2025", "端午節"},
	{"1 July 2025", "香港特別行政區成立紀念日"},
	{"1 October 2025", "國慶日"},
	{"7 October 2025", "中秋節翌日"},
	{"29 October 2025", "重陽節"},
	{"25 December 2025","聖誕節"},
	{"26 December 2025","聖誕節後第一個周日"},
}

// DefaultFormOptions 表单默认选项
func DefaultFormOptions() FormOptions {
	return FormOptions{
		Branches:     []string{"淘大", "黃埔", "太古", "將軍澳", "沙田"},
		LessonCounts: []int{4, 8, 10, 12, 24, 30, 36, 48, 72},
		TimeSlots: []string{
			"9:30-11:00", "10:00-11:30", "10:30-12:00", "11:00-12:30",
			"11:30-13:00", "12:00-13:30", "13:30-15:00", "14:00-15:30",
			"14:30-16:00", "15:00-16:30", "15:30-17:00", "16:00-17:30",
			"16:30-18:00", "17:00-18:30", "17:30-19:00",
		},
		Subjects: []string{
			"中文記憶閱讀", "英文拼音", "小一面試班", "小學銜接班", "小學精進班",
		},
		ValueAddedCourses: []string{
			"英文拼音", "高效寫字", "聆聽訓練", "說話訓練", "思維閱讀", "創意理解", "作文教學",
		},
	}
}

// DefaultCoursePrices 主科价目表
func DefaultCoursePrices() map[PriceKey]CoursePrice {
	return map[PriceKey]CoursePrice{
		{Frequency: 1, LessonCount: 4}:  {Tuition: 1280, Materials: 50},
		{Frequency: 1, LessonCount: 8}:  {Tuition: 2560, Materials: 100},
		{Frequency: 1, LessonCount: 12}: {Tuition: 3720, Materials: 150},
		{Frequency: 1, LessonCount: 24}: {Tuition: 7200, Materials: 300},
		{Frequency: 2, LessonCount: 8}:  {Tuition: 2480, Materials: 100},
		{Frequency: 2, LessonCount: 12}: {Tuition: 3600, Materials: 150},
		{Frequency: 2, LessonCount: 24}: {Tuition: 6960, Materials: 300},
		{Frequency: 2, LessonCount: 48}: {Tuition: 13440, Materials: 600},
		{Frequency: 3, LessonCount: 12}: {Tuition: 3480, Materials: 150},
		{Frequency: 3, LessonCount: 24}: {Tuition: 6720, Materials: 300},
		{Frequency: 3, LessonCount: 36}: {Tuition: 9720, Materials: 450},
		{Frequency: 3, LessonCount: 72}: {Tuition: 18720, Materials: 900},

		{Frequency: AnyFrequency, LessonCount: 10}: {Tuition: 3000, Materials: 120},
		{Frequency: AnyFrequency, LessonCount: 30}: {Tuition: 8700, Materials: 360},
	}
}

// DefaultValueAddedRates 增值课程每堂单价
func DefaultValueAddedRates() map[int]int64 {
	return map[int]int64{4: 100, 8: 100, 12: 75, 24: 50}
}

// DefaultOptionalItems 固定附加项目（负数为优惠）
func DefaultOptionalItems() map[string]int64 {
	return map[string]int64{
		"現金到校繳付24堂學費，送現金券": -50,
		"兄弟姊妹同報優惠":          -100,
		"舊生續報優惠":            -80,
		"教材速遞":              30,
	}
}

// DefaultWeekSpans 基础收费周数表
func DefaultWeekSpans() map[SpanKey]int {
	return map[SpanKey]int{
		{Frequency: 1, LessonCount: 4}:  5,
		{Frequency: 1, LessonCount: 8}:  10,
		{Frequency: 1, LessonCount: 12}: 15,
		{Frequency: 1, LessonCount: 24}: 30,
		{Frequency: 1, LessonCount: 36}: 45,
		{Frequency: 1, LessonCount: 48}: 60,
		{Frequency: 2, LessonCount: 8}:  5,
		{Frequency: 2, LessonCount: 12}: 8,
		{Frequency: 2, LessonCount: 24}: 15,
		{Frequency: 2, LessonCount: 36}: 23,
		{Frequency: 2, LessonCount: 48}: 30,
		{Frequency: 2, LessonCount: 72}: 45,
		{Frequency: 3, LessonCount: 12}: 5,
		{Frequency: 3, LessonCount: 24}: 10,
		{Frequency: 3, LessonCount: 36}: 15,
		{Frequency: 3, LessonCount: 48}: 20,
		{Frequency: 3, LessonCount: 72}: 30,
	}
}

// DirectWeekSpanCounts 周数直接等于堂数的特例
var DirectWeekSpanCounts = []int{10, 30}

// DefaultCatalog 内置 2025 年配置
func DefaultCatalog() (*Catalog, error) {
	holidays, err := ParseHolidays(DefaultHolidays2025)
	if err != nil {
		return nil, err
	}
	return &Catalog{
		Holidays:  holidays,
		Fees:      NewFeeTable(DefaultCoursePrices(), DefaultValueAddedRates(), DefaultOptionalItems()),
		WeekSpans: NewWeekSpanTable(DefaultWeekSpans(), DirectWeekSpanCounts...),
		Options:   DefaultFormOptions(),
	}, nil
}
