package lesson

import "sort"

// AnyFrequency 与每周次数无关的价格行（10 堂、30 堂）
const AnyFrequency = 0

// PriceKey 主科价格表键
type PriceKey struct {
	Frequency   int // 1、2、3；AnyFrequency 表示不区分
	LessonCount int
}

// CoursePrice 主科学费与教材费
type CoursePrice struct {
	Tuition   int64
	Materials int64
}

// FeeTable 静态价目表，加载后只读
type FeeTable struct {
	course      map[PriceKey]CoursePrice
	valueAdded  map[int]int64
	optional    map[string]int64
	optionOrder []string
}

// NewFeeTable 创建价目表
//   - course: (次数, 堂数) → 学费 / 教材费
//   - valueAdded: 堂数 → 增值课程每堂单价
//   - optional: 附加项目名称 → 带符号金额（负数为优惠）
func NewFeeTable(course map[PriceKey]CoursePrice, valueAdded map[int]int64, optional map[string]int64) *FeeTable {
	t := &FeeTable{
		course:     make(map[PriceKey]CoursePrice, len(course)),
		valueAdded: make(map[int]int64, len(valueAdded)),
		optional:   make(map[string]int64, len(optional)),
	}
	for k, v := range course {
		if k.Frequency != AnyFrequency {
			k.Frequency = NormalizeFrequency(k.Frequency)
		}
		t.course[k] = v
	}
	for k, v := range valueAdded {
		t.valueAdded[k] = v
	}
	for k, v := range optional {
		t.optional[k] = v
		t.optionOrder = append(t.optionOrder, k)
	}
	sort.Strings(t.optionOrder)
	return t
}

// MainCourseFee 主科学费与教材费
//
// 先按 (min(次数,3), 堂数) 精确匹配，未命中再查不区分次数的行；
// 都未命中时返回 (0, 0) 与 *UnconfiguredPricingError，调用方不可视为免费。
func (t *FeeTable) MainCourseFee(frequency, lessonCount int) (CoursePrice, error) {
	f := NormalizeFrequency(frequency)
	if p, ok := t.course[PriceKey{Frequency: f, LessonCount: lessonCount}]; ok {
		return p, nil
	}
	if p, ok := t.course[PriceKey{Frequency: AnyFrequency, LessonCount: lessonCount}]; ok {
		return p, nil
	}
	return CoursePrice{}, &UnconfiguredPricingError{Frequency: f, LessonCount: lessonCount}
}

// ValueAddedUnit 增值课程每堂单价，未定义的堂数为 0
func (t *FeeTable) ValueAddedUnit(lessonCount int) int64 {
	return t.valueAdded[lessonCount]
}

// ValueAddedFee 增值课程费 = 每堂单价 × 堂数
func (t *FeeTable) ValueAddedFee(lessonCount int) int64 {
	return t.ValueAddedUnit(lessonCount) * int64(lessonCount)
}

// OptionalItemsFee 附加项目合计与明细（保持输入顺序）
func (t *FeeTable) OptionalItemsFee(items []OptionalItem) (int64, []OptionalItem) {
	var total int64
	itemized := make([]OptionalItem, 0, len(items))
	for _, item := range items {
		total += item.Delta
		itemized = append(itemized, item)
	}
	return total, itemized
}

// LookupOptional 查询固定附加项目金额
func (t *FeeTable) LookupOptional(label string) (int64, bool) {
	v, ok := t.optional[label]
	return v, ok
}

// OptionalLabels 固定附加项目名称（按字典序）
func (t *FeeTable) OptionalLabels() []string {
	out := make([]string, len(t.optionOrder))
	copy(out, t.optionOrder)
	return out
}

// CoursePrices 返回主科价格表副本
func (t *FeeTable) CoursePrices() map[PriceKey]CoursePrice {
	out := make(map[PriceKey]CoursePrice, len(t.course))
	for k, v := range t.course {
		out[k] = v
	}
	return out
}

// FeeBreakdown 费用明细
type FeeBreakdown struct {
	Tuition        int64
	Materials      int64
	ValueAddedUnit int64
	ValueAdded     int64
	OptionalItems  []OptionalItem
	OptionalTotal  int64
	Total          int64
}

// Breakdown 计算总费用
//
// 有任一增值课程时收取一次增值课程费；价格未配置时照常返回明细并附带错误。
func (t *FeeTable) Breakdown(frequency, lessonCount int, withValueAdded bool, items []OptionalItem) (FeeBreakdown, error) {
	price, priceErr := t.MainCourseFee(frequency, lessonCount)

	fb := FeeBreakdown{
		Tuition:   price.Tuition,
		Materials: price.Materials,
	}
	if withValueAdded {
		fb.ValueAddedUnit = t.ValueAddedUnit(lessonCount)
		fb.ValueAdded = t.ValueAddedFee(lessonCount)
	}
	fb.OptionalTotal, fb.OptionalItems = t.OptionalItemsFee(items)
	fb.Total = fb.Tuition + fb.Materials + fb.ValueAdded + fb.OptionalTotal

	return fb, priceErr
}
