package lesson

import (
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/civil"
)

// Weekday 星期序号：Monday=0 … Sunday=6（与 time.Weekday 的 Sunday=0 不同）
type Weekday int

const (
	Monday Weekday = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

var weekdayNames = [7]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// ChineseWeekdays 按 Weekday 序号排列的中文星期名
var ChineseWeekdays = [7]string{"星期一", "星期二", "星期三", "星期四", "星期五", "星期六", "星期日"}

// Valid 是否为 0-6 之间的合法值
func (w Weekday) Valid() bool {
	return w >= Monday && w <= Sunday
}

func (w Weekday) String() string {
	if !w.Valid() {
		return fmt.Sprintf("Weekday(%d)", int(w))
	}
	return weekdayNames[w]
}

// Chinese 返回中文星期名
func (w Weekday) Chinese() string {
	if !w.Valid() {
		return ""
	}
	return ChineseWeekdays[w]
}

// WeekdayOf 返回日期对应的 Weekday
func WeekdayOf(d civil.Date) Weekday {
	// time.Weekday: Sunday=0 → 平移到 Monday=0
	return Weekday((int(d.In(time.UTC).Weekday()) + 6) % 7)
}

// ParseWeekday 解析英文全称（大小写不敏感）或中文星期名
func ParseWeekday(s string) (Weekday, error) {
	s = strings.TrimSpace(s)
	for i, name := range weekdayNames {
		if strings.EqualFold(s, name) || s == ChineseWeekdays[i] {
			return Weekday(i), nil
		}
	}
	return 0, fmt.Errorf("%w: 无法识别的星期 %q", ErrInvalidRequest, s)
}

// WeekdaySet 上课星期集合
type WeekdaySet uint8

// NewWeekdaySet 由若干 Weekday 构造集合，重复值合并
func NewWeekdaySet(days ...Weekday) WeekdaySet {
	var s WeekdaySet
	for _, d := range days {
		if d.Valid() {
			s |= 1 << uint(d)
		}
	}
	return s
}

// Has 是否包含 d
func (s WeekdaySet) Has(d Weekday) bool {
	return d.Valid() && s&(1<<uint(d)) != 0
}

// Len 集合大小，即每周上课次数
func (s WeekdaySet) Len() int {
	n := 0
	for d := Monday; d <= Sunday; d++ {
		if s.Has(d) {
			n++
		}
	}
	return n
}

// Empty 集合是否为空
func (s WeekdaySet) Empty() bool { return s == 0 }

// Days 按星期升序返回集合元素
func (s WeekdaySet) Days() []Weekday {
	days := make([]Weekday, 0, 7)
	for d := Monday; d <= Sunday; d++ {
		if s.Has(d) {
			days = append(days, d)
		}
	}
	return days
}
