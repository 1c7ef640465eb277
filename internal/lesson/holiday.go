package lesson

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"cloud.google.com/go/civil"
)

// CancellationName 临时停课在假期表中的名称
const CancellationName = "停課"

// holidayLayout 假期原始文本格式，如 "1 January 2025"
const holidayLayout = "2 January 2006"

// Holiday 单个不上课日期
type Holiday struct {
	Date civil.Date
	Name string
}

// HolidaySet 不可变的不上课日期集合
//
// 基础集合在进程启动时加载一次，此后只读；
// 单次请求的临时停课通过 Union 得到新集合，不修改基础集合。
type HolidaySet struct {
	days map[civil.Date]string
}

// NewHolidaySet 由假期列表构造集合；同一天出现多次时保留第一个名称
func NewHolidaySet(holidays ...Holiday) *HolidaySet {
	days := make(map[civil.Date]string, len(holidays))
	for _, h := range holidays {
		if _, ok := days[h.Date]; !ok {
			days[h.Date] = h.Name
		}
	}
	return &HolidaySet{days: days}
}

// HolidayEntry 未解析的假期条目，Text 形如 "29 January 2025"
type HolidayEntry struct {
	Text string
	Name string
}

// ParseHolidays 按顺序解析假期条目，遇到第一个格式无效的条目即返回错误
func ParseHolidays(entries []HolidayEntry) (*HolidaySet, error) {
	holidays := make([]Holiday, 0, len(entries))
	for _, e := range entries {
		d, err := ParseHolidayDate(e.Text)
		if err != nil {
			return nil, err
		}
		holidays = append(holidays, Holiday{Date: d, Name: e.Name})
	}
	return NewHolidaySet(holidays...), nil
}

// ParseHolidayDate 解析单个 "1 January 2025" 形式的日期
func ParseHolidayDate(text string) (civil.Date, error) {
	t, err := time.Parse(holidayLayout, strings.TrimSpace(text))
	if err != nil {
		return civil.Date{}, fmt.Errorf("假期日期 %q 格式无效: %w", text, err)
	}
	return civil.DateOf(t), nil
}

// Contains 日期是否为不上课日
func (s *HolidaySet) Contains(d civil.Date) bool {
	if s == nil {
		return false
	}
	_, ok := s.days[d]
	return ok
}

// Name 返回假期名称，非假期时返回空串
func (s *HolidaySet) Name(d civil.Date) string {
	if s == nil {
		return ""
	}
	return s.days[d]
}

// Len 集合大小
func (s *HolidaySet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.days)
}

// Union 返回 s ∪ 临时停课日期 的新集合，s 本身不变
func (s *HolidaySet) Union(cancellations ...civil.Date) *HolidaySet {
	days := make(map[civil.Date]string, s.Len()+len(cancellations))
	if s != nil {
		for d, name := range s.days {
			days[d] = name
		}
	}
	for _, d := range cancellations {
		if _, ok := days[d]; !ok {
			days[d] = CancellationName
		}
	}
	return &HolidaySet{days: days}
}

// List 按日期升序返回全部假期
func (s *HolidaySet) List() []Holiday {
	if s == nil {
		return nil
	}
	list := make([]Holiday, 0, len(s.days))
	for d, name := range s.days {
		list = append(list, Holiday{Date: d, Name: name})
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Date.Before(list[j].Date) })
	return list
}
