package lesson

import (
	"fmt"
	"time"

	"cloud.google.com/go/civil"
)

// DateLayout 文档与文本统一使用的日期格式（日/月/年，补零）
const DateLayout = "02/01/2006"

// FormatDate 06/01/2025
func FormatDate(d civil.Date) string {
	return d.In(time.UTC).Format(DateLayout)
}

// FormatDateWithWeekday 06/01/2025 (星期一)
func FormatDateWithWeekday(d civil.Date) string {
	return fmt.Sprintf("%s (%s)", FormatDate(d), WeekdayOf(d).Chinese())
}

// FormatChineseDate 2025年 1 月 6 日 (星期一)
func FormatChineseDate(d civil.Date) string {
	return fmt.Sprintf("%d年 %d 月 %d 日 (%s)", d.Year, int(d.Month), d.Day, WeekdayOf(d).Chinese())
}

// String 收费周期文本，如 06/01/2025 至 09/02/2025
func (p BillingPeriod) String() string {
	return FormatDate(p.StartDate) + " 至 " + FormatDate(p.EndDate)
}

// ParseISODate 解析 YYYY-MM-DD
func ParseISODate(s string) (civil.Date, error) {
	d, err := civil.ParseDate(s)
	if err != nil {
		return civil.Date{}, fmt.Errorf("%w: 日期 %q 格式应为 YYYY-MM-DD", ErrInvalidRequest, s)
	}
	return d, nil
}
