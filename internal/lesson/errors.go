package lesson

import (
	"errors"
	"fmt"
)

// ── 排课 / 计费引擎错误 ──

var (
	// ErrInvalidRequest 请求不合法：上课星期为空、堂数为负、必填字段缺失
	ErrInvalidRequest = errors.New("排课请求无效")
	// ErrScheduleUnsatisfiable 在扫描上限内无法排满所需堂数
	ErrScheduleUnsatisfiable = errors.New("在可排期范围内无法排满课堂")
	// ErrUnconfiguredPricing (每周次数, 堂数) 组合未配置价格，金额按 0 计
	ErrUnconfiguredPricing = errors.New("该堂数组合未配置价格")
	// ErrMalformedOptionalItemLabel 附加项目既不在价目表中，也不符合 "(+$金额)" 格式
	ErrMalformedOptionalItemLabel = errors.New("附加项目格式无效")
)

// UnconfiguredPricingError 携带缺失的价格键
type UnconfiguredPricingError struct {
	Frequency   int
	LessonCount int
}

func (e *UnconfiguredPricingError) Error() string {
	return fmt.Sprintf("每周 %d 堂、共 %d 堂未配置价格", e.Frequency, e.LessonCount)
}

func (e *UnconfiguredPricingError) Unwrap() error { return ErrUnconfiguredPricing }

// MalformedLabelError 携带无法识别的附加项目文字
type MalformedLabelError struct {
	Label string
}

func (e *MalformedLabelError) Error() string {
	return fmt.Sprintf("附加项目 %q 无法识别金额", e.Label)
}

func (e *MalformedLabelError) Unwrap() error { return ErrMalformedOptionalItemLabel }
