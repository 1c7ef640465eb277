package lesson

import (
	"regexp"
	"strconv"
	"strings"
)

// OptionalItemKind 附加项目来源
type OptionalItemKind string

const (
	// OptionalFixed 价目表中的固定项目
	OptionalFixed OptionalItemKind = "fixed"
	// OptionalFreeText 自由输入、以 "(+$金额)" 结尾的临时项目
	OptionalFreeText OptionalItemKind = "free_text"
)

// OptionalItem 附加项目（优惠或附加费）
type OptionalItem struct {
	Kind  OptionalItemKind
	Label string
	Delta int64
}

// freeTextAmount 匹配结尾的 "(+$150)"，允许千分位逗号与半角 / 全角括号
var freeTextAmount = regexp.MustCompile(`[(（]\s*\+\s*\$\s*([0-9][0-9,]*)\s*[)）]\s*$`)

// ParseOptionalItems 在请求入口把文字标签转为 OptionalItem
//
// 价目表优先；否则尝试解析 "(+$金额)" 后缀；两者都失败的标签不计入费用，
// 以 *MalformedLabelError 返回给调用方提示。
func ParseOptionalItems(labels []string, table *FeeTable) ([]OptionalItem, []error) {
	items := make([]OptionalItem, 0, len(labels))
	var errs []error
	for _, raw := range labels {
		label := strings.TrimSpace(raw)
		if label == "" {
			continue
		}
		if delta, ok := table.LookupOptional(label); ok {
			items = append(items, OptionalItem{Kind: OptionalFixed, Label: label, Delta: delta})
			continue
		}
		delta, ok := parseFreeTextAmount(label)
		if !ok {
			errs = append(errs, &MalformedLabelError{Label: label})
			continue
		}
		items = append(items, OptionalItem{Kind: OptionalFreeText, Label: label, Delta: delta})
	}
	return items, errs
}

func parseFreeTextAmount(label string) (int64, bool) {
	m := freeTextAmount.FindStringSubmatch(label)
	if m == nil {
		return 0, false
	}
	n, err := strconv.ParseInt(strings.ReplaceAll(m[1], ",", ""), 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}
