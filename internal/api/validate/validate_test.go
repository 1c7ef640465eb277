package validate

import (
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
)

type sample struct {
	Name    string   `json:"name"    validate:"required,notblank"`
	Weekday string   `json:"weekday" validate:"required,weekday"`
	Date    string   `json:"date"    validate:"required,ymd"`
	Extra   []string `json:"extra"   validate:"omitempty,dive,ymd"`
}

func newValidator(t *testing.T) *validator.Validate {
	t.Helper()
	v := validator.New()
	if err := Register(v); err != nil {
		t.Fatalf("Register 失败: %v", err)
	}
	return v
}

func TestCustomTags_Valid(t *testing.T) {
	v := newValidator(t)

	cases := []sample{
		{Name: "陳大文", Weekday: "Monday", Date: "2025-01-06"},
		{Name: "陳大文", Weekday: "星期三", Date: "2025-12-31", Extra: []string{"2025-02-03"}},
		{Name: "陳大文", Weekday: "sunday", Date: "2024-02-29"},
	}
	for _, c := range cases {
		if err := v.Struct(c); err != nil {
			t.Errorf("期望校验通过 %+v，实际: %v", c, err)
		}
	}
}

func TestCustomTags_Invalid(t *testing.T) {
	v := newValidator(t)

	tests := []struct {
		name  string
		in    sample
		field string
	}{
		{"空白姓名", sample{Name: "  ", Weekday: "Monday", Date: "2025-01-06"}, "name"},
		{"无效星期", sample{Name: "A", Weekday: "Funday", Date: "2025-01-06"}, "weekday"},
		{"日期格式错误", sample{Name: "A", Weekday: "Monday", Date: "06/01/2025"}, "date"},
		{"不存在的日期", sample{Name: "A", Weekday: "Monday", Date: "2025-02-30"}, "date"},
		{"列表内日期错误", sample{Name: "A", Weekday: "Monday", Date: "2025-01-06", Extra: []string{"x"}}, "extra[0]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Struct(tt.in)
			if err == nil {
				t.Fatal("期望校验失败")
			}
			details := Describe(err)
			if !strings.Contains(details, tt.field+":") {
				t.Errorf("详情应包含字段 %s，实际: %s", tt.field, details)
			}
		})
	}
}

func TestDescribe_PlainError(t *testing.T) {
	plain := Describe(errPlain("unexpected EOF"))
	if plain != "unexpected EOF" {
		t.Errorf("非校验错误应原样返回，实际: %s", plain)
	}
}

type errPlain string

func (e errPlain) Error() string { return string(e) }
