// Package validate 注册请求绑定用的自定义校验标签与中文错误信息
package validate

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/locales/zh"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	zhtrans "github.com/go-playground/validator/v10/translations/zh"

	"github.com/symmetric-cedric/lesson-schedule-app/internal/lesson"
)

// 自定义标签
const (
	weekdayTag  = "weekday"  // Monday…Sunday 或 星期一…星期日
	ymdTag      = "ymd"      // YYYY-MM-DD
	notBlankTag = "notblank" // 去除空白后非空
)

var (
	translator ut.Translator
	once       sync.Once
	setupErr   error
)

// RegisterGin 将自定义标签注册到 gin 默认校验器，可重复调用
func RegisterGin() error {
	once.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			setupErr = errors.New("gin 校验引擎不是 validator/v10")
			return
		}
		setupErr = Register(v)
	})
	return setupErr
}

// Register 向 v 注册自定义标签、JSON 字段名与中文翻译
func Register(v *validator.Validate) error {
	// 错误信息使用 JSON 字段名
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	if err := v.RegisterValidation(weekdayTag, weekdayValidation); err != nil {
		return err
	}
	if err := v.RegisterValidation(ymdTag, ymdValidation); err != nil {
		return err
	}
	if err := v.RegisterValidation(notBlankTag, notBlankValidation); err != nil {
		return err
	}

	locale := zh.New()
	uni := ut.New(locale, locale)
	translator, _ = uni.GetTranslator("zh")
	if err := zhtrans.RegisterDefaultTranslations(v, translator); err != nil {
		return err
	}

	custom := map[string]string{
		weekdayTag:  "{0}必须是有效的星期",
		ymdTag:      "{0}必须是 YYYY-MM-DD 格式的日期",
		notBlankTag: "{0}不能为空白",
	}
	for tag, text := range custom {
		text := text
		tag := tag
		err := v.RegisterTranslation(tag, translator,
			func(t ut.Translator) error { return t.Add(tag, text, true) },
			func(t ut.Translator, fe validator.FieldError) string {
				msg, _ := t.T(fe.Tag(), fe.Field())
				return msg
			},
		)
		if err != nil {
			return err
		}
	}
	return nil
}

// Describe 将绑定错误转换为逐字段说明；非校验错误（如 JSON 格式错误）原样返回
func Describe(err error) string {
	var ves validator.ValidationErrors
	if !errors.As(err, &ves) {
		return err.Error()
	}
	parts := make([]string, 0, len(ves))
	for _, fe := range ves {
		msg := fe.Error()
		if translator != nil {
			msg = fe.Translate(translator)
		}
		parts = append(parts, fieldPath(fe)+": "+msg)
	}
	return strings.Join(parts, "; ")
}

// fieldPath 去掉顶层结构体名，如 QuoteRequest.days[0].weekday → days[0].weekday
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func weekdayValidation(fl validator.FieldLevel) bool {
	s, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	_, err := lesson.ParseWeekday(s)
	return err == nil
}

func ymdValidation(fl validator.FieldLevel) bool {
	s, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	_, err := lesson.ParseISODate(s)
	return err == nil
}

func notBlankValidation(fl validator.FieldLevel) bool {
	if s, ok := fl.Field().Interface().(string); ok {
		return strings.TrimSpace(s) != ""
	}
	return false
}
