package dto

import (
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/xiebiao/bookcatalog/internal/domain/book"
)

// RegisterValidators 在gin的binding引擎上注册自定义校验规则
// 需要在创建路由之前调用一次
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}

	// 错误信息中使用json字段名
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return v.RegisterValidation("price", priceValidator)
}

// priceValidator 价格格式与范围校验,规则与领域层ParsePrice一致
func priceValidator(fl validator.FieldLevel) bool {
	if fl.Field().Kind() != reflect.String {
		return false
	}
	_, err := book.ParsePrice(fl.Field().String())
	return err == nil
}
