package validator

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/lucasb-eyer/go-colorful"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	_ = validate.RegisterValidation("mapcolor", validateMapColor)
	_ = validate.RegisterValidation("notblank", validateNotBlank)
}

// Validate - валидация структуры
func Validate(s interface{}) error {
	return validate.Struct(s)
}

// GetValidator - получить валидатор для кастомной конфигурации
func GetValidator() *validator.Validate {
	return validate
}

// NormalizeColor приводит hex-цвет к виду #rrggbb.
// Поддерживаются формы #rgb и #rrggbb в любом регистре.
func NormalizeColor(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if len(s) != 4 && len(s) != 7 {
		return "", false
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return "", false
	}
	return c.Hex(), true
}

func validateMapColor(fl validator.FieldLevel) bool {
	_, ok := NormalizeColor(fl.Field().String())
	return ok
}

func validateNotBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}
