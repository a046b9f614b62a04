// Package validation registers the request binding rules of the API on gin's validator.
package validation

import (
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// Validation rule tags
const (
	// DecimalTag accepts a string that parses as an exact decimal
	DecimalTag = "decimal"
	// NonNegativeTag accepts a decimal that is zero or positive
	NonNegativeTag = "nonnegative"
	// TrimmedTag rejects strings that are blank after trimming
	TrimmedTag = "trimmed"
)

var registerOnce sync.Once

// RegisterGinValidators installs the rules on gin's default validator engine.
// Safe to call more than once.
func RegisterGinValidators() {
	registerOnce.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			Register(v)
		}
	})
}

// Register installs the rules on v. decimal.Decimal fields are validated as their
// string representation.
func Register(v *validator.Validate) {
	v.RegisterCustomTypeFunc(decimalValue, decimal.Decimal{})
	_ = v.RegisterValidation(DecimalTag, isDecimal)
	_ = v.RegisterValidation(NonNegativeTag, isNonNegative)
	_ = v.RegisterValidation(TrimmedTag, isTrimmed)
}

func decimalValue(field reflect.Value) interface{} {
	if d, ok := field.Interface().(decimal.Decimal); ok {
		return d.String()
	}
	return nil
}

func parseDecimal(fl validator.FieldLevel) (decimal.Decimal, bool) {
	if fl.Field().Kind() != reflect.String {
		return decimal.Decimal{}, false
	}
	d, err := decimal.NewFromString(strings.TrimSpace(fl.Field().String()))
	return d, err == nil
}

func isDecimal(fl validator.FieldLevel) bool {
	_, ok := parseDecimal(fl)
	return ok
}

func isNonNegative(fl validator.FieldLevel) bool {
	d, ok := parseDecimal(fl)
	return ok && !d.IsNegative()
}

func isTrimmed(fl validator.FieldLevel) bool {
	return fl.Field().Kind() == reflect.String && strings.TrimSpace(fl.Field().String()) != ""
}
