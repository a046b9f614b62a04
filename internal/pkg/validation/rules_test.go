package validation

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

type salaryRequest struct {
	Salary *decimal.Decimal `validate:"required,nonnegative"`
	From   string           `validate:"required,decimal"`
	Name   string           `validate:"required,trimmed"`
}

func TestRules(t *testing.T) {
	v := validator.New()
	Register(v)

	ptr := func(s string) *decimal.Decimal {
		d := decimal.RequireFromString(s)
		return &d
	}

	tests := []struct {
		name    string
		request salaryRequest
		failing string
	}{
		{"valid", salaryRequest{Salary: ptr("1000.50"), From: "12.5", Name: "Jan"}, ""},
		{"zero salary", salaryRequest{Salary: ptr("0"), From: "0", Name: "Jan"}, ""},
		{"missing salary", salaryRequest{From: "1", Name: "Jan"}, "required"},
		{"negative salary", salaryRequest{Salary: ptr("-1"), From: "1", Name: "Jan"}, NonNegativeTag},
		{"malformed bound", salaryRequest{Salary: ptr("1"), From: "abc", Name: "Jan"}, DecimalTag},
		{"blank name", salaryRequest{Salary: ptr("1"), From: "1", Name: "   "}, TrimmedTag},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Struct(tt.request)
			if tt.failing == "" {
				assert.NoError(t, err)
				return
			}
			var fieldErrors validator.ValidationErrors
			if assert.ErrorAs(t, err, &fieldErrors) {
				assert.Equal(t, tt.failing, fieldErrors[0].Tag())
			}
		})
	}
}

func TestRegisterGinValidatorsIsIdempotent(t *testing.T) {
	assert.NotPanics(t, func() {
		RegisterGinValidators()
		RegisterGinValidators()
	})
}
