package dto

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// decimalAmount accepts strings that parse as non-negative decimals.
// Positivity beyond zero is a business rule checked in the services.
func decimalAmount(fl validator.FieldLevel) bool {
	value, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	parsed, err := decimal.NewFromString(value)
	if err != nil {
		return false
	}
	return !parsed.IsNegative()
}

// RegisterValidations registers custom binding rules with gin's validator.
// Call once at startup.
func RegisterValidations() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	return v.RegisterValidation("decimalamount", decimalAmount)
}
