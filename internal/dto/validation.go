package dto

import (
	"reflect"

	"github.com/HPG21/czp-releases/internal/core/domain"
	"github.com/go-playground/validator/v10"
)

// TaxRateTag is the binding tag that restricts a number to domain.AllowedTaxRates.
const TaxRateTag = "taxrate"

// ValidateTaxRate is a validator.Func for TaxRateTag.
func ValidateTaxRate(fl validator.FieldLevel) bool {
	field := fl.Field()
	switch field.Kind() {
	case reflect.Float32, reflect.Float64:
		return domain.IsAllowedTaxRate(field.Float())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return domain.IsAllowedTaxRate(float64(field.Int()))
	}
	return false
}

// RegisterValidations adds the custom binding tags to v.
func RegisterValidations(v *validator.Validate) error {
	return v.RegisterValidation(TaxRateTag, ValidateTaxRate)
}
