package validator

import (
	"go-price-scanner/internal/model"

	"github.com/go-playground/validator/v10"
)

type ErrorResponse struct {
	FailedField string
	Tag         string
	Value       string
}

var validate = validator.New()

func init() {
	// Register custom validation for payment status
	validate.RegisterValidation("payment_status", func(fl validator.FieldLevel) bool {
		switch v := fl.Field().Interface().(type) {
		case model.PaymentStatus:
			return v.Valid()
		case string:
			return model.PaymentStatus(v).Valid()
		}
		return false
	})
}

func ValidateStruct(data interface{}) []*ErrorResponse {
	var errors []*ErrorResponse
	err := validate.Struct(data)
	if err != nil {
		validationErrors, ok := err.(validator.ValidationErrors)
		if !ok {
			return []*ErrorResponse{{Tag: err.Error()}}
		}
		for _, err := range validationErrors {
			var element ErrorResponse
			element.FailedField = err.StructNamespace()
			element.Tag = err.Tag()
			element.Value = err.Param()
			errors = append(errors, &element)
		}
	}
	return errors
}

// ValidateVar checks a single value against a tag such as "required,max=100"
func ValidateVar(field interface{}, tag string) []*ErrorResponse {
	err := validate.Var(field, tag)
	if err == nil {
		return nil
	}
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return []*ErrorResponse{{Tag: err.Error()}}
	}
	errors := make([]*ErrorResponse, 0, len(validationErrors))
	for _, err := range validationErrors {
		errors = append(errors, &ErrorResponse{Tag: err.Tag(), Value: err.Param()})
	}
	return errors
}
