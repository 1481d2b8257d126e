// Package validator
package validator

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

type Validator interface {
	Validate(data any) map[string]string
}

type DefaultValidator struct {
	validate *validator.Validate
}

func NewValidator() Validator {
	return &DefaultValidator{
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (v *DefaultValidator) Validate(data any) map[string]string {
	err := v.validate.Struct(data)
	if err == nil {
		return map[string]string{}
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return map[string]string{
			"_error": "invalid payload",
		}
	}

	errors := make(map[string]string)

	for _, e := range validationErrors {
		field := v.resolveFieldName(data, e.Field())
		errors[field] = v.messageFor(field, e)
	}

	return errors
}

func (v *DefaultValidator) messageFor(field string, e validator.FieldError) string {
	messages := map[string]func(validator.FieldError) string{
		"required": func(e validator.FieldError) string {
			return fmt.Sprintf("%s is required", field)
		},
		"min": func(e validator.FieldError) string {
			if e.Kind() == reflect.String {
				return fmt.Sprintf("%s must be at least %s characters", field, e.Param())
			}
			return fmt.Sprintf("%s must be at least %s", field, e.Param())
		},
		"max": func(e validator.FieldError) string {
			return fmt.Sprintf("%s must be at most %s", field, e.Param())
		},
		"datetime": func(e validator.FieldError) string {
			return fmt.Sprintf("%s must be an RFC 3339 timestamp", field)
		},
	}

	if msg, ok := messages[e.Tag()]; ok {
		return msg(e)
	}

	return fmt.Sprintf("%s is invalid", field)
}

func (v *DefaultValidator) resolveFieldName(data any, field string) string {
	t := reflect.TypeOf(data)
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	if f, ok := t.FieldByName(field); ok {
		tag := f.Tag.Get("json")
		if tag != "" && tag != "-" {
			return strings.Split(tag, ",")[0]
		}
	}

	return strings.ToLower(field)
}
