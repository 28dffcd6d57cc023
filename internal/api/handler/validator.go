package handler

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"

	"github.com/staffdir/directory-api/internal/core/domain"
)

// echoValidator wraps go-playground/validator so Echo can call c.Validate(req).
// All field failures of a request are collected into one
// domain.ValidationError rather than stopping at the first.
type echoValidator struct {
	v *validator.Validate
}

// NewValidator returns an echoValidator ready to be assigned to echo.Echo.Validator.
func NewValidator() *echoValidator {
	v := validator.New()

	// Report fields by their json names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// role: closed enumeration, unknown values rejected at the boundary.
	_ = v.RegisterValidation("role", func(fl validator.FieldLevel) bool {
		_, ok := domain.ParseRole(fl.Field().String())
		return ok
	})

	// alphaspace: letters and spaces only.
	_ = v.RegisterValidation("alphaspace", func(fl validator.FieldLevel) bool {
		for _, r := range fl.Field().String() {
			if !unicode.IsLetter(r) && r != ' ' {
				return false
			}
		}
		return true
	})

	// hasupper: at least one uppercase letter.
	_ = v.RegisterValidation("hasupper", func(fl validator.FieldLevel) bool {
		return strings.ContainsFunc(fl.Field().String(), unicode.IsUpper)
	})

	return &echoValidator{v: v}
}

// Validate satisfies the echo.Validator interface.
func (ev *echoValidator) Validate(i any) error {
	err := ev.v.Struct(i)
	if err == nil {
		return nil
	}

	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return err
	}

	collected := domain.NewValidationError()
	for _, fe := range ve {
		collected.Add(fe.Field(), fieldError(fe))
	}
	return collected
}

// fieldError converts a single ValidationError into a human-readable message.
func fieldError(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "role":
		return field + " must be a valid role"
	case "alphaspace":
		return field + " can only contain letters and spaces"
	case "hasupper":
		return field + " must contain at least one uppercase letter"
	default:
		return fmt.Sprintf("%s failed validation (%s)", field, fe.Tag())
	}
}
