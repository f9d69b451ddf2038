package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/deppfellow/askhub/internal/errs"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// Validatable is implemented by every request payload.
type Validatable interface {
	Validate() error
}

type CustomValidationError struct {
	Field   string
	Message string
}

type CustomValidationErrors []CustomValidationError

func (c CustomValidationErrors) Error() string {
	return "Validation failed"
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Field errors use the name clients send.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		for _, tag := range []string{"json", "query", "param"} {
			name, _, _ := strings.Cut(f.Tag.Get(tag), ",")
			if name != "" && name != "-" {
				return name
			}
		}
		return f.Name
	})
	return v
}

// Struct runs the validate tags on v. Request types call it from their
// Validate method before any cross-field checks.
func Struct(v any) error {
	return validate.Struct(v)
}

// Positive adds a field error when d is set and not greater than zero.
func Positive(field string, d *decimal.Decimal) *CustomValidationError {
	if d != nil && !d.IsPositive() {
		return &CustomValidationError{Field: field, Message: "must be greater than 0"}
	}
	return nil
}

// NonNegative adds a field error when d is set and below zero.
func NonNegative(field string, d *decimal.Decimal) *CustomValidationError {
	if d != nil && d.IsNegative() {
		return &CustomValidationError{Field: field, Message: "must not be negative"}
	}
	return nil
}

// Collect runs the tag validation and then the given custom checks,
// returning every failure at once.
func Collect(v any, checks ...*CustomValidationError) error {
	var out CustomValidationErrors
	if err := Struct(v); err != nil {
		var validationErrors validator.ValidationErrors
		if !errors.As(err, &validationErrors) {
			return err
		}
		_, fieldErrors := extractValidationError(validationErrors)
		for _, fe := range fieldErrors {
			out = append(out, CustomValidationError{Field: fe.Field, Message: fe.Error})
		}
	}
	for _, check := range checks {
		if check != nil {
			out = append(out, *check)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// BindAndValidate binds path, query and body into payload and validates
// it.
func BindAndValidate(c echo.Context, payload Validatable) error {
	if err := c.Bind(payload); err != nil {
		return errs.NewBadRequestError(bindMessage(err), false, nil, nil, nil)
	}

	if err := payload.Validate(); err != nil {
		msg, fieldErrors := extractValidationError(err)
		return errs.NewBadRequestError(msg, true, nil, fieldErrors, nil)
	}

	return nil
}

func bindMessage(err error) string {
	var echoErr *echo.HTTPError
	if errors.As(err, &echoErr) {
		if msg, ok := echoErr.Message.(string); ok {
			return msg
		}
	}
	return "Invalid request body"
}

func extractValidationError(err error) (string, []errs.FieldError) {
	var fieldErrors []errs.FieldError

	var custom CustomValidationErrors
	if errors.As(err, &custom) {
		for _, e := range custom {
			fieldErrors = append(fieldErrors, errs.FieldError{Field: e.Field, Error: e.Message})
		}
		return "Validation failed", fieldErrors
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err.Error(), nil
	}

	for _, fe := range validationErrors {
		var msg string

		switch fe.Tag() {
		case "required":
			msg = "is required"
		case "min":
			if fe.Kind() == reflect.String {
				msg = fmt.Sprintf("must be at least %s characters", fe.Param())
			} else {
				msg = fmt.Sprintf("must be at least %s", fe.Param())
			}
		case "max":
			switch fe.Kind() {
			case reflect.String:
				msg = fmt.Sprintf("must not exceed %s characters", fe.Param())
			case reflect.Slice:
				msg = fmt.Sprintf("must not exceed %s items", fe.Param())
			default:
				msg = fmt.Sprintf("must not exceed %s", fe.Param())
			}
		case "oneof":
			msg = fmt.Sprintf("must be one of: %s", fe.Param())
		case "email":
			msg = "must be a valid email address"
		case "url":
			msg = "must be a valid URL"
		case "uuid":
			msg = "must be a valid UUID"
		case "dive":
			msg = "some items are invalid"
		default:
			if fe.Param() != "" {
				msg = fmt.Sprintf("%s: %s", fe.Tag(), fe.Param())
			} else {
				msg = fe.Tag()
			}
		}

		fieldErrors = append(fieldErrors, errs.FieldError{
			Field: fe.Field(),
			Error: msg,
		})
	}

	return "Validation failed", fieldErrors
}
