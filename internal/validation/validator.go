// Revets - Sales Data Pipeline and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/revets

package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

var sqlIdentPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

var jsonNumberType = reflect.TypeOf(json.Number(""))

// ValidationError describes one field that failed validation.
type ValidationError struct {
	field   string
	tag     string
	param   string
	message string
}

// Field returns the struct field name that failed validation.
func (e *ValidationError) Field() string { return e.field }

// Tag returns the validation tag that failed.
func (e *ValidationError) Tag() string { return e.tag }

// Param returns the tag parameter ("65535" for "max=65535").
func (e *ValidationError) Param() string { return e.param }

// Error returns a human-readable message.
func (e *ValidationError) Error() string { return e.message }

// RequestValidationError collects every failed field of one struct.
type RequestValidationError struct {
	errors []ValidationError
}

// Errors returns the individual field errors.
func (ve *RequestValidationError) Errors() []ValidationError {
	return ve.errors
}

// Error joins the field messages.
func (ve *RequestValidationError) Error() string {
	if len(ve.errors) == 0 {
		return "validation failed"
	}
	msgs := make([]string, len(ve.errors))
	for i := range ve.errors {
		msgs[i] = ve.errors[i].message
	}
	return strings.Join(msgs, "; ")
}

// HasTag reports whether any field failed on tag.
func (ve *RequestValidationError) HasTag(tag string) bool {
	for i := range ve.errors {
		if ve.errors[i].tag == tag {
			return true
		}
	}
	return false
}

// GetValidator returns the process-wide validator with the custom rules registered:
//
//   - truthy:   value is present and not a zero/empty value (nil, false, 0, "", empty collection);
//     a json.Number is zero when its literal parses to 0
//   - sqlident: string is a plain SQL identifier ([A-Za-z_][A-Za-z0-9_]*)
func GetValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())

		// truthy must also see nil interfaces, which validator skips by default.
		if err := validate.RegisterValidation("truthy", validateTruthy, true); err != nil {
			panic(fmt.Sprintf("register truthy validator: %v", err))
		}
		if err := validate.RegisterValidation("sqlident", validateSQLIdent); err != nil {
			panic(fmt.Sprintf("register sqlident validator: %v", err))
		}
	})
	return validate
}

func validateTruthy(fl validator.FieldLevel) bool {
	return IsTruthy(fl.Field())
}

// IsTruthy applies the truthiness rule used by the truthy tag to a reflected value.
func IsTruthy(v reflect.Value) bool {
	for v.IsValid() && (v.Kind() == reflect.Interface || v.Kind() == reflect.Ptr) {
		if v.IsNil() {
			return false
		}
		v = v.Elem()
	}
	if !v.IsValid() {
		return false
	}
	if v.Type() == jsonNumberType {
		return numberIsNonZero(v.String())
	}

	switch v.Kind() {
	case reflect.Bool:
		return v.Bool()
	case reflect.String, reflect.Slice, reflect.Map, reflect.Array:
		return v.Len() > 0
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() != 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return v.Uint() != 0
	case reflect.Float32, reflect.Float64:
		return v.Float() != 0
	default:
		return !v.IsZero()
	}
}

// numberIsNonZero reports whether a JSON number literal is not zero.
// Literals that underflow to zero count as zero.
func numberIsNonZero(lit string) bool {
	f, err := strconv.ParseFloat(lit, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return lit != ""
	}
	return f != 0
}

func validateSQLIdent(fl validator.FieldLevel) bool {
	return sqlIdentPattern.MatchString(fl.Field().String())
}

// ValidateStruct validates s with the shared validator. It returns nil on
// success and a *RequestValidationError describing every failed field otherwise.
func ValidateStruct(s interface{}) *RequestValidationError {
	err := GetValidator().Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return &RequestValidationError{errors: []ValidationError{{
			field:   "unknown",
			tag:     "unknown",
			message: err.Error(),
		}}}
	}

	out := make([]ValidationError, len(fieldErrs))
	for i, fe := range fieldErrs {
		out[i] = ValidationError{
			field:   fe.Namespace(),
			tag:     fe.Tag(),
			param:   fe.Param(),
			message: translateError(fe),
		}
	}
	return &RequestValidationError{errors: out}
}

var messageTemplates = map[string]string{
	"required": "%s is required",
	"truthy":   "%s is required",
	"sqlident": "%s must be a plain SQL identifier",
}

var paramTemplates = map[string]string{
	"oneof": "%s must be one of: %s",
	"len":   "%s must have length %s",
	"gt":    "%s must be greater than %s",
	"gte":   "%s must be greater than or equal to %s",
	"min":   "%s must be at least %s",
	"max":   "%s must be at most %s",
}

func translateError(fe validator.FieldError) string {
	field := fe.Namespace()
	if tmpl, ok := messageTemplates[fe.Tag()]; ok {
		return fmt.Sprintf(tmpl, field)
	}
	if tmpl, ok := paramTemplates[fe.Tag()]; ok {
		return fmt.Sprintf(tmpl, field, fe.Param())
	}
	return fmt.Sprintf("%s failed %s validation", field, fe.Tag())
}
