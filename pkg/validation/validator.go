package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

const dateLayout = "2006-01-02"

// Init configures the global validator used by Gin's binding.
// - Uses JSON tag names in errors.
// - Registers date rules used by registration/profile payloads.
func Init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		// Password bounds shared by login, register and password change
		v.RegisterAlias("pwd", "min=8,max=32")

		_ = v.RegisterValidation("beforetoday", dateRule(func(d, today time.Time) bool {
			return d.Before(today)
		}))
		_ = v.RegisterValidation("beforeorequaltoday", dateRule(func(d, today time.Time) bool {
			return !d.After(today)
		}))
	}
}

// dateRule builds a string-field rule that parses YYYY-MM-DD and compares the
// value against today's date. Unparseable input fails the rule; required/
// omitempty decide whether empty input reaches it at all.
func dateRule(cmp func(d, today time.Time) bool) validator.Func {
	return func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		d, err := time.Parse(dateLayout, s)
		if err != nil {
			return false
		}
		now := time.Now()
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
		return cmp(d, today)
	}
}

// ToDetails converts validation/binding errors into map[field][]message for
// the Bad Request envelope.
func ToDetails(err error) map[string][]string {
	if err == nil {
		return nil
	}

	// Invalid JSON payloads
	var se *json.SyntaxError
	var ute *json.UnmarshalTypeError
	if errors.As(err, &se) || errors.As(err, &ute) {
		return map[string][]string{"payload": {"invalid json"}}
	}

	// Validation errors from validator.v10
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		out := make(map[string][]string, len(verrs))
		for _, fe := range verrs {
			field := fe.Field()
			out[field] = append(out[field], formatFieldError(fe))
		}
		return out
	}

	// Fallback
	return map[string][]string{"payload": {"invalid payload"}}
}

// Details builds the envelope map for a single field, for checks performed
// outside the binding layer (duplicate email, credential mismatch).
func Details(field, message string) map[string][]string {
	return map[string][]string{field: {message}}
}

func formatFieldError(fe validator.FieldError) string {
	tag := fe.Tag()
	param := fe.Param()
	kind := fe.Kind()

	switch tag {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email"
	case "len":
		if param != "" {
			return fmt.Sprintf("must be exactly %s characters long", param)
		}
		return "invalid length"
	case "min":
		if param != "" {
			if isNumberKind(kind) {
				return "must be at least " + param
			}
			return "must be at least " + param + " characters long"
		}
		return "too small"
	case "max":
		if param != "" {
			if isNumberKind(kind) {
				return "must be at most " + param
			}
			return "must be at most " + param + " characters long"
		}
		return "too large"
	case "eqfield":
		return "must match " + fieldLabel(param)
	case "oneof":
		return "must be one of: " + strings.Join(strings.Fields(param), ", ")
	case "datetime":
		if param != "" {
			return "must match date format " + param
		}
		return "must be a valid date"
	case "beforetoday":
		return "must be a date before today"
	case "beforeorequaltoday":
		return "must be a date on or before today"
	case "pwd":
		return "must be between 8 and 32 characters"
	default:
		if param != "" {
			return fmt.Sprintf("validation failed for '%s' with parameter '%s'", tag, param)
		}
		return fmt.Sprintf("validation failed for '%s'", tag)
	}
}

func isNumberKind(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	default:
		return false
	}
}

// fieldLabel lowercases a struct-field param (eqfield reports the Go field
// name, not the json tag) into something presentable.
func fieldLabel(param string) string {
	var b strings.Builder
	for i, r := range param {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(r - 'A' + 'a')
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
