package dto

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/jsamuelsen/artofday/internal/domain"
)

var (
	// ErrValidation wraps struct constraint failures.
	ErrValidation = errors.New("validation failed")

	// ErrBinding wraps malformed JSON, query or path input.
	ErrBinding = errors.New("binding failed")
)

var validate = newValidator()

// wireTags are consulted in order for the name a field is reported under.
var wireTags = []string{"json", "form", "uri"}

func newValidator() *validator.Validate {
	v := validator.New()

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		for _, tag := range wireTags {
			name, _, _ := strings.Cut(f.Tag.Get(tag), ",")

			switch name {
			case "":
				continue
			case "-":
				return ""
			default:
				return name
			}
		}

		return f.Name
	})

	// Registration only fails for empty tags or nil funcs.
	_ = v.RegisterValidation("day", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		if s == "" {
			return true
		}

		_, err := domain.ParseDay(s)

		return err == nil
	})

	_ = v.RegisterValidation("notempty", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})

	return v
}

// Validator returns the shared validator with the day and notempty rules.
func Validator() *validator.Validate {
	return validate
}

// Validate checks v's validate tags.
func Validate(v any) error {
	if err := validate.Struct(v); err != nil {
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}

	return nil
}

// BindAndValidate decodes the JSON body into v and validates it.
func BindAndValidate(c *gin.Context, v any) error {
	return bindThenValidate(c.ShouldBindJSON, v)
}

// BindQueryAndValidate decodes the query string into v and validates it.
func BindQueryAndValidate(c *gin.Context, v any) error {
	return bindThenValidate(c.ShouldBindQuery, v)
}

// BindURIAndValidate decodes path parameters into v and validates it.
func BindURIAndValidate(c *gin.Context, v any) error {
	return bindThenValidate(c.ShouldBindUri, v)
}

func bindThenValidate(bind func(any) error, v any) error {
	if err := bind(v); err != nil {
		return fmt.Errorf("%w: %w", ErrBinding, err)
	}

	return Validate(v)
}

// IsValidationError reports whether err carries field constraint failures.
func IsValidationError(err error) bool {
	var fieldErrs validator.ValidationErrors
	return errors.As(err, &fieldErrs)
}

// ValidationErrors returns a message per failing field, keyed by wire name.
func ValidationErrors(err error) map[string]string {
	out := make(map[string]string)

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		for _, fe := range fieldErrs {
			out[fe.Field()] = fieldMessage(fe)
		}
	}

	return out
}

func fieldMessage(fe validator.FieldError) string {
	p := fe.Param()

	unit := ""
	if fe.Kind() == reflect.String {
		unit = " characters"
	}

	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "day":
		return "must be a date in YYYY-MM-DD format"
	case "notempty":
		return "must not be empty"
	case "min":
		return "must be at least " + p + unit
	case "max":
		return "must be at most " + p + unit
	case "gte":
		return "must be greater than or equal to " + p
	case "lte":
		return "must be less than or equal to " + p
	case "gt":
		return "must be greater than " + p
	case "lt":
		return "must be less than " + p
	case "oneof":
		return "must be one of: " + p
	default:
		return "failed validation: " + fe.Tag()
	}
}
