package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// validate reports fields by their koanf keys, so messages match the YAML
// and APP_ variables an operator edits.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("koanf"), ",")
		if name == "" || name == "-" {
			return f.Name
		}

		return name
	})

	return v
}

// ValidationError lists every problem found in a Config.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "config validation failed:\n  " + strings.Join(e.Problems, "\n  ")
}

// crossCheck is a constraint spanning several fields.
type crossCheck struct {
	holds   func(*Config) bool
	problem string
}

var crossChecks = []crossCheck{
	{
		holds:   func(c *Config) bool { return c.Storage.Driver != "postgres" || c.Storage.Postgres.URL != "" },
		problem: "storage.postgres.url is required when storage.driver is postgres",
	},
	{
		holds:   func(c *Config) bool { return c.Client.Retry.MaxInterval >= c.Client.Retry.InitialInterval },
		problem: "client.retry.max_interval must not be below client.retry.initial_interval",
	},
	{
		holds:   func(c *Config) bool { return c.Featured.RetainDays <= c.Featured.MaxHistoryDays },
		problem: "featured.retain_days must not exceed featured.max_history_days",
	},
	{
		holds:   func(c *Config) bool { return c.Server.RequestTimeout <= c.Server.WriteTimeout },
		problem: "server.request_timeout must not exceed server.write_timeout",
	},
}

// Validate checks field constraints and then the cross-field rules. All
// problems are reported together in a *ValidationError.
func (c *Config) Validate() error {
	var problems []string

	if err := validate.Struct(c); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return fmt.Errorf("validating config: %w", err)
		}

		for _, fe := range fieldErrs {
			problems = append(problems, describe(fe))
		}
	}

	for _, check := range crossChecks {
		if !check.holds(c) {
			problems = append(problems, check.problem)
		}
	}

	if len(problems) == 0 {
		return nil
	}

	return &ValidationError{Problems: problems}
}

// describe renders one field error, such as "server.port must be at most 65535".
func describe(fe validator.FieldError) string {
	key := keyPath(fe.Namespace())

	switch fe.Tag() {
	case "required":
		return key + " is required"
	case "required_if":
		return key + " is required when " + condition(key, fe.Param())
	case "min", "gte":
		return fmt.Sprintf("%s must be at least %s", key, fe.Param())
	case "max", "lte":
		return fmt.Sprintf("%s must be at most %s", key, fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", key, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", key, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "url":
		return key + " must be a valid URL"
	case "timezone":
		return key + " must be an IANA time zone name"
	default:
		return fmt.Sprintf("%s failed %q", key, fe.Tag())
	}
}

// keyPath drops the root type from a namespace: "Config.server.port"
// becomes "server.port".
func keyPath(namespace string) string {
	if _, rest, ok := strings.Cut(namespace, "."); ok {
		return rest
	}

	return namespace
}

// condition turns a required_if param such as "Enabled true" into
// "log.file.enabled is true" for the field at key.
func condition(key, param string) string {
	field, value, ok := strings.Cut(param, " ")
	if !ok {
		return param
	}

	sibling := strings.ToLower(field)
	if i := strings.LastIndex(key, "."); i >= 0 {
		sibling = key[:i+1] + sibling
	}

	return sibling + " is " + value
}
