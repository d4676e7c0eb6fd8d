package config

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validator checks config structs against their validate tags. Failures are
// reported by config key (database.pool.max_open), not Go field name.
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a validator with the config-specific rules
func NewValidator() *Validator {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("mapstructure"), ",", 2)[0]
		if name == "" || name == "-" {
			return field.Name
		}
		return name
	})
	v.RegisterStructValidation(validateDatabase, DatabaseConfig{})

	return &Validator{validate: v}
}

// Validate validates a struct using validation tags
func (v *Validator) Validate(i interface{}) error {
	if err := v.validate.Struct(i); err != nil {
		return formatValidationError(err)
	}
	return nil
}

// validateDatabase requires postgres to be reachable by url or host
func validateDatabase(sl validator.StructLevel) {
	db := sl.Current().Interface().(DatabaseConfig)
	if db.Type == "postgres" && db.URL == "" && db.Host == "" {
		sl.ReportError(db.Host, "host", "Host", "required_without_url", "")
	}
}

func formatValidationError(err error) error {
	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	messages := make([]string, 0, len(validationErrs))
	for _, e := range validationErrs {
		// Namespace is "Config.database.pool.max_open"; drop the root type
		key := e.Namespace()
		if i := strings.Index(key, "."); i >= 0 {
			key = key[i+1:]
		}
		messages = append(messages, fmt.Sprintf("%s failed %s (value: '%v')", key, e.Tag(), e.Value()))
	}
	return fmt.Errorf("validation failed:\n  %s", strings.Join(messages, "\n  "))
}

// ValidateConfig validates the entire configuration
func ValidateConfig(cfg *Config) error {
	return NewValidator().Validate(cfg)
}
