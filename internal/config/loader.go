package config

import (
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
)

// Load reads defaults from environment variables, applying built-in
// fallbacks for unset values, and validates the result.
func Load() (*Defaults, error) {
	d := &Defaults{}

	if err := loadStruct(reflect.ValueOf(d).Elem()); err != nil {
		return nil, fmt.Errorf("config load: %w", err)
	}

	if err := d.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return d, nil
}

// loadStruct populates struct fields from environment variables using the
// env and default tags.
func loadStruct(v reflect.Value) error {
	t := v.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		fieldVal := v.Field(i)

		if !fieldVal.CanSet() {
			continue
		}

		envName := field.Tag.Get("env")
		if envName == "" {
			continue
		}

		value, set := os.LookupEnv(envName)
		if !set {
			value = field.Tag.Get("default")
		}

		if err := setField(fieldVal, value); err != nil {
			return fmt.Errorf("invalid value for %s=%q: %w", envName, value, err)
		}
	}

	return nil
}

// setField sets a reflect.Value from a string based on its type.
func setField(field reflect.Value, value string) error {
	switch field.Kind() {
	case reflect.String:
		field.SetString(value)

	case reflect.Int, reflect.Int64:
		i, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid integer: %w", err)
		}
		field.SetInt(i)

	case reflect.Slice:
		if field.Type().Elem().Kind() != reflect.String {
			return fmt.Errorf("unsupported slice type: %s", field.Type().Elem().Kind())
		}
		// Empty entries are meaningful here: the empty string is a valid
		// missing marker, so split without dropping them.
		parts := strings.Split(value, ",")
		result := make([]string, len(parts))
		for i, p := range parts {
			result[i] = strings.TrimSpace(p)
		}
		field.Set(reflect.ValueOf(result))

	default:
		return fmt.Errorf("unsupported field type: %s", field.Kind())
	}

	return nil
}

// Validate checks that the defaults are usable.
func (d *Defaults) Validate() error {
	var errs []string

	if d.SampleSize <= 0 {
		errs = append(errs, "TABULAR_SAMPLE_SIZE must be positive")
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(d.LogLevel)] {
		errs = append(errs, fmt.Sprintf("TABULAR_LOG_LEVEL (%q) must be one of: debug, info, warn, error", d.LogLevel))
	}

	validFormats := map[string]bool{"text": true, "json": true}
	if !validFormats[strings.ToLower(d.LogFormat)] {
		errs = append(errs, fmt.Sprintf("TABULAR_LOG_FORMAT (%q) must be one of: text, json", d.LogFormat))
	}

	if len(errs) > 0 {
		return fmt.Errorf("validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}

	return nil
}
