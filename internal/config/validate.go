package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Field validation failures.
var (
	ErrFieldMissing     = errors.New("is missing")
	ErrFieldPlaceholder = errors.New("still contains the placeholder domain " + PlaceholderDomain)
	ErrFieldBlank       = errors.New("is blank")
)

// FieldError reports one invalid required field.
type FieldError struct {
	Key string
	Err error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s %v", e.Key, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// ValidationError lists every invalid required field of a configuration file.
type ValidationError struct {
	Path   string
	Fields []*FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Error())
	}
	return fmt.Sprintf("invalid configuration %s: %s", e.Path, strings.Join(parts, "; "))
}

// Unwrap exposes the field errors to errors.Is and errors.As.
func (e *ValidationError) Unwrap() []error {
	errs := make([]error, 0, len(e.Fields))
	for _, f := range e.Fields {
		errs = append(errs, f)
	}
	return errs
}

// Keys returns the names of the invalid fields.
func (e *ValidationError) Keys() []string {
	keys := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		keys = append(keys, f.Key)
	}
	return keys
}

// containerConfig is the part of the container configuration that is validated.
type containerConfig struct {
	Env map[string]any `yaml:"env"`
}

// ValidateFile re-reads path and checks every required field.
func ValidateFile(path string) error {
	// #nosec G304 - path comes from operator settings
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	return Validate(path, data)
}

// Validate checks that each required env field is present, does not contain
// the placeholder domain and is not blank. name is used in the error only.
func Validate(name string, data []byte) error {
	var cfg containerConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return fmt.Errorf("failed to unmarshal yaml: %w", err)
	}

	verr := &ValidationError{Path: name}
	for _, key := range RequiredKeys {
		if err := validateField(cfg.Env, key); err != nil {
			verr.Fields = append(verr.Fields, &FieldError{Key: key, Err: err})
		}
	}

	if len(verr.Fields) > 0 {
		return verr
	}
	return nil
}

// validateField checks a single required field.
func validateField(env map[string]any, key string) error {
	raw, ok := env[key]
	if !ok {
		return ErrFieldMissing
	}
	if raw == nil {
		return ErrFieldBlank
	}

	value := fmt.Sprint(raw)
	if strings.Contains(strings.ToLower(value), PlaceholderDomain) {
		return ErrFieldPlaceholder
	}
	if strings.TrimSpace(value) == "" {
		return ErrFieldBlank
	}
	return nil
}
