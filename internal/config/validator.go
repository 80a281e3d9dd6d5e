package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/aleister1102/purgeconf/internal/common"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/dlclark/regexp2"
	"github.com/go-playground/validator/v10"
)

// ValidateConfig performs validation on the GlobalConfig structure.
func ValidateConfig(cfg *GlobalConfig) error {
	if cfg == nil {
		return errors.New("configuration validation error: config is nil")
	}

	validate := validator.New()

	// Content globs, relative to the project root
	_ = validate.RegisterValidation("glob", func(fl validator.FieldLevel) bool {
		return IsValidGlob(fl.Field().String())
	})

	// Extractor patterns use ECMAScript syntax so lookbehind is available
	_ = validate.RegisterValidation("ecmaregex", func(fl validator.FieldLevel) bool {
		_, err := regexp2.Compile(fl.Field().String(), regexp2.ECMAScript)
		return err == nil
	})

	_ = validate.RegisterValidation("extension", func(fl validator.FieldLevel) bool {
		ext := strings.TrimPrefix(fl.Field().String(), ".")
		return ext != "" && !strings.ContainsAny(ext, `/\*?. `)
	})

	_ = validate.RegisterValidation("loglevel", func(fl validator.FieldLevel) bool {
		switch strings.ToLower(fl.Field().String()) {
		case "", "trace", "debug", "info", "warn", "error", "fatal", "panic", "disabled":
			return true
		default:
			return false
		}
	})

	_ = validate.RegisterValidation("logformat", func(fl validator.FieldLevel) bool {
		switch strings.ToLower(fl.Field().String()) {
		case "", "console", "text", "json":
			return true
		default:
			return false
		}
	})

	err := validate.Struct(cfg)
	if err == nil {
		return nil
	}

	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return fmt.Errorf("configuration validation error: %w", err)
	}

	var ec common.ErrorCollector
	for _, e := range errs {
		section, field, _ := strings.Cut(strings.TrimPrefix(e.Namespace(), "GlobalConfig."), ".")
		reason := fmt.Sprintf("rule '%s'", e.Tag())
		if e.Param() != "" {
			reason += fmt.Sprintf(" (expected: %s)", e.Param())
		}
		if e.Value() != nil && e.Value() != "" {
			reason += fmt.Sprintf(", actual: '%v'", e.Value())
		}
		ec.Add(common.NewConfigurationError(section, field, reason))
	}
	return common.WrapError(ec.Error(), "configuration validation failed")
}

// IsValidGlob reports whether pattern is a non-empty, well-formed content
// glob. A leading "./" is allowed.
func IsValidGlob(pattern string) bool {
	trimmed := strings.TrimPrefix(strings.TrimSpace(pattern), "./")
	if trimmed == "" {
		return false
	}
	return doublestar.ValidatePattern(trimmed)
}
