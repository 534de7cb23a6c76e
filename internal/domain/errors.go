package domain

import (
	"errors"
	"fmt"
)

// Bounds on the ages and spans a projection accepts. Every year loop and
// compounding exponent is limited by one of them.
const (
	MaxAge             = 130
	MaxProjectionYears = 120
)

// ConfigError reports an input that violates a precondition of the projection.
// It is returned before any projection year is computed.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("configuration error: %s: %s", e.Field, e.Reason)
}

// NewConfigError creates a ConfigError for field.
func NewConfigError(field, format string, args ...any) *ConfigError {
	return &ConfigError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// IsConfigError reports whether err wraps a ConfigError.
func IsConfigError(err error) bool {
	var ce *ConfigError
	return errors.As(err, &ce)
}

// ValidateProfile checks the preconditions every engine run relies on.
func ValidateProfile(p Profile) error {
	if p.CurrentAge < 0 {
		return NewConfigError("current_age", "must not be negative, got %d", p.CurrentAge)
	}
	if p.LifeExpectancy < p.CurrentAge {
		return NewConfigError("life_expectancy", "%d is before current age %d", p.LifeExpectancy, p.CurrentAge)
	}
	if p.LifeExpectancy > MaxAge {
		return NewConfigError("life_expectancy", "must be at most %d, got %d", MaxAge, p.LifeExpectancy)
	}
	if p.RetirementAge < p.CurrentAge {
		return NewConfigError("target_retirement_age", "%d is before current age %d", p.RetirementAge, p.CurrentAge)
	}
	if p.RetirementAge > MaxAge {
		return NewConfigError("target_retirement_age", "must be at most %d, got %d", MaxAge, p.RetirementAge)
	}
	return nil
}

// ValidateMilestone checks that a goal's target age can be projected.
func ValidateMilestone(m Milestone) error {
	if m.TargetAge < 0 || m.TargetAge > MaxAge {
		return NewConfigError("target_age", "must be between 0 and %d, got %d", MaxAge, m.TargetAge)
	}
	return nil
}
