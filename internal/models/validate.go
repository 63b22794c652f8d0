package models

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// ErrInvalid is matched by every ValidationError.
var ErrInvalid = errors.New("invalid input")

// ValidationError reports a malformed field value supplied by the user.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalid
}

func invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

var (
	datePattern      = regexp.MustCompile(`^[0-9]{4}-[0-9]{2}-[0-9]{2}$`)
	releaseIDPattern = regexp.MustCompile(`^[0-9]\.[0-9]\.[0-9]\.[0-9]$`)
	digitsPattern    = regexp.MustCompile(`^[0-9]+$`)
)

// ValidateDate checks the YYYY-MM-DD format.
func ValidateDate(field, s string) error {
	if !datePattern.MatchString(s) {
		return invalid(field, "%q is not in YYYY-MM-DD format", s)
	}
	return nil
}

// ValidateReleaseID checks the D.D.D.D format (four single digits).
func ValidateReleaseID(s string) error {
	if !releaseIDPattern.MatchString(s) {
		return invalid("release id", "%q is not in X.X.X.X format", s)
	}
	return nil
}

// ValidatePriority checks that p is within [MinPriority, MaxPriority].
func ValidatePriority(p int32) error {
	if p < MinPriority || p > MaxPriority {
		return invalid("priority", "%d is not between %d and %d", p, MinPriority, MaxPriority)
	}
	return nil
}

// validateText checks that s is non-empty (when required), fits in max bytes and
// holds no NUL, which is the on-disk terminator.
func validateText(field, s string, max int, required bool) error {
	if required && s == "" {
		return invalid(field, "is required")
	}
	if len(s) > max {
		return invalid(field, "%q is longer than %d characters", s, max)
	}
	if strings.IndexByte(s, 0) >= 0 {
		return invalid(field, "contains a NUL byte")
	}
	return nil
}

// Clip shortens s to at most n bytes without splitting a UTF-8 sequence.
func Clip(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
