package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Result is the outcome of loading one value.
//
// Value is always usable: it is either the configured value or the default.
// FallbackApplied is true only when a value was set but rejected; an unset
// variable silently yields the default.
type Result[T any] struct {
	Value           T
	Warning         string
	FallbackApplied bool
}

// Parser converts the raw environment string into T.
type Parser[T any] func(string) (T, error)

// LoadEnv reads key, parses it and validates it. Parse or validation errors
// fall back to def and produce a warning. validate may be nil.
//
// Example:
//
//	res := LoadEnv("INGEST_TIMEOUT", 5*time.Minute, ParseDuration, ValidatePositiveDuration)
//	if res.FallbackApplied {
//		logger.Warn(res.Warning)
//	}
func LoadEnv[T any](key string, def T, parse Parser[T], validate func(T) error) Result[T] {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return Result[T]{Value: def}
	}

	v, err := parse(raw)
	if err == nil && validate != nil {
		err = validate(v)
	}
	if err != nil {
		return Result[T]{
			Value:           def,
			Warning:         fmt.Sprintf("Invalid %s='%s': %v, falling back to default '%v'", key, raw, err, def),
			FallbackApplied: true,
		}
	}
	return Result[T]{Value: v}
}

// ParseString is the identity Parser.
func ParseString(s string) (string, error) { return s, nil }

// ParseDuration parses Go duration syntax ("90s", "5m").
func ParseDuration(s string) (time.Duration, error) { return time.ParseDuration(s) }

// ParseInt parses a base-10 integer.
func ParseInt(s string) (int, error) { return strconv.Atoi(s) }

// ParseBool accepts the strconv.ParseBool spellings.
func ParseBool(s string) (bool, error) { return strconv.ParseBool(s) }
