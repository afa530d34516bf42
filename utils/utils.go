package utils

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const DateLayout = "2006-01-02"

// ParseOptionalID returns nil for an empty string.
func ParseOptionalID(field, raw string) (*uint, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || v == 0 {
		return nil, NewValidationError(field, fmt.Sprintf("'%s' is not a valid id", raw))
	}
	id := uint(v)
	return &id, nil
}

// ParseOptionalDate parses YYYY-MM-DD as a UTC midnight.
func ParseOptionalDate(field, raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation(DateLayout, raw, time.UTC)
	if err != nil {
		return nil, NewValidationError(field, fmt.Sprintf("'%s' is not a valid date, expected YYYY-MM-DD", raw))
	}
	return &t, nil
}
