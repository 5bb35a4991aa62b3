package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseIntParam parses an optional integer query parameter, returning def
// when raw is empty and an error when it is outside [min, max].
func ParseIntParam(name, raw string, def, min, max int) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < min || n > max {
		return 0, fmt.Errorf("invalid '%s' parameter. Must be an integer between %d and %d", name, min, max)
	}
	return n, nil
}
