package utils

import (
	"strconv"
	"strings"
)

func StrPtr(s string) *string {
	return &s
}

// ParsePositiveInt returns def when raw is empty, not a number or below one.
func ParsePositiveInt(raw string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 {
		return def
	}
	return n
}
