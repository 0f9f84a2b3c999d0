package utils

import (
	"strconv"
)

// ParseID parses a decimal row id from a path segment.
func ParseID(s string) (int64, error) {
	return strconv.ParseInt(s, 10, 64)
}
