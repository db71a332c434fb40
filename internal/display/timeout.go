package display

import (
	"strconv"
	"strings"
)

// DefaultTimeoutSeconds is how long a tested mode stays active when no
// usable timeout is given.
const DefaultTimeoutSeconds = 10

// ParseTimeout converts a user-supplied timeout in seconds. An empty string
// yields the default. Non-numeric or non-positive input also yields the
// default, with ok set to false so the caller can warn; it is never an error.
func ParseTimeout(s string) (seconds int, ok bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return DefaultTimeoutSeconds, true
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return DefaultTimeoutSeconds, false
	}
	return n, true
}
