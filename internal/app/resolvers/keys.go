package resolvers

import (
	"strconv"
	"strings"
)

// ParseModalityKey splits "<courseCode>-<code>" on the first dash.
func ParseModalityKey(key string) (courseCode, code string, ok bool) {
	courseCode, code, found := strings.Cut(key, "-")
	if !found || courseCode == "" || code == "" {
		return "", "", false
	}
	return courseCode, code, true
}

// ParseOfferingKey splits "<year>-<period>-<code>"; the code keeps any
// further dashes.
func ParseOfferingKey(key string) (year int, period, code string, ok bool) {
	parts := strings.SplitN(key, "-", 3)
	if len(parts) != 3 || parts[1] == "" || parts[2] == "" {
		return 0, "", "", false
	}
	year, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, "", "", false
	}
	return year, parts[1], parts[2], true
}
