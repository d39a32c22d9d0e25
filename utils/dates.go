package utils

import (
	"fmt"
	"regexp"
	"time"
)

var euroDate = regexp.MustCompile(`^(\d{2})\.(\d{2})\.(\d{4})$`)

// ParseDate accepts the two date formats the admin interface sends:
// ISO "2006-01-02" and European "02.01.2006".
func ParseDate(input string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", input); err == nil {
		return t, nil
	}
	if m := euroDate.FindStringSubmatch(input); m != nil {
		return time.Parse("2006-01-02", fmt.Sprintf("%s-%s-%s", m[3], m[2], m[1]))
	}
	return time.Time{}, fmt.Errorf("unrecognized date format: %q", input)
}

// FormatDate renders a date the way the store keys tournament days.
func FormatDate(t time.Time) string {
	return t.Format("2006-01-02")
}
