package todos

import (
	"fmt"
	"strings"
	"time"

	"github.com/pbaille/things/internal/domain"
)

const dateLayout = "2006-01-02"

// FormatTags converts a tag list to the application's comma-separated form
func FormatTags(tags []string) string {
	clean := make([]string, 0, len(tags))
	for _, t := range tags {
		if t = strings.TrimSpace(t); t != "" {
			clean = append(clean, t)
		}
	}
	return strings.Join(clean, ", ")
}

// ParseTags is the inverse of FormatTags. It never returns nil
func ParseTags(s string) []string {
	tags := []string{}
	for _, t := range strings.Split(s, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

// ParseLocalDate reads YYYY-MM-DD (or an RFC 3339 timestamp, truncated to
// its calendar date) as local midnight
func ParseLocalDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.ParseInLocation(dateLayout, s, time.Local); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		y, m, d := t.Date()
		return time.Date(y, m, d, 0, 0, 0, 0, time.Local), nil
	}
	return time.Time{}, fmt.Errorf("%w: invalid date %q", domain.ErrInvalidInput, s)
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.In(time.Local).Format(dateLayout)
	return &s
}
