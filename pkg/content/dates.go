package content

import (
	"fmt"
	"time"
)

const displayDateLayout = "2 Jan 2006"

var isoLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParseISODate accepts the ISO-8601 variants found in the content files,
// with or without a time component.
func ParseISODate(value string) (time.Time, error) {
	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("content: unrecognized date %q", value)
}

// HumanDate renders an ISO date as a reader-facing string, e.g. "3 Feb 2024".
func HumanDate(value string) (string, error) {
	t, err := ParseISODate(value)
	if err != nil {
		return "", err
	}
	return t.Format(displayDateLayout), nil
}

// PublishedDisplay returns the article's published date in display form.
func (a Article) PublishedDisplay() (string, error) {
	return HumanDate(a.Date.Published)
}

// EditedDisplay returns the article's edited date in display form, or an
// empty string when the article was never edited.
func (a Article) EditedDisplay() (string, error) {
	if a.Date.Edited == "" {
		return "", nil
	}
	return HumanDate(a.Date.Edited)
}
