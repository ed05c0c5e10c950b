package render

import "time"

// dateLayouts are the input formats accepted for invoice dates, in the order
// they are tried. Form submissions send ISO dates; persisted records may
// carry a full timestamp.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
}

// FormatLongDate renders a date string in long form, e.g. "March 15, 2024".
// An empty input renders as an empty field; an unparseable input is passed
// through unchanged rather than failing the render.
func FormatLongDate(s string) string {
	if s == "" {
		return ""
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("January 2, 2006")
		}
	}
	return s
}
