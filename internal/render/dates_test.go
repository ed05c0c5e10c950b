package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatLongDate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"iso date", "2024-03-15", "March 15, 2024"},
		{"single digit day", "2025-01-02", "January 2, 2025"},
		{"rfc3339", "2024-03-15T10:30:00Z", "March 15, 2024"},
		{"empty renders empty", "", ""},
		{"unparseable passes through", "next tuesday", "next tuesday"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatLongDate(tt.input))
		})
	}
}
