package germinal

import (
	"testing"
)

func TestWordBounds(t *testing.T) {
	tests := []struct {
		line       string
		col        int
		exceptions string
		start, end int
		ok         bool
	}{
		{"hello world", 1, "", 0, 5, true},
		{"hello world", 6, "", 6, 11, true},
		{"hello world", 5, "", 0, 0, false},
		{"/usr/local/bin", 3, "", 1, 4, true},
		{"/usr/local/bin", 3, "/", 0, 14, true},
		{"a-b c", 0, "", 0, 1, true},
		{"a-b c", 0, "-", 0, 3, true},
		{"a-b c", 1, "", 0, 0, false},
		{"日本語 text", 1, "", 0, 3, true},
		{"abc", 3, "", 0, 0, false},
		{"abc", -1, "", 0, 0, false},
	}

	for _, tt := range tests {
		start, end, ok := WordBounds([]rune(tt.line), tt.col, tt.exceptions)
		if start != tt.start || end != tt.end || ok != tt.ok {
			t.Errorf("WordBounds(%q, %d, %q) = (%d, %d, %v), want (%d, %d, %v)",
				tt.line, tt.col, tt.exceptions, start, end, ok, tt.start, tt.end, tt.ok)
		}
	}
}
