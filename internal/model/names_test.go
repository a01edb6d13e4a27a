package model

import "testing"

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"OK", "OK"},
		{"  Save As…  ", "Save As…"},
		{"line1\nline2", "line1 line2"},
		{"tab\there", "tab here"},
		{"zero\u200bwidth", "zerowidth"},
		{"bell\a", "bell"},
		{"\r\n", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := SanitizeName(tt.input); got != tt.want {
			t.Errorf("SanitizeName(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
