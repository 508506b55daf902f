package store

import "testing"

func TestDigitsOnly(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"12345678", "12345678"},
		{"123.456.789-09", "12345678909"},
		{"12.345.678/0001-90", "12345678000190"},
		{"(11) 98765-4321", "11987654321"},
		{"abc", ""},
		{"01310-100", "01310100"},
	}
	for _, tt := range tests {
		if got := DigitsOnly(tt.in); got != tt.want {
			t.Errorf("DigitsOnly(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
