package preprocess

import (
	"errors"
	"testing"
)

func TestTextTrims(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"itchy red patches", "itchy red patches"},
		{"  itchy red patches  ", "itchy red patches"},
		{"\tscaly skin\n", "scaly skin"},
	}
	for _, tt := range tests {
		got, err := Text(tt.in)
		if err != nil {
			t.Errorf("Text(%q) returned error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Text(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestTextEmpty(t *testing.T) {
	for _, in := range []string{"", "   ", "\t\n  \r"} {
		_, err := Text(in)
		if !errors.Is(err, ErrEmptyMessage) {
			t.Errorf("Text(%q) error = %v, want ErrEmptyMessage", in, err)
		}
	}
}
