package catalog

import "testing"

func TestResolveInRange(t *testing.T) {
	c := New([]string{"Acne", "Eczema", "Psoriasis"})
	tests := []struct {
		id   int
		want string
	}{
		{0, "Acne"},
		{1, "Eczema"},
		{2, "Psoriasis"},
	}
	for _, tt := range tests {
		if got := c.Resolve(tt.id); got != tt.want {
			t.Errorf("Resolve(%d) = %q, want %q", tt.id, got, tt.want)
		}
	}
}

func TestResolveOutOfRange(t *testing.T) {
	c := New([]string{"Acne", "Eczema"})
	for _, id := range []int{-1, 2, 99} {
		if got := c.Resolve(id); got != Unknown {
			t.Errorf("Resolve(%d) = %q, want %q", id, got, Unknown)
		}
	}
}

func TestDefaultCatalogs(t *testing.T) {
	text := DefaultText()
	image := DefaultImage()

	if text.Size() != 15 {
		t.Errorf("expected 15 text conditions, got %d", text.Size())
	}
	if image.Size() != 15 {
		t.Errorf("expected 15 image conditions, got %d", image.Size())
	}

	// The catalogs carry separate orderings; the same ordinal names a
	// different condition in each.
	if got := text.Resolve(0); got != "Vitiligo" {
		t.Errorf("text id 0 = %q, want Vitiligo", got)
	}
	if got := image.Resolve(0); got != "Acne" {
		t.Errorf("image id 0 = %q, want Acne", got)
	}
	if got := text.Resolve(6); got != "Psoriasis" {
		t.Errorf("text id 6 = %q, want Psoriasis", got)
	}
	if got := image.Resolve(11); got != "Seborrh_Keratoses" {
		t.Errorf("image id 11 = %q, want Seborrh_Keratoses", got)
	}
}
