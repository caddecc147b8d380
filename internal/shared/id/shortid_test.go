package id

import (
	"strings"
	"testing"
)

func TestGenerateLength(t *testing.T) {
	for _, length := range []int{1, 8, 12, 32} {
		got, err := Generate(length)
		if err != nil {
			t.Fatalf("Generate(%d) error: %v", length, err)
		}
		if len(got) != length {
			t.Errorf("Generate(%d) length = %d", length, len(got))
		}
	}
}

func TestGenerateDefaultsLength(t *testing.T) {
	got, err := Generate(0)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != DefaultLength {
		t.Errorf("length = %d, want %d", len(got), DefaultLength)
	}
}

func TestGenerateAlphabet(t *testing.T) {
	got, err := Generate(64)
	if err != nil {
		t.Fatal(err)
	}
	for _, c := range got {
		if !strings.ContainsRune(alphabet, c) {
			t.Errorf("unexpected character %q", c)
		}
	}
}

func TestGenerateWithPrefix(t *testing.T) {
	got, err := GenerateWithPrefix(PrefixQuotation, 12)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(got, "qt_") {
		t.Errorf("missing prefix: %s", got)
	}
	if !HasPrefix(got, PrefixQuotation) {
		t.Errorf("HasPrefix(%s, qt) = false", got)
	}
	if HasPrefix(got, PrefixWarranty) {
		t.Errorf("HasPrefix(%s, wc) = true", got)
	}
}

func TestGenerateUniqueness(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		got, err := Generate(DefaultLength)
		if err != nil {
			t.Fatal(err)
		}
		if seen[got] {
			t.Fatalf("duplicate id after %d generations: %s", i, got)
		}
		seen[got] = true
	}
}
