package slug_test

import (
	"testing"

	"github.com/aurigalabs/storefront/pkg/slug"
)

func TestMake(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"lowercases", "Blue Shoes", "blue-shoes"},
		{"trims", "  Blue Shoes  ", "blue-shoes"},
		{"collapses whitespace", "Blue \t  Shoes", "blue-shoes"},
		{"strips punctuation", "Blue Suede Shoes!", "blue-suede-shoes"},
		{"keeps digits and underscore", "Model_3 v2", "model_3-v2"},
		{"collapses hyphens", "a -- b", "a-b"},
		{"drops leading hyphens", "--hello", "hello"},
		{"drops trailing hyphens", "hello--", "hello"},
		{"symbols only", "!!! ???", ""},
		{"empty", "", ""},
		{"unicode stripped", "café au lait", "caf-au-lait"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := slug.Make(tc.in); got != tc.want {
				t.Errorf("Make(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestMakeOrFallback(t *testing.T) {
	if got := slug.MakeOrFallback("!!!"); got != slug.Fallback {
		t.Errorf("expected fallback %q, got %q", slug.Fallback, got)
	}
	if got := slug.MakeOrFallback("Plain Name"); got != "plain-name" {
		t.Errorf("expected plain-name, got %q", got)
	}
}
