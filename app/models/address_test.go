package models

import "testing"

func TestOverlapsType(t *testing.T) {
	cases := []struct {
		a, b string
		want bool
	}{
		{AddressShipping, AddressShipping, true},
		{AddressBilling, AddressBilling, true},
		{AddressShipping, AddressBilling, false},
		{AddressBilling, AddressShipping, false},
		{AddressBoth, AddressShipping, true},
		{AddressBoth, AddressBilling, true},
		{AddressShipping, AddressBoth, true},
		{AddressBilling, AddressBoth, true},
		{AddressBoth, AddressBoth, true},
	}
	for _, c := range cases {
		if got := OverlapsType(c.a, c.b); got != c.want {
			t.Errorf("OverlapsType(%q, %q) = %v, want %v", c.a, c.b, got, c.want)
		}
	}
}
