package ports

import (
	"math"
	"testing"
)

func TestPageNormalize(t *testing.T) {
	cases := []struct {
		name     string
		in, want Page
	}{
		{"zero value", Page{}, Page{Number: 1, Size: DefaultPageSize}},
		{"negative", Page{Number: -2, Size: -5}, Page{Number: 1, Size: DefaultPageSize}},
		{"size over cap", Page{Number: 2, Size: 500}, Page{Number: 2, Size: MaxPageSize}},
		{"in range", Page{Number: 3, Size: 25}, Page{Number: 3, Size: 25}},
		{"number over ceiling", Page{Number: math.MaxInt, Size: 10}, Page{Number: MaxPageNumber, Size: 10}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.in.Normalize()
			if got != tc.want {
				t.Fatalf("got %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestPageOffsetStaysNonNegative(t *testing.T) {
	p := Page{Number: math.MaxInt, Size: MaxPageSize}.Normalize()
	if p.Offset() < 0 {
		t.Fatalf("offset overflowed to %d", p.Offset())
	}
}
