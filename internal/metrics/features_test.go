package metrics_test

import (
	"testing"

	"github.com/petasbytes/wiki-research/internal/metrics"
)

func TestCountFeatures(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want metrics.Features
	}{
		{"empty", "", metrics.Features{}},
		{"arithmetic prompt", "Multiply 1984135 by 9343116.", metrics.Features{Bytes: 28, Runes: 28, Words: 4, Lines: 1}},
		{"multibyte", "héllö 世界", metrics.Features{Bytes: 14, Runes: 8, Words: 2, Lines: 1}},
		{"trailing newline", "a\nb\n", metrics.Features{Bytes: 4, Runes: 4, Words: 2, Lines: 3}},
		{"mixed whitespace", "  a\t b  ", metrics.Features{Bytes: 8, Runes: 8, Words: 2, Lines: 1}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := metrics.CountFeatures(tc.in); got != tc.want {
				t.Fatalf("CountFeatures(%q) = %+v, want %+v", tc.in, got, tc.want)
			}
		})
	}
}

func TestFeatures_Add(t *testing.T) {
	a := metrics.CountFeatures("Call the appropriate functions")
	b := metrics.CountFeatures("two words")
	got := a.Add(b)
	want := metrics.Features{Bytes: 30 + 9, Runes: 30 + 9, Words: 4 + 2, Lines: 2}
	if got != want {
		t.Fatalf("Add = %+v, want %+v", got, want)
	}
}

func TestFeatures_Map(t *testing.T) {
	m := metrics.CountFeatures("a b").Map()
	if m["bytes"] != 3 || m["runes"] != 3 || m["words"] != 2 || m["lines"] != 1 {
		t.Fatalf("unexpected map: %#v", m)
	}
}
