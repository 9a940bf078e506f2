package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "diacritics stripped",
			input: "Café Noir",
			want:  "cafe noir",
		},
		{
			name:  "punctuation becomes space",
			input: "men's-shoes (new!)",
			want:  "men s shoes new",
		},
		{
			name:  "whitespace collapsed and trimmed",
			input: "  red \t shoe  ",
			want:  "red shoe",
		},
		{
			name:  "digits kept",
			input: "iPhone 15 Pro",
			want:  "iphone 15 pro",
		},
		{
			name:  "empty input",
			input: "",
			want:  "",
		},
		{
			name:  "punctuation only",
			input: "!!! ---",
			want:  "",
		},
		{
			name:  "mixed accents",
			input: "Ärmelloses Kleid – Größe",
			want:  "armelloses kleid gro e",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.input))
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{"Café Noir", "  A  B  ", "ÀÉÎÕÜ", "shoe", "", "12 3!"}
	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once), "input %q", in)
	}
}

func FuzzNormalizeIdempotent(f *testing.F) {
	f.Add("Café Noir")
	f.Add("  spaced   out  ")
	f.Add("ñandú 42")
	f.Fuzz(func(t *testing.T, s string) {
		once := Normalize(s)
		twice := Normalize(once)
		if once != twice {
			t.Errorf("not idempotent: %q -> %q -> %q", s, once, twice)
		}
	})
}
