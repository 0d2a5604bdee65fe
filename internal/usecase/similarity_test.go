package usecase

import (
	"math"
	"testing"
)

func TestSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a    string
		b    string
		want float64
	}{
		{"identical", "Ananya Rao", "Ananya Rao", 1},
		{"case and whitespace folded", "  JOHN ", "john", 1},
		{"prefix", "Ananya", "Ananya Rao", 0.75},
		{"empty left", "", "x", 0},
		{"empty right", "x", "", 0},
		{"blank", "   ", "x", 0},
		{"disjoint", "abc", "xyz", 0},
		{"unrelated keys", "address", "email", 2.0 / 12.0},
		{"kitten sitting", "kitten", "sitting", 8.0 / 13.0},
		{"multibyte runes", "张伟", "张伟伟", 0.8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Similarity(tt.a, tt.b)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Similarity(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestSimilarity_Symmetric(t *testing.T) {
	pairs := [][2]string{
		{"kitten", "sitting"},
		{"Ananya", "Ananya Rao"},
		{"221B Baker Street", "221b baker st"},
	}

	for _, p := range pairs {
		if Similarity(p[0], p[1]) != Similarity(p[1], p[0]) {
			t.Errorf("Similarity(%q, %q) is not symmetric", p[0], p[1])
		}
	}
}

func TestIndelDistance(t *testing.T) {
	tests := []struct {
		s1   string
		s2   string
		want int
	}{
		{"", "", 0},
		{"abc", "", 3},
		{"", "abc", 3},
		{"abc", "abc", 0},
		{"kitten", "sitting", 5},
		{"flaw", "lawn", 2},
	}

	for _, tt := range tests {
		t.Run(tt.s1+"_"+tt.s2, func(t *testing.T) {
			if got := indelDistance([]rune(tt.s1), []rune(tt.s2)); got != tt.want {
				t.Errorf("indelDistance(%q, %q) = %d, want %d", tt.s1, tt.s2, got, tt.want)
			}
		})
	}
}
