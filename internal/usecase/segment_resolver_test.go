package usecase

import (
	"testing"

	"github.com/mosipdecode/backend/internal/domain"
)

func TestNormalizeText(t *testing.T) {
	tests := []struct {
		name  string
		input []string
		want  string
	}{
		{"joins with single spaces", []string{"Name:", "John", "Doe"}, "Name: John Doe"},
		{"collapses whitespace runs", []string{" Name: ", "John\n Doe", "Age:\t30"}, "Name: John Doe Age: 30"},
		{"empty input", nil, ""},
		{"blank fragments", []string{" ", "\n"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeText(tt.input); got != tt.want {
				t.Errorf("NormalizeText() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestResolveSegments(t *testing.T) {
	latin := newTestRegistry(t).Resolve("en")

	t.Run("value runs to the next label", func(t *testing.T) {
		text := "Name: John Doe Age: 30 Country: India"
		segments := ResolveSegments(text, latin.FindAll(text))

		want := []struct {
			field domain.CanonicalField
			raw   string
		}{
			{domain.FieldName, "John Doe"},
			{domain.FieldAge, "30"},
			{domain.FieldCountry, "India"},
		}
		if len(segments) != len(want) {
			t.Fatalf("len(segments) = %d, want %d", len(segments), len(want))
		}
		for i, w := range want {
			if segments[i].Match.Field != w.field {
				t.Errorf("segments[%d].Field = %v, want %v", i, segments[i].Match.Field, w.field)
			}
			if segments[i].Raw != w.raw {
				t.Errorf("segments[%d].Raw = %q, want %q", i, segments[i].Raw, w.raw)
			}
		}
	})

	t.Run("trims separators", func(t *testing.T) {
		text := "Gender - Male ; Address: 12 MG Road, -"
		segments := ResolveSegments(text, latin.FindAll(text))
		if len(segments) != 2 {
			t.Fatalf("len(segments) = %d, want 2", len(segments))
		}
		if segments[0].Raw != "Male" {
			t.Errorf("Raw = %q, want Male", segments[0].Raw)
		}
		if segments[1].Raw != "12 MG Road" {
			t.Errorf("Raw = %q, want %q", segments[1].Raw, "12 MG Road")
		}
	})

	t.Run("adjacent labels give empty values", func(t *testing.T) {
		text := "Name: Age: 30"
		segments := ResolveSegments(text, latin.FindAll(text))
		if len(segments) != 2 {
			t.Fatalf("len(segments) = %d, want 2", len(segments))
		}
		if segments[0].Raw != "" {
			t.Errorf("Raw = %q, want empty", segments[0].Raw)
		}
	})

	t.Run("no matches", func(t *testing.T) {
		if segments := ResolveSegments("plain text", nil); len(segments) != 0 {
			t.Errorf("expected no segments, got %+v", segments)
		}
	})
}
