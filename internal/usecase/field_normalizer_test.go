package usecase

import (
	"testing"

	"github.com/mosipdecode/backend/internal/domain"
)

func TestFieldNormalizer_Normalize(t *testing.T) {
	normalizer := NewFieldNormalizer(newTestRegistry(t).Resolve("en"))

	tests := []struct {
		name  string
		field domain.CanonicalField
		raw   string
		want  string
	}{
		{"email inside noise", domain.FieldEmail, "write to john.doe@example.com today", "john.doe@example.com"},
		{"email with subdomain", domain.FieldEmail, "a_b@mail.example.co.uk", "a_b@mail.example.co.uk"},
		{"email falls back to raw", domain.FieldEmail, "not an email", "not an email"},
		{"international phone", domain.FieldPhone, "+1 (555) 123-4567 ext", "+1 (555) 123-4567"},
		{"short local phone", domain.FieldPhone, "555-1234", "555-1234"},
		{"phone skips short numbers", domain.FieldPhone, "ext 12 call 555.123.4567", "555.123.4567"},
		{"phone falls back to raw", domain.FieldPhone, "12-34", "12-34"},
		{"age from phrase", domain.FieldAge, "30 years old", "30"},
		{"age falls back to raw", domain.FieldAge, "thirty", "thirty"},
		{"name truncated at label word", domain.FieldName, "John Doe Gender M", "John Doe"},
		{"name entirely a label", domain.FieldName, "Age 30", ""},
		{"address verbatim", domain.FieldAddress, "221B Baker Street, London", "221B Baker Street, London"},
		{"generic trims separators", domain.FieldCountry, ": India ;", "India"},
		{"blank raw", domain.FieldGender, " - ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := normalizer.Normalize(tt.field, tt.raw); got != tt.want {
				t.Errorf("Normalize(%s, %q) = %q, want %q", tt.field, tt.raw, got, tt.want)
			}
		})
	}
}

func TestCountDigits(t *testing.T) {
	tests := []struct {
		input string
		want  int
	}{
		{"+1 (555) 123-4567", 11},
		{"abc", 0},
		{"", 0},
	}

	for _, tt := range tests {
		if got := countDigits(tt.input); got != tt.want {
			t.Errorf("countDigits(%q) = %d, want %d", tt.input, got, tt.want)
		}
	}
}
