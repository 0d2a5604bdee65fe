package usecase

import (
	"regexp"
	"strings"

	"github.com/mosipdecode/backend/internal/domain"
)

// Compiled value patterns shared by the normalizer and the fallback scanner
var (
	// local@domain.tld with a 2+ letter TLD
	emailPattern = regexp.MustCompile(`[\w.+-]+@[\w-]+(?:\.[\w-]+)*\.[A-Za-z]{2,}`)

	// Optional "+", then digits with interior spaces, hyphens, parentheses or dots
	phonePattern = regexp.MustCompile(`\+?\(?\d[\d\s().-]*\d`)

	// Standalone 1-3 digit number
	agePattern = regexp.MustCompile(`\b(\d{1,3})\b`)
)

// Minimum digit count for a phone number
const minPhoneDigits = 7

// normalizeFunc refines a raw segment. An empty result means no refinement applied.
type normalizeFunc func(raw string) string

// FieldNormalizer dispatches per-field refinement of raw segment values
type FieldNormalizer struct {
	catalog     *LabelCatalog
	normalizers map[domain.CanonicalField]normalizeFunc
}

// NewFieldNormalizer builds the dispatch table for one catalog
func NewFieldNormalizer(catalog *LabelCatalog) *FieldNormalizer {
	n := &FieldNormalizer{catalog: catalog}
	n.normalizers = map[domain.CanonicalField]normalizeFunc{
		domain.FieldEmail: findEmail,
		domain.FieldPhone: findPhone,
		domain.FieldAge:   findAge,
		domain.FieldName:  n.truncateName,
	}
	return n
}

// Normalize refines a raw value for field.
// Pattern-based fields fall back to the trimmed raw value; "" leaves the field unresolved.
func (n *FieldNormalizer) Normalize(field domain.CanonicalField, raw string) string {
	raw = strings.Trim(raw, segmentTrimSet)
	if raw == "" {
		return ""
	}

	fn, ok := n.normalizers[field]
	if !ok {
		return raw
	}

	if field == domain.FieldName {
		return fn(raw)
	}
	if refined := fn(raw); refined != "" {
		return refined
	}
	return raw
}

func (n *FieldNormalizer) truncateName(raw string) string {
	return n.catalog.TruncateAtLabelWord(raw)
}

func findEmail(s string) string {
	return strings.TrimSpace(emailPattern.FindString(s))
}

// findPhone returns the first candidate run with enough digits
func findPhone(s string) string {
	for _, candidate := range phonePattern.FindAllString(s, -1) {
		if countDigits(candidate) >= minPhoneDigits {
			return strings.TrimSpace(candidate)
		}
	}
	return ""
}

func findAge(s string) string {
	m := agePattern.FindStringSubmatch(s)
	if m == nil {
		return ""
	}
	return m[1]
}

func countDigits(s string) int {
	n := 0
	for _, r := range s {
		if r >= '0' && r <= '9' {
			n++
		}
	}
	return n
}
