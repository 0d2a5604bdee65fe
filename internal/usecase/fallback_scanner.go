package usecase

import (
	"regexp"
	"strings"

	"github.com/mosipdecode/backend/internal/domain"
)

var (
	// "Age" label followed by 1-3 digits
	labelledAgePattern = regexp.MustCompile(`(?i)\bAge[:\s]*([0-9]{1,3})\b`)

	// "ID" or "Passport", optionally followed by "Number" or "No.", then a 5-30 char identifier.
	// The keyword must end at a separator so words like "identifier" do not match.
	idNumberPattern = regexp.MustCompile(`(?i)\b((?:ID|Passport)(?:\s*(?:Number|No\.?))?)(?:[:\s]+|\b)([A-Z0-9\-]{5,30})\b`)
)

// fallbackRule recovers one field from the whole normalized text
type fallbackRule struct {
	field domain.CanonicalField
	scan  func(text string) string
}

// fallbackRules run in this order, each only for a field that is still unresolved
var fallbackRules = []fallbackRule{
	{field: domain.FieldEmail, scan: findEmail},
	{field: domain.FieldPhone, scan: findPhone},
	{field: domain.FieldAge, scan: findLabelledAge},
	{field: domain.FieldIDNumber, scan: findIDNumber},
}

func findLabelledAge(text string) string {
	m := labelledAgePattern.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return m[1]
}

// findIDNumber returns the first identifier after an ID keyword.
// A keyword word itself ("ID Number 123" backtracking onto "Number") is never an identifier.
func findIDNumber(text string) string {
	for _, m := range idNumberPattern.FindAllStringSubmatch(text, -1) {
		value := strings.TrimSpace(m[2])
		if strings.EqualFold(value, "number") {
			continue
		}
		return value
	}
	return ""
}

// ScanFallback fills unresolved fields of result from the full text.
// Resolved fields are never touched. Returns the fields it filled.
func ScanFallback(result domain.ExtractionResult, text string, fragments []domain.OCRFragment) []domain.CanonicalField {
	var filled []domain.CanonicalField
	for _, rule := range fallbackRules {
		if result[rule.field].IsSet() {
			continue
		}
		value := rule.scan(text)
		if value == "" {
			continue
		}
		result[rule.field] = domain.NewFieldValue(value, AggregateConfidence(value, fragments))
		filled = append(filled, rule.field)
	}
	return filled
}
