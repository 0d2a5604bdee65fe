package usecase

import (
	"strings"

	"github.com/mosipdecode/backend/internal/domain"
)

// LabelMatch is one label occurrence in the normalized text.
// End includes the optional trailing colon and whitespace, so the value starts there.
type LabelMatch struct {
	Field domain.CanonicalField
	Label string
	Start int
	End   int
}

// FindAll returns every label occurrence in text, left to right
func (c *LabelCatalog) FindAll(text string) []LabelMatch {
	locs := c.labelPattern.FindAllStringSubmatchIndex(text, -1)
	if len(locs) == 0 {
		return nil
	}

	matches := make([]LabelMatch, 0, len(locs))
	for _, loc := range locs {
		label := text[loc[2]:loc[3]]
		field, ok := c.FieldFor(label)
		if !ok {
			continue
		}
		matches = append(matches, LabelMatch{
			Field: field,
			Label: strings.ToLower(label),
			Start: loc[0],
			End:   loc[1],
		})
	}

	return matches
}

// MatchFragment looks for a complete "label: value" pair inside a single fragment.
// The fragment must start with its only label and the colon is required.
func (c *LabelCatalog) MatchFragment(text string) (domain.CanonicalField, string, bool) {
	text = strings.TrimSpace(text)
	matches := c.FindAll(text)
	if len(matches) != 1 {
		return "", "", false
	}

	m := matches[0]
	if m.Start != 0 || !strings.Contains(text[m.Start:m.End], ":") {
		return "", "", false
	}

	value := strings.Trim(text[m.End:], segmentTrimSet)
	if value == "" {
		return "", "", false
	}

	return m.Field, value, true
}

// TruncateAtLabelWord cuts a name value at the first label word of another field
func (c *LabelCatalog) TruncateAtLabelWord(value string) string {
	return strings.TrimSpace(c.namePattern.ReplaceAllString(value, ""))
}
