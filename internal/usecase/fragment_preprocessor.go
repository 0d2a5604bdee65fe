package usecase

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/mosipdecode/backend/internal/domain"
)

// FragmentPreprocessor validates and cleans OCR fragments before extraction
type FragmentPreprocessor struct{}

// NewFragmentPreprocessor creates a fragment preprocessor
func NewFragmentPreprocessor() *FragmentPreprocessor {
	return &FragmentPreprocessor{}
}

// Clean returns the usable fragments in input order, NFKC-normalized so that
// full-width colons and digits behave like their ASCII forms.
// Every skipped fragment is reported as an ErrMalformedFragment.
func (p *FragmentPreprocessor) Clean(fragments []domain.OCRFragment) ([]domain.OCRFragment, []error) {
	cleaned := make([]domain.OCRFragment, 0, len(fragments))
	var skipped []error

	for i, f := range fragments {
		if err := validateFragment(f); err != nil {
			skipped = append(skipped, fmt.Errorf("fragment %d: %w", i, err))
			continue
		}

		text := strings.TrimSpace(norm.NFKC.String(f.Text))
		if text == "" {
			skipped = append(skipped, fmt.Errorf("fragment %d: %w: empty text", i, domain.ErrMalformedFragment))
			continue
		}

		cleaned = append(cleaned, domain.OCRFragment{
			Text:       text,
			Confidence: f.Confidence,
			Box:        f.Box,
		})
	}

	return cleaned, skipped
}

func validateFragment(f domain.OCRFragment) error {
	if !utf8.ValidString(f.Text) {
		return fmt.Errorf("%w: invalid UTF-8 text", domain.ErrMalformedFragment)
	}
	if math.IsNaN(f.Confidence) || f.Confidence < 0 || f.Confidence > 1 {
		return fmt.Errorf("%w: confidence %v out of range", domain.ErrMalformedFragment, f.Confidence)
	}
	return nil
}

// Texts returns the fragment texts in order
func Texts(fragments []domain.OCRFragment) []string {
	texts := make([]string, len(fragments))
	for i, f := range fragments {
		texts[i] = f.Text
	}
	return texts
}
