package usecase

import (
	"strings"

	"github.com/mosipdecode/backend/internal/domain"
)

// AggregateConfidence derives a confidence for a resolved value.
//
// It averages the confidence of every fragment whose text occurs literally in the
// value. When none does, the mean over all fragments is used, and 0 without fragments.
// This approximates provenance; a value cut out of one low-confidence fragment by a
// pattern gets the document-wide mean instead.
func AggregateConfidence(value string, fragments []domain.OCRFragment) float64 {
	if len(fragments) == 0 {
		return 0
	}

	target := strings.ToLower(strings.TrimSpace(value))

	var matchedSum, totalSum float64
	matched := 0
	for _, f := range fragments {
		totalSum += f.Confidence
		text := strings.ToLower(strings.TrimSpace(f.Text))
		if text != "" && strings.Contains(target, text) {
			matchedSum += f.Confidence
			matched++
		}
	}

	if matched > 0 {
		return matchedSum / float64(matched)
	}
	return totalSum / float64(len(fragments))
}
