//go:build !tesseract

package tesseract

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/mosipdecode/backend/internal/domain"
)

// Engine is unavailable in builds without the tesseract tag
type Engine struct{}

// New reports that Tesseract support was not compiled in
func New(logger *zerolog.Logger) (*Engine, error) {
	return nil, fmt.Errorf("%w: built without tesseract support (rebuild with -tags tesseract)", domain.ErrOCRFailure)
}

// Recognize always fails
func (e *Engine) Recognize(ctx context.Context, document []byte, language string) (*domain.OCRBatch, error) {
	return nil, fmt.Errorf("%w: tesseract engine unavailable", domain.ErrOCRFailure)
}
