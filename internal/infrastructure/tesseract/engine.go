//go:build tesseract

package tesseract

import (
	"context"
	"fmt"
	"strings"

	"github.com/otiai10/gosseract/v2"
	"github.com/rs/zerolog"

	"github.com/mosipdecode/backend/internal/domain"
)

// Engine recognizes documents locally with Tesseract, one fragment per text line
type Engine struct {
	clientFactory func() *gosseract.Client
	logger        zerolog.Logger
}

// New constructs a Tesseract-backed OCR engine
func New(logger *zerolog.Logger) (*Engine, error) {
	l := zerolog.Nop()
	if logger != nil {
		l = logger.With().Str("component", "ocr").Str("engine", "tesseract").Logger()
	}
	return &Engine{clientFactory: gosseract.NewClient, logger: l}, nil
}

// Recognize runs Tesseract on an image. The client is not goroutine safe, so each call owns one.
func (e *Engine) Recognize(ctx context.Context, document []byte, language string) (*domain.OCRBatch, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	c := e.clientFactory()
	defer c.Close()

	if err := c.SetImageFromBytes(document); err != nil {
		return nil, fmt.Errorf("set image: %w", err)
	}
	if err := c.SetLanguage(LanguageCode(language)); err != nil {
		return nil, fmt.Errorf("set language: %w", err)
	}

	boxes, err := c.GetBoundingBoxes(gosseract.RIL_TEXTLINE)
	if err != nil {
		return &domain.OCRBatch{Language: language, Error: err.Error()}, nil
	}

	fragments := make([]domain.OCRFragment, 0, len(boxes))
	for _, b := range boxes {
		text := strings.TrimSpace(b.Word)
		if text == "" {
			continue
		}
		r := b.Box
		fragments = append(fragments, domain.OCRFragment{
			Text:       text,
			Confidence: b.Confidence / 100.0,
			Box: domain.Polygon{
				{float64(r.Min.X), float64(r.Min.Y)},
				{float64(r.Max.X), float64(r.Min.Y)},
				{float64(r.Max.X), float64(r.Max.Y)},
				{float64(r.Min.X), float64(r.Max.Y)},
			},
		})
	}

	e.logger.Debug().Int("fragments", len(fragments)).Str("language", language).Msg("tesseract batch recognized")
	return &domain.OCRBatch{Fragments: fragments, Language: language}, nil
}
