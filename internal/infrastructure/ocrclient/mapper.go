package ocrclient

import (
	"github.com/mosipdecode/backend/internal/domain"
)

// EngineResponse is the recognizer's reply: parallel arrays of texts, scores and boxes
type EngineResponse struct {
	Texts       []string       `json:"texts"`
	Scores      []float64      `json:"scores"`
	Boxes       [][][2]float64 `json:"boxes,omitempty"`
	Language    string         `json:"language,omitempty"`
	ElapsedTime float64        `json:"elapsed_time,omitempty"`
	Error       *string        `json:"error,omitempty"`
}

// engineRequest is the body posted to the recognizer
type engineRequest struct {
	Image    string `json:"image"`
	Language string `json:"language"`
}

// MapToBatch converts the recognizer's parallel arrays into an OCR batch.
// Arrays of unequal length are cut to the shorter of texts and scores.
func MapToBatch(resp *EngineResponse, language string) *domain.OCRBatch {
	batch := &domain.OCRBatch{Language: resp.Language}
	if batch.Language == "" {
		batch.Language = language
	}
	if resp.Error != nil && *resp.Error != "" {
		batch.Error = *resp.Error
		return batch
	}

	n := len(resp.Texts)
	if len(resp.Scores) < n {
		n = len(resp.Scores)
	}

	batch.Fragments = make([]domain.OCRFragment, 0, n)
	for i := 0; i < n; i++ {
		fragment := domain.OCRFragment{
			Text:       resp.Texts[i],
			Confidence: resp.Scores[i],
		}
		if i < len(resp.Boxes) {
			fragment.Box = domain.Polygon(resp.Boxes[i])
		}
		batch.Fragments = append(batch.Fragments, fragment)
	}

	return batch
}
