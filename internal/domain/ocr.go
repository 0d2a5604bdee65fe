package domain

import "math"

// Polygon is a fragment outline as a list of (x, y) points
type Polygon [][2]float64

// BoundingBox is an axis-aligned rectangle in image coordinates
type BoundingBox struct {
	X      float64 `json:"x" yaml:"x"`
	Y      float64 `json:"y" yaml:"y"`
	Width  float64 `json:"width" yaml:"width"`
	Height float64 `json:"height" yaml:"height"`
}

// Bounds reduces the polygon to its enclosing rectangle.
// Returns false when there are fewer than two points.
func (p Polygon) Bounds() (BoundingBox, bool) {
	if len(p) < 2 {
		return BoundingBox{}, false
	}

	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, pt := range p {
		minX = math.Min(minX, pt[0])
		minY = math.Min(minY, pt[1])
		maxX = math.Max(maxX, pt[0])
		maxY = math.Max(maxY, pt[1])
	}

	return BoundingBox{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}, true
}

// OCRFragment is one recognized text unit
type OCRFragment struct {
	Text       string  `json:"text" yaml:"text"`
	Confidence float64 `json:"confidence" yaml:"confidence"`
	Box        Polygon `json:"box,omitempty" yaml:"box,omitempty"`
}

// OCRBatch is everything the recognizer produced for one page.
// Error carries a failure reported by the recognizer itself.
type OCRBatch struct {
	Fragments []OCRFragment `json:"fragments" yaml:"fragments"`
	Language  string        `json:"language" yaml:"language"`
	Error     string        `json:"error,omitempty" yaml:"error,omitempty"`
}

// ConfidenceLevel buckets a fragment confidence for display
type ConfidenceLevel string

const (
	ConfidenceHigh    ConfidenceLevel = "high"
	ConfidenceMedium  ConfidenceLevel = "medium"
	ConfidenceLow     ConfidenceLevel = "low"
	ConfidenceVeryLow ConfidenceLevel = "very_low"
)

// LevelFor maps a confidence score to its level
func LevelFor(confidence float64) ConfidenceLevel {
	switch {
	case confidence >= 0.9:
		return ConfidenceHigh
	case confidence >= 0.7:
		return ConfidenceMedium
	case confidence >= 0.5:
		return ConfidenceLow
	default:
		return ConfidenceVeryLow
	}
}

// Detection is a fragment annotated for the detection listing
type Detection struct {
	Text            string          `json:"text"`
	Confidence      float64         `json:"confidence"`
	ConfidenceLevel ConfidenceLevel `json:"confidence_level"`
	BoundingBox     *BoundingBox    `json:"bounding_box,omitempty"`
}

// DetectionSummary counts detections per confidence level
type DetectionSummary struct {
	TotalDetections   int     `json:"total_detections"`
	HighConfidence    int     `json:"high_confidence"`
	MediumConfidence  int     `json:"medium_confidence"`
	LowConfidence     int     `json:"low_confidence"`
	VeryLowConfidence int     `json:"very_low_confidence"`
	AverageConfidence float64 `json:"average_confidence"`
}

// DetectionReport is the detection listing for one batch
type DetectionReport struct {
	Detections []Detection      `json:"detections"`
	Summary    DetectionSummary `json:"summary"`
	Language   string           `json:"language"`
}
