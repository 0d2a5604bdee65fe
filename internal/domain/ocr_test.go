package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPolygonBounds(t *testing.T) {
	t.Run("quadrilateral", func(t *testing.T) {
		p := Polygon{{10, 20}, {110, 22}, {108, 60}, {12, 58}}
		box, ok := p.Bounds()
		assert.True(t, ok)
		assert.Equal(t, BoundingBox{X: 10, Y: 20, Width: 100, Height: 40}, box)
	})

	t.Run("two point rectangle", func(t *testing.T) {
		box, ok := Polygon{{5, 5}, {15, 25}}.Bounds()
		assert.True(t, ok)
		assert.Equal(t, BoundingBox{X: 5, Y: 5, Width: 10, Height: 20}, box)
	})

	t.Run("too few points", func(t *testing.T) {
		_, ok := Polygon{{1, 1}}.Bounds()
		assert.False(t, ok)

		_, ok = Polygon(nil).Bounds()
		assert.False(t, ok)
	})
}

func TestLevelFor(t *testing.T) {
	tests := []struct {
		confidence float64
		want       ConfidenceLevel
	}{
		{0.95, ConfidenceHigh},
		{0.9, ConfidenceHigh},
		{0.75, ConfidenceMedium},
		{0.5, ConfidenceLow},
		{0.49, ConfidenceVeryLow},
		{0, ConfidenceVeryLow},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, LevelFor(tt.confidence), "confidence %v", tt.confidence)
	}
}

func TestNewExtractionResult(t *testing.T) {
	result := NewExtractionResult()
	assert.Len(t, result, len(CanonicalFields))
	for _, f := range CanonicalFields {
		v, ok := result[f]
		assert.True(t, ok, "missing %s", f)
		assert.Nil(t, v.Value)
		assert.Nil(t, v.Confidence)
	}
	assert.Equal(t, 0, result.ResolvedCount())

	result[FieldName] = NewFieldValue("John", 0.9)
	assert.Equal(t, 1, result.ResolvedCount())
	assert.True(t, FieldName.IsCanonical())
	assert.False(t, CanonicalField("nickname").IsCanonical())
}
