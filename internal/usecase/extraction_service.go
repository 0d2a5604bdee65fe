package usecase

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/mosipdecode/backend/internal/domain"
)

// Stage is one step of the extraction pipeline
type Stage int

const (
	StageInit Stage = iota
	StageTokenPrepass
	StageLabelMatch
	StageSegmentResolve
	StageNormalize
	StageConfidence
	StageFallback
	StageDone
)

func (s Stage) String() string {
	switch s {
	case StageInit:
		return "INIT"
	case StageTokenPrepass:
		return "TOKEN_PREPASS"
	case StageLabelMatch:
		return "LABEL_MATCH"
	case StageSegmentResolve:
		return "SEGMENT_RESOLVE"
	case StageNormalize:
		return "NORMALIZE"
	case StageConfidence:
		return "CONFIDENCE"
	case StageFallback:
		return "FALLBACK"
	case StageDone:
		return "DONE"
	default:
		return fmt.Sprintf("Stage(%d)", int(s))
	}
}

// ExtractionConfig holds configuration for the extraction service
type ExtractionConfig struct {
	Logger *zerolog.Logger
}

// ExtractionService resolves OCR fragments into canonical identity fields
type ExtractionService struct {
	registry     *CatalogRegistry
	preprocessor *FragmentPreprocessor
	normalizers  map[*LabelCatalog]*FieldNormalizer
	logger       zerolog.Logger
}

// NewExtractionService creates an extraction service over a read-only catalog registry
func NewExtractionService(registry *CatalogRegistry, config ExtractionConfig) *ExtractionService {
	logger := zerolog.Nop()
	if config.Logger != nil {
		logger = config.Logger.With().Str("component", "extraction").Logger()
	}

	normalizers := make(map[*LabelCatalog]*FieldNormalizer)
	for _, lang := range registry.Languages() {
		catalog := registry.Resolve(lang)
		normalizers[catalog] = NewFieldNormalizer(catalog)
	}

	return &ExtractionService{
		registry:     registry,
		preprocessor: NewFragmentPreprocessor(),
		normalizers:  normalizers,
		logger:       logger,
	}
}

// Registry returns the catalog registry the service extracts with
func (s *ExtractionService) Registry() *CatalogRegistry {
	return s.registry
}

// candidate is a normalized segment value waiting for its confidence
type candidate struct {
	field domain.CanonicalField
	value string
}

// Extract resolves a batch into all nine canonical fields.
// A recognizer error in the batch yields ErrOCRFailure and no result.
// Bad fragments are skipped; no labels at all is a valid, all-null result.
func (s *ExtractionService) Extract(batch *domain.OCRBatch) (domain.ExtractionResult, error) {
	if batch == nil {
		return nil, fmt.Errorf("%w: missing OCR batch", domain.ErrInvalidRequest)
	}
	if batch.Error != "" {
		return nil, fmt.Errorf("%w: %s", domain.ErrOCRFailure, batch.Error)
	}

	catalog := s.registry.Resolve(batch.Language)
	normalizer := s.normalizers[catalog]
	result := domain.NewExtractionResult()

	var (
		fragments  []domain.OCRFragment
		text       string
		matches    []LabelMatch
		segments   []Segment
		candidates []candidate
	)

	for stage := StageInit; stage <= StageDone; stage++ {
		switch stage {
		case StageInit:
			var skipped []error
			fragments, skipped = s.preprocessor.Clean(batch.Fragments)
			for _, err := range skipped {
				s.logger.Debug().Err(err).Msg("skipping fragment")
			}
			text = NormalizeText(Texts(fragments))

		case StageTokenPrepass:
			for _, f := range fragments {
				field, value, ok := catalog.MatchFragment(f.Text)
				if !ok || result[field].IsSet() {
					continue
				}
				result[field] = domain.NewFieldValue(value, f.Confidence)
			}

		case StageLabelMatch:
			matches = catalog.FindAll(text)

		case StageSegmentResolve:
			segments = ResolveSegments(text, matches)

		case StageNormalize:
			seen := make(map[domain.CanonicalField]bool)
			for _, seg := range segments {
				field := seg.Match.Field
				if result[field].IsSet() || seen[field] {
					continue
				}
				value := normalizer.Normalize(field, seg.Raw)
				if value == "" {
					continue
				}
				seen[field] = true
				candidates = append(candidates, candidate{field: field, value: value})
			}

		case StageConfidence:
			for _, c := range candidates {
				if c.value == "" {
					continue
				}
				result[c.field] = domain.NewFieldValue(c.value, AggregateConfidence(c.value, fragments))
			}

		case StageFallback:
			if filled := ScanFallback(result, text, fragments); len(filled) > 0 {
				s.logger.Debug().Interface("fields", filled).Msg("fallback scan resolved fields")
			}

		case StageDone:
			finalizeResult(result)
		}
	}

	s.logger.Debug().
		Str("language", catalog.Language()).
		Int("fragments", len(fragments)).
		Int("labels", len(matches)).
		Int("resolved", result.ResolvedCount()).
		Msg("extraction complete")

	return result, nil
}

// finalizeResult trims residual boundary punctuation and clears emptied values
func finalizeResult(result domain.ExtractionResult) {
	for field, v := range result {
		if v.Value == nil {
			continue
		}
		trimmed := strings.Trim(*v.Value, finalTrimSet)
		if trimmed == "" {
			result[field] = domain.FieldValue{}
			continue
		}
		result[field] = domain.FieldValue{Value: &trimmed, Confidence: v.Confidence}
	}
}

// Detect lists the fragments of a batch with confidence levels and bounding boxes
func (s *ExtractionService) Detect(batch *domain.OCRBatch) (*domain.DetectionReport, error) {
	if batch == nil {
		return nil, fmt.Errorf("%w: missing OCR batch", domain.ErrInvalidRequest)
	}
	if batch.Error != "" {
		return nil, fmt.Errorf("%w: %s", domain.ErrOCRFailure, batch.Error)
	}

	fragments, _ := s.preprocessor.Clean(batch.Fragments)
	report := &domain.DetectionReport{
		Detections: make([]domain.Detection, 0, len(fragments)),
		Language:   s.registry.Resolve(batch.Language).Language(),
	}

	var sum float64
	for _, f := range fragments {
		d := domain.Detection{
			Text:            f.Text,
			Confidence:      f.Confidence,
			ConfidenceLevel: domain.LevelFor(f.Confidence),
		}
		if box, ok := f.Box.Bounds(); ok {
			d.BoundingBox = &box
		}
		report.Detections = append(report.Detections, d)
		sum += f.Confidence

		switch d.ConfidenceLevel {
		case domain.ConfidenceHigh:
			report.Summary.HighConfidence++
		case domain.ConfidenceMedium:
			report.Summary.MediumConfidence++
		case domain.ConfidenceLow:
			report.Summary.LowConfidence++
		default:
			report.Summary.VeryLowConfidence++
		}
	}

	report.Summary.TotalDetections = len(fragments)
	if len(fragments) > 0 {
		report.Summary.AverageConfidence = sum / float64(len(fragments))
	}

	return report, nil
}
