package usecase

import (
	"math"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/mosipdecode/backend/internal/domain"
)

// VerificationConfig holds the thresholds used to classify claims
type VerificationConfig struct {
	MatchThreshold         float64
	PartialThreshold       float64
	KeySimilarityThreshold float64
	QuickVerifyMinRate     float64
	CriticalSimilarity     float64
	Logger                 *zerolog.Logger
}

// VerificationService compares submitted claims with extracted fields
type VerificationService struct {
	matchThreshold         float64
	partialThreshold       float64
	keySimilarityThreshold float64
	quickVerifyMinRate     float64
	criticalSimilarity     float64
	logger                 zerolog.Logger
}

// NewVerificationService creates a verification service.
// A zero threshold means unset and takes its default; config rejects an explicit zero.
func NewVerificationService(config VerificationConfig) *VerificationService {
	match := config.MatchThreshold
	if match <= 0 {
		match = 0.8
	}

	partial := config.PartialThreshold
	if partial <= 0 {
		partial = 0.5
	}

	keySim := config.KeySimilarityThreshold
	if keySim <= 0 {
		keySim = 0.6
	}

	minRate := config.QuickVerifyMinRate
	if minRate <= 0 {
		minRate = 0.7
	}

	critical := config.CriticalSimilarity
	if critical <= 0 {
		critical = 0.5
	}

	logger := zerolog.Nop()
	if config.Logger != nil {
		logger = config.Logger.With().Str("component", "verification").Logger()
	}

	return &VerificationService{
		matchThreshold:         match,
		partialThreshold:       partial,
		keySimilarityThreshold: keySim,
		quickVerifyMinRate:     minRate,
		criticalSimilarity:     critical,
		logger:                 logger,
	}
}

// extractedField is a resolved field prepared for comparison
type extractedField struct {
	name       string
	value      string
	confidence *float64
}

// Verify produces a verdict for every non-blank claim plus a summary.
// Claim keys are lowercased; when two keys collide the first in sorted order is kept.
func (s *VerificationService) Verify(claims domain.VerificationClaim, extracted domain.ExtractionResult) domain.VerificationResult {
	fields := prepareExtracted(extracted)

	result := domain.VerificationResult{FieldResults: make(map[string]domain.FieldVerdict)}
	for _, key := range sortedClaimKeys(claims) {
		submitted := strings.TrimSpace(claims[key])
		if submitted == "" {
			continue
		}

		name := strings.ToLower(strings.TrimSpace(key))
		if _, dup := result.FieldResults[name]; dup {
			s.logger.Debug().Str("claim", key).Msg("ignoring duplicate claim key")
			continue
		}

		verdict := s.verifyClaim(name, submitted, fields)
		result.FieldResults[name] = verdict

		s.logger.Debug().
			Str("claim", name).
			Str("status", string(verdict.Status)).
			Float64("similarity", verdict.SimilarityScore).
			Msg("claim verified")
	}

	result.Summary = Summarize(result.FieldResults)
	return result
}

// verifyClaim classifies one claim against the extracted fields
func (s *VerificationService) verifyClaim(name, submitted string, fields []extractedField) domain.FieldVerdict {
	best, similarity, found := s.findCandidate(name, submitted, fields)
	if !found {
		return notFoundVerdict(submitted)
	}

	status := domain.StatusMismatch
	switch {
	case similarity >= s.matchThreshold:
		status = domain.StatusMatch
	case similarity >= s.partialThreshold:
		status = domain.StatusPartialMatch
	}

	extractionConfidence := 0.0
	var confidence *float64
	if best.confidence != nil {
		extractionConfidence = *best.confidence
		rounded := round3(extractionConfidence)
		confidence = &rounded
	}

	value := best.value
	return domain.FieldVerdict{
		Submitted:            submitted,
		Extracted:            &value,
		SimilarityScore:      round3(similarity),
		Status:               status,
		ExtractionConfidence: confidence,
		OverallConfidence:    round3((similarity + extractionConfidence) / 2),
	}
}

// findCandidate picks the extracted field a claim is compared against.
// An exact name match wins outright. Otherwise only fields whose name passes the
// key-similarity gate are considered, and the best value similarity among them is kept.
// Values of unrelated fields are never compared.
func (s *VerificationService) findCandidate(name, submitted string, fields []extractedField) (extractedField, float64, bool) {
	for _, f := range fields {
		if f.name == name {
			return f, Similarity(submitted, f.value), true
		}
	}

	var best extractedField
	bestSimilarity := -1.0
	for _, f := range fields {
		if Similarity(name, f.name) < s.keySimilarityThreshold {
			continue
		}
		if sim := Similarity(submitted, f.value); sim > bestSimilarity {
			best = f
			bestSimilarity = sim
		}
	}

	if bestSimilarity < 0 {
		return extractedField{}, 0, false
	}
	return best, bestSimilarity, true
}

// QuickVerify passes when the match rate reaches the minimum and no claim is a severe mismatch
func (s *VerificationService) QuickVerify(result domain.VerificationResult) bool {
	if result.Summary.OverallMatchRate < s.quickVerifyMinRate {
		return false
	}
	for _, v := range result.FieldResults {
		if v.Status == domain.StatusMismatch && v.SimilarityScore < s.criticalSimilarity {
			return false
		}
	}
	return true
}

// VerifyPages verifies the same claims against every page and keeps, per claim,
// the verdict with the highest positive similarity. Pages are numbered from 1.
func (s *VerificationService) VerifyPages(claims domain.VerificationClaim, pages []domain.ExtractionResult) domain.MultiPageVerification {
	out := domain.MultiPageVerification{
		TotalPages: len(pages),
		Pages:      make([]domain.PageVerification, 0, len(pages)),
		Overall:    domain.VerificationResult{FieldResults: make(map[string]domain.FieldVerdict)},
	}

	for i, page := range pages {
		pageNumber := i + 1
		pageResult := s.Verify(claims, page)
		out.Pages = append(out.Pages, domain.PageVerification{
			Page:      pageNumber,
			Extracted: page,
			Result:    pageResult,
		})

		for name, verdict := range pageResult.FieldResults {
			if verdict.SimilarityScore <= 0 {
				continue
			}
			current, ok := out.Overall.FieldResults[name]
			if ok && current.SimilarityScore >= verdict.SimilarityScore {
				continue
			}
			verdict.FoundOnPage = &pageNumber
			out.Overall.FieldResults[name] = verdict
		}
	}

	for _, key := range sortedClaimKeys(claims) {
		submitted := strings.TrimSpace(claims[key])
		if submitted == "" {
			continue
		}
		name := strings.ToLower(strings.TrimSpace(key))
		if _, ok := out.Overall.FieldResults[name]; !ok {
			out.Overall.FieldResults[name] = notFoundVerdict(submitted)
		}
	}

	out.Overall.Summary = Summarize(out.Overall.FieldResults)
	return out
}

// Summarize counts verdicts per status. Partial matches count as mismatched.
func Summarize(verdicts map[string]domain.FieldVerdict) domain.VerificationSummary {
	var summary domain.VerificationSummary
	for _, v := range verdicts {
		switch v.Status {
		case domain.StatusMatch:
			summary.MatchedFields++
		case domain.StatusPartialMatch, domain.StatusMismatch:
			summary.MismatchedFields++
		case domain.StatusNotFound:
			summary.NotFoundFields++
		}
	}

	summary.TotalFields = summary.MatchedFields + summary.MismatchedFields + summary.NotFoundFields
	if summary.TotalFields > 0 {
		summary.OverallMatchRate = round3(float64(summary.MatchedFields) / float64(summary.TotalFields))
	}
	return summary
}

func notFoundVerdict(submitted string) domain.FieldVerdict {
	return domain.FieldVerdict{
		Submitted: submitted,
		Status:    domain.StatusNotFound,
	}
}

// prepareExtracted keeps the non-empty fields, lowercased and in name order
func prepareExtracted(extracted domain.ExtractionResult) []extractedField {
	fields := make([]extractedField, 0, len(extracted))
	for name, v := range extracted {
		value := strings.TrimSpace(v.ValueOrEmpty())
		if value == "" {
			continue
		}
		fields = append(fields, extractedField{
			name:       strings.ToLower(string(name)),
			value:      value,
			confidence: v.Confidence,
		})
	}
	sort.Slice(fields, func(i, j int) bool { return fields[i].name < fields[j].name })
	return fields
}

func sortedClaimKeys(claims domain.VerificationClaim) []string {
	keys := make([]string, 0, len(claims))
	for k := range claims {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
