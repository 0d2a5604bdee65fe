package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mosipdecode/backend/internal/domain"
)

func extractedWith(values map[domain.CanonicalField]string, confidence float64) domain.ExtractionResult {
	result := domain.NewExtractionResult()
	for f, v := range values {
		result[f] = domain.NewFieldValue(v, confidence)
	}
	return result
}

func TestNewVerificationService(t *testing.T) {
	t.Run("uses defaults when unset", func(t *testing.T) {
		svc := NewVerificationService(VerificationConfig{})
		assert.Equal(t, 0.8, svc.matchThreshold)
		assert.Equal(t, 0.5, svc.partialThreshold)
		assert.Equal(t, 0.6, svc.keySimilarityThreshold)
		assert.Equal(t, 0.7, svc.quickVerifyMinRate)
		assert.Equal(t, 0.5, svc.criticalSimilarity)
	})

	t.Run("keeps provided thresholds", func(t *testing.T) {
		svc := NewVerificationService(VerificationConfig{MatchThreshold: 0.9, PartialThreshold: 0.7})
		assert.Equal(t, 0.9, svc.matchThreshold)
		assert.Equal(t, 0.7, svc.partialThreshold)
	})
}

func TestVerify_ExactNamePath(t *testing.T) {
	svc := NewVerificationService(VerificationConfig{})
	extracted := extractedWith(map[domain.CanonicalField]string{domain.FieldName: "Ananya Rao"}, 0.9)

	t.Run("partial value is never NOT_FOUND", func(t *testing.T) {
		result := svc.Verify(domain.VerificationClaim{"Name": "Ananya"}, extracted)

		verdict, ok := result.FieldResults["name"]
		require.True(t, ok, "verdict keyed by lowercased claim name")
		assert.Equal(t, domain.StatusPartialMatch, verdict.Status)
		assert.InDelta(t, 0.75, verdict.SimilarityScore, 1e-9)
		require.NotNil(t, verdict.Extracted)
		assert.Equal(t, "Ananya Rao", *verdict.Extracted)
		require.NotNil(t, verdict.ExtractionConfidence)
		assert.InDelta(t, 0.9, *verdict.ExtractionConfidence, 1e-9)
		assert.InDelta(t, 0.825, verdict.OverallConfidence, 0.001)
	})

	t.Run("full value matches", func(t *testing.T) {
		result := svc.Verify(domain.VerificationClaim{"name": "ananya rao"}, extracted)
		assert.Equal(t, domain.StatusMatch, result.FieldResults["name"].Status)
		assert.Equal(t, 1.0, result.FieldResults["name"].SimilarityScore)
	})
}

func TestVerify_FuzzyNamePath(t *testing.T) {
	svc := NewVerificationService(VerificationConfig{})
	extracted := extractedWith(map[domain.CanonicalField]string{
		domain.FieldName: "Ananya Rao",
		domain.FieldAge:  "29",
	}, 0.8)

	result := svc.Verify(domain.VerificationClaim{"full_name": "Ananya Rao"}, extracted)

	verdict := result.FieldResults["full_name"]
	assert.Equal(t, domain.StatusMatch, verdict.Status)
	require.NotNil(t, verdict.Extracted)
	assert.Equal(t, "Ananya Rao", *verdict.Extracted)
}

func TestVerify_NoFalsePositiveFromUnrelatedField(t *testing.T) {
	svc := NewVerificationService(VerificationConfig{})
	extracted := extractedWith(map[domain.CanonicalField]string{
		domain.FieldEmail: "221b.baker.street@mail.com",
	}, 0.9)

	result := svc.Verify(domain.VerificationClaim{"address": "221B Baker Street"}, extracted)

	verdict := result.FieldResults["address"]
	assert.Equal(t, domain.StatusNotFound, verdict.Status)
	assert.Nil(t, verdict.Extracted)
	assert.Nil(t, verdict.ExtractionConfidence)
	assert.Zero(t, verdict.SimilarityScore)
	assert.Zero(t, verdict.OverallConfidence)
}

func TestVerify_Summary(t *testing.T) {
	svc := NewVerificationService(VerificationConfig{})
	extracted := extractedWith(map[domain.CanonicalField]string{
		domain.FieldName:    "Ananya Rao",
		domain.FieldCountry: "India",
		domain.FieldAge:     "29",
	}, 0.9)

	result := svc.Verify(domain.VerificationClaim{
		"name":    "Ananya Rao",
		"age":     "29",
		"country": "Germany",
		"phone":   "555-1234",
		"email":   "   ",
	}, extracted)

	assert.Len(t, result.FieldResults, 4, "blank claims are skipped")
	assert.Equal(t, domain.StatusMismatch, result.FieldResults["country"].Status)
	assert.Equal(t, domain.StatusNotFound, result.FieldResults["phone"].Status)

	assert.Equal(t, domain.VerificationSummary{
		TotalFields:      4,
		MatchedFields:    2,
		MismatchedFields: 1,
		NotFoundFields:   1,
		OverallMatchRate: 0.5,
	}, result.Summary)
}

func TestVerify_EmptyClaims(t *testing.T) {
	result := NewVerificationService(VerificationConfig{}).Verify(nil, domain.NewExtractionResult())
	assert.Empty(t, result.FieldResults)
	assert.Equal(t, domain.VerificationSummary{}, result.Summary)
}

func TestVerify_DuplicateClaimKeys(t *testing.T) {
	svc := NewVerificationService(VerificationConfig{})
	extracted := extractedWith(map[domain.CanonicalField]string{domain.FieldName: "Alice"}, 0.9)

	result := svc.Verify(domain.VerificationClaim{"Name": "Alice", "name": "Bob"}, extracted)

	require.Len(t, result.FieldResults, 1)
	assert.Equal(t, "Alice", result.FieldResults["name"].Submitted)
	assert.Equal(t, 1, result.Summary.TotalFields)
}

func TestVerify_NilExtractionConfidence(t *testing.T) {
	svc := NewVerificationService(VerificationConfig{})
	value := "Alice"
	extracted := domain.NewExtractionResult()
	extracted[domain.FieldName] = domain.FieldValue{Value: &value}

	verdict := svc.Verify(domain.VerificationClaim{"name": "Alice"}, extracted).FieldResults["name"]

	assert.Nil(t, verdict.ExtractionConfidence)
	assert.InDelta(t, 0.5, verdict.OverallConfidence, 1e-9)
}

func TestQuickVerify(t *testing.T) {
	svc := NewVerificationService(VerificationConfig{})

	tests := []struct {
		name   string
		result domain.VerificationResult
		want   bool
	}{
		{
			name: "passing rate without severe mismatch",
			result: domain.VerificationResult{
				FieldResults: map[string]domain.FieldVerdict{
					"name": {Status: domain.StatusMatch, SimilarityScore: 1},
					"age":  {Status: domain.StatusPartialMatch, SimilarityScore: 0.6},
				},
				Summary: domain.VerificationSummary{OverallMatchRate: 0.9},
			},
			want: true,
		},
		{
			name: "single severe mismatch vetoes",
			result: domain.VerificationResult{
				FieldResults: map[string]domain.FieldVerdict{
					"name":    {Status: domain.StatusMatch, SimilarityScore: 1},
					"country": {Status: domain.StatusMismatch, SimilarityScore: 0.2},
				},
				Summary: domain.VerificationSummary{OverallMatchRate: 0.9},
			},
			want: false,
		},
		{
			name: "rate below minimum",
			result: domain.VerificationResult{
				FieldResults: map[string]domain.FieldVerdict{
					"name": {Status: domain.StatusMatch, SimilarityScore: 1},
				},
				Summary: domain.VerificationSummary{OverallMatchRate: 0.6},
			},
			want: false,
		},
		{
			name: "not found does not veto",
			result: domain.VerificationResult{
				FieldResults: map[string]domain.FieldVerdict{
					"phone": {Status: domain.StatusNotFound},
				},
				Summary: domain.VerificationSummary{OverallMatchRate: 0.75},
			},
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, svc.QuickVerify(tt.result))
		})
	}
}

func TestVerifyPages(t *testing.T) {
	svc := NewVerificationService(VerificationConfig{})
	pages := []domain.ExtractionResult{
		extractedWith(map[domain.CanonicalField]string{domain.FieldName: "John Smith"}, 0.9),
		extractedWith(map[domain.CanonicalField]string{
			domain.FieldName:  "Jon Smith",
			domain.FieldEmail: "john@example.com",
		}, 0.8),
	}
	claims := domain.VerificationClaim{
		"name":    "John Smith",
		"email":   "john@example.com",
		"country": "India",
	}

	out := svc.VerifyPages(claims, pages)

	assert.Equal(t, 2, out.TotalPages)
	require.Len(t, out.Pages, 2)
	assert.Equal(t, 1, out.Pages[0].Page)
	assert.Equal(t, domain.StatusNotFound, out.Pages[0].Result.FieldResults["email"].Status)

	name := out.Overall.FieldResults["name"]
	require.NotNil(t, name.FoundOnPage)
	assert.Equal(t, 1, *name.FoundOnPage)
	assert.Equal(t, domain.StatusMatch, name.Status)

	email := out.Overall.FieldResults["email"]
	require.NotNil(t, email.FoundOnPage)
	assert.Equal(t, 2, *email.FoundOnPage)

	country := out.Overall.FieldResults["country"]
	assert.Equal(t, domain.StatusNotFound, country.Status)
	assert.Nil(t, country.FoundOnPage)

	assert.Equal(t, domain.VerificationSummary{
		TotalFields:      3,
		MatchedFields:    2,
		MismatchedFields: 0,
		NotFoundFields:   1,
		OverallMatchRate: 0.667,
	}, out.Overall.Summary)
}

func TestSummarize(t *testing.T) {
	summary := Summarize(map[string]domain.FieldVerdict{
		"a": {Status: domain.StatusMatch},
		"b": {Status: domain.StatusPartialMatch},
		"c": {Status: domain.StatusMismatch},
	})
	assert.Equal(t, 3, summary.TotalFields)
	assert.Equal(t, 1, summary.MatchedFields)
	assert.Equal(t, 2, summary.MismatchedFields)
	assert.Equal(t, 0.333, summary.OverallMatchRate)
}
