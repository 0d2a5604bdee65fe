package domain

// VerificationClaim maps a submitted field name to the submitted value.
// Names are free-form and need not be canonical fields.
type VerificationClaim map[string]string

// MatchStatus classifies a claim against the extracted data
type MatchStatus string

const (
	StatusMatch        MatchStatus = "MATCH"
	StatusPartialMatch MatchStatus = "PARTIAL_MATCH"
	StatusMismatch     MatchStatus = "MISMATCH"
	StatusNotFound     MatchStatus = "NOT_FOUND"
)

// FieldVerdict is the outcome for one claim
type FieldVerdict struct {
	Submitted            string      `json:"submitted" yaml:"submitted"`
	Extracted            *string     `json:"extracted" yaml:"extracted"`
	SimilarityScore      float64     `json:"similarity_score" yaml:"similarity_score"`
	Status               MatchStatus `json:"status" yaml:"status"`
	ExtractionConfidence *float64    `json:"extraction_confidence" yaml:"extraction_confidence"`
	OverallConfidence    float64     `json:"overall_confidence" yaml:"overall_confidence"`
	FoundOnPage          *int        `json:"found_on_page,omitempty" yaml:"found_on_page,omitempty"`
}

// VerificationSummary aggregates the verdicts of one verification call
type VerificationSummary struct {
	TotalFields      int     `json:"total_fields" yaml:"total_fields"`
	MatchedFields    int     `json:"matched_fields" yaml:"matched_fields"`
	MismatchedFields int     `json:"mismatched_fields" yaml:"mismatched_fields"`
	NotFoundFields   int     `json:"not_found_fields" yaml:"not_found_fields"`
	OverallMatchRate float64 `json:"overall_match_rate" yaml:"overall_match_rate"`
}

// VerificationResult is the complete per-claim breakdown plus summary
type VerificationResult struct {
	FieldResults map[string]FieldVerdict `json:"field_results" yaml:"field_results"`
	Summary      VerificationSummary     `json:"verification_summary" yaml:"verification_summary"`
}

// PageVerification is the verification of one page of a multi-page document
type PageVerification struct {
	Page      int                `json:"page" yaml:"page"`
	Extracted ExtractionResult   `json:"extracted_data" yaml:"extracted_data"`
	Result    VerificationResult `json:"verification" yaml:"verification"`
}

// MultiPageVerification keeps, per claim, the best verdict across all pages
type MultiPageVerification struct {
	TotalPages int                `json:"total_pages" yaml:"total_pages"`
	Pages      []PageVerification `json:"pages" yaml:"pages"`
	Overall    VerificationResult `json:"overall" yaml:"overall"`
}
