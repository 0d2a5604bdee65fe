package report

import (
	"fmt"
	"sort"

	"github.com/xuri/excelize/v2"

	"github.com/mosipdecode/backend/internal/domain"
)

const (
	verificationSheet = "Verification"
	summarySheet      = "Summary"
	extractedSheet    = "Extracted"
)

var verdictHeaders = []string{
	"Field",
	"Submitted",
	"Extracted",
	"Similarity",
	"Status",
	"Extraction Confidence",
	"Overall Confidence",
	"Found On Page",
}

// VerificationWorkbook renders a verification result as XLSX bytes.
// The Extracted sheet is written only when extracted is non-nil.
func VerificationWorkbook(result domain.VerificationResult, extracted domain.ExtractionResult) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", verificationSheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	writeRow(f, verificationSheet, 1, toAny(verdictHeaders)...)

	keys := make([]string, 0, len(result.FieldResults))
	for k := range result.FieldResults {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for i, k := range keys {
		v := result.FieldResults[k]
		writeRow(f, verificationSheet, i+2,
			k,
			v.Submitted,
			deref(v.Extracted),
			v.SimilarityScore,
			string(v.Status),
			derefFloat(v.ExtractionConfidence),
			v.OverallConfidence,
			derefInt(v.FoundOnPage),
		)
	}
	_ = f.SetColWidth(verificationSheet, "A", "C", 24)
	_ = f.SetColWidth(verificationSheet, "D", "H", 18)

	if _, err := f.NewSheet(summarySheet); err != nil {
		return nil, fmt.Errorf("create summary sheet: %w", err)
	}
	s := result.Summary
	summaryRows := [][]interface{}{
		{"Metric", "Value"},
		{"Total Fields", s.TotalFields},
		{"Matched Fields", s.MatchedFields},
		{"Mismatched Fields", s.MismatchedFields},
		{"Not Found Fields", s.NotFoundFields},
		{"Overall Match Rate", s.OverallMatchRate},
	}
	for i, row := range summaryRows {
		writeRow(f, summarySheet, i+1, row...)
	}
	_ = f.SetColWidth(summarySheet, "A", "A", 22)

	if extracted != nil {
		if _, err := f.NewSheet(extractedSheet); err != nil {
			return nil, fmt.Errorf("create extracted sheet: %w", err)
		}
		writeRow(f, extractedSheet, 1, "Field", "Value", "Confidence")
		for i, field := range domain.CanonicalFields {
			v := extracted[field]
			writeRow(f, extractedSheet, i+2, string(field), v.ValueOrEmpty(), derefFloat(v.Confidence))
		}
		_ = f.SetColWidth(extractedSheet, "A", "B", 24)
	}

	f.SetActiveSheet(0)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}
	return buf.Bytes(), nil
}

func writeRow(f *excelize.File, sheet string, row int, values ...interface{}) {
	for i, v := range values {
		cell, _ := excelize.CoordinatesToCellName(i+1, row)
		_ = f.SetCellValue(sheet, cell, v)
	}
}

func toAny(ss []string) []interface{} {
	out := make([]interface{}, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}

func deref(s *string) interface{} {
	if s == nil {
		return ""
	}
	return *s
}

func derefFloat(f *float64) interface{} {
	if f == nil {
		return ""
	}
	return *f
}

func derefInt(n *int) interface{} {
	if n == nil {
		return ""
	}
	return *n
}
