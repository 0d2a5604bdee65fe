package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mosipdecode/backend/internal/domain"
	"github.com/mosipdecode/backend/internal/infrastructure/report"
)

var (
	claimsPath     string
	verifyLanguage string
	quick          bool
	xlsxPath       string
)

var verifyCmd = &cobra.Command{
	Use:   "verify <batch.json> [more pages...]",
	Short: "Verify submitted claims against one or more OCR batches",
	Long: `Verify compares a JSON object of claims with the fields extracted from
each batch. With several batches the best verdict per claim across pages is kept.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		documents, _, err := newDocumentService()
		if err != nil {
			return err
		}

		rawClaims, err := readInput(cmd, claimsPath)
		if err != nil {
			return err
		}
		claims, err := domain.ParseClaims(rawClaims)
		if err != nil {
			return err
		}

		batches := make([]*domain.OCRBatch, 0, len(args))
		for _, path := range args {
			batch, err := readBatch(cmd, path, verifyLanguage)
			if err != nil {
				return err
			}
			batches = append(batches, batch)
		}

		var (
			extracted domain.ExtractionResult
			result    domain.VerificationResult
			output    any
		)
		if len(batches) == 1 {
			extracted, result, err = documents.VerifyBatch(batches[0], claims)
			if err != nil {
				return err
			}
			output = result
		} else {
			pages, err := documents.VerifyPages(batches, claims)
			if err != nil {
				return err
			}
			result = pages.Overall
			output = pages
		}

		if xlsxPath != "" {
			data, err := report.VerificationWorkbook(result, extracted)
			if err != nil {
				return err
			}
			if err := os.WriteFile(xlsxPath, data, 0o644); err != nil {
				return fmt.Errorf("write workbook: %w", err)
			}
		}

		if quick {
			return writeOutput(cmd.OutOrStdout(), map[string]any{
				"verified":   documents.QuickVerify(result),
				"match_rate": result.Summary.OverallMatchRate,
			})
		}
		return writeOutput(cmd.OutOrStdout(), output)
	},
}

func init() {
	verifyCmd.Flags().StringVarP(&claimsPath, "claims", "c", "", "JSON object of claims (\"-\" for stdin)")
	verifyCmd.Flags().StringVarP(&verifyLanguage, "language", "l", "", "override the batch language")
	verifyCmd.Flags().BoolVar(&quick, "quick", false, "print only the pass/fail decision")
	verifyCmd.Flags().StringVar(&xlsxPath, "xlsx", "", "also write the result as a workbook")
	_ = verifyCmd.MarkFlagRequired("claims")
}
