package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mosipdecode/backend/internal/domain"
	"github.com/mosipdecode/backend/internal/infrastructure/ocrclient"
	"github.com/mosipdecode/backend/internal/logger"
	"github.com/mosipdecode/backend/internal/usecase"
)

var (
	outputFormat    string
	defaultLanguage string
	verbose         bool
)

var rootCmd = &cobra.Command{
	Use:   "mosipdecode",
	Short: "Extract and verify identity fields from OCR output",
	Long: `mosipdecode works offline on OCR batches saved as JSON
({"language": "en", "fragments": [{"text": "...", "confidence": 0.9}]}).

Examples:
  mosipdecode extract page.json
  mosipdecode verify page.json --claims claims.json
  mosipdecode verify p1.json p2.json --claims claims.json -o json
  mosipdecode labels`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if outputFormat != "yaml" && outputFormat != "json" {
			return fmt.Errorf("unknown output format: %s", outputFormat)
		}
		level := "warn"
		if verbose {
			level = "debug"
		}
		logger.Init(logger.Config{Level: level, Format: "pretty", Output: cmd.ErrOrStderr()})
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(
		&outputFormat, "output", "o", "yaml", "output format: yaml or json",
	)
	rootCmd.PersistentFlags().StringVar(
		&defaultLanguage, "default-language", "en", "catalog used when a batch names no known language",
	)
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log pipeline details to stderr")

	rootCmd.AddCommand(extractCmd, verifyCmd, labelsCmd)
}

// writeOutput encodes data in the selected output format
func writeOutput(w io.Writer, data any) error {
	switch outputFormat {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(data)
	default:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(data)
	}
}

// newDocumentService builds the offline pipeline. No OCR engine or cache is wired.
func newDocumentService() (*usecase.DocumentService, *usecase.CatalogRegistry, error) {
	registry, err := usecase.NewCatalogRegistry(defaultLanguage)
	if err != nil {
		return nil, nil, err
	}
	log := &logger.Logger
	documents := usecase.NewDocumentService(
		nil,
		nil,
		usecase.NewExtractionService(registry, usecase.ExtractionConfig{Logger: log}),
		usecase.NewVerificationService(usecase.VerificationConfig{Logger: log}),
		usecase.DocumentServiceConfig{Logger: log},
	)
	return documents, registry, nil
}

// readInput reads a file, or stdin for "-"
func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	return os.ReadFile(path)
}

// readBatch loads and validates one OCR batch file
func readBatch(cmd *cobra.Command, path, language string) (*domain.OCRBatch, error) {
	data, err := readInput(cmd, path)
	if err != nil {
		return nil, err
	}
	batch, err := ocrclient.DecodeBatch(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if language != "" {
		batch.Language = language
	}
	return batch, nil
}
