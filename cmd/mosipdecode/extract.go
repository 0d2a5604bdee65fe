package main

import (
	"github.com/spf13/cobra"
)

var extractLanguage string

var extractCmd = &cobra.Command{
	Use:   "extract <batch.json>",
	Short: "Resolve the canonical identity fields of an OCR batch",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		documents, _, err := newDocumentService()
		if err != nil {
			return err
		}
		batch, err := readBatch(cmd, args[0], extractLanguage)
		if err != nil {
			return err
		}

		extracted, err := documents.ExtractBatch(batch)
		if err != nil {
			return err
		}
		return writeOutput(cmd.OutOrStdout(), extracted)
	},
}

func init() {
	extractCmd.Flags().StringVarP(&extractLanguage, "language", "l", "", "override the batch language")
}
