package main

import (
	"github.com/spf13/cobra"

	"github.com/mosipdecode/backend/internal/domain"
)

var labelsCmd = &cobra.Command{
	Use:   "labels [language]",
	Short: "List the label catalogs",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, registry, err := newDocumentService()
		if err != nil {
			return err
		}

		languages := registry.Languages()
		if len(args) == 1 {
			catalog, err := registry.Lookup(args[0])
			if err != nil {
				return err
			}
			languages = []string{catalog.Language()}
		}

		out := make(map[string]map[domain.CanonicalField][]string, len(languages))
		for _, lang := range languages {
			catalog, err := registry.Lookup(lang)
			if err != nil {
				return err
			}
			fields := make(map[domain.CanonicalField][]string, len(domain.CanonicalFields))
			for _, field := range domain.CanonicalFields {
				fields[field] = catalog.Labels(field)
			}
			out[lang] = fields
		}
		return writeOutput(cmd.OutOrStdout(), out)
	},
}
