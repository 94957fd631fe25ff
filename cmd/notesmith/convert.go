// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/meshintel/notesmith/internal/citation"
	"github.com/meshintel/notesmith/internal/convert"
	"github.com/meshintel/notesmith/pkg/types"
)

var convertCmd = &cobra.Command{
	Use:   "convert <input.docx>",
	Short: "Convert a document's endnotes to a page-referenced Notes section",
	Long: `Convert unpacks the document, reads its endnotes, replaces every in-body
endnote marker with a bookmark, and appends a Notes section where each
citation sits behind a page-reference field pointing at its bookmark.

With --format, citations are also classified and rendered in Chicago style
with Ibid./short-form deduplication; this calls external lookup services.
Without it the conversion is fully offline.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		input := args[0]
		output, _ := cmd.Flags().GetString("output")
		if output == "" {
			output = strings.TrimSuffix(input, ".docx") + "-notes.docx"
		}

		words, _ := cmd.Flags().GetInt("words")
		styleName, _ := cmd.Flags().GetString("style")
		noIncipit, _ := cmd.Flags().GetBool("no-incipit")
		applyFormatting, _ := cmd.Flags().GetBool("format")

		style := types.StyleBold
		if styleName == string(types.StyleItalic) {
			style = types.StyleItalic
		}
		opts := types.ConvertOptions{
			WordCount:       words,
			FormatStyle:     style,
			ExtractIncipit:  !noIncipit,
			ApplyFormatting: applyFormatting,
			CitationStyle:   viper.GetString("convert.citation_style"),
		}

		log := newLogger()
		defer log.Sync() //nolint:errcheck

		sources, cache := buildSources(log)
		if cache != nil {
			defer cache.Close()
		}
		if !applyFormatting {
			sources = citation.Sources{}
		}

		job, err := convert.NewJob(opts, sources, viper.GetString("convert.work_dir"), log)
		if err != nil {
			return err
		}
		if err := job.Run(cmd.Context(), input, output); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Converted %d endnotes: %s\n", len(job.Endnotes()), output)
		return nil
	},
}

func init() {
	convertCmd.Flags().StringP("output", "o", "", "output path (default: <input>-notes.docx)")
	convertCmd.Flags().Int("words", 3, "incipit length in words (1-10)")
	convertCmd.Flags().String("style", "bold", "incipit style: bold or italic")
	convertCmd.Flags().Bool("no-incipit", false, "skip incipit prefixes")
	convertCmd.Flags().Bool("format", false, "classify and reformat citations (uses external lookups)")

	rootCmd.AddCommand(convertCmd)
}
