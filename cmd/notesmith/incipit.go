// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/meshintel/notesmith/internal/incipit"
)

var incipitCmd = &cobra.Command{
	Use:   "incipit <text>",
	Short: "Show the incipit a marker at the end of the text would get",
	Long: `Incipit prints the opening words the extractor would pick for an endnote
marker placed at the end of the given text. Useful for checking quotation
and sentence-boundary handling on real paragraphs.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		words, _ := cmd.Flags().GetInt("words")
		offset, _ := cmd.Flags().GetInt("offset")
		text := args[0]
		if offset < 0 {
			offset = utf8.RuneCountInString(text)
		}
		got := incipit.Extract(text, offset, words)
		fmt.Fprintln(cmd.OutOrStdout(), got)
		return nil
	},
}

func init() {
	incipitCmd.Flags().Int("words", 3, "incipit length in words (1-10)")
	incipitCmd.Flags().Int("offset", -1, "marker rune offset (default: end of text)")

	rootCmd.AddCommand(incipitCmd)
}
