// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bufio"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/meshintel/notesmith/internal/citation"
	"github.com/meshintel/notesmith/internal/lookup"
	"github.com/meshintel/notesmith/pkg/types"
)

var classifyCmd = &cobra.Command{
	Use:   "classify [citation...]",
	Short: "Classify and format raw citations",
	Long: `Classify runs the citation pipeline over the given citations (or stdin,
one per line) and prints the rendered Chicago-style text. Repeated works
shorten the way they would inside one document: Ibid. on immediate
repetition, short form on later reuse.

With --csl, parsed citations are emitted as CSL-YAML instead, ready for
Pandoc or a reference manager. With --offline, no lookup service is called
and classification relies on the local tables alone.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		useCSL, _ := cmd.Flags().GetBool("csl")
		offline, _ := cmd.Flags().GetBool("offline")

		log := newLogger()
		defer log.Sync() //nolint:errcheck

		sources := citation.Sources{}
		if !offline {
			var cache *lookup.Cache
			sources, cache = buildSources(log)
			if cache != nil {
				defer cache.Close() //nolint:errcheck
			}
		}
		engine := citation.New(viper.GetString("convert.citation_style"), sources)

		lines := args
		if len(lines) == 0 {
			sc := bufio.NewScanner(cmd.InOrStdin())
			for sc.Scan() {
				if line := sc.Text(); line != "" {
					lines = append(lines, line)
				}
			}
			if err := sc.Err(); err != nil {
				return err
			}
		}

		if useCSL {
			parsed := make([]*types.CitationData, 0, len(lines))
			for _, line := range lines {
				parsed = append(parsed, engine.Parse(cmd.Context(), line))
			}
			return citation.FormatCSL(parsed, cmd.OutOrStdout())
		}

		for _, line := range lines {
			rendered, url := engine.Format(cmd.Context(), line)
			if url != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", rendered, url)
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), rendered)
			}
		}
		return nil
	},
}

func init() {
	classifyCmd.Flags().Bool("csl", false, "emit CSL-YAML instead of rendered text")
	classifyCmd.Flags().Bool("offline", false, "skip external lookup services")

	rootCmd.AddCommand(classifyCmd)
}
