// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the notesmith CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/meshintel/notesmith/internal/citation"
	"github.com/meshintel/notesmith/internal/lookup"
	"github.com/meshintel/notesmith/internal/secrets"
	"github.com/meshintel/notesmith/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds API keys loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// secretDefault returns fallback if set, else the secret value for key.
func secretDefault(key, fallback string) string {
	if fallback != "" {
		return fallback
	}
	if v, ok := loadedSecrets[key]; ok {
		return v
	}
	return ""
}

// rootCmd is the base command for the notesmith CLI.
var rootCmd = &cobra.Command{
	Use:   "notesmith",
	Short: "Turn endnote citations into a page-referenced Notes section",
	Long: `notesmith rewrites documents that cite with endnotes into documents that
cite with page references: every endnote marker becomes a bookmark, and a
Notes section at the end lists each citation behind a page-reference field,
prefixed with the opening words of the sentence it annotates.

Citations can optionally be classified (newspaper, government, interview,
legal, journal, book) and reformatted in Chicago style, enriched through
CourtListener, Semantic Scholar, and Google Books lookups.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", secrets.Keys(s))
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./notesmith.yaml or ~/.config/notesmith/config.yaml)")
	rootCmd.PersistentFlags().Bool("verbose", false, "verbose (development) logging")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("notesmith")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "notesmith"))
		}
	}

	viper.SetEnvPrefix("NOTESMITH")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// newLogger builds the process logger; --verbose switches to development
// output.
func newLogger() *zap.Logger {
	verbose, _ := rootCmd.PersistentFlags().GetBool("verbose")
	var (
		log *zap.Logger
		err error
	)
	if verbose {
		log, err = zap.NewDevelopment()
	} else {
		log, err = zap.NewProduction()
	}
	if err != nil {
		return zap.NewNop()
	}
	return log
}

// lookupConfig assembles lookup settings from config, environment, and the
// secrets directory.
func lookupConfig() types.LookupConfig {
	cfg := types.LookupConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   viper.GetDuration("lookup.timeout"),
			UserAgent: viper.GetString("lookup.user_agent"),
		},
		CourtListenerToken:    secretDefault("courtlistener-api-token", viper.GetString("lookup.courtlistener_token")),
		SemanticScholarAPIKey: secretDefault("semantic-scholar-api-key", viper.GetString("lookup.semantic_scholar_api_key")),
		GoogleBooksAPIKey:     secretDefault("google-books-api-key", viper.GetString("lookup.google_books_api_key")),
		CachePath:             viper.GetString("lookup.cache_path"),
		CacheTTL:              viper.GetDuration("lookup.cache_ttl"),
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = "notesmith/" + version
	}
	return cfg
}

// buildSources wires the lookup clients behind the citation engine. The
// returned cache may be nil; callers close it when non-nil.
func buildSources(log *zap.Logger) (citation.Sources, *lookup.Cache) {
	cfg := lookupConfig()

	var cache *lookup.Cache
	if cfg.CachePath != "" {
		ttl := cfg.CacheTTL
		if ttl <= 0 {
			ttl = 7 * 24 * time.Hour
		}
		c, err := lookup.OpenCache(cfg.CachePath, ttl)
		if err != nil {
			log.Warn("lookup cache unavailable", zap.Error(err))
		} else {
			cache = c
		}
	}

	return citation.Sources{
		CaseLaw: lookup.NewCaseLawClient(cfg, cache),
		Papers:  lookup.NewScholarClient(cfg, cache),
		Books:   lookup.NewBooksClient(cfg, cache),
		Pages:   lookup.NewFetcher(cfg),
	}, cache
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
