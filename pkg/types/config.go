// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by the lookup clients.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout. Lookup calls are short-fused
	// (3-5 s) so an unreachable service degrades classification instead
	// of hanging the job.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "notesmith/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// LookupConfig holds settings for the external lookup services.
type LookupConfig struct {
	HTTPConfig `yaml:",inline"`

	// CourtListenerToken is an optional API token for the case-law search.
	CourtListenerToken string `json:"courtlistener_token,omitempty" yaml:"courtlistener_token,omitempty"`

	// SemanticScholarAPIKey is an optional API key for higher rate limits.
	SemanticScholarAPIKey string `json:"semantic_scholar_api_key,omitempty" yaml:"semantic_scholar_api_key,omitempty"`

	// GoogleBooksAPIKey is an optional key for the book-metadata search.
	GoogleBooksAPIKey string `json:"google_books_api_key,omitempty" yaml:"google_books_api_key,omitempty"`

	// CachePath enables the on-disk lookup cache when non-empty. The cache
	// holds raw lookup responses keyed by (service, query); it never holds
	// job state.
	CachePath string `json:"cache_path,omitempty" yaml:"cache_path,omitempty"`

	// CacheTTL bounds how long cached lookup responses are served (default 7 days).
	CacheTTL time.Duration `json:"cache_ttl,omitempty" yaml:"cache_ttl,omitempty"`
}

// FormatStyle selects how incipit prefixes are styled in the Notes section.
type FormatStyle string

const (
	StyleBold   FormatStyle = "bold"
	StyleItalic FormatStyle = "italic"
)

// ConvertOptions holds per-job conversion options, mirroring the upload form.
type ConvertOptions struct {
	// WordCount is the incipit length in words, between 1 and 10.
	WordCount int `json:"word_count" yaml:"word_count"`

	// FormatStyle styles the incipit run: bold or italic.
	FormatStyle FormatStyle `json:"format_style" yaml:"format_style"`

	// ExtractIncipit controls whether incipit prefixes are added.
	ExtractIncipit bool `json:"extract_incipit" yaml:"extract_incipit"`

	// ApplyFormatting controls whether citations are classified and
	// reformatted. When false only URL extraction runs and the job makes
	// no network calls.
	ApplyFormatting bool `json:"apply_formatting" yaml:"apply_formatting"`

	// CitationStyle names the citation format family (default "chicago").
	CitationStyle string `json:"citation_style" yaml:"citation_style"`
}

// ConvertConfig holds settings for the conversion stage.
type ConvertConfig struct {
	// WorkDir is the base directory for job-unique working storage.
	// Each job unpacks into its own subdirectory and removes it on exit.
	WorkDir string `json:"work_dir" yaml:"work_dir"`
}

// ServerConfig holds settings for the HTTP upload boundary.
type ServerConfig struct {
	// Addr is the listen address (e.g. ":8080").
	Addr string `json:"addr" yaml:"addr"`

	// MaxUploadBytes caps the accepted upload size (default 100 MiB).
	MaxUploadBytes int64 `json:"max_upload_bytes" yaml:"max_upload_bytes"`
}

// Config groups all stage configurations.
type Config struct {
	Lookup  LookupConfig  `json:"lookup" yaml:"lookup"`
	Convert ConvertConfig `json:"convert" yaml:"convert"`
	Server  ServerConfig  `json:"server" yaml:"server"`
}
