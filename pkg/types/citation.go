// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the notesmith pipeline:
// the citation data model produced by classification, the endnote records the
// document transformer works from, and per-stage configuration.
package types

// CitationType identifies which classification branch accepted a citation.
type CitationType string

const (
	TypeGeneric    CitationType = "generic"
	TypeNewspaper  CitationType = "newspaper"
	TypeGovernment CitationType = "government"
	TypeInterview  CitationType = "interview"
	TypeLegal      CitationType = "legal"
	TypeJournal    CitationType = "journal"
	TypeBook       CitationType = "book"
)

// CitationData is the structured result of classifying one raw citation
// string. Exactly one branch sets Type; no branch downgrades it afterwards.
type CitationData struct {
	// Raw is the original citation text, never modified.
	Raw string `json:"raw" yaml:"raw"`

	// Type is the source classification.
	Type CitationType `json:"type" yaml:"type"`

	Author    string `json:"author,omitempty" yaml:"author,omitempty"`
	Title     string `json:"title,omitempty" yaml:"title,omitempty"`
	City      string `json:"city,omitempty" yaml:"city,omitempty"`
	Publisher string `json:"publisher,omitempty" yaml:"publisher,omitempty"`
	Year      string `json:"year,omitempty" yaml:"year,omitempty"`
	Page      string `json:"page,omitempty" yaml:"page,omitempty"`

	// Journal holds the venue name; newspaper citations reuse it for the
	// publication name.
	Journal string `json:"journal,omitempty" yaml:"journal,omitempty"`

	// Details is free-form: "vol. V, no. I, pp. P" for journals, the
	// reporter citation for legal cases.
	Details string `json:"details,omitempty" yaml:"details,omitempty"`

	URL        string `json:"url,omitempty" yaml:"url,omitempty"`
	AccessDate string `json:"access_date,omitempty" yaml:"access_date,omitempty"`
	URLSuffix  string `json:"url_suffix,omitempty" yaml:"url_suffix,omitempty"`

	// Interview-only fields.
	Interviewee       string `json:"interviewee,omitempty" yaml:"interviewee,omitempty"`
	Interviewer       string `json:"interviewer,omitempty" yaml:"interviewer,omitempty"`
	InterviewDate     string `json:"interview_date,omitempty" yaml:"interview_date,omitempty"`
	InterviewLocation string `json:"interview_location,omitempty" yaml:"interview_location,omitempty"`
}

// Endnote is one endnote extracted from the host document. IDs follow the
// host numbering scheme; ids "-1" and "0" are sentinels and never appear here.
type Endnote struct {
	// ID is the endnote id as a string, matching the host document.
	ID string `json:"id"`

	// Raw is the concatenated endnote text.
	Raw string `json:"raw"`

	// Formatted is the rendered citation text.
	Formatted string `json:"formatted"`

	// URL is the external link carried by the citation, if any.
	URL string `json:"url,omitempty"`
}
