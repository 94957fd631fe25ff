// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package incipit pulls the opening words of the sentence (or quotation)
// that an endnote marker is attached to. The page-reference notes use these
// as anchors, "a landmark case: see ...".
package incipit

import (
	"strings"
	"unicode"
)

const (
	// backscanLimit bounds the search for an opening quote.
	backscanLimit = 1000
	// fallbackWindow is used when no sentence delimiter exists before the
	// marker.
	fallbackWindow = 100

	maxWords = 10
	emDash   = '—'
)

// closingToOpening pairs closing quotation marks with the opening mark the
// backscan must find.
var closingToOpening = map[rune]rune{
	'"':      '"',
	'\'':     '\'',
	'”': '“',
	'’': '‘',
}

// Extract returns up to wordCount words of the clause preceding the marker.
// markerOffset is a rune offset pointing immediately after the marker.
// Offsets out of range are clamped; no text before the marker yields "".
func Extract(paragraph string, markerOffset, wordCount int) string {
	if wordCount < 1 {
		wordCount = 1
	} else if wordCount > maxWords {
		wordCount = maxWords
	}

	runes := []rune(paragraph)
	if markerOffset < 0 {
		markerOffset = 0
	} else if markerOffset > len(runes) {
		markerOffset = len(runes)
	}
	before := runes[:markerOffset]
	if strings.TrimSpace(string(before)) == "" {
		return ""
	}

	var window []rune
	if open, ok := closingToOpening[before[len(before)-1]]; ok {
		window = quotedRegion(before, open)
	}
	if window == nil {
		window = sentenceRegion(before)
	}
	return firstWords(window, wordCount)
}

// quotedRegion handles a marker placed right after a closing quote: the
// incipit comes from inside the quotation. The opening mark must follow
// whitespace, punctuation, or start-of-text, which rejects apostrophes in
// words like "don't". Returns nil when no opening mark is found.
func quotedRegion(before []rune, open rune) []rune {
	end := len(before) - 1
	limit := 0
	if end > backscanLimit {
		limit = end - backscanLimit
	}
	for i := end - 1; i >= limit; i-- {
		if before[i] != open {
			continue
		}
		if i == 0 || unicode.IsSpace(before[i-1]) || unicode.IsPunct(before[i-1]) {
			return before[i+1 : end]
		}
	}
	return nil
}

// sentenceRegion finds the start of the sentence the marker sits in: the
// text after the nearest ". ", "? ", "! ", or ": " delimiter, else the last
// 100 runes. An em-dash clause before the marker is cut off as parenthetical.
func sentenceRegion(before []rune) []rune {
	search := before
	// A marker directly after sentence punctuation belongs to the sentence
	// that punctuation closes, so drop it before scanning.
	if n := len(search); n > 0 {
		switch search[n-1] {
		case '.', '!', '?':
			search = search[:n-1]
		}
	}

	start := 0
	found := false
	for i := len(search) - 2; i >= 0; i-- {
		c := search[i]
		if (c == '.' || c == '?' || c == '!' || c == ':') && search[i+1] == ' ' {
			start = i + 2
			found = true
			break
		}
	}
	if !found && len(search) > fallbackWindow {
		start = len(search) - fallbackWindow
	}

	window := search[start:]
	for i, r := range window {
		if r == emDash {
			return window[:i]
		}
	}
	return window
}

// firstWords trims the window edges and selects up to wordCount words,
// stripping sentence punctuation off the final word only.
func firstWords(window []rune, wordCount int) string {
	s := strings.TrimLeftFunc(string(window), func(r rune) bool {
		return unicode.IsSpace(r) || unicode.IsPunct(r)
	})
	words := strings.Fields(s)
	if len(words) == 0 {
		return ""
	}
	if len(words) > wordCount {
		words = words[:wordCount]
	}
	last := strings.TrimRightFunc(words[len(words)-1], isTrailingPunct)
	if last == "" {
		words = words[:len(words)-1]
	} else {
		words[len(words)-1] = last
	}
	return strings.Join(words, " ")
}

func isTrailingPunct(r rune) bool {
	switch r {
	case '.', ',', ';', ':', '!', '?', '"', '\'', '”', '’':
		return true
	}
	return false
}
