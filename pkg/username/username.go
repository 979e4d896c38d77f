// Copyright (c) 2026 VidTube. All rights reserved.

// Package username canonicalizes account handles at write time.
//
// # Usage
//
// Usernames are unique, case-insensitive identifiers (e.g. "alice"). This
// package handles Unicode normalization and lower-casing so that visually
// identical handles always map to the same stored value.
package username

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Normalize converts an arbitrary handle into its canonical stored form.
//
// # Transformation Pipeline
//
// 1. Trims surrounding whitespace.
// 2. Normalizes to NFKC (folds compatibility variants: ﬁ → fi, ① → 1).
// 3. Converts to lowercase.
func Normalize(s string) string {
	s = strings.TrimSpace(s)
	s = norm.NFKC.String(s)
	return strings.ToLower(s)
}
