package trait

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// Matcher decides which trait names denote the same logical trait across
// realms. Two names match when their keys are equal.
type Matcher interface {
	Key(name string) string
}

// FoldMatcher matches names that are equal after Unicode normalization and
// case folding ("Strength", "STRENGTH" and "strength" share a key).
type FoldMatcher struct{}

// Key returns the folded form of name.
func (FoldMatcher) Key(name string) string {
	return cases.Fold().String(norm.NFC.String(name))
}

// DefaultMatcher is the name heuristic used by filtering and migration.
var DefaultMatcher Matcher = FoldMatcher{}

// SameName reports whether a and b match under DefaultMatcher.
func SameName(a, b string) bool {
	return DefaultMatcher.Key(a) == DefaultMatcher.Key(b)
}
