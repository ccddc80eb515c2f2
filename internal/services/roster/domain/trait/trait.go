// Package trait models realm-scoped rateable attributes and the heuristic used
// to treat same-named traits in different realms as one logical trait.
package trait

import (
	"strings"

	apperrors "github.com/louisbranch/realmkeep/internal/platform/errors"
)

// DisplayMode selects how a trait's ratings are rendered.
type DisplayMode string

const (
	// DisplayNumber renders the raw 1-20 value.
	DisplayNumber DisplayMode = "number"
	// DisplayGrade renders the letter grade.
	DisplayGrade DisplayMode = "grade"
)

// Trait is a named rateable attribute owned by one realm. Names are unique
// within a realm and stored with their original casing.
type Trait struct {
	ID          string
	RealmID     string
	Name        string
	DisplayMode DisplayMode
}

// ParseDisplayMode validates a display mode, defaulting empty input to number.
func ParseDisplayMode(raw string) (DisplayMode, error) {
	switch DisplayMode(strings.ToLower(strings.TrimSpace(raw))) {
	case "", DisplayNumber:
		return DisplayNumber, nil
	case DisplayGrade:
		return DisplayGrade, nil
	default:
		return "", apperrors.WithMetadata(
			apperrors.CodeTraitInvalidDisplayMode,
			"invalid display mode "+raw,
			map[string]string{"Mode": raw},
		)
	}
}

// NormalizeName trims a trait name and rejects empty names.
func NormalizeName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", apperrors.New(apperrors.CodeTraitEmptyName, "trait name is required")
	}
	return name, nil
}
