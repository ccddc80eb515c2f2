// Package grade converts between integer ratings and their letter grades.
//
// The scale has twenty ordered labels, lowest first. A value v in [1, 20]
// corresponds to Labels[v-1]. The mapping is total and exact in both
// directions; inputs outside the scale are rejected rather than clamped.
package grade

import (
	"strconv"
	"strings"

	apperrors "github.com/louisbranch/realmkeep/internal/platform/errors"
)

const (
	// MinValue is the lowest rating on the scale.
	MinValue = 1
	// MaxValue is the highest rating on the scale.
	MaxValue = 20
)

// Grade is one of the twenty letter labels.
type Grade string

// Labels lists every grade from lowest to highest.
var Labels = [MaxValue]Grade{
	"F", "E-", "E", "E+", "D-", "D", "D+", "C-", "C", "C+",
	"B-", "B", "B+", "A-", "A", "A+", "S-", "S", "S+", "Z",
}

var (
	// ErrInvalidValue matches (via errors.Is) any out-of-range value error.
	ErrInvalidValue = apperrors.New(apperrors.CodeGradeInvalidValue, "grade value out of range")
	// ErrInvalidGrade matches (via errors.Is) any unknown label error.
	ErrInvalidGrade = apperrors.New(apperrors.CodeGradeInvalidLabel, "unknown grade label")
)

var index = func() map[Grade]int {
	out := make(map[Grade]int, len(Labels))
	for i, g := range Labels {
		out[g] = i + 1
	}
	return out
}()

// InRange reports whether v is a valid rating value.
func InRange(v int) bool {
	return v >= MinValue && v <= MaxValue
}

// FromValue returns the grade for v.
func FromValue(v int) (Grade, error) {
	if !InRange(v) {
		return "", apperrors.WithMetadata(
			apperrors.CodeGradeInvalidValue,
			"grade value "+strconv.Itoa(v)+" out of range",
			map[string]string{"Value": strconv.Itoa(v)},
		)
	}
	return Labels[v-1], nil
}

// ToValue returns the rating value for g.
func ToValue(g Grade) (int, error) {
	v, ok := index[g]
	if !ok {
		return 0, apperrors.WithMetadata(
			apperrors.CodeGradeInvalidLabel,
			"unknown grade label "+strconv.Quote(string(g)),
			map[string]string{"Label": string(g)},
		)
	}
	return v, nil
}

// Parse trims surrounding space and upper-cases user input, then returns the
// matching grade.
func Parse(label string) (Grade, error) {
	g := Grade(strings.ToUpper(strings.TrimSpace(label)))
	if _, err := ToValue(g); err != nil {
		return "", err
	}
	return g, nil
}

// String returns the label text.
func (g Grade) String() string {
	return string(g)
}
