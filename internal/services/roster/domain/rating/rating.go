// Package rating holds character ratings and the per-character summary read
// model consumed by filters and listings.
package rating

import (
	"bytes"
	"encoding/json"
	"strconv"

	apperrors "github.com/louisbranch/realmkeep/internal/platform/errors"
	"github.com/louisbranch/realmkeep/internal/services/roster/domain/grade"
	"github.com/louisbranch/realmkeep/internal/services/roster/domain/trait"
)

// Rating is a character's score for one trait. The store keeps at most one
// rating per (CharacterID, TraitID).
type Rating struct {
	ID          string
	CharacterID string
	TraitID     string
	Value       int
}

// Input is a rating value as submitted by a client: either a number or a
// grade label.
type Input struct {
	Number *int
	Label  string
}

// UnmarshalJSON accepts a JSON number or string.
func (in *Input) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var label string
		if err := json.Unmarshal(data, &label); err != nil {
			return err
		}
		*in = Input{Label: label}
		return nil
	}
	var number json.Number
	if err := json.Unmarshal(data, &number); err != nil {
		return err
	}
	value, err := strconv.Atoi(number.String())
	if err != nil {
		return invalidValue(number.String())
	}
	*in = Input{Number: &value}
	return nil
}

// Normalize resolves the input to a value in [1, 20]. Grade labels go through
// the grade codec first.
func (in Input) Normalize() (int, error) {
	if in.Number != nil {
		if !grade.InRange(*in.Number) {
			return 0, invalidValue(strconv.Itoa(*in.Number))
		}
		return *in.Number, nil
	}
	g, err := grade.Parse(in.Label)
	if err != nil {
		return 0, apperrors.WrapWithMetadata(
			apperrors.CodeRatingInvalidValue,
			"invalid rating value "+strconv.Quote(in.Label),
			map[string]string{"Value": in.Label},
			err,
		)
	}
	v, _ := grade.ToValue(g)
	return v, nil
}

func invalidValue(raw string) error {
	return apperrors.WithMetadata(
		apperrors.CodeRatingInvalidValue,
		"invalid rating value "+raw,
		map[string]string{"Value": raw},
	)
}

// Display renders value the way mode asks for.
func Display(value int, mode trait.DisplayMode) string {
	if mode == trait.DisplayGrade {
		if g, err := grade.FromValue(value); err == nil {
			return g.String()
		}
	}
	return strconv.Itoa(value)
}
