package rating

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	apperrors "github.com/louisbranch/realmkeep/internal/platform/errors"
	"github.com/louisbranch/realmkeep/internal/services/roster/domain/trait"
)

func TestInputNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw  string
		want int
	}{
		{raw: `15`, want: 15},
		{raw: `1`, want: 1},
		{raw: `20`, want: 20},
		{raw: `"A+"`, want: 16},
		{raw: `"c"`, want: 9},
		{raw: `" Z "`, want: 20},
	}
	for _, tc := range tests {
		var in Input
		if err := json.Unmarshal([]byte(tc.raw), &in); err != nil {
			t.Fatalf("unmarshal %s: %v", tc.raw, err)
		}
		got, err := in.Normalize()
		if err != nil {
			t.Fatalf("normalize %s: %v", tc.raw, err)
		}
		if got != tc.want {
			t.Fatalf("normalize %s = %d, want %d", tc.raw, got, tc.want)
		}
	}
}

func TestInputNormalizeRejects(t *testing.T) {
	t.Parallel()

	for _, raw := range []string{`0`, `21`, `-3`, `"G"`, `""`, `7.5`, `null`} {
		var in Input
		err := json.Unmarshal([]byte(raw), &in)
		if err == nil {
			_, err = in.Normalize()
		}
		if apperrors.CodeOf(err) != apperrors.CodeRatingInvalidValue {
			t.Fatalf("input %s error = %v, want %s", raw, err, apperrors.CodeRatingInvalidValue)
		}
	}
}

func TestDisplay(t *testing.T) {
	t.Parallel()

	if got := Display(12, trait.DisplayGrade); got != "B" {
		t.Fatalf("display grade = %q, want B", got)
	}
	if got := Display(12, trait.DisplayNumber); got != "12" {
		t.Fatalf("display number = %q, want 12", got)
	}
}

func TestBuildSummary(t *testing.T) {
	t.Parallel()

	catalog := []trait.Trait{
		{ID: "t-str", RealmID: "r-1", Name: "Strength", DisplayMode: trait.DisplayGrade},
		{ID: "t-agi", RealmID: "r-1", Name: "Agility", DisplayMode: trait.DisplayNumber},
	}
	ratings := []Rating{
		{ID: "rt-1", CharacterID: "c-1", TraitID: "t-str", Value: 15},
		{ID: "rt-x", CharacterID: "c-1", TraitID: "t-other", Value: 3},
	}
	id, value := "rt-1", 15
	want := []SummaryEntry{
		{TraitID: "t-str", TraitName: "Strength", DisplayMode: trait.DisplayGrade, RatingID: &id, Value: &value, Display: "A"},
		{TraitID: "t-agi", TraitName: "Agility", DisplayMode: trait.DisplayNumber},
	}
	if diff := cmp.Diff(want, BuildSummary(catalog, ratings)); diff != "" {
		t.Fatalf("summary mismatch (-want +got):\n%s", diff)
	}
}
