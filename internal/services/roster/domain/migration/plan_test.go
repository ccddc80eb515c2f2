package migration

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/louisbranch/realmkeep/internal/services/roster/domain/rating"
)

func ip(v int) *int { return &v }

func TestReconcileScenario(t *testing.T) {
	t.Parallel()

	existing := []ExistingRating{
		{RatingID: "r-str", TraitID: "a-str", TraitName: "Strength", Value: ip(15)},
		{RatingID: "r-agi", TraitID: "a-agi", TraitName: "Agility", Value: ip(8)},
	}
	target := []CatalogTrait{{ID: "b-str", Name: "strength"}, {ID: "b-luck", Name: "luck"}}

	got := Reconcile(nil, "c-1", existing, target)
	want := Plan{
		CharacterID:    "c-1",
		Creates:        []rating.Rating{{CharacterID: "c-1", TraitID: "b-str", Value: 15}},
		Deletes:        []string{"r-str", "r-agi"},
		UnmappedTraits: []string{"Agility"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("plan mismatch (-want +got):\n%s", diff)
	}
}

func TestReconcileConservation(t *testing.T) {
	t.Parallel()

	var target []CatalogTrait
	for i := 0; i < 6; i++ {
		target = append(target, CatalogTrait{ID: fmt.Sprintf("b-%d", i), Name: fmt.Sprintf("TRAIT %d", i)})
	}
	for n := 0; n <= 10; n++ {
		var existing []ExistingRating
		matches := 0
		for i := 0; i < n; i++ {
			existing = append(existing, ExistingRating{
				RatingID:  fmt.Sprintf("r-%d", i),
				TraitID:   fmt.Sprintf("a-%d", i),
				TraitName: fmt.Sprintf("trait %d", i),
				Value:     ip(i%20 + 1),
			})
			if i < len(target) {
				matches++
			}
		}

		plan := Reconcile(nil, "c-1", existing, target)
		if len(plan.Creates) != matches {
			t.Fatalf("n=%d: creates = %d, want %d", n, len(plan.Creates), matches)
		}
		if len(plan.UnmappedTraits) != n-matches {
			t.Fatalf("n=%d: unmapped = %d, want %d", n, len(plan.UnmappedTraits), n-matches)
		}
		if len(plan.Deletes) != n {
			t.Fatalf("n=%d: deletes = %d, want %d", n, len(plan.Deletes), n)
		}
	}
}

func TestReconcileZeroRatings(t *testing.T) {
	t.Parallel()

	plan := Reconcile(nil, "c-1", nil, []CatalogTrait{{ID: "b-1", Name: "Luck"}})
	if !plan.Empty() {
		t.Fatalf("plan = %+v, want empty", plan)
	}
	if plan.UnmappedTraits == nil || len(plan.UnmappedTraits) != 0 {
		t.Fatalf("unmapped = %#v, want empty non-nil slice", plan.UnmappedTraits)
	}
}

func TestReconcileNilValueIsDeletedOnly(t *testing.T) {
	t.Parallel()

	existing := []ExistingRating{
		{RatingID: "r-1", TraitName: "Luck"},
		{RatingID: "r-2", TraitName: "Charm"},
	}
	plan := Reconcile(nil, "c-1", existing, []CatalogTrait{{ID: "b-1", Name: "luck"}})
	if len(plan.Creates) != 0 || len(plan.UnmappedTraits) != 0 {
		t.Fatalf("plan = %+v, want deletes only", plan)
	}
	if diff := cmp.Diff([]string{"r-1", "r-2"}, plan.Deletes); diff != "" {
		t.Fatalf("deletes mismatch (-want +got):\n%s", diff)
	}
}

func TestReconcileCollisionLastWins(t *testing.T) {
	t.Parallel()

	existing := []ExistingRating{{RatingID: "r-1", TraitName: "Luck", Value: ip(4)}}
	target := []CatalogTrait{{ID: "b-first", Name: "LUCK"}, {ID: "b-last", Name: "luck"}}
	plan := Reconcile(nil, "c-1", existing, target)
	if len(plan.Creates) != 1 || plan.Creates[0].TraitID != "b-last" {
		t.Fatalf("creates = %+v, want one for b-last", plan.Creates)
	}
}

type exactMatcher struct{}

func (exactMatcher) Key(name string) string { return name }

func TestReconcileUsesMatcher(t *testing.T) {
	t.Parallel()

	existing := []ExistingRating{{RatingID: "r-1", TraitName: "Luck", Value: ip(4)}}
	plan := Reconcile(exactMatcher{}, "c-1", existing, []CatalogTrait{{ID: "b-1", Name: "luck"}})
	if diff := cmp.Diff([]string{"Luck"}, plan.UnmappedTraits); diff != "" {
		t.Fatalf("unmapped mismatch (-want +got):\n%s", diff)
	}
}
