// Package migration re-homes a character's ratings when the character moves
// to another realm.
//
// Traits belong to one realm and have no identity across realms, so a rating
// survives the move only when the target realm has a trait with the same name
// under trait.Matcher. Every other rating is reported back by name; nothing is
// dropped silently.
package migration

import (
	"github.com/louisbranch/realmkeep/internal/services/roster/domain/rating"
	"github.com/louisbranch/realmkeep/internal/services/roster/domain/trait"
)

// ExistingRating is one of the character's ratings joined with the name of
// its trait in the source realm.
type ExistingRating struct {
	RatingID  string
	TraitID   string
	TraitName string
	Value     *int
}

// CatalogTrait is one trait of the target realm.
type CatalogTrait struct {
	ID   string
	Name string
}

// Plan is the set of writes a move requires.
type Plan struct {
	CharacterID string
	// Creates carry no ID; Reconciler assigns them before inserting.
	Creates []rating.Rating
	// Deletes holds every old rating id, matched or not.
	Deletes []string
	// UnmappedTraits names the rated traits with no counterpart in the
	// target realm, in input order.
	UnmappedTraits []string
}

// Reconcile computes the plan for moving characterID's ratings into the
// realm whose catalog is target. When two target traits share a key under m,
// the later one in catalog order wins.
func Reconcile(m trait.Matcher, characterID string, existing []ExistingRating, target []CatalogTrait) Plan {
	if m == nil {
		m = trait.DefaultMatcher
	}
	lookup := make(map[string]string, len(target))
	for _, t := range target {
		lookup[m.Key(t.Name)] = t.ID
	}

	plan := Plan{
		CharacterID:    characterID,
		Creates:        []rating.Rating{},
		Deletes:        make([]string, 0, len(existing)),
		UnmappedTraits: []string{},
	}
	for _, old := range existing {
		plan.Deletes = append(plan.Deletes, old.RatingID)
		if old.Value == nil {
			continue
		}
		traitID, ok := lookup[m.Key(old.TraitName)]
		if !ok {
			plan.UnmappedTraits = append(plan.UnmappedTraits, old.TraitName)
			continue
		}
		plan.Creates = append(plan.Creates, rating.Rating{
			CharacterID: characterID,
			TraitID:     traitID,
			Value:       *old.Value,
		})
	}
	return plan
}

// Empty reports whether the plan touches no rating rows.
func (p Plan) Empty() bool {
	return len(p.Creates) == 0 && len(p.Deletes) == 0
}
