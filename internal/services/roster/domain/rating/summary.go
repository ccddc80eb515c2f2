package rating

import "github.com/louisbranch/realmkeep/internal/services/roster/domain/trait"

// SummaryEntry describes one trait of a character's current realm together
// with the character's rating for it, if any.
type SummaryEntry struct {
	TraitID     string            `json:"traitId"`
	TraitName   string            `json:"traitName"`
	DisplayMode trait.DisplayMode `json:"displayMode"`
	RatingID    *string           `json:"ratingId"`
	Value       *int              `json:"value"`
	// Display is Value rendered per DisplayMode; empty when unrated.
	Display string `json:"display"`
}

// Rated reports whether the entry carries a value.
func (e SummaryEntry) Rated() bool {
	return e.Value != nil
}

// BuildSummary produces one entry per trait, in catalog order, attaching the
// character's rating where one exists. Ratings for traits outside the catalog
// are ignored.
func BuildSummary(catalog []trait.Trait, ratings []Rating) []SummaryEntry {
	byTrait := make(map[string]Rating, len(ratings))
	for _, r := range ratings {
		byTrait[r.TraitID] = r
	}
	entries := make([]SummaryEntry, 0, len(catalog))
	for _, t := range catalog {
		entry := SummaryEntry{
			TraitID:     t.ID,
			TraitName:   t.Name,
			DisplayMode: t.DisplayMode,
		}
		if r, ok := byTrait[t.ID]; ok {
			id, value := r.ID, r.Value
			entry.RatingID = &id
			entry.Value = &value
			entry.Display = Display(value, t.DisplayMode)
		}
		entries = append(entries, entry)
	}
	return entries
}
