package traitfilter

import (
	"github.com/louisbranch/realmkeep/internal/services/roster/domain/rating"
	"github.com/louisbranch/realmkeep/internal/services/roster/domain/trait"
)

// Outcome is the bucket a character falls into for a filter set.
type Outcome int

const (
	// Excluded characters have ratings for the filtered traits but fail at
	// least one filter.
	Excluded Outcome = iota
	// Matched characters satisfy every filter.
	Matched
	// Unrated characters have no rating for any filtered trait; callers list
	// them separately instead of hiding them.
	Unrated
)

// String returns the outcome name.
func (o Outcome) String() string {
	switch o {
	case Matched:
		return "matched"
	case Unrated:
		return "unrated"
	default:
		return "excluded"
	}
}

// Engine classifies characters against filters. Names are compared through
// Matcher, so a stronger identity scheme can replace the name heuristic
// without touching callers.
type Engine struct {
	Matcher trait.Matcher
}

// DefaultEngine uses trait.DefaultMatcher.
var DefaultEngine = Engine{}

func (e Engine) matcher() trait.Matcher {
	if e.Matcher == nil {
		return trait.DefaultMatcher
	}
	return e.Matcher
}

// Classify evaluates filters (AND-combined) against one character's summary.
// A full-range "Any" filter still counts toward relevance; it only matches
// every value.
func (e Engine) Classify(summary []rating.SummaryEntry, filters []Filter) Outcome {
	if len(filters) == 0 {
		return Matched
	}

	m := e.matcher()
	values := make(map[string]int, len(summary))
	for _, entry := range summary {
		if !entry.Rated() {
			continue
		}
		key := m.Key(entry.TraitName)
		if _, seen := values[key]; !seen {
			values[key] = *entry.Value
		}
	}

	relevant := false
	for _, f := range filters {
		if _, ok := values[m.Key(f.TraitName)]; ok {
			relevant = true
			break
		}
	}
	if !relevant {
		return Unrated
	}

	for _, f := range filters {
		value, ok := values[m.Key(f.TraitName)]
		if !ok || !f.Matches(value) {
			return Excluded
		}
	}
	return Matched
}

// Partitioned holds the three disjoint buckets produced by Partition, each in
// input order. Their lengths sum to the number of candidates.
type Partitioned[T any] struct {
	Matched  []T
	Unrated  []T
	Excluded []T
}

// Partition splits candidates using DefaultEngine. summaryOf extracts each
// candidate's rating summary.
func Partition[T any](candidates []T, summaryOf func(T) []rating.SummaryEntry, filters []Filter) Partitioned[T] {
	return PartitionWith(DefaultEngine, candidates, summaryOf, filters)
}

// PartitionWith splits candidates using e.
func PartitionWith[T any](e Engine, candidates []T, summaryOf func(T) []rating.SummaryEntry, filters []Filter) Partitioned[T] {
	out := Partitioned[T]{
		Matched:  make([]T, 0, len(candidates)),
		Unrated:  []T{},
		Excluded: []T{},
	}
	for _, candidate := range candidates {
		switch e.Classify(summaryOf(candidate), filters) {
		case Matched:
			out.Matched = append(out.Matched, candidate)
		case Unrated:
			out.Unrated = append(out.Unrated, candidate)
		default:
			out.Excluded = append(out.Excluded, candidate)
		}
	}
	return out
}
