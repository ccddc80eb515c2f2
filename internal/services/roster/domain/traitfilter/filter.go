// Package traitfilter parses, serializes and evaluates per-trait rating
// filters. Filters address traits by name, not id, so one filter set applies
// to characters from any realm.
package traitfilter

import "github.com/louisbranch/realmkeep/internal/services/roster/domain/grade"

// Comparison is the operator a filter applies to a rating value.
type Comparison string

const (
	GTE     Comparison = "gte"
	LTE     Comparison = "lte"
	EQ      Comparison = "eq"
	Between Comparison = "between"
)

// Filter constrains the rating a character has for the named trait.
//
// Which operands are set depends on Comparison: gte carries Value and Min,
// lte carries Value and Max, eq carries Value, between carries Min and/or Max.
type Filter struct {
	TraitName  string     `json:"traitName"`
	Comparison Comparison `json:"comparison"`
	Value      *int       `json:"value"`
	Min        *int       `json:"min"`
	Max        *int       `json:"max"`
}

// AtLeast builds a gte filter.
func AtLeast(traitName string, v int) Filter {
	return Filter{TraitName: traitName, Comparison: GTE, Value: intPtr(v), Min: intPtr(v)}
}

// AtMost builds an lte filter.
func AtMost(traitName string, v int) Filter {
	return Filter{TraitName: traitName, Comparison: LTE, Value: intPtr(v), Max: intPtr(v)}
}

// Exactly builds an eq filter.
func Exactly(traitName string, v int) Filter {
	return Filter{TraitName: traitName, Comparison: EQ, Value: intPtr(v)}
}

// Range builds a between filter; nil bounds are open.
func Range(traitName string, lo, hi *int) Filter {
	return Filter{TraitName: traitName, Comparison: Between, Min: copyPtr(lo), Max: copyPtr(hi)}
}

// IsAny reports whether f is a between filter spanning the whole scale. Such
// filters are the UI's "no constraint" default and never narrow a result.
func (f Filter) IsAny() bool {
	if f.Comparison != Between {
		return false
	}
	return orDefault(f.Min, grade.MinValue) <= grade.MinValue && orDefault(f.Max, grade.MaxValue) >= grade.MaxValue
}

// Matches reports whether a rating value satisfies f.
func (f Filter) Matches(value int) bool {
	switch f.Comparison {
	case GTE:
		return value >= firstSet(grade.MinValue, f.Min, f.Value)
	case LTE:
		return value <= firstSet(grade.MaxValue, f.Max, f.Value)
	case EQ:
		return f.Value != nil && value == *f.Value
	case Between:
		if f.IsAny() {
			return true
		}
		return value >= orDefault(f.Min, grade.MinValue) && value <= orDefault(f.Max, grade.MaxValue)
	default:
		return false
	}
}

func firstSet(fallback int, candidates ...*int) int {
	for _, c := range candidates {
		if c != nil {
			return *c
		}
	}
	return fallback
}

func orDefault(p *int, fallback int) int {
	if p == nil {
		return fallback
	}
	return *p
}

func intPtr(v int) *int {
	return &v
}

func copyPtr(p *int) *int {
	if p == nil {
		return nil
	}
	return intPtr(*p)
}
