package traitfilter

import (
	"strconv"
	"strings"

	"github.com/louisbranch/realmkeep/internal/services/roster/domain/grade"
)

// ParseToken decodes a filter token for traitName. It accepts the operator
// form ("gte.12", "lte.5", "eq.9", "between.4.16", "between..16") and the
// legacy range form ("4-16", "-16", "4-"). Malformed tokens and operands
// outside [1, 20] report false so callers can drop them.
func ParseToken(traitName, token string) (Filter, bool) {
	traitName = strings.TrimSpace(traitName)
	token = strings.TrimSpace(token)
	if traitName == "" || token == "" {
		return Filter{}, false
	}

	if op, rest, ok := strings.Cut(token, "."); ok {
		switch Comparison(op) {
		case GTE, LTE, EQ:
			v, ok := parseOperand(rest)
			if !ok {
				return Filter{}, false
			}
			switch Comparison(op) {
			case GTE:
				return AtLeast(traitName, v), true
			case LTE:
				return AtMost(traitName, v), true
			default:
				return Exactly(traitName, v), true
			}
		case Between:
			lo, hi, ok := strings.Cut(rest, ".")
			if !ok {
				return Filter{}, false
			}
			return parseRange(traitName, lo, hi)
		default:
			return Filter{}, false
		}
	}

	lo, hi, ok := strings.Cut(token, "-")
	if !ok {
		return Filter{}, false
	}
	return parseRange(traitName, lo, hi)
}

// Canonical returns the constructor form of f: the operand Matches reads for
// gte and lte, trimmed trait name, and no stray fields. It reports false when
// f cannot be written as a token: a missing or out-of-range operand, or a
// between range with min > max.
func (f Filter) Canonical() (Filter, bool) {
	name := strings.TrimSpace(f.TraitName)
	switch f.Comparison {
	case GTE:
		if v, ok := firstPtr(f.Min, f.Value); ok && grade.InRange(v) {
			return AtLeast(name, v), true
		}
	case LTE:
		if v, ok := firstPtr(f.Max, f.Value); ok && grade.InRange(v) {
			return AtMost(name, v), true
		}
	case EQ:
		if f.Value != nil && grade.InRange(*f.Value) {
			return Exactly(name, *f.Value), true
		}
	case Between:
		if !optionalInRange(f.Min) || !optionalInRange(f.Max) {
			return Filter{}, false
		}
		if f.Min != nil && f.Max != nil && *f.Min > *f.Max {
			return Filter{}, false
		}
		return Range(name, f.Min, f.Max), true
	}
	return Filter{}, false
}

// Token encodes f in the operator form. It returns "" when f has no
// canonical form. For every other filter, ParseToken(name, f.Token())
// yields f.Canonical().
func (f Filter) Token() string {
	c, ok := f.Canonical()
	if !ok {
		return ""
	}
	switch c.Comparison {
	case GTE:
		return string(GTE) + "." + strconv.Itoa(*c.Min)
	case LTE:
		return string(LTE) + "." + strconv.Itoa(*c.Max)
	case EQ:
		return string(EQ) + "." + strconv.Itoa(*c.Value)
	default:
		return string(Between) + "." + optional(c.Min) + "." + optional(c.Max)
	}
}

func optionalInRange(p *int) bool {
	return p == nil || grade.InRange(*p)
}

func parseRange(traitName, lo, hi string) (Filter, bool) {
	var minPtr, maxPtr *int
	if lo != "" {
		v, ok := parseOperand(lo)
		if !ok {
			return Filter{}, false
		}
		minPtr = &v
	}
	if hi != "" {
		v, ok := parseOperand(hi)
		if !ok {
			return Filter{}, false
		}
		maxPtr = &v
	}
	if minPtr != nil && maxPtr != nil && *minPtr > *maxPtr {
		return Filter{}, false
	}
	return Filter{TraitName: traitName, Comparison: Between, Min: minPtr, Max: maxPtr}, true
}

// parseOperand accepts only plain decimal digits so every accepted token has
// one canonical spelling.
func parseOperand(raw string) (int, bool) {
	if raw == "" || len(raw) > 2 || (len(raw) == 2 && raw[0] == '0') {
		return 0, false
	}
	for i := 0; i < len(raw); i++ {
		if raw[i] < '0' || raw[i] > '9' {
			return 0, false
		}
	}
	v, err := strconv.Atoi(raw)
	if err != nil || !grade.InRange(v) {
		return 0, false
	}
	return v, true
}

func firstPtr(candidates ...*int) (int, bool) {
	for _, c := range candidates {
		if c != nil {
			return *c, true
		}
	}
	return 0, false
}

func optional(p *int) string {
	if p == nil {
		return ""
	}
	return strconv.Itoa(*p)
}
