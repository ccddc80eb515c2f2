package traitfilter

import (
	"net/url"
	"sort"
	"strings"
)

// QueryPrefix starts every query parameter that carries a trait filter.
const QueryPrefix = "trait."

// QueryKey returns the query parameter name for traitName. url.Values.Encode
// takes care of escaping.
func QueryKey(traitName string) string {
	return QueryPrefix + strings.TrimSpace(traitName)
}

// ParseQuery extracts every well-formed trait filter from values, ordered by
// parameter name and then by value position. Parameters without the prefix
// and malformed tokens are skipped.
func ParseQuery(values url.Values) []Filter {
	keys := make([]string, 0, len(values))
	for key := range values {
		if strings.HasPrefix(key, QueryPrefix) {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)

	var filters []Filter
	for _, key := range keys {
		name := strings.TrimPrefix(key, QueryPrefix)
		for _, token := range values[key] {
			if f, ok := ParseToken(name, token); ok {
				filters = append(filters, f)
			}
		}
	}
	return filters
}

// EncodeQuery adds one parameter per filter to values (allocating when nil)
// and returns it. Filters that cannot be serialized are skipped.
func EncodeQuery(values url.Values, filters []Filter) url.Values {
	if values == nil {
		values = url.Values{}
	}
	for _, f := range filters {
		token := f.Token()
		if token == "" || strings.TrimSpace(f.TraitName) == "" {
			continue
		}
		values.Add(QueryKey(f.TraitName), token)
	}
	return values
}
