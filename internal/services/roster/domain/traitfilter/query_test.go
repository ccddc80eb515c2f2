package traitfilter

import (
	"net/url"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseQuery(t *testing.T) {
	t.Parallel()

	values, err := url.ParseQuery("realm=r-1&trait.Strength=gte.12&trait.Max+HP=5-15&trait.Luck=bogus&trait.Agility=lte.8&trait.Agility=gte.3")
	if err != nil {
		t.Fatalf("parse query: %v", err)
	}
	want := []Filter{
		AtMost("Agility", 8),
		AtLeast("Agility", 3),
		Range("Max HP", ip(5), ip(15)),
		AtLeast("Strength", 12),
	}
	if diff := cmp.Diff(want, ParseQuery(values)); diff != "" {
		t.Fatalf("filters mismatch (-want +got):\n%s", diff)
	}
}

func TestEncodeQueryRoundTrip(t *testing.T) {
	t.Parallel()

	filters := []Filter{
		AtLeast("Max HP", 12),
		Range("Straße & Co", ip(2), nil),
		Exactly("luck", 7),
	}
	encoded := EncodeQuery(url.Values{"realm": {"r-1"}}, filters).Encode()
	decoded, err := url.ParseQuery(encoded)
	if err != nil {
		t.Fatalf("parse encoded %q: %v", encoded, err)
	}
	if decoded.Get("realm") != "r-1" {
		t.Fatalf("unrelated parameter lost: %q", encoded)
	}

	got := ParseQuery(decoded)
	want := []Filter{AtLeast("Max HP", 12), Range("Straße & Co", ip(2), nil), Exactly("luck", 7)}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestEncodeQuerySkipsUnserializable(t *testing.T) {
	t.Parallel()

	values := EncodeQuery(nil, []Filter{{TraitName: "Luck", Comparison: EQ}, {Comparison: GTE, Value: ip(3)}})
	if len(values) != 0 {
		t.Fatalf("values = %v, want empty", values)
	}
}
