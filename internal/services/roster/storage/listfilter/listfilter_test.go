package listfilter

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestParseEmpty(t *testing.T) {
	t.Parallel()

	cond, err := Parse("  ")
	if err != nil {
		t.Fatalf("parse filter: %v", err)
	}
	if !cond.Empty() || cond.Params != nil {
		t.Fatalf("cond = %+v, want empty", cond)
	}
}

func TestParseComparisons(t *testing.T) {
	t.Parallel()

	tests := []struct {
		filter string
		want   SQLCondition
	}{
		{filter: `name = "Mira"`, want: SQLCondition{Clause: "name = ?", Params: []any{"Mira"}}},
		{filter: `realm_id != "r-1"`, want: SQLCondition{Clause: "realm_id != ?", Params: []any{"r-1"}}},
		{
			filter: `name = "Mira" AND realm_id = "r-1"`,
			want:   SQLCondition{Clause: "(name = ? AND realm_id = ?)", Params: []any{"Mira", "r-1"}},
		},
		{
			filter: `realm_id = "r-1" OR realm_id = "r-2"`,
			want:   SQLCondition{Clause: "(realm_id = ? OR realm_id = ?)", Params: []any{"r-1", "r-2"}},
		},
	}
	for _, tc := range tests {
		got, err := Parse(tc.filter)
		if err != nil {
			t.Fatalf("Parse(%q): %v", tc.filter, err)
		}
		if diff := cmp.Diff(tc.want, got); diff != "" {
			t.Fatalf("Parse(%q) mismatch (-want +got):\n%s", tc.filter, diff)
		}
	}
}

func TestParseTimestamp(t *testing.T) {
	t.Parallel()

	got, err := Parse(`created_at > timestamp("2026-01-01T00:00:00Z")`)
	if err != nil {
		t.Fatalf("parse filter: %v", err)
	}
	want := SQLCondition{
		Clause: "created_at > ?",
		Params: []any{time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC).UnixMilli()},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("condition mismatch (-want +got):\n%s", diff)
	}
}

func TestParseRejects(t *testing.T) {
	t.Parallel()

	for _, filter := range []string{
		`unknown = "x"`,
		`created_at = timestamp("not-a-time")`,
		`created_at = duration("1h")`,
		`name = `,
	} {
		if _, err := Parse(filter); err == nil {
			t.Fatalf("Parse(%q) expected error", filter)
		}
	}
}
