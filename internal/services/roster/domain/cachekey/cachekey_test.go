package cachekey

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestForMigrationCoversBothRealms(t *testing.T) {
	t.Parallel()

	got := ForMigration("c-1", "r-a", "r-b")
	want := []Key{"character/c-1", "realm/r-a/characters", "realm/r-b/characters"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("keys mismatch (-want +got):\n%s", diff)
	}
}

func TestForTraitsIncludesListing(t *testing.T) {
	t.Parallel()

	got := ForTraits("r-a")
	want := []Key{"realm/r-a/characters", "realm/r-a/traits"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("keys mismatch (-want +got):\n%s", diff)
	}
}

func TestSetDeduplicates(t *testing.T) {
	t.Parallel()

	got := Set(Character("c-1"), "", Character("c-1"), RealmTraits("r"))
	want := []Key{"character/c-1", "realm/r/traits"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("keys mismatch (-want +got):\n%s", diff)
	}
}

func TestRealmID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		key    Key
		realm  string
		scoped bool
	}{
		{key: RealmCharacters("r-1"), realm: "r-1", scoped: true},
		{key: RealmTraits("r-2"), realm: "r-2", scoped: true},
		{key: Character("c-1"), scoped: false},
		{key: "realm/", scoped: false},
	}
	for _, tc := range tests {
		realm, ok := tc.key.RealmID()
		if ok != tc.scoped || realm != tc.realm {
			t.Fatalf("RealmID(%q) = %q, %v, want %q, %v", tc.key, realm, ok, tc.realm, tc.scoped)
		}
	}
}
