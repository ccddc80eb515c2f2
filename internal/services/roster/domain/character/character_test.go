package character

import (
	"testing"

	apperrors "github.com/louisbranch/realmkeep/internal/platform/errors"
)

func ptr(s string) *string { return &s }

func TestPatchMovesRealm(t *testing.T) {
	t.Parallel()

	c := Character{ID: "c-1", RealmID: "r-a"}
	tests := []struct {
		name  string
		patch Patch
		want  bool
	}{
		{name: "no realm", patch: Patch{Name: ptr("x")}, want: false},
		{name: "same realm", patch: Patch{RealmID: ptr("r-a")}, want: false},
		{name: "blank realm", patch: Patch{RealmID: ptr("  ")}, want: false},
		{name: "other realm", patch: Patch{RealmID: ptr("r-b")}, want: true},
	}
	for _, tc := range tests {
		if got := tc.patch.MovesRealm(c); got != tc.want {
			t.Fatalf("%s: MovesRealm = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestPatchApply(t *testing.T) {
	t.Parallel()

	c := Character{ID: "c-1", RealmID: "r-a", Name: "Aria", Gender: "f", Notes: "old"}
	got, err := Patch{RealmID: ptr("r-b"), Name: ptr(" Aria Vale "), Notes: ptr("")}.Apply(c)
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if got.RealmID != "r-b" || got.Name != "Aria Vale" || got.Notes != "" || got.Gender != "f" {
		t.Fatalf("applied = %+v", got)
	}

	if _, err := (Patch{Name: ptr(" ")}).Apply(c); apperrors.CodeOf(err) != apperrors.CodeCharacterEmptyName {
		t.Fatalf("blank name error = %v", err)
	}
}
