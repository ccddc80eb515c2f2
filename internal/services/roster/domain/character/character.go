// Package character models characters and the patch applied by updates.
package character

import (
	"strings"
	"time"

	apperrors "github.com/louisbranch/realmkeep/internal/platform/errors"
)

// Character belongs to exactly one realm at a time.
type Character struct {
	ID        string
	RealmID   string
	Name      string
	Gender    string
	Notes     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Patch lists the fields an update may change. Nil fields are left alone.
type Patch struct {
	RealmID *string
	Name    *string
	Gender  *string
	Notes   *string
}

// MovesRealm reports whether applying p to c changes c's realm.
func (p Patch) MovesRealm(c Character) bool {
	if p.RealmID == nil {
		return false
	}
	target := strings.TrimSpace(*p.RealmID)
	return target != "" && target != c.RealmID
}

// Apply returns c with p's fields set. A blank realm id is ignored; a blank
// name is rejected.
func (p Patch) Apply(c Character) (Character, error) {
	if p.RealmID != nil {
		if realmID := strings.TrimSpace(*p.RealmID); realmID != "" {
			c.RealmID = realmID
		}
	}
	if p.Name != nil {
		name, err := NormalizeName(*p.Name)
		if err != nil {
			return Character{}, err
		}
		c.Name = name
	}
	if p.Gender != nil {
		c.Gender = strings.TrimSpace(*p.Gender)
	}
	if p.Notes != nil {
		c.Notes = *p.Notes
	}
	return c, nil
}

// NormalizeName trims a character name and rejects empty names.
func NormalizeName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", apperrors.New(apperrors.CodeCharacterEmptyName, "character name is required")
	}
	return name, nil
}
