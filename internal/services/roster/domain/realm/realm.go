// Package realm models realms, the containers that own traits and characters.
package realm

import (
	"strings"
	"time"

	apperrors "github.com/louisbranch/realmkeep/internal/platform/errors"
)

// Realm is a named collection with its own trait catalog.
type Realm struct {
	ID          string
	Name        string
	OwnerUserID string
	CreatedAt   time.Time
}

// NormalizeName trims a realm name and rejects empty names.
func NormalizeName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", apperrors.New(apperrors.CodeRealmEmptyName, "realm name is required")
	}
	return name, nil
}
