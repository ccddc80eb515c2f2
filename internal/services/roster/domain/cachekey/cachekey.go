// Package cachekey names the cached views each roster mutation invalidates.
package cachekey

import (
	"slices"
	"strings"
)

// Key identifies one cached view.
type Key string

// RealmCharacters is the character listing of a realm, summaries included.
func RealmCharacters(realmID string) Key {
	return Key("realm/" + realmID + "/characters")
}

// RealmTraits is the trait catalog of a realm.
func RealmTraits(realmID string) Key {
	return Key("realm/" + realmID + "/traits")
}

// Character is a single character view.
func Character(characterID string) Key {
	return Key("character/" + characterID)
}

// RealmID returns the realm a realm-scoped key belongs to.
func (k Key) RealmID() (string, bool) {
	rest, ok := strings.CutPrefix(string(k), "realm/")
	if !ok {
		return "", false
	}
	realmID, _, ok := strings.Cut(rest, "/")
	return realmID, ok && realmID != ""
}

// Set returns keys sorted with duplicates and empty keys removed.
func Set(keys ...Key) []Key {
	out := make([]Key, 0, len(keys))
	for _, k := range keys {
		if k != "" {
			out = append(out, k)
		}
	}
	slices.Sort(out)
	return slices.Compact(out)
}

// ForCharacter covers creating, editing or re-rating a character that stays
// in realmID.
func ForCharacter(realmID, characterID string) []Key {
	return Set(RealmCharacters(realmID), Character(characterID))
}

// ForMigration covers a character moving between realms: both listings change.
func ForMigration(characterID, fromRealmID, toRealmID string) []Key {
	return Set(RealmCharacters(fromRealmID), RealmCharacters(toRealmID), Character(characterID))
}

// ForTraits covers trait catalog changes. Every summary in the realm lists the
// catalog, so the character listing goes too.
func ForTraits(realmID string) []Key {
	return Set(RealmTraits(realmID), RealmCharacters(realmID))
}
