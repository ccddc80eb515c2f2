// Package storage defines persistence contracts for roster state.
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/louisbranch/realmkeep/internal/services/roster/domain/character"
	"github.com/louisbranch/realmkeep/internal/services/roster/domain/migration"
	"github.com/louisbranch/realmkeep/internal/services/roster/domain/rating"
	"github.com/louisbranch/realmkeep/internal/services/roster/domain/realm"
	"github.com/louisbranch/realmkeep/internal/services/roster/domain/trait"
)

var (
	// ErrNotFound indicates a requested record is missing.
	ErrNotFound = errors.New("record not found")
	// ErrAlreadyExists indicates a uniqueness constraint rejected a write.
	ErrAlreadyExists = errors.New("record already exists")
)

// RealmStore persists realms and their membership.
type RealmStore interface {
	CreateRealm(ctx context.Context, r realm.Realm) error
	GetRealm(ctx context.Context, realmID string) (realm.Realm, error)
	AddRealmMember(ctx context.Context, realmID, userID string, joinedAt time.Time) error
	IsRealmMember(ctx context.Context, realmID, userID string) (bool, error)
	ListMemberRealmIDs(ctx context.Context, userID string) ([]string, error)
}

// TraitStore persists realm trait catalogs.
type TraitStore interface {
	CreateTrait(ctx context.Context, t trait.Trait) error
	GetTrait(ctx context.Context, traitID string) (trait.Trait, error)
	UpdateTrait(ctx context.Context, t trait.Trait) error
	// DeleteTrait removes the trait and every rating that references it.
	DeleteTrait(ctx context.Context, traitID string) error
	// ListTraits returns a realm's catalog in creation order.
	ListTraits(ctx context.Context, realmID string) ([]trait.Trait, error)
}

// CharacterQuery selects one page of characters.
type CharacterQuery struct {
	// RealmIDs restricts results to these realms; it must not be empty.
	RealmIDs []string
	// FilterClause and FilterParams are an extra WHERE fragment over the
	// characters table.
	FilterClause string
	FilterParams []any
	PageSize     int
	// AfterID resumes after the character with this id.
	AfterID string
}

// CharacterPage is one page of characters ordered by id.
type CharacterPage struct {
	Characters []character.Character
	// NextAfterID is empty on the last page.
	NextAfterID string
}

// CharacterStore persists characters.
type CharacterStore interface {
	CreateCharacter(ctx context.Context, c character.Character) error
	GetCharacter(ctx context.Context, characterID string) (character.Character, error)
	UpdateCharacter(ctx context.Context, c character.Character) error
	ListCharacters(ctx context.Context, query CharacterQuery) (CharacterPage, error)
}

// RatingStore persists ratings. At most one rating exists per
// (character, trait).
type RatingStore interface {
	// UpsertRating inserts r or updates the value of the existing rating for
	// the same pair, returning the stored row.
	UpsertRating(ctx context.Context, r rating.Rating) (rating.Rating, error)
	GetRating(ctx context.Context, ratingID string) (rating.Rating, error)
	DeleteRating(ctx context.Context, ratingID string) error
	// ListRatingsByCharacter groups the ratings of the given characters.
	ListRatingsByCharacter(ctx context.Context, characterIDs []string) (map[string][]rating.Rating, error)
}

// Tx is the surface available inside a transaction. It is the migration
// contract, so a Store is also a migration.TxRunner.
type Tx = migration.Tx

// Store is the full roster persistence contract.
type Store interface {
	RealmStore
	TraitStore
	CharacterStore
	RatingStore
	// RunInTx commits when fn returns nil and rolls back otherwise.
	RunInTx(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	Close() error
}
