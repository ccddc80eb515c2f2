package service

import (
	"context"
	"fmt"
	"strings"

	apperrors "github.com/louisbranch/realmkeep/internal/platform/errors"
	"github.com/louisbranch/realmkeep/internal/services/roster/domain/cachekey"
	"github.com/louisbranch/realmkeep/internal/services/roster/domain/character"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// CharacterInput carries the fields of a new character.
type CharacterInput struct {
	RealmID string
	Name    string
	Gender  string
	Notes   string
}

// CharacterResult is a stored character plus the cache keys the write
// affected.
type CharacterResult struct {
	Character  character.Character
	Invalidate []cachekey.Key
}

// UpdateCharacterResult reports an update. UnmappedTraits is never nil and
// lists the ratings lost by a realm move.
type UpdateCharacterResult struct {
	Success        bool
	UnmappedTraits []string
	Character      character.Character
	Invalidate     []cachekey.Key
}

// CreateCharacter adds a character to a realm the caller belongs to.
func (s *Service) CreateCharacter(ctx context.Context, in CharacterInput) (_ CharacterResult, err error) {
	in.RealmID = strings.TrimSpace(in.RealmID)
	ctx, span := s.startSpan(ctx, "CreateCharacter", attribute.String("realm_id", in.RealmID))
	defer func() { endSpan(span, err) }()

	if in.RealmID == "" {
		return CharacterResult{}, apperrors.New(apperrors.CodeInvalidRequest, "realm id is required")
	}
	if err := s.authorizeRealm(ctx, in.RealmID); err != nil {
		return CharacterResult{}, err
	}
	name, err := character.NormalizeName(in.Name)
	if err != nil {
		return CharacterResult{}, err
	}
	characterID, err := s.newID()
	if err != nil {
		return CharacterResult{}, fmt.Errorf("generate character id: %w", err)
	}
	now := s.now()
	c := character.Character{
		ID:        characterID,
		RealmID:   in.RealmID,
		Name:      name,
		Gender:    strings.TrimSpace(in.Gender),
		Notes:     in.Notes,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.CreateCharacter(ctx, c); err != nil {
		return CharacterResult{}, fmt.Errorf("create character: %w", err)
	}
	keys := cachekey.ForCharacter(c.RealmID, c.ID)
	s.invalidate(keys)
	return CharacterResult{Character: c, Invalidate: keys}, nil
}

// UpdateCharacter applies patch. When the patch moves the character to
// another realm, its ratings are reconciled against the target catalog in
// the same transaction as the row update; a patch naming the current realm
// is an ordinary update.
func (s *Service) UpdateCharacter(ctx context.Context, characterID string, patch character.Patch) (_ UpdateCharacterResult, err error) {
	ctx, span := s.startSpan(ctx, "UpdateCharacter", attribute.String("character_id", characterID))
	defer func() { endSpan(span, err) }()

	userID, err := callerID(ctx)
	if err != nil {
		return UpdateCharacterResult{}, err
	}
	current, err := s.store.GetCharacter(ctx, characterID)
	if err != nil {
		return UpdateCharacterResult{}, storeErr(err, "character", characterID)
	}
	if err := s.requireMember(ctx, current.RealmID, userID); err != nil {
		return UpdateCharacterResult{}, err
	}
	updated, err := patch.Apply(current)
	if err != nil {
		return UpdateCharacterResult{}, err
	}
	updated.UpdatedAt = s.now()

	if !patch.MovesRealm(current) {
		if err := s.store.UpdateCharacter(ctx, updated); err != nil {
			return UpdateCharacterResult{}, storeErr(err, "character", characterID)
		}
		keys := cachekey.ForCharacter(updated.RealmID, updated.ID)
		s.invalidate(keys)
		return UpdateCharacterResult{Success: true, UnmappedTraits: []string{}, Character: updated, Invalidate: keys}, nil
	}

	span.SetAttributes(
		attribute.String("from_realm_id", current.RealmID),
		attribute.String("to_realm_id", updated.RealmID),
	)
	if _, err := s.store.GetRealm(ctx, updated.RealmID); err != nil {
		return UpdateCharacterResult{}, storeErr(err, "realm", updated.RealmID)
	}
	if err := s.requireMembership(ctx, updated.RealmID, userID, apperrors.CodeRealmTargetMembershipRequired); err != nil {
		return UpdateCharacterResult{}, err
	}
	result, err := s.reconciler.Migrate(ctx, current.RealmID, updated)
	if err != nil {
		return UpdateCharacterResult{}, fmt.Errorf("migrate character: %w", err)
	}
	if len(result.UnmappedTraits) > 0 {
		s.logger.Warn("ratings dropped by realm move",
			zap.String("character_id", updated.ID),
			zap.Strings("unmapped_traits", result.UnmappedTraits),
		)
	}
	s.invalidate(result.Invalidate)
	return UpdateCharacterResult{
		Success:        result.Success,
		UnmappedTraits: result.UnmappedTraits,
		Character:      updated,
		Invalidate:     result.Invalidate,
	}, nil
}
