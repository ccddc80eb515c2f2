package service

import (
	"context"
	"errors"
	"fmt"

	apperrors "github.com/louisbranch/realmkeep/internal/platform/errors"
	"github.com/louisbranch/realmkeep/internal/services/roster/domain/cachekey"
	"github.com/louisbranch/realmkeep/internal/services/roster/domain/trait"
	"github.com/louisbranch/realmkeep/internal/services/roster/storage"
	"go.opentelemetry.io/otel/attribute"
)

// TraitInput carries the fields of a new trait.
type TraitInput struct {
	Name        string
	DisplayMode string
}

// TraitPatch lists the trait fields an update may change.
type TraitPatch struct {
	Name        *string
	DisplayMode *string
}

// TraitResult is a stored trait plus the cache keys the write affected.
type TraitResult struct {
	Trait      trait.Trait
	Invalidate []cachekey.Key
}

// ListTraits returns a realm's trait catalog.
func (s *Service) ListTraits(ctx context.Context, realmID string) (_ []trait.Trait, err error) {
	ctx, span := s.startSpan(ctx, "ListTraits", attribute.String("realm_id", realmID))
	defer func() { endSpan(span, err) }()

	if err := s.authorizeRealm(ctx, realmID); err != nil {
		return nil, err
	}
	return s.store.ListTraits(ctx, realmID)
}

// CreateTrait adds a trait to a realm. Names are unique per realm ignoring
// case, so "Luck" and "luck" cannot coexist.
func (s *Service) CreateTrait(ctx context.Context, realmID string, in TraitInput) (_ TraitResult, err error) {
	ctx, span := s.startSpan(ctx, "CreateTrait", attribute.String("realm_id", realmID))
	defer func() { endSpan(span, err) }()

	if err := s.authorizeRealm(ctx, realmID); err != nil {
		return TraitResult{}, err
	}
	name, err := trait.NormalizeName(in.Name)
	if err != nil {
		return TraitResult{}, err
	}
	mode, err := trait.ParseDisplayMode(in.DisplayMode)
	if err != nil {
		return TraitResult{}, err
	}
	if err := s.ensureTraitNameFree(ctx, realmID, name, ""); err != nil {
		return TraitResult{}, err
	}
	traitID, err := s.newID()
	if err != nil {
		return TraitResult{}, fmt.Errorf("generate trait id: %w", err)
	}

	t := trait.Trait{ID: traitID, RealmID: realmID, Name: name, DisplayMode: mode}
	if err := s.store.CreateTrait(ctx, t); err != nil {
		if errors.Is(err, storage.ErrAlreadyExists) {
			return TraitResult{}, nameTaken(name)
		}
		return TraitResult{}, fmt.Errorf("create trait: %w", err)
	}
	keys := cachekey.ForTraits(realmID)
	s.invalidate(keys)
	return TraitResult{Trait: t, Invalidate: keys}, nil
}

// UpdateTrait renames a trait or changes its display mode. Ratings keep
// their values.
func (s *Service) UpdateTrait(ctx context.Context, traitID string, patch TraitPatch) (_ TraitResult, err error) {
	ctx, span := s.startSpan(ctx, "UpdateTrait", attribute.String("trait_id", traitID))
	defer func() { endSpan(span, err) }()

	t, err := s.store.GetTrait(ctx, traitID)
	if err != nil {
		return TraitResult{}, storeErr(err, "trait", traitID)
	}
	if err := s.authorizeRealm(ctx, t.RealmID); err != nil {
		return TraitResult{}, err
	}
	if patch.Name != nil {
		name, err := trait.NormalizeName(*patch.Name)
		if err != nil {
			return TraitResult{}, err
		}
		if err := s.ensureTraitNameFree(ctx, t.RealmID, name, t.ID); err != nil {
			return TraitResult{}, err
		}
		t.Name = name
	}
	if patch.DisplayMode != nil {
		mode, err := trait.ParseDisplayMode(*patch.DisplayMode)
		if err != nil {
			return TraitResult{}, err
		}
		t.DisplayMode = mode
	}

	if err := s.store.UpdateTrait(ctx, t); err != nil {
		if errors.Is(err, storage.ErrAlreadyExists) {
			return TraitResult{}, nameTaken(t.Name)
		}
		return TraitResult{}, storeErr(err, "trait", traitID)
	}
	keys := cachekey.ForTraits(t.RealmID)
	s.invalidate(keys)
	return TraitResult{Trait: t, Invalidate: keys}, nil
}

// DeleteTrait removes a trait together with every rating for it.
func (s *Service) DeleteTrait(ctx context.Context, traitID string) (_ []cachekey.Key, err error) {
	ctx, span := s.startSpan(ctx, "DeleteTrait", attribute.String("trait_id", traitID))
	defer func() { endSpan(span, err) }()

	t, err := s.store.GetTrait(ctx, traitID)
	if err != nil {
		return nil, storeErr(err, "trait", traitID)
	}
	if err := s.authorizeRealm(ctx, t.RealmID); err != nil {
		return nil, err
	}
	if err := s.store.DeleteTrait(ctx, traitID); err != nil {
		return nil, storeErr(err, "trait", traitID)
	}
	keys := cachekey.ForTraits(t.RealmID)
	s.invalidate(keys)
	return keys, nil
}

// authorizeRealm checks that the realm exists and the caller belongs to it.
func (s *Service) authorizeRealm(ctx context.Context, realmID string) error {
	userID, err := callerID(ctx)
	if err != nil {
		return err
	}
	if _, err := s.store.GetRealm(ctx, realmID); err != nil {
		return storeErr(err, "realm", realmID)
	}
	return s.requireMember(ctx, realmID, userID)
}

// ensureTraitNameFree rejects name when another trait of the realm (other
// than exceptID) has the same name under the matcher.
func (s *Service) ensureTraitNameFree(ctx context.Context, realmID, name, exceptID string) error {
	traits, err := s.store.ListTraits(ctx, realmID)
	if err != nil {
		return err
	}
	key := s.matcher.Key(name)
	for _, existing := range traits {
		if existing.ID != exceptID && s.matcher.Key(existing.Name) == key {
			return nameTaken(existing.Name)
		}
	}
	return nil
}

func nameTaken(name string) error {
	return apperrors.WithMetadata(apperrors.CodeTraitNameTaken, "trait name "+name+" is taken", map[string]string{"Name": name})
}
