package service

import (
	"context"
	"fmt"

	apperrors "github.com/louisbranch/realmkeep/internal/platform/errors"
	"github.com/louisbranch/realmkeep/internal/services/roster/domain/cachekey"
	"github.com/louisbranch/realmkeep/internal/services/roster/domain/rating"
	"go.opentelemetry.io/otel/attribute"
)

// RatingInput identifies the rating to write and its submitted value.
type RatingInput struct {
	CharacterID string
	TraitID     string
	Value       rating.Input
}

// RatingResult is the stored rating, its display form and the cache keys the
// write affected.
type RatingResult struct {
	Rating     rating.Rating
	Display    string
	Invalidate []cachekey.Key
}

// UpsertRating creates or updates the caller's rating of a character for a
// trait. Grade labels are converted to numbers before storage.
func (s *Service) UpsertRating(ctx context.Context, in RatingInput) (_ RatingResult, err error) {
	ctx, span := s.startSpan(ctx, "UpsertRating",
		attribute.String("character_id", in.CharacterID),
		attribute.String("trait_id", in.TraitID),
	)
	defer func() { endSpan(span, err) }()

	userID, err := callerID(ctx)
	if err != nil {
		return RatingResult{}, err
	}
	value, err := in.Value.Normalize()
	if err != nil {
		return RatingResult{}, err
	}
	c, err := s.store.GetCharacter(ctx, in.CharacterID)
	if err != nil {
		return RatingResult{}, storeErr(err, "character", in.CharacterID)
	}
	if err := s.requireMember(ctx, c.RealmID, userID); err != nil {
		return RatingResult{}, err
	}
	t, err := s.store.GetTrait(ctx, in.TraitID)
	if err != nil {
		return RatingResult{}, storeErr(err, "trait", in.TraitID)
	}
	if t.RealmID != c.RealmID {
		return RatingResult{}, apperrors.WithMetadata(
			apperrors.CodeRatingMismatchedRealms,
			fmt.Sprintf("trait %s is in realm %s, character %s is in realm %s", t.ID, t.RealmID, c.ID, c.RealmID),
			map[string]string{"TraitRealmID": t.RealmID, "CharacterRealmID": c.RealmID},
		)
	}

	ratingID, err := s.newID()
	if err != nil {
		return RatingResult{}, fmt.Errorf("generate rating id: %w", err)
	}
	stored, err := s.store.UpsertRating(ctx, rating.Rating{
		ID:          ratingID,
		CharacterID: c.ID,
		TraitID:     t.ID,
		Value:       value,
	})
	if err != nil {
		return RatingResult{}, fmt.Errorf("upsert rating: %w", err)
	}
	keys := cachekey.ForCharacter(c.RealmID, c.ID)
	s.invalidate(keys)
	return RatingResult{
		Rating:     stored,
		Display:    rating.Display(stored.Value, t.DisplayMode),
		Invalidate: keys,
	}, nil
}

// DeleteRating removes one rating.
func (s *Service) DeleteRating(ctx context.Context, ratingID string) (_ []cachekey.Key, err error) {
	ctx, span := s.startSpan(ctx, "DeleteRating", attribute.String("rating_id", ratingID))
	defer func() { endSpan(span, err) }()

	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	r, err := s.store.GetRating(ctx, ratingID)
	if err != nil {
		return nil, storeErr(err, "rating", ratingID)
	}
	c, err := s.store.GetCharacter(ctx, r.CharacterID)
	if err != nil {
		return nil, storeErr(err, "character", r.CharacterID)
	}
	if err := s.requireMember(ctx, c.RealmID, userID); err != nil {
		return nil, err
	}
	if err := s.store.DeleteRating(ctx, ratingID); err != nil {
		return nil, storeErr(err, "rating", ratingID)
	}
	keys := cachekey.ForCharacter(c.RealmID, c.ID)
	s.invalidate(keys)
	return keys, nil
}
