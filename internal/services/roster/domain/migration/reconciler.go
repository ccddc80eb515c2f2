package migration

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/louisbranch/realmkeep/internal/platform/id"
	"github.com/louisbranch/realmkeep/internal/services/roster/domain/cachekey"
	"github.com/louisbranch/realmkeep/internal/services/roster/domain/character"
	"github.com/louisbranch/realmkeep/internal/services/roster/domain/rating"
	"github.com/louisbranch/realmkeep/internal/services/roster/domain/trait"
	"go.uber.org/zap"
)

// ErrSameRealm is returned when Migrate is asked to move a character into the
// realm it already belongs to. Callers skip the reconciler in that case.
var ErrSameRealm = errors.New("character already belongs to the target realm")

// Tx is the store surface a migration uses, scoped to one transaction.
type Tx interface {
	ListExistingRatings(ctx context.Context, characterID string) ([]ExistingRating, error)
	ListCatalogTraits(ctx context.Context, realmID string) ([]CatalogTrait, error)
	DeleteRatings(ctx context.Context, ratingIDs []string) error
	InsertRatingsIgnoreConflicts(ctx context.Context, ratings []rating.Rating) error
	UpdateCharacter(ctx context.Context, c character.Character) error
}

// TxRunner runs fn in a transaction that commits only if fn returns nil.
type TxRunner interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}

// Result reports a completed move. A non-empty UnmappedTraits is a partial
// success: the ratings for those names no longer exist.
type Result struct {
	Success        bool           `json:"success"`
	UnmappedTraits []string       `json:"unmappedTraits"`
	Invalidate     []cachekey.Key `json:"invalidate"`
}

// Reconciler applies migration plans.
type Reconciler struct {
	Tx      TxRunner
	Matcher trait.Matcher
	NewID   id.Generator
	Logger  *zap.Logger
}

// Migrate moves updated into updated.RealmID from fromRealmID. Deleting the
// old ratings, inserting the carried-over ones and saving updated happen in
// one transaction.
func (r Reconciler) Migrate(ctx context.Context, fromRealmID string, updated character.Character) (Result, error) {
	if r.Tx == nil {
		return Result{}, fmt.Errorf("migration tx runner is required")
	}
	fromRealmID = strings.TrimSpace(fromRealmID)
	if fromRealmID == "" || strings.TrimSpace(updated.RealmID) == "" {
		return Result{}, fmt.Errorf("source and target realm ids are required")
	}
	if fromRealmID == updated.RealmID {
		return Result{}, ErrSameRealm
	}
	newID := r.NewID
	if newID == nil {
		newID = id.NewID
	}
	logger := r.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	var plan Plan
	err := r.Tx.RunInTx(ctx, func(ctx context.Context, tx Tx) error {
		existing, err := tx.ListExistingRatings(ctx, updated.ID)
		if err != nil {
			return fmt.Errorf("list existing ratings: %w", err)
		}
		catalog, err := tx.ListCatalogTraits(ctx, updated.RealmID)
		if err != nil {
			return fmt.Errorf("list target traits: %w", err)
		}
		plan = Reconcile(r.Matcher, updated.ID, existing, catalog)

		if len(plan.Deletes) > 0 {
			if err := tx.DeleteRatings(ctx, plan.Deletes); err != nil {
				return fmt.Errorf("delete old ratings: %w", err)
			}
		}
		if len(plan.Creates) > 0 {
			for i := range plan.Creates {
				ratingID, err := newID()
				if err != nil {
					return fmt.Errorf("generate rating id: %w", err)
				}
				plan.Creates[i].ID = ratingID
			}
			if err := tx.InsertRatingsIgnoreConflicts(ctx, plan.Creates); err != nil {
				return fmt.Errorf("insert migrated ratings: %w", err)
			}
		}
		if err := tx.UpdateCharacter(ctx, updated); err != nil {
			return fmt.Errorf("update character: %w", err)
		}
		return nil
	})
	if err != nil {
		return Result{}, err
	}

	logger.Info("character migrated",
		zap.String("character_id", updated.ID),
		zap.String("from_realm_id", fromRealmID),
		zap.String("to_realm_id", updated.RealmID),
		zap.Int("carried", len(plan.Creates)),
		zap.Int("deleted", len(plan.Deletes)),
		zap.Strings("unmapped_traits", plan.UnmappedTraits),
	)
	return Result{
		Success:        true,
		UnmappedTraits: plan.UnmappedTraits,
		Invalidate:     cachekey.ForMigration(updated.ID, fromRealmID, updated.RealmID),
	}, nil
}
