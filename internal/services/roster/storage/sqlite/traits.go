package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/louisbranch/realmkeep/internal/services/roster/domain/migration"
	"github.com/louisbranch/realmkeep/internal/services/roster/domain/trait"
	"github.com/louisbranch/realmkeep/internal/services/roster/storage"
)

// CreateTrait inserts a trait. Names are unique per realm as stored, so the
// caller checks case-insensitive collisions first.
func (q queries) CreateTrait(ctx context.Context, t trait.Trait) error {
	if err := q.ready(ctx); err != nil {
		return err
	}
	if strings.TrimSpace(t.ID) == "" || strings.TrimSpace(t.RealmID) == "" {
		return fmt.Errorf("trait id and realm id are required")
	}
	_, err := q.db.ExecContext(ctx,
		`INSERT INTO traits (id, realm_id, name, display_mode, created_at) VALUES (?, ?, ?, ?, ?)`,
		t.ID, t.RealmID, t.Name, string(t.DisplayMode), toMillis(time.Now()),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return storage.ErrAlreadyExists
		}
		return fmt.Errorf("create trait: %w", err)
	}
	return nil
}

// GetTrait returns one trait by id.
func (q queries) GetTrait(ctx context.Context, traitID string) (trait.Trait, error) {
	if err := q.ready(ctx); err != nil {
		return trait.Trait{}, err
	}
	var t trait.Trait
	var mode string
	err := q.db.QueryRowContext(ctx,
		`SELECT id, realm_id, name, display_mode FROM traits WHERE id = ?`,
		traitID,
	).Scan(&t.ID, &t.RealmID, &t.Name, &mode)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return trait.Trait{}, storage.ErrNotFound
		}
		return trait.Trait{}, fmt.Errorf("get trait: %w", err)
	}
	t.DisplayMode = trait.DisplayMode(mode)
	return t, nil
}

// UpdateTrait changes a trait's name and display mode.
func (q queries) UpdateTrait(ctx context.Context, t trait.Trait) error {
	if err := q.ready(ctx); err != nil {
		return err
	}
	result, err := q.db.ExecContext(ctx,
		`UPDATE traits SET name = ?, display_mode = ? WHERE id = ?`,
		t.Name, string(t.DisplayMode), t.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return storage.ErrAlreadyExists
		}
		return fmt.Errorf("update trait: %w", err)
	}
	return requireAffected(result, "update trait")
}

// DeleteTrait removes a trait and its ratings.
func (q queries) DeleteTrait(ctx context.Context, traitID string) error {
	if err := q.ready(ctx); err != nil {
		return err
	}
	return q.inTx(ctx, func(q queries) error {
		if _, err := q.db.ExecContext(ctx, `DELETE FROM ratings WHERE trait_id = ?`, traitID); err != nil {
			return fmt.Errorf("delete trait ratings: %w", err)
		}
		result, err := q.db.ExecContext(ctx, `DELETE FROM traits WHERE id = ?`, traitID)
		if err != nil {
			return fmt.Errorf("delete trait: %w", err)
		}
		return requireAffected(result, "delete trait")
	})
}

// ListTraits returns a realm's catalog in creation order.
func (q queries) ListTraits(ctx context.Context, realmID string) ([]trait.Trait, error) {
	if err := q.ready(ctx); err != nil {
		return nil, err
	}
	rows, err := q.db.QueryContext(ctx,
		`SELECT id, realm_id, name, display_mode FROM traits WHERE realm_id = ? ORDER BY created_at, rowid`,
		realmID,
	)
	if err != nil {
		return nil, fmt.Errorf("list traits: %w", err)
	}
	defer rows.Close()

	traits := []trait.Trait{}
	for rows.Next() {
		var t trait.Trait
		var mode string
		if err := rows.Scan(&t.ID, &t.RealmID, &t.Name, &mode); err != nil {
			return nil, fmt.Errorf("list traits: %w", err)
		}
		t.DisplayMode = trait.DisplayMode(mode)
		traits = append(traits, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list traits: %w", err)
	}
	return traits, nil
}

// ListCatalogTraits returns the realm catalog in the shape the reconciler
// consumes.
func (q queries) ListCatalogTraits(ctx context.Context, realmID string) ([]migration.CatalogTrait, error) {
	traits, err := q.ListTraits(ctx, realmID)
	if err != nil {
		return nil, err
	}
	catalog := make([]migration.CatalogTrait, 0, len(traits))
	for _, t := range traits {
		catalog = append(catalog, migration.CatalogTrait{ID: t.ID, Name: t.Name})
	}
	return catalog, nil
}

func requireAffected(result sql.Result, op string) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}
	return nil
}
