package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/louisbranch/realmkeep/internal/services/roster/domain/migration"
	"github.com/louisbranch/realmkeep/internal/services/roster/domain/rating"
	"github.com/louisbranch/realmkeep/internal/services/roster/storage"
)

// UpsertRating inserts r, or updates the value of the rating already stored
// for (r.CharacterID, r.TraitID), keeping its id.
func (q queries) UpsertRating(ctx context.Context, r rating.Rating) (rating.Rating, error) {
	if err := q.ready(ctx); err != nil {
		return rating.Rating{}, err
	}
	if strings.TrimSpace(r.ID) == "" || strings.TrimSpace(r.CharacterID) == "" || strings.TrimSpace(r.TraitID) == "" {
		return rating.Rating{}, fmt.Errorf("rating id, character id and trait id are required")
	}
	var stored rating.Rating
	err := q.db.QueryRowContext(ctx,
		`INSERT INTO ratings (id, character_id, trait_id, value) VALUES (?, ?, ?, ?)
		 ON CONFLICT (character_id, trait_id) DO UPDATE SET value = excluded.value
		 RETURNING id, character_id, trait_id, value`,
		r.ID, r.CharacterID, r.TraitID, r.Value,
	).Scan(&stored.ID, &stored.CharacterID, &stored.TraitID, &stored.Value)
	if err != nil {
		return rating.Rating{}, fmt.Errorf("upsert rating: %w", err)
	}
	return stored, nil
}

// GetRating returns one rating by id.
func (q queries) GetRating(ctx context.Context, ratingID string) (rating.Rating, error) {
	if err := q.ready(ctx); err != nil {
		return rating.Rating{}, err
	}
	var r rating.Rating
	err := q.db.QueryRowContext(ctx,
		`SELECT id, character_id, trait_id, value FROM ratings WHERE id = ?`,
		ratingID,
	).Scan(&r.ID, &r.CharacterID, &r.TraitID, &r.Value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return rating.Rating{}, storage.ErrNotFound
		}
		return rating.Rating{}, fmt.Errorf("get rating: %w", err)
	}
	return r, nil
}

// DeleteRating removes one rating.
func (q queries) DeleteRating(ctx context.Context, ratingID string) error {
	if err := q.ready(ctx); err != nil {
		return err
	}
	result, err := q.db.ExecContext(ctx, `DELETE FROM ratings WHERE id = ?`, ratingID)
	if err != nil {
		return fmt.Errorf("delete rating: %w", err)
	}
	return requireAffected(result, "delete rating")
}

// ListRatingsByCharacter groups the ratings of characterIDs by character.
func (q queries) ListRatingsByCharacter(ctx context.Context, characterIDs []string) (map[string][]rating.Rating, error) {
	if err := q.ready(ctx); err != nil {
		return nil, err
	}
	out := make(map[string][]rating.Rating, len(characterIDs))
	if len(characterIDs) == 0 {
		return out, nil
	}
	rows, err := q.db.QueryContext(ctx,
		`SELECT id, character_id, trait_id, value FROM ratings
		  WHERE character_id IN (`+placeholders(len(characterIDs))+`)
		  ORDER BY character_id, id`,
		stringArgs(characterIDs)...,
	)
	if err != nil {
		return nil, fmt.Errorf("list ratings: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var r rating.Rating
		if err := rows.Scan(&r.ID, &r.CharacterID, &r.TraitID, &r.Value); err != nil {
			return nil, fmt.Errorf("list ratings: %w", err)
		}
		out[r.CharacterID] = append(out[r.CharacterID], r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list ratings: %w", err)
	}
	return out, nil
}

// ListExistingRatings returns a character's ratings joined with their trait
// names.
func (q queries) ListExistingRatings(ctx context.Context, characterID string) ([]migration.ExistingRating, error) {
	if err := q.ready(ctx); err != nil {
		return nil, err
	}
	rows, err := q.db.QueryContext(ctx,
		`SELECT r.id, r.trait_id, t.name, r.value
		   FROM ratings r
		   JOIN traits t ON t.id = r.trait_id
		  WHERE r.character_id = ?
		  ORDER BY t.created_at, t.rowid`,
		characterID,
	)
	if err != nil {
		return nil, fmt.Errorf("list existing ratings: %w", err)
	}
	defer rows.Close()

	existing := []migration.ExistingRating{}
	for rows.Next() {
		var e migration.ExistingRating
		var value sql.NullInt64
		if err := rows.Scan(&e.RatingID, &e.TraitID, &e.TraitName, &value); err != nil {
			return nil, fmt.Errorf("list existing ratings: %w", err)
		}
		if value.Valid {
			v := int(value.Int64)
			e.Value = &v
		}
		existing = append(existing, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list existing ratings: %w", err)
	}
	return existing, nil
}

// DeleteRatings removes the given ratings.
func (q queries) DeleteRatings(ctx context.Context, ratingIDs []string) error {
	if err := q.ready(ctx); err != nil {
		return err
	}
	if len(ratingIDs) == 0 {
		return nil
	}
	if _, err := q.db.ExecContext(ctx,
		`DELETE FROM ratings WHERE id IN (`+placeholders(len(ratingIDs))+`)`,
		stringArgs(ratingIDs)...,
	); err != nil {
		return fmt.Errorf("delete ratings: %w", err)
	}
	return nil
}

// InsertRatingsIgnoreConflicts inserts ratings, skipping any whose
// (character, trait) pair already has a rating.
func (q queries) InsertRatingsIgnoreConflicts(ctx context.Context, ratings []rating.Rating) error {
	if err := q.ready(ctx); err != nil {
		return err
	}
	for _, r := range ratings {
		if _, err := q.db.ExecContext(ctx,
			`INSERT INTO ratings (id, character_id, trait_id, value) VALUES (?, ?, ?, ?)
			 ON CONFLICT (character_id, trait_id) DO NOTHING`,
			r.ID, r.CharacterID, r.TraitID, r.Value,
		); err != nil {
			return fmt.Errorf("insert rating: %w", err)
		}
	}
	return nil
}
