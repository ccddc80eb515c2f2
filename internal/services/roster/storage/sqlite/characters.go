package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/louisbranch/realmkeep/internal/services/roster/domain/character"
	"github.com/louisbranch/realmkeep/internal/services/roster/storage"
)

const characterColumns = `id, realm_id, name, gender, notes, created_at, updated_at`

// CreateCharacter inserts a character.
func (q queries) CreateCharacter(ctx context.Context, c character.Character) error {
	if err := q.ready(ctx); err != nil {
		return err
	}
	if strings.TrimSpace(c.ID) == "" || strings.TrimSpace(c.RealmID) == "" {
		return fmt.Errorf("character id and realm id are required")
	}
	createdAt, updatedAt := c.CreatedAt, c.UpdatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	if updatedAt.IsZero() {
		updatedAt = createdAt
	}
	_, err := q.db.ExecContext(ctx,
		`INSERT INTO characters (`+characterColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.RealmID, c.Name, c.Gender, c.Notes, toMillis(createdAt), toMillis(updatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return storage.ErrAlreadyExists
		}
		return fmt.Errorf("create character: %w", err)
	}
	return nil
}

// GetCharacter returns one character by id.
func (q queries) GetCharacter(ctx context.Context, characterID string) (character.Character, error) {
	if err := q.ready(ctx); err != nil {
		return character.Character{}, err
	}
	c, err := scanCharacter(q.db.QueryRowContext(ctx,
		`SELECT `+characterColumns+` FROM characters WHERE id = ?`,
		characterID,
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return character.Character{}, storage.ErrNotFound
		}
		return character.Character{}, fmt.Errorf("get character: %w", err)
	}
	return c, nil
}

// UpdateCharacter overwrites the mutable fields of a character, realm
// included.
func (q queries) UpdateCharacter(ctx context.Context, c character.Character) error {
	if err := q.ready(ctx); err != nil {
		return err
	}
	updatedAt := c.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = time.Now().UTC()
	}
	result, err := q.db.ExecContext(ctx,
		`UPDATE characters SET realm_id = ?, name = ?, gender = ?, notes = ?, updated_at = ? WHERE id = ?`,
		c.RealmID, c.Name, c.Gender, c.Notes, toMillis(updatedAt), c.ID,
	)
	if err != nil {
		return fmt.Errorf("update character: %w", err)
	}
	return requireAffected(result, "update character")
}

// ListCharacters returns one page of characters from the requested realms,
// ordered by id.
func (q queries) ListCharacters(ctx context.Context, query storage.CharacterQuery) (storage.CharacterPage, error) {
	if err := q.ready(ctx); err != nil {
		return storage.CharacterPage{}, err
	}
	if query.PageSize <= 0 {
		return storage.CharacterPage{}, fmt.Errorf("page size must be greater than zero")
	}
	page := storage.CharacterPage{Characters: []character.Character{}}
	if len(query.RealmIDs) == 0 {
		return page, nil
	}

	var sb strings.Builder
	sb.WriteString(`SELECT ` + characterColumns + ` FROM characters WHERE realm_id IN (`)
	sb.WriteString(placeholders(len(query.RealmIDs)))
	sb.WriteString(`)`)
	args := stringArgs(query.RealmIDs)
	if clause := strings.TrimSpace(query.FilterClause); clause != "" {
		sb.WriteString(` AND (` + clause + `)`)
		args = append(args, query.FilterParams...)
	}
	if after := strings.TrimSpace(query.AfterID); after != "" {
		sb.WriteString(` AND id > ?`)
		args = append(args, after)
	}
	sb.WriteString(` ORDER BY id ASC LIMIT ?`)
	args = append(args, query.PageSize+1)

	rows, err := q.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return storage.CharacterPage{}, fmt.Errorf("list characters: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		c, err := scanCharacter(rows)
		if err != nil {
			return storage.CharacterPage{}, fmt.Errorf("list characters: %w", err)
		}
		page.Characters = append(page.Characters, c)
	}
	if err := rows.Err(); err != nil {
		return storage.CharacterPage{}, fmt.Errorf("list characters: %w", err)
	}
	if len(page.Characters) > query.PageSize {
		page.Characters = page.Characters[:query.PageSize]
		page.NextAfterID = page.Characters[query.PageSize-1].ID
	}
	return page, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCharacter(row rowScanner) (character.Character, error) {
	var c character.Character
	var createdAt, updatedAt int64
	if err := row.Scan(&c.ID, &c.RealmID, &c.Name, &c.Gender, &c.Notes, &createdAt, &updatedAt); err != nil {
		return character.Character{}, err
	}
	c.CreatedAt = fromMillis(createdAt)
	c.UpdatedAt = fromMillis(updatedAt)
	return c, nil
}
