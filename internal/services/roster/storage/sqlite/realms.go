package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/louisbranch/realmkeep/internal/services/roster/domain/realm"
	"github.com/louisbranch/realmkeep/internal/services/roster/storage"
)

// CreateRealm inserts a realm and makes its owner the first member.
func (q queries) CreateRealm(ctx context.Context, r realm.Realm) error {
	if err := q.ready(ctx); err != nil {
		return err
	}
	if strings.TrimSpace(r.ID) == "" {
		return fmt.Errorf("realm id is required")
	}
	if strings.TrimSpace(r.OwnerUserID) == "" {
		return fmt.Errorf("owner user id is required")
	}
	createdAt := r.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	return q.inTx(ctx, func(q queries) error {
		if _, err := q.db.ExecContext(ctx,
			`INSERT INTO realms (id, name, owner_user_id, created_at) VALUES (?, ?, ?, ?)`,
			r.ID, r.Name, r.OwnerUserID, toMillis(createdAt),
		); err != nil {
			if isUniqueViolation(err) {
				return storage.ErrAlreadyExists
			}
			return fmt.Errorf("create realm: %w", err)
		}
		if _, err := q.db.ExecContext(ctx,
			`INSERT INTO realm_members (realm_id, user_id, joined_at) VALUES (?, ?, ?)`,
			r.ID, r.OwnerUserID, toMillis(createdAt),
		); err != nil {
			return fmt.Errorf("add realm owner: %w", err)
		}
		return nil
	})
}

// GetRealm returns one realm by id.
func (q queries) GetRealm(ctx context.Context, realmID string) (realm.Realm, error) {
	if err := q.ready(ctx); err != nil {
		return realm.Realm{}, err
	}
	var r realm.Realm
	var createdAt int64
	err := q.db.QueryRowContext(ctx,
		`SELECT id, name, owner_user_id, created_at FROM realms WHERE id = ?`,
		realmID,
	).Scan(&r.ID, &r.Name, &r.OwnerUserID, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return realm.Realm{}, storage.ErrNotFound
		}
		return realm.Realm{}, fmt.Errorf("get realm: %w", err)
	}
	r.CreatedAt = fromMillis(createdAt)
	return r, nil
}

// AddRealmMember grants userID access to realmID.
func (q queries) AddRealmMember(ctx context.Context, realmID, userID string, joinedAt time.Time) error {
	if err := q.ready(ctx); err != nil {
		return err
	}
	if strings.TrimSpace(realmID) == "" || strings.TrimSpace(userID) == "" {
		return fmt.Errorf("realm id and user id are required")
	}
	if joinedAt.IsZero() {
		joinedAt = time.Now().UTC()
	}
	_, err := q.db.ExecContext(ctx,
		`INSERT INTO realm_members (realm_id, user_id, joined_at) VALUES (?, ?, ?)`,
		realmID, userID, toMillis(joinedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return storage.ErrAlreadyExists
		}
		return fmt.Errorf("add realm member: %w", err)
	}
	return nil
}

// IsRealmMember reports whether userID belongs to realmID.
func (q queries) IsRealmMember(ctx context.Context, realmID, userID string) (bool, error) {
	if err := q.ready(ctx); err != nil {
		return false, err
	}
	var found int
	err := q.db.QueryRowContext(ctx,
		`SELECT 1 FROM realm_members WHERE realm_id = ? AND user_id = ?`,
		realmID, userID,
	).Scan(&found)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check realm member: %w", err)
	}
	return true, nil
}

// ListMemberRealmIDs returns the realms userID belongs to, ordered by id.
func (q queries) ListMemberRealmIDs(ctx context.Context, userID string) ([]string, error) {
	if err := q.ready(ctx); err != nil {
		return nil, err
	}
	rows, err := q.db.QueryContext(ctx,
		`SELECT realm_id FROM realm_members WHERE user_id = ? ORDER BY realm_id`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list member realms: %w", err)
	}
	defer rows.Close()

	realmIDs := []string{}
	for rows.Next() {
		var realmID string
		if err := rows.Scan(&realmID); err != nil {
			return nil, fmt.Errorf("list member realms: %w", err)
		}
		realmIDs = append(realmIDs, realmID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list member realms: %w", err)
	}
	return realmIDs, nil
}
