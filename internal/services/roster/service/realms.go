package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	apperrors "github.com/louisbranch/realmkeep/internal/platform/errors"
	"github.com/louisbranch/realmkeep/internal/services/roster/domain/realm"
	"github.com/louisbranch/realmkeep/internal/services/roster/storage"
	"go.opentelemetry.io/otel/attribute"
)

// CreateRealm creates a realm owned by the caller, who becomes its first
// member.
func (s *Service) CreateRealm(ctx context.Context, name string) (_ realm.Realm, err error) {
	ctx, span := s.startSpan(ctx, "CreateRealm")
	defer func() { endSpan(span, err) }()

	userID, err := callerID(ctx)
	if err != nil {
		return realm.Realm{}, err
	}
	name, err = realm.NormalizeName(name)
	if err != nil {
		return realm.Realm{}, err
	}
	realmID, err := s.newID()
	if err != nil {
		return realm.Realm{}, fmt.Errorf("generate realm id: %w", err)
	}
	r := realm.Realm{ID: realmID, Name: name, OwnerUserID: userID, CreatedAt: s.now()}
	if err := s.store.CreateRealm(ctx, r); err != nil {
		return realm.Realm{}, fmt.Errorf("create realm: %w", err)
	}
	return r, nil
}

// AddMember lets an existing member add another user to the realm. Adding a
// user twice is not an error.
func (s *Service) AddMember(ctx context.Context, realmID, memberUserID string) (err error) {
	ctx, span := s.startSpan(ctx, "AddMember", attribute.String("realm_id", realmID))
	defer func() { endSpan(span, err) }()

	userID, err := callerID(ctx)
	if err != nil {
		return err
	}
	memberUserID = strings.TrimSpace(memberUserID)
	if memberUserID == "" {
		return apperrors.New(apperrors.CodeInvalidRequest, "member user id is required")
	}
	if _, err := s.store.GetRealm(ctx, realmID); err != nil {
		return storeErr(err, "realm", realmID)
	}
	if err := s.requireMember(ctx, realmID, userID); err != nil {
		return err
	}
	if err := s.store.AddRealmMember(ctx, realmID, memberUserID, s.now()); err != nil && !errors.Is(err, storage.ErrAlreadyExists) {
		return fmt.Errorf("add realm member: %w", err)
	}
	return nil
}
