// Package service implements the roster use cases on top of the domain
// packages and a storage.Store.
//
// Every operation reads the caller from requestctx and checks realm
// membership before touching data. Mutations report the cache keys they
// affect and evict them from the listing cache.
package service

import (
	"context"
	"errors"
	"strings"
	"time"

	apperrors "github.com/louisbranch/realmkeep/internal/platform/errors"
	"github.com/louisbranch/realmkeep/internal/platform/id"
	"github.com/louisbranch/realmkeep/internal/platform/requestctx"
	"github.com/louisbranch/realmkeep/internal/services/roster/cache"
	"github.com/louisbranch/realmkeep/internal/services/roster/domain/cachekey"
	"github.com/louisbranch/realmkeep/internal/services/roster/domain/migration"
	"github.com/louisbranch/realmkeep/internal/services/roster/domain/trait"
	"github.com/louisbranch/realmkeep/internal/services/roster/domain/traitfilter"
	"github.com/louisbranch/realmkeep/internal/services/roster/storage"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const (
	tracerName = "github.com/louisbranch/realmkeep/internal/services/roster/service"

	defaultListPageSize = 50
	maxListPageSize     = 200
	defaultCacheTTL     = 30 * time.Second
)

// Service exposes roster operations.
type Service struct {
	store      storage.Store
	reconciler migration.Reconciler
	engine     traitfilter.Engine
	listings   *cache.Cache[listingPage]

	matcher  trait.Matcher
	newID    id.Generator
	clock    func() time.Time
	cacheTTL time.Duration
	logger   *zap.Logger
	tracer   trace.Tracer
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the service logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock overrides the time source.
func WithClock(clock func() time.Time) Option {
	return func(s *Service) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// WithIDGenerator overrides identifier generation.
func WithIDGenerator(newID id.Generator) Option {
	return func(s *Service) {
		if newID != nil {
			s.newID = newID
		}
	}
}

// WithCacheTTL sets how long listing pages stay cached; zero disables it.
func WithCacheTTL(ttl time.Duration) Option {
	return func(s *Service) {
		s.cacheTTL = ttl
	}
}

// WithMatcher replaces the trait name heuristic used by filtering and
// migration.
func WithMatcher(m trait.Matcher) Option {
	return func(s *Service) {
		if m != nil {
			s.matcher = m
		}
	}
}

// WithTracerProvider sets the provider spans are created from.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(s *Service) {
		if tp != nil {
			s.tracer = tp.Tracer(tracerName)
		}
	}
}

// New creates a roster service backed by store.
func New(store storage.Store, opts ...Option) *Service {
	s := &Service{
		store:    store,
		matcher:  trait.DefaultMatcher,
		newID:    id.NewID,
		clock:    time.Now,
		cacheTTL: defaultCacheTTL,
		logger:   zap.NewNop(),
		tracer:   otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.engine = traitfilter.Engine{Matcher: s.matcher}
	s.listings = cache.New[listingPage](s.cacheTTL)
	s.reconciler = migration.Reconciler{
		Tx:      store,
		Matcher: s.matcher,
		NewID:   s.newID,
		Logger:  s.logger,
	}
	return s
}

func (s *Service) now() time.Time {
	return s.clock().UTC()
}

func (s *Service) startSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return s.tracer.Start(ctx, "roster."+name, trace.WithAttributes(attrs...))
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

func (s *Service) invalidate(keys []cachekey.Key) {
	s.listings.Invalidate(keys...)
}

// callerID returns the authenticated user or an UNAUTHENTICATED error.
func callerID(ctx context.Context) (string, error) {
	userID := strings.TrimSpace(requestctx.UserIDFromContext(ctx))
	if userID == "" {
		return "", apperrors.New(apperrors.CodeUnauthenticated, "user id is required")
	}
	return userID, nil
}

// requireMember fails with REALM_NOT_MEMBER unless userID belongs to realmID.
func (s *Service) requireMember(ctx context.Context, realmID, userID string) error {
	return s.requireMembership(ctx, realmID, userID, apperrors.CodeRealmNotMember)
}

func (s *Service) requireMembership(ctx context.Context, realmID, userID string, code apperrors.Code) error {
	member, err := s.store.IsRealmMember(ctx, realmID, userID)
	if err != nil {
		return err
	}
	if !member {
		return apperrors.WithMetadata(code, "user "+userID+" is not a member of realm "+realmID, map[string]string{"RealmID": realmID})
	}
	return nil
}

func notFound(kind, id string) error {
	return apperrors.WithMetadata(apperrors.CodeNotFound, kind+" "+id+" not found", map[string]string{"Kind": kind, "ID": id})
}

// storeErr converts storage.ErrNotFound into a NOT_FOUND domain error.
func storeErr(err error, kind, id string) error {
	if errors.Is(err, storage.ErrNotFound) {
		return notFound(kind, id)
	}
	return err
}
