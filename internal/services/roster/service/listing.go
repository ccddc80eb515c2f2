package service

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"

	apperrors "github.com/louisbranch/realmkeep/internal/platform/errors"
	"github.com/louisbranch/realmkeep/internal/platform/pagination"
	"github.com/louisbranch/realmkeep/internal/services/roster/domain/cachekey"
	"github.com/louisbranch/realmkeep/internal/services/roster/domain/character"
	"github.com/louisbranch/realmkeep/internal/services/roster/domain/rating"
	"github.com/louisbranch/realmkeep/internal/services/roster/domain/trait"
	"github.com/louisbranch/realmkeep/internal/services/roster/domain/traitfilter"
	"github.com/louisbranch/realmkeep/internal/services/roster/storage"
	"github.com/louisbranch/realmkeep/internal/services/roster/storage/listfilter"
	"go.opentelemetry.io/otel/attribute"
)

// ListRequest selects characters to list.
type ListRequest struct {
	// RealmIDs limits the listing; empty means every realm the caller
	// belongs to.
	RealmIDs []string
	// Filter is an AIP-160 expression over name, realm_id and created_at.
	Filter    string
	PageSize  int
	PageToken string
	// TraitFilters classify the listed characters. They never remove a
	// character from Characters.
	TraitFilters []traitfilter.Filter
}

// CharacterView is a character with its rating summary.
type CharacterView struct {
	Character      character.Character
	RatingsSummary []rating.SummaryEntry
}

// Classification holds character ids per filter outcome.
type Classification struct {
	Matched  []string
	Unrated  []string
	Excluded []string
}

// ListResponse is one page of characters.
type ListResponse struct {
	Characters    []CharacterView
	NextPageToken string
	// Classification is nil when no trait filters were given.
	Classification *Classification
}

type listingPage struct {
	views  []CharacterView
	nextID string
}

// ListCharacters lists characters across realms with their rating
// summaries, and classifies them when trait filters are present.
func (s *Service) ListCharacters(ctx context.Context, req ListRequest) (_ ListResponse, err error) {
	ctx, span := s.startSpan(ctx, "ListCharacters", attribute.Int("trait_filters", len(req.TraitFilters)))
	defer func() { endSpan(span, err) }()

	userID, err := callerID(ctx)
	if err != nil {
		return ListResponse{}, err
	}
	realmIDs, err := s.listingRealms(ctx, userID, req.RealmIDs)
	if err != nil {
		return ListResponse{}, err
	}
	filterStr := strings.TrimSpace(req.Filter)
	cond, err := listfilter.Parse(filterStr)
	if err != nil {
		return ListResponse{}, apperrors.Wrap(apperrors.CodeListInvalidFilter, "invalid filter", err)
	}
	afterID, err := pagination.DecodeToken(req.PageToken)
	if err != nil {
		return ListResponse{}, apperrors.Wrap(apperrors.CodeListInvalidPageToken, "invalid page token", err)
	}
	pageSize := pagination.ClampPageSize(req.PageSize, pagination.PageSizeConfig{
		Default: defaultListPageSize,
		Max:     maxListPageSize,
	})

	tags := make([]cachekey.Key, 0, len(realmIDs))
	for _, realmID := range realmIDs {
		tags = append(tags, cachekey.RealmCharacters(realmID))
	}
	key := strings.Join(realmIDs, ",") + "|" + filterStr + "|" + strconv.Itoa(pageSize) + "|" + afterID
	page, err := s.listings.Get(ctx, key, tags, func(ctx context.Context) (listingPage, error) {
		return s.loadListing(ctx, storage.CharacterQuery{
			RealmIDs:     realmIDs,
			FilterClause: cond.Clause,
			FilterParams: cond.Params,
			PageSize:     pageSize,
			AfterID:      afterID,
		})
	})
	if err != nil {
		return ListResponse{}, err
	}

	resp := ListResponse{
		Characters:    page.views,
		NextPageToken: pagination.EncodeToken(page.nextID),
	}
	if len(req.TraitFilters) > 0 {
		parts := traitfilter.PartitionWith(s.engine, page.views, func(v CharacterView) []rating.SummaryEntry {
			return v.RatingsSummary
		}, req.TraitFilters)
		resp.Classification = &Classification{
			Matched:  viewIDs(parts.Matched),
			Unrated:  viewIDs(parts.Unrated),
			Excluded: viewIDs(parts.Excluded),
		}
	}
	return resp, nil
}

// listingRealms resolves the realms a listing covers, sorted and deduplicated.
func (s *Service) listingRealms(ctx context.Context, userID string, requested []string) ([]string, error) {
	if len(requested) == 0 {
		return s.store.ListMemberRealmIDs(ctx, userID)
	}
	realmIDs := make([]string, 0, len(requested))
	for _, realmID := range requested {
		if realmID = strings.TrimSpace(realmID); realmID != "" {
			realmIDs = append(realmIDs, realmID)
		}
	}
	slices.Sort(realmIDs)
	realmIDs = slices.Compact(realmIDs)
	for _, realmID := range realmIDs {
		if err := s.requireMember(ctx, realmID, userID); err != nil {
			return nil, err
		}
	}
	return realmIDs, nil
}

func (s *Service) loadListing(ctx context.Context, query storage.CharacterQuery) (listingPage, error) {
	page, err := s.store.ListCharacters(ctx, query)
	if err != nil {
		return listingPage{}, fmt.Errorf("list characters: %w", err)
	}
	characterIDs := make([]string, 0, len(page.Characters))
	catalogs := make(map[string][]trait.Trait)
	for _, c := range page.Characters {
		characterIDs = append(characterIDs, c.ID)
		if _, ok := catalogs[c.RealmID]; ok {
			continue
		}
		traits, err := s.store.ListTraits(ctx, c.RealmID)
		if err != nil {
			return listingPage{}, fmt.Errorf("list traits: %w", err)
		}
		catalogs[c.RealmID] = traits
	}
	ratings, err := s.store.ListRatingsByCharacter(ctx, characterIDs)
	if err != nil {
		return listingPage{}, fmt.Errorf("list ratings: %w", err)
	}

	views := make([]CharacterView, 0, len(page.Characters))
	for _, c := range page.Characters {
		views = append(views, CharacterView{
			Character:      c,
			RatingsSummary: rating.BuildSummary(catalogs[c.RealmID], ratings[c.ID]),
		})
	}
	return listingPage{views: views, nextID: page.NextAfterID}, nil
}

func viewIDs(views []CharacterView) []string {
	ids := make([]string, 0, len(views))
	for _, v := range views {
		ids = append(ids, v.Character.ID)
	}
	return ids
}
