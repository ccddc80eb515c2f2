package httpapi

import (
	"time"

	"github.com/louisbranch/realmkeep/internal/services/roster/domain/cachekey"
	"github.com/louisbranch/realmkeep/internal/services/roster/domain/character"
	"github.com/louisbranch/realmkeep/internal/services/roster/domain/rating"
	"github.com/louisbranch/realmkeep/internal/services/roster/domain/realm"
	"github.com/louisbranch/realmkeep/internal/services/roster/domain/trait"
	"github.com/louisbranch/realmkeep/internal/services/roster/service"
)

type realmView struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	OwnerUserID string    `json:"ownerUserId"`
	CreatedAt   time.Time `json:"createdAt"`
}

func newRealmView(r realm.Realm) realmView {
	return realmView{ID: r.ID, Name: r.Name, OwnerUserID: r.OwnerUserID, CreatedAt: r.CreatedAt.UTC()}
}

type traitView struct {
	ID          string `json:"id"`
	RealmID     string `json:"realmId"`
	Name        string `json:"name"`
	DisplayMode string `json:"displayMode"`
}

func newTraitView(t trait.Trait) traitView {
	return traitView{ID: t.ID, RealmID: t.RealmID, Name: t.Name, DisplayMode: string(t.DisplayMode)}
}

type characterView struct {
	ID        string    `json:"id"`
	RealmID   string    `json:"realmId"`
	Name      string    `json:"name"`
	Gender    string    `json:"gender"`
	Notes     string    `json:"notes"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func newCharacterView(c character.Character) characterView {
	return characterView{
		ID:        c.ID,
		RealmID:   c.RealmID,
		Name:      c.Name,
		Gender:    c.Gender,
		Notes:     c.Notes,
		CreatedAt: c.CreatedAt.UTC(),
		UpdatedAt: c.UpdatedAt.UTC(),
	}
}

type listedCharacterView struct {
	characterView
	RatingsSummary []rating.SummaryEntry `json:"ratingsSummary"`
}

type classificationView struct {
	Matched  []string `json:"matched"`
	Unrated  []string `json:"unrated"`
	Excluded []string `json:"excluded"`
}

type listCharactersResponse struct {
	Characters     []listedCharacterView `json:"characters"`
	NextPageToken  string                `json:"nextPageToken,omitempty"`
	Classification *classificationView   `json:"classification,omitempty"`
}

func newListCharactersResponse(resp service.ListResponse) listCharactersResponse {
	out := listCharactersResponse{
		Characters:    make([]listedCharacterView, 0, len(resp.Characters)),
		NextPageToken: resp.NextPageToken,
	}
	for _, view := range resp.Characters {
		summary := view.RatingsSummary
		if summary == nil {
			summary = []rating.SummaryEntry{}
		}
		out.Characters = append(out.Characters, listedCharacterView{
			characterView:  newCharacterView(view.Character),
			RatingsSummary: summary,
		})
	}
	if c := resp.Classification; c != nil {
		out.Classification = &classificationView{
			Matched:  nonNil(c.Matched),
			Unrated:  nonNil(c.Unrated),
			Excluded: nonNil(c.Excluded),
		}
	}
	return out
}

type ratingView struct {
	ID          string `json:"id"`
	CharacterID string `json:"characterId"`
	TraitID     string `json:"traitId"`
	Value       int    `json:"value"`
	Display     string `json:"display"`
}

type traitResponse struct {
	Trait      traitView      `json:"trait"`
	Invalidate []cachekey.Key `json:"invalidate"`
}

type characterResponse struct {
	Character  characterView  `json:"character"`
	Invalidate []cachekey.Key `json:"invalidate"`
}

type updateCharacterResponse struct {
	Success        bool           `json:"success"`
	UnmappedTraits []string       `json:"unmappedTraits"`
	Character      characterView  `json:"character"`
	Invalidate     []cachekey.Key `json:"invalidate"`
}

type ratingResponse struct {
	Rating     ratingView     `json:"rating"`
	Invalidate []cachekey.Key `json:"invalidate"`
}

type invalidateResponse struct {
	Invalidate []cachekey.Key `json:"invalidate"`
}

func keys(k []cachekey.Key) []cachekey.Key {
	if k == nil {
		return []cachekey.Key{}
	}
	return k
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

type createRealmRequest struct {
	Name string `json:"name"`
}

type addMemberRequest struct {
	UserID string `json:"userId"`
}

type createTraitRequest struct {
	Name        string `json:"name"`
	DisplayMode string `json:"displayMode"`
}

type updateTraitRequest struct {
	Name        *string `json:"name"`
	DisplayMode *string `json:"displayMode"`
}

type createCharacterRequest struct {
	RealmID string `json:"realmId"`
	Name    string `json:"name"`
	Gender  string `json:"gender"`
	Notes   string `json:"notes"`
}

type updateCharacterRequest struct {
	ID      *string `json:"id"`
	RealmID *string `json:"realmId"`
	Name    *string `json:"name"`
	Gender  *string `json:"gender"`
	Notes   *string `json:"notes"`
}

type upsertRatingRequest struct {
	CharacterID string       `json:"characterId"`
	TraitID     string       `json:"traitId"`
	Value       rating.Input `json:"value"`
}
