// Package httpapi exposes the roster service as a JSON HTTP API.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	apperrors "github.com/louisbranch/realmkeep/internal/platform/errors"
	"github.com/louisbranch/realmkeep/internal/platform/httpx"
	"github.com/louisbranch/realmkeep/internal/services/roster/domain/cachekey"
	"github.com/louisbranch/realmkeep/internal/services/roster/domain/character"
	"github.com/louisbranch/realmkeep/internal/services/roster/domain/realm"
	"github.com/louisbranch/realmkeep/internal/services/roster/domain/trait"
	"github.com/louisbranch/realmkeep/internal/services/roster/domain/traitfilter"
	"github.com/louisbranch/realmkeep/internal/services/roster/service"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
)

const maxBodyBytes = 1 << 20

// Roster is the service surface the API serves.
type Roster interface {
	CreateRealm(ctx context.Context, name string) (realm.Realm, error)
	AddMember(ctx context.Context, realmID, memberUserID string) error
	ListTraits(ctx context.Context, realmID string) ([]trait.Trait, error)
	CreateTrait(ctx context.Context, realmID string, in service.TraitInput) (service.TraitResult, error)
	UpdateTrait(ctx context.Context, traitID string, patch service.TraitPatch) (service.TraitResult, error)
	DeleteTrait(ctx context.Context, traitID string) ([]cachekey.Key, error)
	CreateCharacter(ctx context.Context, in service.CharacterInput) (service.CharacterResult, error)
	UpdateCharacter(ctx context.Context, characterID string, patch character.Patch) (service.UpdateCharacterResult, error)
	ListCharacters(ctx context.Context, req service.ListRequest) (service.ListResponse, error)
	UpsertRating(ctx context.Context, in service.RatingInput) (service.RatingResult, error)
	DeleteRating(ctx context.Context, ratingID string) ([]cachekey.Key, error)
}

type handler struct {
	roster Roster
	logger *zap.Logger
}

// NewHandler builds the API handler with its middleware chain.
func NewHandler(roster Roster, logger *zap.Logger) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	h := &handler{roster: roster, logger: logger}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", h.healthz)
	mux.HandleFunc("POST /v1/realms", h.createRealm)
	mux.HandleFunc("POST /v1/realms/{realmID}/members", h.addMember)
	mux.HandleFunc("GET /v1/realms/{realmID}/traits", h.listTraits)
	mux.HandleFunc("POST /v1/realms/{realmID}/traits", h.createTrait)
	mux.HandleFunc("PATCH /v1/traits/{traitID}", h.updateTrait)
	mux.HandleFunc("DELETE /v1/traits/{traitID}", h.deleteTrait)
	mux.HandleFunc("POST /v1/characters", h.createCharacter)
	mux.HandleFunc("GET /v1/characters", h.listCharacters)
	mux.HandleFunc("PATCH /v1/characters/{characterID}", h.updateCharacter)
	mux.HandleFunc("PUT /v1/ratings", h.upsertRating)
	mux.HandleFunc("DELETE /v1/ratings/{ratingID}", h.deleteRating)

	chained := httpx.Chain(mux,
		httpx.RequestID("roster"),
		httpx.RecoverPanic(logger),
		httpx.AccessLog(logger),
		httpx.Identity(),
	)
	return otelhttp.NewHandler(chained, "roster.http")
}

func (h *handler) healthz(w http.ResponseWriter, _ *http.Request) {
	_ = httpx.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *handler) createRealm(w http.ResponseWriter, r *http.Request) {
	var req createRealmRequest
	if !h.decode(w, r, &req) {
		return
	}
	created, err := h.roster.CreateRealm(r.Context(), req.Name)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	_ = httpx.WriteJSON(w, http.StatusCreated, newRealmView(created))
}

func (h *handler) addMember(w http.ResponseWriter, r *http.Request) {
	var req addMemberRequest
	if !h.decode(w, r, &req) {
		return
	}
	if err := h.roster.AddMember(r.Context(), r.PathValue("realmID"), req.UserID); err != nil {
		h.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *handler) listTraits(w http.ResponseWriter, r *http.Request) {
	traits, err := h.roster.ListTraits(r.Context(), r.PathValue("realmID"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	views := make([]traitView, 0, len(traits))
	for _, t := range traits {
		views = append(views, newTraitView(t))
	}
	_ = httpx.WriteJSON(w, http.StatusOK, map[string]any{"traits": views})
}

func (h *handler) createTrait(w http.ResponseWriter, r *http.Request) {
	var req createTraitRequest
	if !h.decode(w, r, &req) {
		return
	}
	res, err := h.roster.CreateTrait(r.Context(), r.PathValue("realmID"), service.TraitInput{
		Name:        req.Name,
		DisplayMode: req.DisplayMode,
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	_ = httpx.WriteJSON(w, http.StatusCreated, traitResponse{Trait: newTraitView(res.Trait), Invalidate: keys(res.Invalidate)})
}

func (h *handler) updateTrait(w http.ResponseWriter, r *http.Request) {
	var req updateTraitRequest
	if !h.decode(w, r, &req) {
		return
	}
	res, err := h.roster.UpdateTrait(r.Context(), r.PathValue("traitID"), service.TraitPatch{
		Name:        req.Name,
		DisplayMode: req.DisplayMode,
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	_ = httpx.WriteJSON(w, http.StatusOK, traitResponse{Trait: newTraitView(res.Trait), Invalidate: keys(res.Invalidate)})
}

func (h *handler) deleteTrait(w http.ResponseWriter, r *http.Request) {
	invalidate, err := h.roster.DeleteTrait(r.Context(), r.PathValue("traitID"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	_ = httpx.WriteJSON(w, http.StatusOK, invalidateResponse{Invalidate: keys(invalidate)})
}

func (h *handler) createCharacter(w http.ResponseWriter, r *http.Request) {
	var req createCharacterRequest
	if !h.decode(w, r, &req) {
		return
	}
	res, err := h.roster.CreateCharacter(r.Context(), service.CharacterInput{
		RealmID: req.RealmID,
		Name:    req.Name,
		Gender:  req.Gender,
		Notes:   req.Notes,
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	_ = httpx.WriteJSON(w, http.StatusCreated, characterResponse{Character: newCharacterView(res.Character), Invalidate: keys(res.Invalidate)})
}

func (h *handler) updateCharacter(w http.ResponseWriter, r *http.Request) {
	var req updateCharacterRequest
	if !h.decode(w, r, &req) {
		return
	}
	characterID := r.PathValue("characterID")
	if req.ID != nil && strings.TrimSpace(*req.ID) != characterID {
		h.fail(w, r, apperrors.WithMetadata(apperrors.CodeInvalidRequest,
			"body id "+*req.ID+" does not match path id "+characterID,
			map[string]string{"ID": *req.ID},
		))
		return
	}
	res, err := h.roster.UpdateCharacter(r.Context(), characterID, character.Patch{
		RealmID: req.RealmID,
		Name:    req.Name,
		Gender:  req.Gender,
		Notes:   req.Notes,
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	_ = httpx.WriteJSON(w, http.StatusOK, updateCharacterResponse{
		Success:        res.Success,
		UnmappedTraits: nonNil(res.UnmappedTraits),
		Character:      newCharacterView(res.Character),
		Invalidate:     keys(res.Invalidate),
	})
}

func (h *handler) listCharacters(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	pageSize := 0
	if raw := query.Get("page_size"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			h.fail(w, r, apperrors.Wrap(apperrors.CodeInvalidRequest, "invalid page_size", err))
			return
		}
		pageSize = parsed
	}
	resp, err := h.roster.ListCharacters(r.Context(), service.ListRequest{
		RealmIDs:     query["realm"],
		Filter:       query.Get("filter"),
		PageSize:     pageSize,
		PageToken:    query.Get("page_token"),
		TraitFilters: traitfilter.ParseQuery(query),
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	_ = httpx.WriteJSON(w, http.StatusOK, newListCharactersResponse(resp))
}

func (h *handler) upsertRating(w http.ResponseWriter, r *http.Request) {
	var req upsertRatingRequest
	if !h.decode(w, r, &req) {
		return
	}
	res, err := h.roster.UpsertRating(r.Context(), service.RatingInput{
		CharacterID: req.CharacterID,
		TraitID:     req.TraitID,
		Value:       req.Value,
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	_ = httpx.WriteJSON(w, http.StatusOK, ratingResponse{
		Rating: ratingView{
			ID:          res.Rating.ID,
			CharacterID: res.Rating.CharacterID,
			TraitID:     res.Rating.TraitID,
			Value:       res.Rating.Value,
			Display:     res.Display,
		},
		Invalidate: keys(res.Invalidate),
	})
}

func (h *handler) deleteRating(w http.ResponseWriter, r *http.Request) {
	invalidate, err := h.roster.DeleteRating(r.Context(), r.PathValue("ratingID"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	_ = httpx.WriteJSON(w, http.StatusOK, invalidateResponse{Invalidate: keys(invalidate)})
}

// decode reads a JSON body into dst, writing a 400 on failure.
func (h *handler) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			err = errors.New("request body is empty")
		}
		// Domain errors raised while decoding, such as a bad grade label,
		// keep their own code.
		if _, ok := apperrors.As(err); !ok {
			err = apperrors.Wrap(apperrors.CodeInvalidRequest, "invalid request body: "+err.Error(), err)
		}
		h.fail(w, r, err)
		return false
	}
	return true
}

func (h *handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	httpx.WriteError(w, r, h.logger, err)
}
