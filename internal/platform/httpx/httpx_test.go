package httpx

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	apperrors "github.com/louisbranch/realmkeep/internal/platform/errors"
	"github.com/louisbranch/realmkeep/internal/platform/requestctx"
	"go.uber.org/zap/zaptest"
	"google.golang.org/grpc/codes"
)

func TestChainAppliesInDeclarationOrder(t *testing.T) {
	t.Parallel()

	var order []string
	mark := func(name string) Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}
	h := Chain(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		order = append(order, "handler")
	}), mark("first"), nil, mark("second"))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	if got := strings.Join(order, ","); got != "first,second,handler" {
		t.Fatalf("order = %q, want %q", got, "first,second,handler")
	}
}

func TestRequestIDGeneratesAndEchoes(t *testing.T) {
	t.Parallel()

	var seen string
	h := RequestID("test")(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		seen = r.Header.Get(RequestIDHeader)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if !strings.HasPrefix(seen, "test-") {
		t.Fatalf("generated id = %q, want test- prefix", seen)
	}
	if got := rec.Header().Get(RequestIDHeader); got != seen {
		t.Fatalf("echoed id = %q, want %q", got, seen)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "given")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if got := rec.Header().Get(RequestIDHeader); got != "given" {
		t.Fatalf("echoed id = %q, want %q", got, "given")
	}
}

func TestRecoverPanicWrites500(t *testing.T) {
	t.Parallel()

	h := RecoverPanic(zaptest.NewLogger(t))(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusInternalServerError)
	}
}

func TestIdentityPopulatesContext(t *testing.T) {
	t.Parallel()

	var userID, locale string
	h := Identity()(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		userID = requestctx.UserIDFromContext(r.Context())
		locale = requestctx.LocaleFromContext(r.Context())
	}))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(UserIDHeader, " user-1 ")
	req.Header.Set("Accept-Language", "pt-BR,pt;q=0.9")
	h.ServeHTTP(httptest.NewRecorder(), req)

	if userID != "user-1" {
		t.Fatalf("user id = %q, want %q", userID, "user-1")
	}
	if locale != "pt-BR,pt;q=0.9" {
		t.Fatalf("locale = %q, want %q", locale, "pt-BR,pt;q=0.9")
	}
}

func TestHTTPStatus(t *testing.T) {
	t.Parallel()

	tests := map[codes.Code]int{
		codes.OK:                 http.StatusOK,
		codes.InvalidArgument:    http.StatusBadRequest,
		codes.Unauthenticated:    http.StatusUnauthorized,
		codes.PermissionDenied:   http.StatusForbidden,
		codes.NotFound:           http.StatusNotFound,
		codes.AlreadyExists:      http.StatusConflict,
		codes.FailedPrecondition: http.StatusConflict,
		codes.Unavailable:        http.StatusServiceUnavailable,
		codes.Internal:           http.StatusInternalServerError,
	}
	for code, want := range tests {
		if got := HTTPStatus(code); got != want {
			t.Fatalf("HTTPStatus(%s) = %d, want %d", code, got, want)
		}
	}
}

func TestWriteErrorLocalizesDomainErrors(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(requestctx.WithLocale(req.Context(), "pt-BR"))
	rec := httptest.NewRecorder()
	err := apperrors.WithMetadata(apperrors.CodeRealmNotMember, "user u is not a member of realm r", map[string]string{"RealmID": "r"})
	WriteError(rec, req, zaptest.NewLogger(t), err)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusForbidden)
	}
	var body ErrorBody
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Error.Code != "REALM_NOT_MEMBER" {
		t.Fatalf("code = %q, want %q", body.Error.Code, "REALM_NOT_MEMBER")
	}
	if body.Error.Message != "Você não é membro deste reino." {
		t.Fatalf("message = %q", body.Error.Message)
	}
	if body.Error.Metadata["RealmID"] != "r" {
		t.Fatalf("metadata = %v, want RealmID=r", body.Error.Metadata)
	}
}

func TestWriteErrorHidesInternalErrors(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	WriteError(rec, httptest.NewRequest(http.MethodGet, "/", nil), zaptest.NewLogger(t), errors.New("disk on fire"))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusInternalServerError)
	}
	if strings.Contains(rec.Body.String(), "disk on fire") {
		t.Fatalf("body leaks internal error: %s", rec.Body.String())
	}
}
