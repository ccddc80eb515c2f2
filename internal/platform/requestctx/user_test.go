package requestctx

import (
	"context"
	"testing"
)

func TestUserIDFromContextRoundTrip(t *testing.T) {
	ctx := WithUserID(context.Background(), "user-42")
	if got := UserIDFromContext(ctx); got != "user-42" {
		t.Fatalf("UserIDFromContext = %q, want %q", got, "user-42")
	}
}

func TestUserIDFromContextNil(t *testing.T) {
	//nolint:staticcheck // nil context is the case under test
	if got := UserIDFromContext(nil); got != "" {
		t.Fatalf("expected empty string for nil context, got %q", got)
	}
}

func TestLocaleRoundTrip(t *testing.T) {
	//nolint:staticcheck // nil context is promoted to Background
	ctx := WithLocale(nil, "pt-BR")
	ctx = WithUserID(ctx, "user-1")
	if got := LocaleFromContext(ctx); got != "pt-BR" {
		t.Fatalf("LocaleFromContext = %q, want %q", got, "pt-BR")
	}
	if got := LocaleFromContext(context.Background()); got != "" {
		t.Fatalf("expected empty locale, got %q", got)
	}
}
