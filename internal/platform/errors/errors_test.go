package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
)

func TestIsMatchesByCode(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("outer: %w", New(CodeRealmNotMember, "user u-1 not in realm r-1"))
	if !stderrors.Is(err, New(CodeRealmNotMember, "")) {
		t.Fatal("expected errors.Is to match by code")
	}
	if stderrors.Is(err, New(CodeNotFound, "")) {
		t.Fatal("expected errors.Is to reject different code")
	}
}

func TestCodeOf(t *testing.T) {
	t.Parallel()

	wrapped := fmt.Errorf("ctx: %w", Wrap(CodeNotFound, "missing", stderrors.New("no rows")))
	if got := CodeOf(wrapped); got != CodeNotFound {
		t.Fatalf("code = %s, want %s", got, CodeNotFound)
	}
	if got := CodeOf(stderrors.New("plain")); got != CodeUnknown {
		t.Fatalf("code = %s, want %s", got, CodeUnknown)
	}
}

func TestGRPCCodeMapping(t *testing.T) {
	t.Parallel()

	tests := map[Code]codes.Code{
		CodeRatingInvalidValue:            codes.InvalidArgument,
		CodeRatingMismatchedRealms:        codes.FailedPrecondition,
		CodeRealmTargetMembershipRequired: codes.PermissionDenied,
		CodeTraitNameTaken:                codes.AlreadyExists,
		CodeUnauthenticated:               codes.Unauthenticated,
		CodeNotFound:                      codes.NotFound,
		CodeUnknown:                       codes.Internal,
	}
	for code, want := range tests {
		if got := code.GRPCCode(); got != want {
			t.Fatalf("%s grpc code = %v, want %v", code, got, want)
		}
	}
}

func TestToGRPCStatusAttachesDetails(t *testing.T) {
	t.Parallel()

	err := WithMetadata(CodeTraitNameTaken, "duplicate trait", map[string]string{"Name": "Luck"})
	st := err.ToGRPCStatus("pt-BR")
	if st.Code() != codes.AlreadyExists {
		t.Fatalf("status code = %v, want %v", st.Code(), codes.AlreadyExists)
	}
	if st.Message() != "duplicate trait" {
		t.Fatalf("status message = %q", st.Message())
	}

	var info *errdetails.ErrorInfo
	var localized *errdetails.LocalizedMessage
	for _, detail := range st.Details() {
		switch d := detail.(type) {
		case *errdetails.ErrorInfo:
			info = d
		case *errdetails.LocalizedMessage:
			localized = d
		}
	}
	if info == nil || info.GetReason() != string(CodeTraitNameTaken) || info.GetDomain() != Domain {
		t.Fatalf("error info = %v", info)
	}
	if localized == nil || localized.GetLocale() != "pt-BR" {
		t.Fatalf("localized message = %v", localized)
	}
	if localized.GetMessage() != `Este reino já possui um traço chamado "Luck".` {
		t.Fatalf("localized text = %q", localized.GetMessage())
	}
}
