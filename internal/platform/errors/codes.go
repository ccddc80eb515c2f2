// Package errors provides structured domain errors with localized messages.
package errors

import "google.golang.org/grpc/codes"

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Grade codec errors
	CodeGradeInvalidValue Code = "GRADE_INVALID_VALUE"
	CodeGradeInvalidLabel Code = "GRADE_INVALID_LABEL"

	// Rating errors
	CodeRatingInvalidValue     Code = "RATING_INVALID_VALUE"
	CodeRatingMismatchedRealms Code = "RATING_MISMATCHED_REALMS"

	// Realm errors
	CodeRealmEmptyName                Code = "REALM_EMPTY_NAME"
	CodeRealmNotMember                Code = "REALM_NOT_MEMBER"
	CodeRealmTargetMembershipRequired Code = "REALM_TARGET_MEMBERSHIP_REQUIRED"

	// Trait errors
	CodeTraitEmptyName          Code = "TRAIT_EMPTY_NAME"
	CodeTraitInvalidDisplayMode Code = "TRAIT_INVALID_DISPLAY_MODE"
	CodeTraitNameTaken          Code = "TRAIT_NAME_TAKEN"

	// Character errors
	CodeCharacterEmptyName Code = "CHARACTER_EMPTY_NAME"

	// Listing errors
	CodeListInvalidFilter    Code = "LIST_INVALID_FILTER"
	CodeListInvalidPageToken Code = "LIST_INVALID_PAGE_TOKEN"

	// Request errors
	CodeUnauthenticated Code = "UNAUTHENTICATED"
	CodeInvalidRequest  Code = "INVALID_REQUEST"

	// Storage errors
	CodeNotFound Code = "NOT_FOUND"
)

// GRPCCode maps domain codes to gRPC status codes.
func (c Code) GRPCCode() codes.Code {
	switch c {
	// InvalidArgument - validation failures, bad input
	case CodeGradeInvalidValue,
		CodeGradeInvalidLabel,
		CodeRatingInvalidValue,
		CodeRealmEmptyName,
		CodeTraitEmptyName,
		CodeTraitInvalidDisplayMode,
		CodeCharacterEmptyName,
		CodeListInvalidFilter,
		CodeListInvalidPageToken,
		CodeInvalidRequest:
		return codes.InvalidArgument

	// FailedPrecondition - state doesn't allow operation
	case CodeRatingMismatchedRealms:
		return codes.FailedPrecondition

	// PermissionDenied - caller lacks realm access
	case CodeRealmNotMember,
		CodeRealmTargetMembershipRequired:
		return codes.PermissionDenied

	// AlreadyExists - unique resource constraint
	case CodeTraitNameTaken:
		return codes.AlreadyExists

	case CodeUnauthenticated:
		return codes.Unauthenticated

	case CodeNotFound:
		return codes.NotFound

	default:
		return codes.Internal
	}
}
