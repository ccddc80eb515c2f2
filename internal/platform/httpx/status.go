package httpx

import (
	"net/http"

	apperrors "github.com/louisbranch/realmkeep/internal/platform/errors"
	"github.com/louisbranch/realmkeep/internal/platform/requestctx"
	"go.uber.org/zap"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// HTTPStatus maps a gRPC status code to an HTTP status code.
func HTTPStatus(code codes.Code) int {
	switch code {
	case codes.OK:
		return http.StatusOK
	case codes.InvalidArgument:
		return http.StatusBadRequest
	case codes.Unauthenticated:
		return http.StatusUnauthorized
	case codes.PermissionDenied:
		return http.StatusForbidden
	case codes.NotFound:
		return http.StatusNotFound
	case codes.AlreadyExists:
		return http.StatusConflict
	case codes.FailedPrecondition:
		return http.StatusConflict
	case codes.Unavailable:
		return http.StatusServiceUnavailable
	case codes.Canceled:
		return 499
	case codes.DeadlineExceeded:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// WriteError renders err as JSON. Domain errors become their gRPC status,
// whose code picks the HTTP status and whose localized detail becomes the
// message; anything else is logged and reported as an internal error.
func WriteError(w http.ResponseWriter, r *http.Request, logger *zap.Logger, err error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	domainErr, ok := apperrors.As(err)
	if !ok {
		logger.Error("request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("request_id", r.Header.Get(RequestIDHeader)),
			zap.Error(err),
		)
		_ = WriteJSONError(w, http.StatusInternalServerError, string(apperrors.CodeUnknown), "internal error")
		return
	}

	st := domainErr.ToGRPCStatus(requestctx.LocaleFromContext(r.Context()))
	_ = WriteJSON(w, HTTPStatus(st.Code()), ErrorBody{Error: payloadFromStatus(st, domainErr)})
}

func payloadFromStatus(st *status.Status, domainErr *apperrors.Error) ErrorPayload {
	payload := ErrorPayload{Code: string(domainErr.Code), Message: st.Message()}
	for _, detail := range st.Details() {
		switch d := detail.(type) {
		case *errdetails.ErrorInfo:
			payload.Code = d.GetReason()
			payload.Metadata = d.GetMetadata()
		case *errdetails.LocalizedMessage:
			payload.Message = d.GetMessage()
		}
	}
	return payload
}
