package gateway

import (
	"encoding/json"
	"errors"
	"net/http"

	catalogapp "github.com/al1ce23/shitshop/internal/catalog/app"
	orderapp "github.com/al1ce23/shitshop/internal/order/app"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// mapErr turns application errors into a status carrying the message that
// is safe to show to the caller.
func mapErr(err error) error {
	var verr *orderapp.ValidationError
	if errors.As(err, &verr) {
		return status.Error(codes.InvalidArgument, verr.Error())
	}
	if errors.Is(err, errRateLimited) {
		return status.Error(codes.ResourceExhausted, "Too many requests, please try again later")
	}
	if errors.Is(err, catalogapp.ErrInvalidInput) {
		return status.Error(codes.InvalidArgument, "invalid product id")
	}
	if errors.Is(err, catalogapp.ErrNotFound) {
		return status.Error(codes.NotFound, "Product not found")
	}
	if errors.Is(err, catalogapp.ErrCatalogUnavailable) {
		return status.Error(codes.Unavailable, "catalog unavailable")
	}
	return status.Error(codes.Internal, "internal error")
}

func httpStatusFromGRPC(err error) (int, string, string) {
	st, ok := status.FromError(err)
	if !ok {
		return http.StatusInternalServerError, "INTERNAL", "internal error"
	}

	switch st.Code() {
	case codes.InvalidArgument:
		return http.StatusBadRequest, "INVALID_ARGUMENT", st.Message()
	case codes.NotFound:
		return http.StatusNotFound, "NOT_FOUND", st.Message()
	case codes.ResourceExhausted:
		return http.StatusTooManyRequests, "RESOURCE_EXHAUSTED", st.Message()
	case codes.Unavailable, codes.DeadlineExceeded:
		return http.StatusServiceUnavailable, "UNAVAILABLE", st.Message()
	default:
		return http.StatusInternalServerError, "INTERNAL", st.Message()
	}
}

type errorBody struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, errorBody{Error: msg})
}

// writeAppError reports client errors verbatim and replaces everything
// else with the route's generic message.
func writeAppError(w http.ResponseWriter, err error, generic string) {
	code, _, msg := httpStatusFromGRPC(mapErr(err))
	if code >= http.StatusInternalServerError {
		writeError(w, http.StatusInternalServerError, generic)
		return
	}
	writeError(w, code, msg)
}
