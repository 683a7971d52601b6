package http

import (
	"net/http"

	"log/slog"

	"github.com/jengamart/storefront/pkg/httputil"
)

// response is the JSON envelope used by every storefront endpoint.
type response = httputil.Response

type errorResponse = httputil.ErrorResponse

func writeJSON(w http.ResponseWriter, status int, v any) {
	httputil.WriteJSON(w, status, v)
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	httputil.WriteError(w, r, err, slog.Default())
}

func writeValidationError(w http.ResponseWriter, err error) {
	httputil.WriteValidationError(w, err)
}

func writeBadBody(w http.ResponseWriter, err error) {
	writeJSON(w, http.StatusBadRequest, response{
		Error: &errorResponse{Code: "INVALID_INPUT", Message: "invalid request body: " + err.Error()},
	})
}
