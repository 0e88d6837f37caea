package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/d-kuro/todo-mcp/internal/errors"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Detail string `json:"detail"`
	Type   string `json:"type"`
}

func respondJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// respondError maps an error kind onto a status code. Validation and
// not-found messages are returned to the client; anything else is logged
// and replaced with a generic message.
func (h *TodoHandler) respondError(w http.ResponseWriter, r *http.Request, err error) {
	status, body := errorResponse(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error("Request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("requestID", middleware.GetReqID(r.Context())),
			zap.Error(err),
		)
	}
	respondJSON(w, status, body)
}

func errorResponse(err error) (int, ErrorResponse) {
	switch {
	case errors.Is(err, errors.ErrValidation):
		return http.StatusBadRequest, ErrorResponse{Detail: err.Error(), Type: "validation"}
	case errors.Is(err, errors.ErrNotFound):
		return http.StatusNotFound, ErrorResponse{Detail: "Todo not found", Type: "not_found"}
	default:
		return http.StatusInternalServerError, ErrorResponse{Detail: "Internal server error", Type: "internal"}
	}
}
