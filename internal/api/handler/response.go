package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/RoyceAzure/lab/ristorante/internal/infra/repository"
	"github.com/RoyceAzure/lab/ristorante/internal/service"
)

// 未登入情境, user id由header帶入, 預設1
// 認證不在此服務範圍
const defaultUserID = 1

func userIDFrom(r *http.Request) int {
	raw := r.Header.Get("X-User-ID")
	if raw == "" {
		return defaultUserID
	}
	userID, err := strconv.Atoi(raw)
	if err != nil || userID <= 0 {
		return defaultUserID
	}
	return userID
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrEmptyCart):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.Is(err, service.ErrInvalidQuantity):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.Is(err, service.ErrItemNotFound),
		errors.Is(err, service.ErrOfferNotFound),
		errors.Is(err, repository.ErrCartLineNotFound),
		errors.Is(err, repository.ErrOrderNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
	case errors.Is(err, service.ErrCheckoutInProgress):
		writeJSON(w, http.StatusConflict, errorResponse{Error: err.Error()})
	case errors.Is(err, service.ErrPersistenceFailure):
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: err.Error()})
	default:
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
	}
}
