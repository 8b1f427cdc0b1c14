package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/flossiendabambi/alx-project-nexus/internal/repository"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, ErrorResponse{
		Error: message,
		Code:  code,
	})
}

// handleRepoError maps storage sentinels onto the HTTP error taxonomy:
// validation errors and not-founds become client responses, everything else
// is a server fault.
func handleRepoError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, repository.ErrEmptyCart):
		respondError(w, http.StatusBadRequest, "empty_cart", err.Error())
	case errors.Is(err, repository.ErrDuplicateSlug):
		respondError(w, http.StatusConflict, "duplicate_slug", err.Error())
	case errors.Is(err, repository.ErrProductInUse):
		respondError(w, http.StatusConflict, "product_in_use", err.Error())
	case errors.Is(err, repository.ErrCartNotFound),
		errors.Is(err, repository.ErrItemNotFound),
		errors.Is(err, repository.ErrOrderNotFound),
		errors.Is(err, repository.ErrCategoryNotFound),
		errors.Is(err, repository.ErrProductNotFound),
		errors.Is(err, repository.ErrReviewNotFound):
		respondError(w, http.StatusNotFound, "not_found", err.Error())
	default:
		log.Printf("internal error: %v", err)
		respondError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}
