package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/flossiendabambi/alx-project-nexus/internal/domain"
	"github.com/flossiendabambi/alx-project-nexus/internal/repository"
	"github.com/go-chi/chi/v5"
)

type ReviewHandler struct {
	catalog repository.CatalogRepo
}

func NewReviewHandler(catalog repository.CatalogRepo) *ReviewHandler {
	return &ReviewHandler{catalog: catalog}
}

type ReviewRequestDTO struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (h *ReviewHandler) List(w http.ResponseWriter, r *http.Request) {
	productID, ok := parseProductID(w, r)
	if !ok {
		return
	}

	reviews, err := h.catalog.ListReviews(r.Context(), productID)
	if err != nil {
		handleRepoError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, reviews)
}

func (h *ReviewHandler) Get(w http.ResponseWriter, r *http.Request) {
	productID, ok := parseProductID(w, r)
	if !ok {
		return
	}
	reviewID, ok := parseReviewID(w, r)
	if !ok {
		return
	}

	review, err := h.catalog.GetReview(r.Context(), productID, reviewID)
	if err != nil {
		handleRepoError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, review)
}

func (h *ReviewHandler) Create(w http.ResponseWriter, r *http.Request) {
	productID, ok := parseProductID(w, r)
	if !ok {
		return
	}
	req, ok := decodeReview(w, r)
	if !ok {
		return
	}

	review := &domain.Review{ProductID: productID, Name: req.Name, Description: req.Description}
	if err := h.catalog.CreateReview(r.Context(), review); err != nil {
		handleRepoError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, review)
}

func (h *ReviewHandler) Update(w http.ResponseWriter, r *http.Request) {
	productID, ok := parseProductID(w, r)
	if !ok {
		return
	}
	reviewID, ok := parseReviewID(w, r)
	if !ok {
		return
	}
	req, ok := decodeReview(w, r)
	if !ok {
		return
	}

	review := &domain.Review{ID: reviewID, ProductID: productID, Name: req.Name, Description: req.Description}
	if err := h.catalog.UpdateReview(r.Context(), review); err != nil {
		handleRepoError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, review)
}

func (h *ReviewHandler) Delete(w http.ResponseWriter, r *http.Request) {
	productID, ok := parseProductID(w, r)
	if !ok {
		return
	}
	reviewID, ok := parseReviewID(w, r)
	if !ok {
		return
	}

	if err := h.catalog.DeleteReview(r.Context(), productID, reviewID); err != nil {
		handleRepoError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func decodeReview(w http.ResponseWriter, r *http.Request) (ReviewRequestDTO, bool) {
	var req ReviewRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return req, false
	}
	if req.Name == "" {
		respondError(w, http.StatusBadRequest, "invalid_review", "name is required")
		return req, false
	}
	return req, true
}

func parseReviewID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "reviewID"), 10, 64)
	if err != nil || id <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_review_id", "review id must be a positive integer")
		return 0, false
	}
	return id, true
}
