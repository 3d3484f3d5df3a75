package http

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"silent-library-backend/internal/service"
)

type BookHandler struct {
	catalogSvc service.CatalogService
	reviewSvc  service.ReviewService
}

func NewBookHandler(catalogSvc service.CatalogService, reviewSvc service.ReviewService) *BookHandler {
	return &BookHandler{catalogSvc: catalogSvc, reviewSvc: reviewSvc}
}

func (h *BookHandler) List(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pageParams(r)
	books, total, err := h.catalogSvc.ListBooks(r.Context(), page, pageSize)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list books")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"books": books,
		"total": total,
		"page":  page,
	})
}

func (h *BookHandler) Search(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pageParams(r)
	query := r.URL.Query().Get("q")

	books, total, err := h.catalogSvc.SearchBooks(r.Context(), query, page, pageSize)
	if err != nil {
		if errors.Is(err, service.ErrEmptyQuery) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "search failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"books": books,
		"total": total,
		"page":  page,
		"query": query,
	})
}

func (h *BookHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid book id")
		return
	}

	book, err := h.catalogSvc.GetBook(r.Context(), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeError(w, http.StatusNotFound, "book not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to load book")
		return
	}

	reviews, err := h.reviewSvc.ListByBook(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load reviews")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"book":    book,
		"reviews": reviews,
	})
}

type addReviewRequest struct {
	Rating     int32  `json:"rating"`
	ReviewText string `json:"review_text"`
}

func (h *BookHandler) AddReview(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r)
	bookID, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid book id")
		return
	}

	var req addReviewRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	review, err := h.reviewSvc.AddReview(r.Context(), claims.UserID, bookID, req.Rating, req.ReviewText)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidRating):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, sql.ErrNoRows):
			writeError(w, http.StatusNotFound, "book not found")
		default:
			writeError(w, http.StatusInternalServerError, "failed to add review")
		}
		return
	}
	writeJSON(w, http.StatusCreated, review)
}

func pathID(r *http.Request, name string) (int32, error) {
	raw := mux.Vars(r)[name]
	id, err := strconv.ParseInt(raw, 10, 32)
	if err != nil || id <= 0 {
		return 0, errors.New("invalid id")
	}
	return int32(id), nil
}

func pageParams(r *http.Request) (int32, int32) {
	page := int32(1)
	pageSize := int32(20)
	if raw := r.URL.Query().Get("page"); raw != "" {
		if v, err := strconv.ParseInt(raw, 10, 32); err == nil && v > 0 {
			page = int32(v)
		}
	}
	if raw := r.URL.Query().Get("page_size"); raw != "" {
		if v, err := strconv.ParseInt(raw, 10, 32); err == nil && v > 0 && v <= 100 {
			pageSize = int32(v)
		}
	}
	return page, pageSize
}
