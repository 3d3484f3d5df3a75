package http

import (
	"database/sql"
	"errors"
	"net/http"
	"time"

	"silent-library-backend/internal/domain"
	"silent-library-backend/internal/repository/postgres"
	"silent-library-backend/internal/service"
)

type StaffHandler struct {
	catalogSvc service.CatalogService
	loanSvc    service.LoanService
	overdueSvc service.OverdueService
}

func NewStaffHandler(catalogSvc service.CatalogService, loanSvc service.LoanService, overdueSvc service.OverdueService) *StaffHandler {
	return &StaffHandler{
		catalogSvc: catalogSvc,
		loanSvc:    loanSvc,
		overdueSvc: overdueSvc,
	}
}

type bookRequest struct {
	Title           string  `json:"title"`
	ISBN            string  `json:"isbn"`
	TotalCopies     int32   `json:"total_copies"`
	AvailableCopies int32   `json:"available_copies"`
	AuthorIDs       []int32 `json:"author_ids"`
	GenreIDs        []int32 `json:"genre_ids"`
}

func (h *StaffHandler) AddBook(w http.ResponseWriter, r *http.Request) {
	var req bookRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	book := &domain.Book{
		Title:           req.Title,
		ISBN:            req.ISBN,
		TotalCopies:     req.TotalCopies,
		AvailableCopies: req.AvailableCopies,
	}
	if err := h.catalogSvc.AddBook(r.Context(), book, req.AuthorIDs, req.GenreIDs); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, book)
}

func (h *StaffHandler) UpdateBook(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid book id")
		return
	}

	var req bookRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	book := &domain.Book{
		ID:              id,
		Title:           req.Title,
		ISBN:            req.ISBN,
		TotalCopies:     req.TotalCopies,
		AvailableCopies: req.AvailableCopies,
	}
	if err := h.catalogSvc.UpdateBook(r.Context(), book, req.AuthorIDs, req.GenreIDs); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeError(w, http.StatusNotFound, "book not found")
			return
		}
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, book)
}

func (h *StaffHandler) DeleteBook(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid book id")
		return
	}

	if err := h.catalogSvc.DeleteBook(r.Context(), id); err != nil {
		if errors.Is(err, postgres.ErrBookHasLoans) {
			writeError(w, http.StatusConflict, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to delete book")
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (h *StaffHandler) ListAuthors(w http.ResponseWriter, r *http.Request) {
	authors, err := h.catalogSvc.ListAuthors(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list authors")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"authors": authors})
}

func (h *StaffHandler) AddAuthor(w http.ResponseWriter, r *http.Request) {
	var author domain.Author
	if err := decodeJSON(r, &author); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.catalogSvc.AddAuthor(r.Context(), &author); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, author)
}

func (h *StaffHandler) ListGenres(w http.ResponseWriter, r *http.Request) {
	genres, err := h.catalogSvc.ListGenres(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list genres")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"genres": genres})
}

func (h *StaffHandler) AddGenre(w http.ResponseWriter, r *http.Request) {
	var genre domain.Genre
	if err := decodeJSON(r, &genre); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.catalogSvc.AddGenre(r.Context(), &genre); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, genre)
}

func (h *StaffHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	summary, err := h.overdueSvc.DashboardSummary(r.Context(), time.Now())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to build dashboard")
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (h *StaffHandler) ListOverdue(w http.ResponseWriter, r *http.Request) {
	overdue, err := h.overdueSvc.ListOverdue(r.Context(), time.Now())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list overdue loans")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"overdue": overdue,
		"count":   len(overdue),
	})
}

func (h *StaffHandler) NotifyOverdue(w http.ResponseWriter, r *http.Request) {
	sent, failed, err := h.overdueSvc.NotifyOverdueBorrowers(r.Context(), time.Now())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to send overdue notices")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"notified": sent,
		"failed":   failed,
	})
}

func (h *StaffHandler) ListLoans(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pageParams(r)
	status := domain.LoanStatus(r.URL.Query().Get("status"))
	if status == "" {
		status = domain.LoanStatusBorrowed
	}

	loans, total, err := h.loanSvc.ListLoans(r.Context(), status, page, pageSize)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list loans")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"loans": loans,
		"total": total,
		"page":  page,
	})
}
