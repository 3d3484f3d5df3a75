package http

import (
	"database/sql"
	"errors"
	"net/http"

	"silent-library-backend/internal/repository/postgres"
	"silent-library-backend/internal/service"
)

type LoanHandler struct {
	loanSvc service.LoanService
}

func NewLoanHandler(loanSvc service.LoanService) *LoanHandler {
	return &LoanHandler{loanSvc: loanSvc}
}

type borrowRequest struct {
	BookID int32 `json:"book_id"`
}

func (h *LoanHandler) Borrow(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r)

	var req borrowRequest
	if err := decodeJSON(r, &req); err != nil || req.BookID <= 0 {
		writeError(w, http.StatusBadRequest, "book_id is required")
		return
	}

	loan, err := h.loanSvc.Borrow(r.Context(), claims.UserID, req.BookID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAlreadyBorrowed):
			writeError(w, http.StatusConflict, err.Error())
		case errors.Is(err, postgres.ErrNoAvailableCopies):
			writeError(w, http.StatusConflict, err.Error())
		case errors.Is(err, sql.ErrNoRows):
			writeError(w, http.StatusNotFound, "book not found")
		default:
			writeError(w, http.StatusInternalServerError, "failed to borrow book")
		}
		return
	}
	writeJSON(w, http.StatusCreated, loan)
}

func (h *LoanHandler) Return(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r)
	loanID, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid loan id")
		return
	}

	loan, fine, err := h.loanSvc.Return(r.Context(), claims.UserID, loanID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotYourLoan):
			writeError(w, http.StatusForbidden, err.Error())
		case errors.Is(err, service.ErrAlreadyReturned):
			writeError(w, http.StatusConflict, err.Error())
		case errors.Is(err, sql.ErrNoRows):
			writeError(w, http.StatusNotFound, "loan not found")
		default:
			writeError(w, http.StatusInternalServerError, "failed to return book")
		}
		return
	}

	resp := map[string]any{"loan": loan}
	if fine != nil {
		resp["fine"] = fine
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *LoanHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r)
	loans, err := h.loanSvc.ListMyLoans(r.Context(), claims.UserID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list loans")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"loans": loans})
}

func (h *LoanHandler) ListMyFines(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r)
	fines, err := h.loanSvc.ListMyFines(r.Context(), claims.UserID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list fines")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"fines": fines})
}
