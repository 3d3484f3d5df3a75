package http

import (
	"errors"
	"net/http"
	"time"

	"silent-library-backend/internal/service"
)

type UserHandler struct {
	userSvc service.UserService
	noteSvc service.NotificationService
}

func NewUserHandler(userSvc service.UserService, noteSvc service.NotificationService) *UserHandler {
	return &UserHandler{userSvc: userSvc, noteSvc: noteSvc}
}

func (h *UserHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r)
	user, err := h.userSvc.GetProfile(r.Context(), claims.UserID)
	if err != nil {
		writeError(w, http.StatusNotFound, "user not found")
		return
	}
	writeJSON(w, http.StatusOK, user)
}

type updateProfileRequest struct {
	FirstName   string `json:"first_name,omitempty"`
	LastName    string `json:"last_name,omitempty"`
	DateOfBirth string `json:"date_of_birth,omitempty"`
}

func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r)

	var req updateProfileRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	var dob *time.Time
	if req.DateOfBirth != "" {
		parsed, err := time.Parse("2006-01-02", req.DateOfBirth)
		if err != nil {
			writeError(w, http.StatusBadRequest, "date_of_birth must be YYYY-MM-DD")
			return
		}
		dob = &parsed
	}

	user, err := h.userSvc.UpdateProfile(r.Context(), claims.UserID, req.FirstName, req.LastName, dob)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, user)
}

type updateCredentialsRequest struct {
	CurrentPassword string `json:"current_password"`
	Username        string `json:"username,omitempty"`
	Email           string `json:"email,omitempty"`
}

func (h *UserHandler) UpdateCredentials(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r)

	var req updateCredentialsRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.userSvc.UpdateCredentials(r.Context(), claims.UserID, req.CurrentPassword, req.Username, req.Email)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrWrongCurrentPassword):
			writeError(w, http.StatusUnauthorized, err.Error())
		case errors.Is(err, service.ErrUsernameTaken), errors.Is(err, service.ErrEmailTaken):
			writeError(w, http.StatusConflict, err.Error())
		default:
			writeError(w, http.StatusBadRequest, err.Error())
		}
		return
	}
	writeJSON(w, http.StatusOK, user)
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

func (h *UserHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r)

	var req changePasswordRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.userSvc.ChangePassword(r.Context(), claims.UserID, req.CurrentPassword, req.NewPassword); err != nil {
		if errors.Is(err, service.ErrWrongCurrentPassword) {
			writeError(w, http.StatusUnauthorized, err.Error())
			return
		}
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "password updated"})
}

func (h *UserHandler) ListNotifications(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r)
	page, pageSize := pageParams(r)

	notes, total, err := h.noteSvc.ListMyNotifications(r.Context(), claims.UserID, page, pageSize)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list notifications")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"notifications": notes,
		"total":         total,
	})
}
