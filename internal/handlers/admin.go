package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/wordup-app/apiserver/internal/services"
	"github.com/wordup-app/apiserver/internal/store"
	"github.com/wordup-app/apiserver/types"
)

// AdminHandler provides unscoped read/delete access over users and
// speeches. Routes are gated on role=admin; admin bypasses ownership.
type AdminHandler struct {
	userService   *services.UserService
	speechService *services.SpeechService
}

// NewAdminHandler constructs a handler with the provided services.
func NewAdminHandler(userService *services.UserService, speechService *services.SpeechService) *AdminHandler {
	return &AdminHandler{
		userService:   userService,
		speechService: speechService,
	}
}

// AdminRouter registers admin routes on the given router.
func AdminRouter(r chi.Router, userService *services.UserService, speechService *services.SpeechService, authMiddleware func(http.Handler) http.Handler) {
	handler := NewAdminHandler(userService, speechService)

	if authMiddleware != nil {
		r.Use(authMiddleware)
	}
	r.Use(RequireRole(types.RoleAdmin))
	r.Get("/users", handler.ListUsers)
	r.Get("/speeches", handler.ListSpeeches)
	r.Delete("/users/{userID}", handler.DeleteUser)
	r.Delete("/speeches/{speechID}", handler.DeleteSpeech)
}

func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list users")
		return
	}
	writeJSON(w, http.StatusOK, AdminUsersResponse{Success: true, Users: users})
}

func (h *AdminHandler) ListSpeeches(w http.ResponseWriter, r *http.Request) {
	speeches, err := h.speechService.ListAll(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list speeches")
		return
	}
	writeJSON(w, http.StatusOK, SpeechListResponse{Success: true, Speeches: speeches})
}

// DeleteUser removes an account, its speeches, and its practice
// sessions.
func (h *AdminHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "userID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.userService.Delete(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "user not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to delete user")
		return
	}

	writeMessage(w, http.StatusOK, "User deleted successfully")
}

func (h *AdminHandler) DeleteSpeech(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "speechID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.speechService.Delete(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "speech not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to delete speech")
		return
	}

	writeMessage(w, http.StatusOK, "Speech deleted successfully")
}

type AdminUsersResponse struct {
	Success bool         `json:"success"`
	Users   []types.User `json:"users"`
}
