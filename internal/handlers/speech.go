package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/wordup-app/apiserver/internal/services"
	"github.com/wordup-app/apiserver/internal/store"
	"github.com/wordup-app/apiserver/types"
)

// SpeechHandler provides HTTP handlers for the speech resource. Every
// route is owner-scoped to the authenticated caller.
type SpeechHandler struct {
	speechService *services.SpeechService
}

// NewSpeechHandler constructs a handler with the provided service.
func NewSpeechHandler(speechService *services.SpeechService) *SpeechHandler {
	return &SpeechHandler{speechService: speechService}
}

// SpeechRouter registers speech routes on the given router.
func SpeechRouter(r chi.Router, speechService *services.SpeechService, authMiddleware func(http.Handler) http.Handler) {
	handler := NewSpeechHandler(speechService)

	if authMiddleware != nil {
		r.Use(authMiddleware)
	}
	r.Get("/", handler.ListSpeeches)
	r.Post("/", handler.CreateSpeech)
	r.Route("/{speechID}", func(r chi.Router) {
		r.Get("/", handler.GetSpeech)
		r.Delete("/", handler.DeleteSpeech)
		r.Post("/practice", handler.PracticeSpeech)
	})
}

func (h *SpeechHandler) ListSpeeches(w http.ResponseWriter, r *http.Request) {
	identity, err := identityFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	speeches, err := h.speechService.ListByOwner(r.Context(), identity.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list speeches")
		return
	}

	writeJSON(w, http.StatusOK, SpeechListResponse{Success: true, Speeches: speeches})
}

func (h *SpeechHandler) CreateSpeech(w http.ResponseWriter, r *http.Request) {
	identity, err := identityFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req SpeechCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" || strings.TrimSpace(req.OriginalDraft) == "" {
		writeError(w, http.StatusBadRequest, "title and originalDraft are required")
		return
	}

	speech, err := h.speechService.Create(r.Context(), types.Speech{
		UserID:          identity.ID,
		Title:           req.Title,
		OriginalDraft:   req.OriginalDraft,
		ImprovedVersion: req.ImprovedVersion,
		AISuggestions:   req.AISuggestions,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to save speech")
		return
	}

	writeJSON(w, http.StatusCreated, SpeechResponse{Success: true, Speech: speech})
}

func (h *SpeechHandler) GetSpeech(w http.ResponseWriter, r *http.Request) {
	identity, err := identityFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := parseIDParam(r, "speechID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	speech, err := h.speechService.GetByOwner(r.Context(), identity.ID, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "speech not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to fetch speech")
		return
	}

	writeJSON(w, http.StatusOK, SpeechResponse{Success: true, Speech: speech})
}

func (h *SpeechHandler) DeleteSpeech(w http.ResponseWriter, r *http.Request) {
	identity, err := identityFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := parseIDParam(r, "speechID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.speechService.DeleteByOwner(r.Context(), identity.ID, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "speech not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to delete speech")
		return
	}

	writeMessage(w, http.StatusOK, "Speech deleted successfully")
}

// PracticeSpeech records one practice run against a saved speech.
func (h *SpeechHandler) PracticeSpeech(w http.ResponseWriter, r *http.Request) {
	identity, err := identityFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := parseIDParam(r, "speechID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	speech, err := h.speechService.MarkPracticed(r.Context(), identity.ID, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "speech not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to update speech")
		return
	}

	writeJSON(w, http.StatusOK, SpeechResponse{Success: true, Speech: speech})
}

type SpeechCreateRequest struct {
	Title           string `json:"title"`
	OriginalDraft   string `json:"originalDraft"`
	ImprovedVersion string `json:"improvedVersion"`
	AISuggestions   string `json:"aiSuggestions"`
}

type SpeechResponse struct {
	Success bool         `json:"success"`
	Speech  types.Speech `json:"speech"`
}

type SpeechListResponse struct {
	Success  bool           `json:"success"`
	Speeches []types.Speech `json:"speeches"`
}
