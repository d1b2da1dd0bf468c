package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/wordup-app/apiserver/internal/feedback"
	"github.com/wordup-app/apiserver/internal/services"
	"github.com/wordup-app/apiserver/internal/store"
	"github.com/wordup-app/apiserver/types"
)

// PracticeHandler provides HTTP handlers for practice sessions and the
// server-side feedback proxy.
type PracticeHandler struct {
	practiceService *services.PracticeService
	provider        feedback.Provider
}

// NewPracticeHandler constructs a handler with the provided dependencies.
// provider may be nil; the feedback endpoint then always degrades to
// local statistics.
func NewPracticeHandler(practiceService *services.PracticeService, provider feedback.Provider) *PracticeHandler {
	return &PracticeHandler{
		practiceService: practiceService,
		provider:        provider,
	}
}

// PracticeRouter registers practice routes on the given router.
func PracticeRouter(r chi.Router, practiceService *services.PracticeService, provider feedback.Provider, authMiddleware func(http.Handler) http.Handler) {
	handler := NewPracticeHandler(practiceService, provider)

	if authMiddleware != nil {
		r.Use(authMiddleware)
	}
	r.Post("/save", handler.SaveSession)
	r.Get("/history", handler.History)
	r.Delete("/delete/{sessionID}", handler.DeleteSession)
	r.Post("/feedback", handler.Feedback)
}

// SaveSession appends a practice session to the caller's history.
func (h *PracticeHandler) SaveSession(w http.ResponseWriter, r *http.Request) {
	identity, err := identityFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req PracticeSaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	if strings.TrimSpace(req.Transcript) == "" {
		writeError(w, http.StatusBadRequest, "transcript is required")
		return
	}
	if req.WordCount < 0 || req.SentenceCount < 0 {
		writeError(w, http.StatusBadRequest, "counts must be non-negative")
		return
	}
	// Clients that skip the counts get them computed here.
	if req.WordCount == 0 {
		req.WordCount = feedback.WordCount(req.Transcript)
	}
	if req.SentenceCount == 0 {
		req.SentenceCount = feedback.SentenceCount(req.Transcript)
	}

	session, err := h.practiceService.Save(r.Context(), types.PracticeSession{
		UserID:        identity.ID,
		Transcript:    req.Transcript,
		Feedback:      req.Feedback,
		WordCount:     req.WordCount,
		SentenceCount: req.SentenceCount,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to save practice session")
		return
	}

	writeJSON(w, http.StatusOK, PracticeSaveResponse{
		Success: true,
		Message: "Practice session saved!",
		Session: session,
	})
}

// History returns the caller's sessions, most recent first.
func (h *PracticeHandler) History(w http.ResponseWriter, r *http.Request) {
	identity, err := identityFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	sessions, err := h.practiceService.ListByOwner(r.Context(), identity.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to fetch practice history")
		return
	}

	writeJSON(w, http.StatusOK, PracticeHistoryResponse{Success: true, Sessions: sessions})
}

func (h *PracticeHandler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	identity, err := identityFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := parseID64Param(r, "sessionID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.practiceService.DeleteByOwner(r.Context(), identity.ID, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "session not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to delete session")
		return
	}

	writeMessage(w, http.StatusOK, "Session deleted successfully")
}

// Feedback proxies the transcript to the external feedback service. An
// upstream failure is not fatal: the response degrades to the locally
// computed word and sentence counts with a warning.
func (h *PracticeHandler) Feedback(w http.ResponseWriter, r *http.Request) {
	if _, err := identityFromContext(r.Context()); err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req FeedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	if strings.TrimSpace(req.Transcript) == "" {
		writeError(w, http.StatusBadRequest, "transcript is required")
		return
	}

	words := feedback.WordCount(req.Transcript)
	sentences := feedback.SentenceCount(req.Transcript)

	if h.provider != nil {
		text, err := h.provider.Feedback(r.Context(), req.Transcript)
		if err == nil {
			writeJSON(w, http.StatusOK, FeedbackResponse{
				Success:       true,
				Feedback:      text,
				WordCount:     words,
				SentenceCount: sentences,
			})
			return
		}
		log.Printf("feedback provider failed: %v", err)
	}

	writeJSON(w, http.StatusOK, FeedbackResponse{
		Success:       true,
		Fallback:      true,
		Message:       "AI analysis unavailable, showing basic statistics",
		WordCount:     words,
		SentenceCount: sentences,
	})
}

type PracticeSaveRequest struct {
	Transcript    string `json:"transcript"`
	Feedback      string `json:"feedback"`
	WordCount     int    `json:"wordCount"`
	SentenceCount int    `json:"sentenceCount"`
}

type PracticeSaveResponse struct {
	Success bool                  `json:"success"`
	Message string                `json:"message"`
	Session types.PracticeSession `json:"session"`
}

type PracticeHistoryResponse struct {
	Success  bool                    `json:"success"`
	Sessions []types.PracticeSession `json:"sessions"`
}

type FeedbackRequest struct {
	Transcript string `json:"transcript"`
}

type FeedbackResponse struct {
	Success       bool   `json:"success"`
	Fallback      bool   `json:"fallback,omitempty"`
	Message       string `json:"message,omitempty"`
	Feedback      string `json:"feedback,omitempty"`
	WordCount     int    `json:"wordCount"`
	SentenceCount int    `json:"sentenceCount"`
}
