package handlers

import (
	"bytes"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/wordup-app/apiserver/internal/services"
	"github.com/wordup-app/apiserver/internal/store"
	"github.com/wordup-app/apiserver/types"
)

const (
	maxRecordingMemory = 8 << 20
	maxRecordingBytes  = 25 << 20
	formFieldAudio     = "audio"
)

// AudioHandler provides HTTP handlers for audio recordings.
type AudioHandler struct {
	audioService *services.AudioService
}

// NewAudioHandler constructs a handler with the provided service.
func NewAudioHandler(audioService *services.AudioService) *AudioHandler {
	return &AudioHandler{audioService: audioService}
}

// AudioRouter registers recording routes on the given router.
func AudioRouter(r chi.Router, audioService *services.AudioService, authMiddleware func(http.Handler) http.Handler) {
	handler := NewAudioHandler(audioService)

	if authMiddleware != nil {
		r.Use(authMiddleware)
	}
	r.Post("/", handler.UploadRecording)
	r.Get("/{recordingID}", handler.GetRecording)
	r.Delete("/{recordingID}", handler.DeleteRecording)
}

// UploadRecording accepts a multipart upload in the "audio" field.
func (h *AudioHandler) UploadRecording(w http.ResponseWriter, r *http.Request) {
	identity, err := identityFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	if err := r.ParseMultipartForm(maxRecordingMemory); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	files := r.MultipartForm.File[formFieldAudio]
	if len(files) == 0 {
		writeError(w, http.StatusBadRequest, "audio file is required")
		return
	}
	if len(files) > 1 {
		writeError(w, http.StatusBadRequest, "only one audio file is allowed")
		return
	}

	fileHeader := files[0]
	file, err := fileHeader.Open()
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read audio file")
		return
	}

	data, err := readFileLimited(file, maxRecordingBytes)
	_ = file.Close()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	recording, err := h.audioService.Upload(r.Context(), identity.ID, contentType, bytes.NewReader(data), int64(len(data)))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to store recording")
		return
	}

	writeJSON(w, http.StatusCreated, RecordingResponse{Success: true, Recording: recording})
}

// GetRecording streams the owner's recording back to the client.
func (h *AudioHandler) GetRecording(w http.ResponseWriter, r *http.Request) {
	identity, err := identityFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id := chi.URLParam(r, "recordingID")
	reader, err := h.audioService.Open(r.Context(), identity.ID, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "recording not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to fetch recording")
		return
	}
	defer reader.Close()

	w.Header().Set("Content-Type", "application/octet-stream")
	w.WriteHeader(http.StatusOK)
	_, _ = io.Copy(w, reader)
}

func (h *AudioHandler) DeleteRecording(w http.ResponseWriter, r *http.Request) {
	identity, err := identityFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id := chi.URLParam(r, "recordingID")
	if err := h.audioService.Delete(r.Context(), identity.ID, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "recording not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to delete recording")
		return
	}

	writeMessage(w, http.StatusOK, "Recording deleted successfully")
}

type RecordingResponse struct {
	Success   bool            `json:"success"`
	Recording types.Recording `json:"recording"`
}

func readFileLimited(reader io.Reader, limit int64) ([]byte, error) {
	limited := io.LimitReader(reader, limit+1)
	data, err := io.ReadAll(limited)
	if err != nil {
		return nil, errors.New("failed to read upload")
	}
	if int64(len(data)) > limit {
		return nil, errors.New("uploaded file too large")
	}
	return data, nil
}
