package handlers

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/wordup-app/apiserver/config"
	"github.com/wordup-app/apiserver/internal/feedback"
	"github.com/wordup-app/apiserver/internal/services"
	"github.com/wordup-app/apiserver/internal/storage"
	"github.com/wordup-app/apiserver/internal/store"
)

const testSecret = "test-secret"

// testAPI assembles the full route surface over in-memory fakes, the
// same way the server package wires the real thing.
type testAPI struct {
	router     *chi.Mux
	users      *fakeUserRepo
	speeches   *fakeSpeechRepo
	practice   *store.PracticeRepository
	recordings *fakeObjectStorage
}

func newTestAPI(t *testing.T, provider feedback.Provider) *testAPI {
	t.Helper()

	users := newFakeUserRepo()
	speeches := newFakeSpeechRepo()
	practice := store.NewPracticeRepository()
	recordings := newFakeObjectStorage()

	userService := services.NewUserService(users, practice)
	speechService := services.NewSpeechService(speeches, nil)
	practiceService := services.NewPracticeService(practice, nil)
	audioService := services.NewAudioService(storage.NewStorage(recordings))

	jwtCfg := config.JWTConfig{Secret: testSecret, TokenTTL: time.Hour}
	authMiddleware := RequireAuth(testSecret)

	router := chi.NewRouter()
	router.Route("/auth", func(r chi.Router) {
		AuthRouter(r, userService, jwtCfg)
	})
	router.Route("/speech", func(r chi.Router) {
		SpeechRouter(r, speechService, authMiddleware)
	})
	router.Route("/practice", func(r chi.Router) {
		PracticeRouter(r, practiceService, provider, authMiddleware)
	})
	router.Route("/admin", func(r chi.Router) {
		AdminRouter(r, userService, speechService, authMiddleware)
	})
	router.Route("/api/audio", func(r chi.Router) {
		AudioRouter(r, audioService, authMiddleware)
	})

	return &testAPI{
		router:     router,
		users:      users,
		speeches:   speeches,
		practice:   practice,
		recordings: recordings,
	}
}

func (a *testAPI) token(t *testing.T, userID int, role string) string {
	t.Helper()
	token, err := issueToken(userID, role, []byte(testSecret), time.Hour)
	if err != nil {
		t.Fatalf("issueToken error: %v", err)
	}
	return token
}

func (a *testAPI) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	return rec
}

func wantStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("status = %d, want %d (body: %s)", rec.Code, want, rec.Body.String())
	}
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var value T
	if err := json.NewDecoder(rec.Body).Decode(&value); err != nil {
		t.Fatalf("decode response body: %v", err)
	}
	return value
}
