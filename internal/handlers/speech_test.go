package handlers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/wordup-app/apiserver/types"
)

func TestSpeechLifecycle(t *testing.T) {
	t.Parallel()

	api := newTestAPI(t, nil)
	token := api.token(t, 1, types.RoleUser)

	rec := api.do(t, http.MethodPost, "/speech/", token, SpeechCreateRequest{
		Title:         "T",
		OriginalDraft: "Hello world.",
	})
	wantStatus(t, rec, http.StatusCreated)
	created := decodeBody[SpeechResponse](t, rec)
	if created.Speech.ID == 0 {
		t.Fatal("expected a speech id")
	}
	if created.Speech.UserID != 1 {
		t.Fatalf("speech.UserID = %d, want 1", created.Speech.UserID)
	}
	if created.Speech.PracticeCount != 0 {
		t.Fatalf("new speech practiceCount = %d, want 0", created.Speech.PracticeCount)
	}

	rec = api.do(t, http.MethodGet, "/speech/", token, nil)
	wantStatus(t, rec, http.StatusOK)
	list := decodeBody[SpeechListResponse](t, rec)
	if len(list.Speeches) != 1 || list.Speeches[0].Title != "T" {
		t.Fatalf("unexpected list: %+v", list.Speeches)
	}

	path := fmt.Sprintf("/speech/%d", created.Speech.ID)
	rec = api.do(t, http.MethodGet, path, token, nil)
	wantStatus(t, rec, http.StatusOK)

	rec = api.do(t, http.MethodDelete, path, token, nil)
	wantStatus(t, rec, http.StatusOK)

	rec = api.do(t, http.MethodGet, path, token, nil)
	wantStatus(t, rec, http.StatusNotFound)

	// Second delete is idempotent in effect: NotFound, not a crash.
	rec = api.do(t, http.MethodDelete, path, token, nil)
	wantStatus(t, rec, http.StatusNotFound)
}

func TestSpeechCreate_Validation(t *testing.T) {
	t.Parallel()

	api := newTestAPI(t, nil)
	token := api.token(t, 1, types.RoleUser)

	rec := api.do(t, http.MethodPost, "/speech/", token, SpeechCreateRequest{Title: "T"})
	wantStatus(t, rec, http.StatusBadRequest)

	rec = api.do(t, http.MethodPost, "/speech/", token, SpeechCreateRequest{OriginalDraft: "d"})
	wantStatus(t, rec, http.StatusBadRequest)
}

func TestSpeechOwnerScoping(t *testing.T) {
	t.Parallel()

	api := newTestAPI(t, nil)
	owner := api.token(t, 1, types.RoleUser)
	stranger := api.token(t, 2, types.RoleUser)

	rec := api.do(t, http.MethodPost, "/speech/", owner, SpeechCreateRequest{
		Title:         "Private",
		OriginalDraft: "Mine.",
	})
	wantStatus(t, rec, http.StatusCreated)
	created := decodeBody[SpeechResponse](t, rec)
	path := fmt.Sprintf("/speech/%d", created.Speech.ID)

	// A foreign id reads and deletes as NotFound, never Forbidden,
	// so existence is not leaked.
	wantStatus(t, api.do(t, http.MethodGet, path, stranger, nil), http.StatusNotFound)
	wantStatus(t, api.do(t, http.MethodDelete, path, stranger, nil), http.StatusNotFound)
	wantStatus(t, api.do(t, http.MethodPost, path+"/practice", stranger, nil), http.StatusNotFound)

	rec = api.do(t, http.MethodGet, "/speech/", stranger, nil)
	wantStatus(t, rec, http.StatusOK)
	list := decodeBody[SpeechListResponse](t, rec)
	if len(list.Speeches) != 0 {
		t.Fatalf("stranger sees %d speeches, want 0", len(list.Speeches))
	}
}

func TestSpeechPractice_IncrementsCount(t *testing.T) {
	t.Parallel()

	api := newTestAPI(t, nil)
	token := api.token(t, 1, types.RoleUser)

	rec := api.do(t, http.MethodPost, "/speech/", token, SpeechCreateRequest{
		Title:         "P",
		OriginalDraft: "Practice me.",
	})
	wantStatus(t, rec, http.StatusCreated)
	created := decodeBody[SpeechResponse](t, rec)
	path := fmt.Sprintf("/speech/%d/practice", created.Speech.ID)

	for want := 1; want <= 3; want++ {
		rec = api.do(t, http.MethodPost, path, token, nil)
		wantStatus(t, rec, http.StatusOK)
		resp := decodeBody[SpeechResponse](t, rec)
		if resp.Speech.PracticeCount != want {
			t.Fatalf("practiceCount = %d, want %d", resp.Speech.PracticeCount, want)
		}
		if resp.Speech.LastPracticedAt == nil {
			t.Fatal("expected lastPracticedAt to be set")
		}
	}
}

func TestSpeechList_NewestFirst(t *testing.T) {
	t.Parallel()

	api := newTestAPI(t, nil)
	token := api.token(t, 1, types.RoleUser)

	for i := 1; i <= 3; i++ {
		rec := api.do(t, http.MethodPost, "/speech/", token, SpeechCreateRequest{
			Title:         fmt.Sprintf("S%d", i),
			OriginalDraft: "text",
		})
		wantStatus(t, rec, http.StatusCreated)
	}

	rec := api.do(t, http.MethodGet, "/speech/", token, nil)
	wantStatus(t, rec, http.StatusOK)
	list := decodeBody[SpeechListResponse](t, rec)
	if len(list.Speeches) != 3 {
		t.Fatalf("len = %d, want 3", len(list.Speeches))
	}
	for i, want := range []string{"S3", "S2", "S1"} {
		if list.Speeches[i].Title != want {
			t.Fatalf("speeches[%d].Title = %q, want %q", i, list.Speeches[i].Title, want)
		}
	}
}
