package handlers

import (
	"bytes"
	"context"
	"io"
	"sort"
	"time"

	"github.com/wordup-app/apiserver/internal/storage"
	"github.com/wordup-app/apiserver/internal/store"
	"github.com/wordup-app/apiserver/types"
)

// fakeUserRepo implements services.UserRepository in memory.
type fakeUserRepo struct {
	nextID int
	users  map[int]types.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{nextID: 1, users: make(map[int]types.User)}
}

func (r *fakeUserRepo) GetByID(_ context.Context, id int) (types.User, error) {
	user, ok := r.users[id]
	if !ok {
		return types.User{}, store.ErrNotFound
	}
	return user, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (types.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			return user, nil
		}
	}
	return types.User{}, store.ErrNotFound
}

func (r *fakeUserRepo) List(_ context.Context) ([]types.User, error) {
	users := make([]types.User, 0, len(r.users))
	for _, user := range r.users {
		users = append(users, user)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID > users[j].ID })
	return users, nil
}

func (r *fakeUserRepo) Create(_ context.Context, user types.User) (types.User, error) {
	for _, existing := range r.users {
		if existing.Email == user.Email {
			return types.User{}, store.ErrDuplicateEmail
		}
	}
	user.ID = r.nextID
	r.nextID++
	user.CreatedAt = time.Now()
	r.users[user.ID] = user
	return user, nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id int) error {
	if _, ok := r.users[id]; !ok {
		return store.ErrNotFound
	}
	delete(r.users, id)
	return nil
}

// fakeSpeechRepo implements services.SpeechRepository in memory.
type fakeSpeechRepo struct {
	nextID   int
	speeches map[int]types.Speech
}

func newFakeSpeechRepo() *fakeSpeechRepo {
	return &fakeSpeechRepo{nextID: 1, speeches: make(map[int]types.Speech)}
}

func (r *fakeSpeechRepo) ListByOwner(_ context.Context, ownerID int) ([]types.Speech, error) {
	speeches := make([]types.Speech, 0)
	for _, speech := range r.speeches {
		if speech.UserID == ownerID {
			speeches = append(speeches, speech)
		}
	}
	sort.Slice(speeches, func(i, j int) bool { return speeches[i].ID > speeches[j].ID })
	return speeches, nil
}

func (r *fakeSpeechRepo) ListAll(_ context.Context) ([]types.Speech, error) {
	speeches := make([]types.Speech, 0, len(r.speeches))
	for _, speech := range r.speeches {
		speeches = append(speeches, speech)
	}
	sort.Slice(speeches, func(i, j int) bool { return speeches[i].ID > speeches[j].ID })
	return speeches, nil
}

func (r *fakeSpeechRepo) GetByOwner(_ context.Context, ownerID, id int) (types.Speech, error) {
	speech, ok := r.speeches[id]
	if !ok || speech.UserID != ownerID {
		return types.Speech{}, store.ErrNotFound
	}
	return speech, nil
}

func (r *fakeSpeechRepo) Create(_ context.Context, speech types.Speech) (types.Speech, error) {
	speech.ID = r.nextID
	r.nextID++
	speech.CreatedAt = time.Now()
	speech.PracticeCount = 0
	speech.LastPracticedAt = nil
	r.speeches[speech.ID] = speech
	return speech, nil
}

func (r *fakeSpeechRepo) MarkPracticed(_ context.Context, ownerID, id int) (types.Speech, error) {
	speech, ok := r.speeches[id]
	if !ok || speech.UserID != ownerID {
		return types.Speech{}, store.ErrNotFound
	}
	now := time.Now()
	speech.PracticeCount++
	speech.LastPracticedAt = &now
	r.speeches[id] = speech
	return speech, nil
}

func (r *fakeSpeechRepo) DeleteByOwner(_ context.Context, ownerID, id int) error {
	speech, ok := r.speeches[id]
	if !ok || speech.UserID != ownerID {
		return store.ErrNotFound
	}
	delete(r.speeches, id)
	return nil
}

func (r *fakeSpeechRepo) Delete(_ context.Context, id int) error {
	if _, ok := r.speeches[id]; !ok {
		return store.ErrNotFound
	}
	delete(r.speeches, id)
	return nil
}

// fakeObjectStorage implements storage.ObjectStorage in memory.
type fakeObject struct {
	data        []byte
	contentType string
}

type fakeObjectStorage struct {
	objects map[string]fakeObject
}

func newFakeObjectStorage() *fakeObjectStorage {
	return &fakeObjectStorage{objects: make(map[string]fakeObject)}
}

func (s *fakeObjectStorage) EnsureBucket(_ context.Context) error {
	return nil
}

func (s *fakeObjectStorage) Put(_ context.Context, key string, r io.Reader, _ int64, contentType string) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	s.objects[key] = fakeObject{data: data, contentType: contentType}
	return nil
}

func (s *fakeObjectStorage) Get(_ context.Context, key string) (io.ReadCloser, error) {
	obj, ok := s.objects[key]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return io.NopCloser(bytes.NewReader(obj.data)), nil
}

func (s *fakeObjectStorage) Delete(_ context.Context, key string) error {
	if _, ok := s.objects[key]; !ok {
		return storage.ErrNotFound
	}
	delete(s.objects, key)
	return nil
}

func (s *fakeObjectStorage) Bucket() string {
	return "test-bucket"
}

// stubProvider returns canned feedback or a canned error.
type stubProvider struct {
	text string
	err  error
}

func (p *stubProvider) Feedback(_ context.Context, _ string) (string, error) {
	if p.err != nil {
		return "", p.err
	}
	return p.text, nil
}
