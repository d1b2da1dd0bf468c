package services

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/wordup-app/apiserver/internal/storage"
	"github.com/wordup-app/apiserver/internal/store"
	"github.com/wordup-app/apiserver/types"
)

// AudioService stores audio recordings in object storage. Object keys
// embed the owner id, so a recording can only ever be opened or deleted
// through its owner's identity.
type AudioService struct {
	storage *storage.Storage
}

func NewAudioService(st *storage.Storage) *AudioService {
	return &AudioService{storage: st}
}

// Upload writes the recording and returns its generated identifier.
func (s *AudioService) Upload(ctx context.Context, ownerID int, contentType string, r io.Reader, size int64) (types.Recording, error) {
	id := uuid.NewString()
	key := recordingKey(ownerID, id)
	if err := s.storage.Put(ctx, key, r, size, contentType); err != nil {
		return types.Recording{}, err
	}
	return types.Recording{
		ID:          id,
		ContentType: contentType,
		Size:        size,
	}, nil
}

// Open returns a reader for the owner's recording. An unknown or
// foreign id reads as store.ErrNotFound.
func (s *AudioService) Open(ctx context.Context, ownerID int, id string) (io.ReadCloser, error) {
	if err := validateRecordingID(id); err != nil {
		return nil, store.ErrNotFound
	}
	reader, err := s.storage.Get(ctx, recordingKey(ownerID, id))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return reader, nil
}

// Delete removes the owner's recording. An unknown or foreign id reads
// as store.ErrNotFound.
func (s *AudioService) Delete(ctx context.Context, ownerID int, id string) error {
	if err := validateRecordingID(id); err != nil {
		return store.ErrNotFound
	}
	if err := s.storage.Delete(ctx, recordingKey(ownerID, id)); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return store.ErrNotFound
		}
		return err
	}
	return nil
}

func recordingKey(ownerID int, id string) string {
	return fmt.Sprintf("recordings/%d/%s", ownerID, id)
}

// Recording ids are UUIDs minted by Upload. Anything else is rejected
// before it reaches a storage key.
func validateRecordingID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return errors.New("invalid recording id")
	}
	return nil
}
