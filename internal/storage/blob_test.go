package storage

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"logdash/internal/models"
)

type fakeBlobStore struct {
	blobs   map[string][]byte
	listing []models.LogFile
	err     error
}

func (f *fakeBlobStore) ReadBlob(_ context.Context, name string) ([]byte, error) {
	if f.err != nil {
		return nil, f.err
	}
	data, ok := f.blobs[name]
	if !ok {
		return nil, ErrNotFound
	}
	return data, nil
}

func (f *fakeBlobStore) ListBlobs(_ context.Context) ([]models.LogFile, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.listing, nil
}

func TestBlobSourceFetchDecodes(t *testing.T) {
	store := &fakeBlobStore{blobs: map[string][]byte{
		"run.log": {'C', 'a', 'f', 0xE9, '\r', '\n'},
	}}
	src := NewBlobSource(store, time.Second)

	text, err := src.Fetch(context.Background(), "run.log")
	require.NoError(t, err)
	require.Equal(t, "Café\n", text)

	_, err = src.Fetch(context.Background(), "other.log")
	require.ErrorIs(t, err, ErrNotFound)

	_, err = src.Fetch(context.Background(), "../run.log")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestBlobSourceListFiltersAndSorts(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	store := &fakeBlobStore{listing: []models.LogFile{
		{Name: "a.log", ModifiedAt: base},
		{Name: "image.png", ModifiedAt: base.Add(3 * time.Hour)},
		{Name: "b.log", ModifiedAt: base.Add(time.Hour)},
	}}

	files, err := NewBlobSource(store, 0).List(context.Background())
	require.NoError(t, err)
	require.Len(t, files, 2)
	require.Equal(t, "b.log", files[0].Name)
	require.Equal(t, "a.log", files[1].Name)
}

func TestBlobSourcePropagatesErrors(t *testing.T) {
	boom := errors.New("connection reset")
	src := NewBlobSource(&fakeBlobStore{err: boom}, time.Second)

	_, err := src.Fetch(context.Background(), "run.log")
	require.ErrorIs(t, err, boom)

	_, err = src.List(context.Background())
	require.ErrorIs(t, err, boom)
}

func TestNewAzureBlobStoreValidation(t *testing.T) {
	_, err := NewAzureBlobStore("", "logs")
	require.Error(t, err)

	_, err = NewAzureBlobStore("UseDevelopmentStorage=true", "")
	require.Error(t, err)
}
