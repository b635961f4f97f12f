package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/bloberror"

	"logdash/internal/models"
)

const defaultBlobTimeout = 15 * time.Second

// BlobStore is the minimal object-store API the blob source needs.
type BlobStore interface {
	// ReadBlob returns the raw bytes of a blob or ErrNotFound.
	ReadBlob(ctx context.Context, name string) ([]byte, error)
	// ListBlobs returns every blob in the container.
	ListBlobs(ctx context.Context) ([]models.LogFile, error)
}

// AzureBlobStore reads blobs from a single Azure Storage container.
type AzureBlobStore struct {
	client    *azblob.Client
	container string
}

// NewAzureBlobStore connects to a container using a storage connection string.
func NewAzureBlobStore(connectionString, container string) (*AzureBlobStore, error) {
	if connectionString == "" {
		return nil, errors.New("blob connection string is empty")
	}
	if container == "" {
		return nil, errors.New("blob container is empty")
	}
	client, err := azblob.NewClientFromConnectionString(connectionString, nil)
	if err != nil {
		return nil, fmt.Errorf("create blob client: %w", err)
	}
	return &AzureBlobStore{client: client, container: container}, nil
}

// ReadBlob downloads the whole blob.
func (s *AzureBlobStore) ReadBlob(ctx context.Context, name string) ([]byte, error) {
	resp, err := s.client.DownloadStream(ctx, s.container, name, nil)
	if err != nil {
		if bloberror.HasCode(err, bloberror.BlobNotFound, bloberror.ContainerNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("download blob %s: %w", name, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read blob %s: %w", name, err)
	}
	return data, nil
}

// ListBlobs pages through the container listing.
func (s *AzureBlobStore) ListBlobs(ctx context.Context) ([]models.LogFile, error) {
	var files []models.LogFile
	pager := s.client.NewListBlobsFlatPager(s.container, nil)
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("list blobs: %w", err)
		}
		for _, item := range page.Segment.BlobItems {
			if item == nil || item.Name == nil {
				continue
			}
			file := models.LogFile{Name: *item.Name}
			if item.Properties != nil {
				if item.Properties.LastModified != nil {
					file.ModifiedAt = item.Properties.LastModified.UTC()
				}
				if item.Properties.ContentLength != nil {
					file.Size = *item.Properties.ContentLength
				}
			}
			files = append(files, file)
		}
	}
	return files, nil
}

// BlobSource serves logs stored in a BlobStore.
type BlobSource struct {
	store   BlobStore
	timeout time.Duration
}

// NewBlobSource wraps store; each call is bounded by timeout.
func NewBlobSource(store BlobStore, timeout time.Duration) *BlobSource {
	if timeout <= 0 {
		timeout = defaultBlobTimeout
	}
	return &BlobSource{store: store, timeout: timeout}
}

// Fetch downloads and decodes the named blob.
func (s *BlobSource) Fetch(ctx context.Context, name string) (string, error) {
	if !validName(name) {
		return "", ErrNotFound
	}
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	data, err := s.store.ReadBlob(ctx, name)
	if err != nil {
		return "", err
	}
	return DecodeText(data), nil
}

// List returns blobs with the log suffix, newest first.
func (s *BlobSource) List(ctx context.Context) ([]models.LogFile, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	blobs, err := s.store.ListBlobs(ctx)
	if err != nil {
		return nil, err
	}
	files := make([]models.LogFile, 0, len(blobs))
	for _, blob := range blobs {
		if isLogName(blob.Name) {
			files = append(files, blob)
		}
	}
	sortNewestFirst(files)
	return files, nil
}
