package api

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/iudanet/storekeeper/pkg/api"
)

const blobURLMarker = "/blobs/"

// BlobStore загрузка и удаление файлов (PDF книг)
type BlobStore struct {
	client *Client
}

// NewBlobStore создает клиента файлового хранилища
func NewBlobStore(client *Client) *BlobStore {
	return &BlobStore{client: client}
}

// Upload загружает файл по пути path и возвращает его публичный URL
func (b *BlobStore) Upload(ctx context.Context, path string, data []byte) (string, error) {
	resp, err := b.UploadWithInfo(ctx, path, data)
	if err != nil {
		return "", err
	}
	return resp.URL, nil
}

// UploadWithInfo загружает файл и возвращает полный ответ сервера (с контрольной суммой)
func (b *BlobStore) UploadWithInfo(ctx context.Context, path string, data []byte) (*api.BlobResponse, error) {
	path = strings.Trim(path, "/")
	if path == "" {
		return nil, fmt.Errorf("blob path is required")
	}

	var resp api.BlobResponse
	err := b.client.do(ctx, http.MethodPut, "/api/v1/blobs/"+escapePath(path),
		http.DetectContentType(data), bytes.NewReader(data), &resp)
	if err != nil {
		return nil, fmt.Errorf("upload %s failed: %w", path, err)
	}
	return &resp, nil
}

// Delete удаляет файл по его публичному URL
func (b *BlobStore) Delete(ctx context.Context, blobURL string) error {
	path, err := BlobPath(blobURL)
	if err != nil {
		return err
	}

	if err := b.client.doRequest(ctx, http.MethodDelete, "/api/v1/blobs/"+escapePath(path), nil, nil); err != nil {
		return fmt.Errorf("delete %s failed: %w", path, err)
	}
	return nil
}

// BlobPath извлекает путь файла внутри хранилища из его URL
func BlobPath(blobURL string) (string, error) {
	u, err := url.Parse(blobURL)
	if err != nil {
		return "", fmt.Errorf("invalid blob url %q: %w", blobURL, err)
	}
	_, path, found := strings.Cut(u.Path, blobURLMarker)
	if !found || path == "" {
		return "", fmt.Errorf("invalid blob url %q: no %s segment", blobURL, blobURLMarker)
	}
	return path, nil
}

func escapePath(path string) string {
	parts := strings.Split(path, "/")
	for i, p := range parts {
		parts[i] = url.PathEscape(p)
	}
	return strings.Join(parts, "/")
}
