// Package blob файловое хранилище вложений (PDF книг) с публичными URL.
package blob

import (
	"bytes"
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"

	pdfapi "github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"golang.org/x/crypto/blake2b"

	"github.com/iudanet/storekeeper/pkg/api"
)

// URLPrefix путь, по которому файлы раздаются публично
const URLPrefix = "/blobs/"

var (
	ErrInvalidPath = errors.New("invalid blob path")
	ErrNotFound    = errors.New("blob not found")
	ErrTooLarge    = errors.New("blob too large")
	ErrInvalidPDF  = errors.New("invalid pdf")
)

// Store хранит файлы в каталоге dir
type Store struct {
	logger    *slog.Logger
	dir       string
	publicURL string
	maxSize   int64
}

// New создает хранилище, каталог создается при необходимости
func New(dir, publicURL string, maxSize int64, logger *slog.Logger) (*Store, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create blob dir: %w", err)
	}
	return &Store{
		logger:    logger,
		dir:       dir,
		publicURL: strings.TrimRight(publicURL, "/"),
		maxSize:   maxSize,
	}, nil
}

// Dir корневой каталог хранилища
func (s *Store) Dir() string {
	return s.dir
}

// MaxSize предел размера файла в байтах (0 - без ограничения)
func (s *Store) MaxSize() int64 {
	return s.maxSize
}

// CleanPath нормализует относительный путь файла и отклоняет выход за корень
func CleanPath(p string) (string, error) {
	p = strings.Trim(p, "/")
	if p == "" || strings.Contains(p, "\\") {
		return "", ErrInvalidPath
	}
	cleaned := path.Clean(p)
	if cleaned == "." || cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return "", ErrInvalidPath
	}
	for _, part := range strings.Split(cleaned, "/") {
		if strings.HasPrefix(part, ".") {
			return "", ErrInvalidPath
		}
	}
	return cleaned, nil
}

// Checksum blake2b-256 содержимого, hex
func Checksum(data []byte) string {
	sum := blake2b.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// URL публичный адрес файла
func (s *Store) URL(p string) string {
	return s.publicURL + URLPrefix + p
}

// Put сохраняет файл, заменяя существующий. PDF проверяется перед записью.
func (s *Store) Put(ctx context.Context, p string, data []byte, contentType string) (*api.BlobResponse, error) {
	p, err := CleanPath(p)
	if err != nil {
		return nil, err
	}
	if s.maxSize > 0 && int64(len(data)) > s.maxSize {
		return nil, fmt.Errorf("%w: %d bytes, limit %d", ErrTooLarge, len(data), s.maxSize)
	}

	if isPDF(p, contentType) {
		if err := ValidatePDF(data); err != nil {
			return nil, err
		}
	}

	target := filepath.Join(s.dir, filepath.FromSlash(p))
	if err := os.MkdirAll(filepath.Dir(target), 0o750); err != nil {
		return nil, fmt.Errorf("failed to create blob dir: %w", err)
	}
	if err := writeFile(target, data); err != nil {
		return nil, err
	}

	resp := &api.BlobResponse{
		URL:      s.URL(p),
		Path:     p,
		Checksum: Checksum(data),
		Size:     int64(len(data)),
	}
	s.logger.InfoContext(ctx, "Blob stored", "path", p, "size", resp.Size, "checksum", resp.Checksum)
	return resp, nil
}

// Delete удаляет файл
func (s *Store) Delete(ctx context.Context, p string) error {
	p, err := CleanPath(p)
	if err != nil {
		return err
	}

	if err := os.Remove(filepath.Join(s.dir, filepath.FromSlash(p))); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete blob: %w", err)
	}
	s.logger.InfoContext(ctx, "Blob deleted", "path", p)
	return nil
}

// ValidatePDF проверяет структуру документа
func ValidatePDF(data []byte) error {
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		return fmt.Errorf("%w: missing header", ErrInvalidPDF)
	}
	conf := model.NewDefaultConfiguration()
	ctx, err := pdfapi.ReadValidateAndOptimize(bytes.NewReader(data), conf)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPDF, err)
	}
	if ctx.PageCount == 0 {
		return fmt.Errorf("%w: no pages", ErrInvalidPDF)
	}
	return nil
}

func isPDF(p, contentType string) bool {
	return strings.EqualFold(path.Ext(p), ".pdf") || strings.HasPrefix(contentType, "application/pdf")
}

// writeFile пишет во временный файл и переименовывает
func writeFile(target string, data []byte) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(target), ".upload-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write blob: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("failed to close blob: %w", err)
	}
	if err = os.Rename(tmp.Name(), target); err != nil {
		return fmt.Errorf("failed to move blob: %w", err)
	}
	return nil
}
