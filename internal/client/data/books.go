package data

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"path"

	"github.com/google/uuid"

	"github.com/iudanet/storekeeper/internal/client/optimistic"
	"github.com/iudanet/storekeeper/internal/models"
)

// BookBlobPrefix каталог PDF файлов книг в файловом хранилище
const BookBlobPrefix = "libros/"

var (
	// ErrPDFRequired новая книга без файла
	ErrPDFRequired = errors.New("pdf file is required")

	// ErrNotPDF файл не является PDF документом
	ErrNotPDF = errors.New("file is not a pdf document")
)

//go:generate moq -out blobstore_mock.go . BlobStore

// BlobStore файловое хранилище
type BlobStore interface {
	Upload(ctx context.Context, path string, data []byte) (string, error)
	Delete(ctx context.Context, url string) error
}

//go:generate moq -out bookwriter_mock.go . BookWriter

// BookWriter запись книг без оптимистичного применения (optimistic.Engine.ApplyDirect)
type BookWriter interface {
	ApplyDirect(ctx context.Context, m models.Mutation[models.Book]) (string, error)
	Get(id string) (models.Book, bool)
}

// File загружаемый файл
type File struct {
	Name string
	Data []byte
}

func (f *File) check() error {
	if f == nil || f.Name == "" || len(f.Data) == 0 {
		return ErrPDFRequired
	}
	if http.DetectContentType(f.Data) != "application/pdf" {
		return fmt.Errorf("%w: %s", ErrNotPDF, f.Name)
	}
	return nil
}

// blobPath путь файла в хранилище: ключ делает путь уникальным,
// иначе две книги с одинаковым именем файла делили бы один PDF
func (f *File) blobPath(key string) string {
	return BookBlobPrefix + key + "-" + path.Base(f.Name)
}

// Books управление книгами и их PDF файлами.
// Сначала выполняется запрос, локальное состояние меняется только после успеха.
type Books struct {
	writer BookWriter
	blobs  BlobStore
	logger *slog.Logger
	newKey func() string
}

// NewBooks создает сервис книг
func NewBooks(writer BookWriter, blobs BlobStore, logger *slog.Logger) *Books {
	return &Books{
		writer: writer,
		blobs:  blobs,
		logger: logger,
		newKey: uuid.NewString,
	}
}

// Create загружает PDF и создает запись книги. Возвращает серверный id.
func (b *Books) Create(ctx context.Context, in BookInput, file *File) (string, error) {
	if _, err := in.Build("", ""); err != nil {
		return "", err
	}
	if err := file.check(); err != nil {
		return "", err
	}

	url, err := b.blobs.Upload(ctx, file.blobPath(b.newKey()), file.Data)
	if err != nil {
		return "", fmt.Errorf("failed to upload pdf: %w", err)
	}

	book, err := in.Build("", url)
	if err != nil {
		return "", err
	}

	id, err := b.writer.ApplyDirect(ctx, models.Create(book))
	if err != nil {
		// запись не создана: файл больше никому не нужен
		b.deleteBlob(ctx, url)
		return "", err
	}

	b.logger.Info("Book created", "id", id, "pdf", url)
	return id, nil
}

// Edit обновляет книгу. Если передан новый файл, старый удаляется (ошибка удаления
// только логируется), новый загружается.
func (b *Books) Edit(ctx context.Context, id string, in BookInput, file *File) error {
	current, ok := b.writer.Get(id)
	if !ok {
		return fmt.Errorf("book %s: %w", id, optimistic.ErrEntityNotFound)
	}

	url := current.PDFURL
	if _, err := in.Build(id, url); err != nil {
		return err
	}

	if file != nil {
		if err := file.check(); err != nil {
			return err
		}
		if url != "" {
			b.deleteBlob(ctx, url)
		}

		newURL, err := b.blobs.Upload(ctx, file.blobPath(b.newKey()), file.Data)
		if err != nil {
			return fmt.Errorf("failed to upload pdf: %w", err)
		}
		url = newURL
	}

	book, err := in.Build(id, url)
	if err != nil {
		return err
	}

	if _, err := b.writer.ApplyDirect(ctx, models.Update(id, book)); err != nil {
		return err
	}

	b.logger.Info("Book updated", "id", id)
	return nil
}

// Delete удаляет PDF (ошибка только логируется) и запись книги
func (b *Books) Delete(ctx context.Context, id string) error {
	current, ok := b.writer.Get(id)
	if !ok {
		return fmt.Errorf("book %s: %w", id, optimistic.ErrEntityNotFound)
	}

	if current.PDFURL != "" {
		b.deleteBlob(ctx, current.PDFURL)
	}

	if _, err := b.writer.ApplyDirect(ctx, models.Delete[models.Book](id)); err != nil {
		return err
	}

	b.logger.Info("Book deleted", "id", id)
	return nil
}

func (b *Books) deleteBlob(ctx context.Context, url string) {
	if err := b.blobs.Delete(ctx, url); err != nil {
		b.logger.Warn("Failed to delete pdf", "url", url, "error", err)
	}
}
