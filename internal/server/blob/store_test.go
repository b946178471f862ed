package blob

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// minimalPDF одностраничный документ с корректной таблицей xref
func minimalPDF() []byte {
	objects := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [3 0 R] /Count 1 >>",
		"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] >>",
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(objects)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xref)
	return buf.Bytes()
}

func newTestStore(t *testing.T, maxSize int64) *Store {
	t.Helper()
	s, err := New(t.TempDir(), "http://files.test/", maxSize, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	return s
}

func TestCleanPath(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{name: "simple", in: "books/go.pdf", want: "books/go.pdf"},
		{name: "slashes trimmed", in: "/books/go.pdf/", want: "books/go.pdf"},
		{name: "dot segments", in: "books/./x/../go.pdf", want: "books/go.pdf"},
		{name: "escape root", in: "../etc/passwd", wantErr: true},
		{name: "escape after clean", in: "books/../../x", wantErr: true},
		{name: "hidden file", in: "books/.upload-1", wantErr: true},
		{name: "backslash", in: "books\\go.pdf", wantErr: true},
		{name: "empty", in: "/", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CleanPath(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidPath)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStore_PutDelete(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, 0)
	data := []byte("plain text attachment")

	resp, err := s.Put(ctx, "notes/readme.txt", data, "text/plain")
	require.NoError(t, err)
	assert.Equal(t, "http://files.test/blobs/notes/readme.txt", resp.URL)
	assert.Equal(t, "notes/readme.txt", resp.Path)
	assert.Equal(t, int64(len(data)), resp.Size)
	assert.Equal(t, Checksum(data), resp.Checksum)
	assert.Len(t, resp.Checksum, 64)

	stored, err := os.ReadFile(filepath.Join(s.Dir(), "notes", "readme.txt"))
	require.NoError(t, err)
	assert.Equal(t, data, stored)

	require.NoError(t, s.Delete(ctx, "notes/readme.txt"))
	assert.ErrorIs(t, s.Delete(ctx, "notes/readme.txt"), ErrNotFound)
}

func TestStore_PutPDF(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, 0)

	resp, err := s.Put(ctx, "books/go.pdf", minimalPDF(), "application/pdf")
	require.NoError(t, err)
	assert.Equal(t, "books/go.pdf", resp.Path)

	_, err = s.Put(ctx, "books/broken.pdf", []byte("not a pdf at all"), "application/octet-stream")
	assert.ErrorIs(t, err, ErrInvalidPDF)

	_, err = os.Stat(filepath.Join(s.Dir(), "books", "broken.pdf"))
	assert.True(t, os.IsNotExist(err), "rejected upload is not written")
}

func TestStore_TooLarge(t *testing.T) {
	s := newTestStore(t, 4)
	_, err := s.Put(context.Background(), "a.txt", []byte("12345"), "text/plain")
	assert.ErrorIs(t, err, ErrTooLarge)
}
