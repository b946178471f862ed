package export

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/storekeeper/internal/models"
)

func TestWriteCSV_Products(t *testing.T) {
	products := []models.Product{
		{ID: "p1", Name: "Hammer, steel", Price: 10.5, Category: "Tools"},
		{ID: "p2", Name: "Pipe", Price: 4, Category: "Plumbing"},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, products))

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 3)
	assert.Equal(t, "id,name,price,category,image", string(lines[0]))
	assert.Contains(t, string(lines[1]), `"Hammer, steel"`)
	assert.Contains(t, string(lines[1]), "10.5")
}

func TestWriteCSV_EmptyHasHeader(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV[models.Category](&buf, nil))
	assert.Equal(t, strings.Join(models.Category{}.CSVHeader(), ",")+"\n", buf.String())
}

func TestToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", DefaultFileName("books"))
	books := []models.Book{{ID: "b1", Name: "Manual", Author: "Ana", Genre: "DIY", PDFURL: "http://h/blobs/libros/m.pdf"}}

	require.NoError(t, ToFile(path, books))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "http://h/blobs/libros/m.pdf")
}
