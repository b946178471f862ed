// Package export выгружает отфильтрованный список записей в табличный файл.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Record запись, которую можно выгрузить строкой таблицы
type Record interface {
	CSVHeader() []string
	CSVRecord() []string
}

// WriteCSV пишет заголовок и по строке на запись. Пустой список дает только заголовок.
func WriteCSV[T Record](w io.Writer, items []T) error {
	var zero T
	cw := csv.NewWriter(w)

	if err := cw.Write(zero.CSVHeader()); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, item := range items {
		if err := cw.Write(item.CSVRecord()); err != nil {
			return fmt.Errorf("failed to write csv record: %w", err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush csv: %w", err)
	}
	return nil
}

// ToFile создает (или перезаписывает) файл path и выгружает в него items
func ToFile[T Record](path string, items []T) (err error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create export dir: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close export file: %w", cerr)
		}
	}()

	return WriteCSV(f, items)
}

// DefaultFileName имя файла выгрузки коллекции
func DefaultFileName(collection string) string {
	return collection + ".csv"
}
