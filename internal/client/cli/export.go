package cli

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/iudanet/storekeeper/internal/client/export"
	"github.com/iudanet/storekeeper/internal/models"
)

type exportable[T any] interface {
	models.Entity[T]
	export.Record
}

func (c *Cli) runExport(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: export requires a collection (products, categories, books)", ErrUsage)
	}
	collection := args[0]

	fs := c.flagSet("export")
	out := fs.String("o", "", "output file")
	query := fs.String("q", "", "search text")
	category := fs.String("category", "", "category (genre for books)")
	if err := parseFlags(fs, args[1:]); err != nil {
		return err
	}

	path := *out
	if path == "" {
		path = filepath.Join(c.exportDir, export.DefaultFileName(collection))
	}

	var (
		n   int
		err error
	)
	switch collection {
	case models.CollectionProducts:
		n, err = exportCollection(ctx, c, collection, c.products, path, *category, *query)
	case models.CollectionCategories:
		n, err = exportCollection(ctx, c, collection, c.categories, path, *category, *query)
	case models.CollectionBooks:
		n, err = exportCollection(ctx, c, collection, c.books, path, *category, *query)
	default:
		return fmt.Errorf("%w: cannot export %q", ErrUsage, collection)
	}
	if err != nil {
		return err
	}

	c.io.Printf("✓ %d %s exported to %s\n", n, collection, path)
	return nil
}

// exportCollection выгружает отфильтрованный список (все страницы)
func exportCollection[T exportable[T]](ctx context.Context, c *Cli, collection string, remote Remote[T], path, category, query string) (int, error) {
	s, err := openSession(ctx, c, collection, remote, c.pageSize)
	if err != nil {
		return 0, err
	}
	defer s.close()

	s.engine.SetCategory(category)
	s.engine.SetQuery(query)
	items := s.engine.Filtered()

	if err := export.ToFile(path, items); err != nil {
		return 0, fmt.Errorf("failed to export %s: %w", collection, err)
	}
	return len(items), nil
}
