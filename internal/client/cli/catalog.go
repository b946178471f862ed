package cli

import (
	"context"

	"github.com/iudanet/storekeeper/internal/client/data"
	"github.com/iudanet/storekeeper/internal/client/sync"
	"github.com/iudanet/storekeeper/internal/client/view"
	"github.com/iudanet/storekeeper/internal/models"
)

// CatalogPageSize товаров на странице каталога
const CatalogPageSize = 4

type catalogView struct {
	Selected   string
	Query      string
	Categories []string
	Items      []models.Product
	Page       int
	Pages      int
}

func (c *Cli) runCatalog(ctx context.Context, args []string) error {
	fs := c.flagSet("catalog")
	category := fs.String("category", view.AllCategories, "category filter")
	query := fs.String("q", "", "search text")
	page := fs.Int("page", 1, "page number")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	s, err := openSession(ctx, c, models.CollectionProducts, c.products, CatalogPageSize)
	if err != nil {
		return err
	}
	defer s.close()

	names := []string{view.AllCategories}
	cats, err := sync.Load[models.Category](ctx, c.sync, c.categories, models.CollectionCategories, c.offline(), c.logger)
	if err != nil {
		c.logger.Warn("Catalog without category list", "error", err)
	} else {
		for _, cat := range cats.Items {
			names = append(names, cat.Name)
		}
	}

	p := pageOf(s.engine, *category, *query, *page)
	selected := *category
	if selected == "" {
		selected = view.AllCategories
	}

	return c.render(catalogTemplate, catalogView{
		Selected:   selected,
		Query:      *query,
		Categories: names,
		Items:      p.Items,
		Page:       p.Page,
		Pages:      p.Pages,
	})
}

func (c *Cli) runStats(ctx context.Context) error {
	s, err := openSession(ctx, c, models.CollectionProducts, c.products, c.pageSize)
	if err != nil {
		return err
	}
	defer s.close()

	return c.render(statsTemplate, data.ComputeStats(s.engine.All()))
}
