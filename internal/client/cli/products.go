package cli

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/iudanet/storekeeper/internal/client/data"
	"github.com/iudanet/storekeeper/internal/client/optimistic"
	"github.com/iudanet/storekeeper/internal/models"
)

// pageView страница коллекции для шаблонов
type pageView[T any] struct {
	Filter string
	Items  []T
	Page   int
	Pages  int
	Total  int
}

func pageOf[T models.Entity[T]](eng *optimistic.Engine[T], category, query string, page int) pageView[T] {
	eng.SetCategory(category)
	eng.SetQuery(query)
	eng.SetPage(page)

	var filter []string
	if category != "" {
		filter = append(filter, "category="+category)
	}
	if query != "" {
		filter = append(filter, fmt.Sprintf("search=%q", query))
	}

	current, pages := eng.Page()
	return pageView[T]{
		Filter: strings.Join(filter, ", "),
		Items:  eng.Visible(),
		Page:   current,
		Pages:  pages,
		Total:  len(eng.Filtered()),
	}
}

func (c *Cli) runProducts(ctx context.Context, args []string) error {
	sub, rest, err := subcommand(args, "products")
	if err != nil {
		return err
	}

	s, err := openSession(ctx, c, models.CollectionProducts, c.products, c.pageSize)
	if err != nil {
		return err
	}
	defer s.close()

	switch sub {
	case "list", "ls":
		return c.listProducts(s.engine, rest)
	case "add", "create":
		return c.addProduct(ctx, s.engine, rest)
	case "edit", "update":
		return c.editProduct(ctx, s.engine, rest)
	case "delete", "rm":
		return deleteEntity(ctx, c, s.engine, "product", rest)
	default:
		return fmt.Errorf("%w: unknown products subcommand %q", ErrUsage, sub)
	}
}

func (c *Cli) listProducts(eng *optimistic.Engine[models.Product], args []string) error {
	fs := c.flagSet("products list")
	query := fs.String("q", "", "search text")
	category := fs.String("category", "", "category filter")
	page := fs.Int("page", 1, "page number")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	return c.render(productsTemplate, pageOf(eng, *category, *query, *page))
}

func (c *Cli) productFlags(name string) (*flag.FlagSet, *data.ProductInput) {
	fs := c.flagSet(name)
	in := &data.ProductInput{}
	fs.StringVar(&in.Name, "name", "", "product name")
	fs.StringVar(&in.Price, "price", "", "price")
	fs.StringVar(&in.Category, "category", "", "category name")
	fs.StringVar(&in.Image, "image", "", "image URL")
	return fs, in
}

func (c *Cli) addProduct(ctx context.Context, eng *optimistic.Engine[models.Product], args []string) error {
	fs, in := c.productFlags("products add")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	res, err := data.SaveProduct(ctx, eng, "", *in)
	if err != nil {
		return err
	}
	return c.report(ctx, fmt.Sprintf("product %q", strings.TrimSpace(in.Name)), res)
}

func (c *Cli) editProduct(ctx context.Context, eng *optimistic.Engine[models.Product], args []string) error {
	fs, flags := c.productFlags("products edit")
	id, err := parseWithID(fs, args)
	if err != nil {
		return err
	}

	current, ok := eng.Get(id)
	if !ok {
		return fmt.Errorf("product %s: %w", id, optimistic.ErrEntityNotFound)
	}

	// незаданные флаги берутся из текущей записи
	in := data.ProductInputFrom(current)
	set := visited(fs)
	if set["name"] {
		in.Name = flags.Name
	}
	if set["price"] {
		in.Price = flags.Price
	}
	if set["category"] {
		in.Category = flags.Category
	}
	if set["image"] {
		in.Image = flags.Image
	}

	res, err := data.SaveProduct(ctx, eng, id, in)
	if err != nil {
		return err
	}
	return c.report(ctx, fmt.Sprintf("product %q", strings.TrimSpace(in.Name)), res)
}

// deleteEntity удаление записи любой коллекции через движок
func deleteEntity[T models.Entity[T]](ctx context.Context, c *Cli, eng *optimistic.Engine[T], what string, args []string) error {
	id, err := parseWithID(c.flagSet(what+" delete"), args)
	if err != nil {
		return err
	}

	res, err := eng.Apply(ctx, models.Delete[T](id))
	if err != nil {
		return err
	}
	return c.report(ctx, what+" "+id, res)
}
