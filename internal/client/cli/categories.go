package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/iudanet/storekeeper/internal/client/data"
	"github.com/iudanet/storekeeper/internal/client/optimistic"
	"github.com/iudanet/storekeeper/internal/models"
)

func (c *Cli) runCategories(ctx context.Context, args []string) error {
	sub, rest, err := subcommand(args, "categories")
	if err != nil {
		return err
	}

	s, err := openSession(ctx, c, models.CollectionCategories, c.categories, c.pageSize)
	if err != nil {
		return err
	}
	defer s.close()

	switch sub {
	case "list", "ls":
		fs := c.flagSet("categories list")
		query := fs.String("q", "", "search text")
		page := fs.Int("page", 1, "page number")
		if err := parseFlags(fs, rest); err != nil {
			return err
		}
		return c.render(categoriesTemplate, pageOf(s.engine, "", *query, *page))
	case "add", "create":
		return c.saveCategory(ctx, s.engine, false, rest)
	case "edit", "update":
		return c.saveCategory(ctx, s.engine, true, rest)
	case "delete", "rm":
		return deleteEntity(ctx, c, s.engine, "category", rest)
	default:
		return fmt.Errorf("%w: unknown categories subcommand %q", ErrUsage, sub)
	}
}

func (c *Cli) saveCategory(ctx context.Context, eng *optimistic.Engine[models.Category], edit bool, args []string) error {
	name := "categories add"
	if edit {
		name = "categories edit"
	}
	fs := c.flagSet(name)
	var flags data.CategoryInput
	fs.StringVar(&flags.Name, "name", "", "category name")
	fs.StringVar(&flags.Description, "description", "", "description")

	var id string
	if edit {
		var err error
		if id, err = parseWithID(fs, args); err != nil {
			return err
		}
	} else if err := parseFlags(fs, args); err != nil {
		return err
	}

	in := flags
	if id != "" {
		current, ok := eng.Get(id)
		if !ok {
			return fmt.Errorf("category %s: %w", id, optimistic.ErrEntityNotFound)
		}
		in = data.CategoryInput{Name: current.Name, Description: current.Description}
		set := visited(fs)
		if set["name"] {
			in.Name = flags.Name
		}
		if set["description"] {
			in.Description = flags.Description
		}
	}

	res, err := data.SaveCategory(ctx, eng, id, in)
	if err != nil {
		return err
	}
	return c.report(ctx, fmt.Sprintf("category %q", strings.TrimSpace(in.Name)), res)
}
