package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/iudanet/storekeeper/internal/client/data"
	"github.com/iudanet/storekeeper/internal/client/optimistic"
	"github.com/iudanet/storekeeper/internal/models"
)

func (c *Cli) runBooks(ctx context.Context, args []string) error {
	sub, rest, err := subcommand(args, "books")
	if err != nil {
		return err
	}

	s, err := openSession(ctx, c, models.CollectionBooks, c.books, c.pageSize)
	if err != nil {
		return err
	}
	defer s.close()

	// книги меняются только после ответа сервера
	if sub != "list" && sub != "ls" && c.offline() {
		return fmt.Errorf("books can only be changed online")
	}
	books := data.NewBooks(s.engine, c.blobs, c.logger)

	switch sub {
	case "list", "ls":
		fs := c.flagSet("books list")
		query := fs.String("q", "", "search text")
		genre := fs.String("genre", "", "genre filter")
		page := fs.Int("page", 1, "page number")
		if err := parseFlags(fs, rest); err != nil {
			return err
		}
		return c.render(booksTemplate, pageOf(s.engine, *genre, *query, *page))
	case "add", "create":
		return c.addBook(ctx, books, rest)
	case "edit", "update":
		return c.editBook(ctx, s.engine, books, rest)
	case "delete", "rm":
		id, err := parseWithID(c.flagSet("books delete"), rest)
		if err != nil {
			return err
		}
		if err := books.Delete(ctx, id); err != nil {
			return err
		}
		c.io.Printf("✓ book %s deleted\n", id)
		return nil
	default:
		return fmt.Errorf("%w: unknown books subcommand %q", ErrUsage, sub)
	}
}

func readBookFile(path string) (*data.File, error) {
	if path == "" {
		return nil, nil
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return &data.File{Name: filepath.Base(path), Data: content}, nil
}

func (c *Cli) addBook(ctx context.Context, books *data.Books, args []string) error {
	fs := c.flagSet("books add")
	var in data.BookInput
	fs.StringVar(&in.Name, "name", "", "title")
	fs.StringVar(&in.Author, "author", "", "author")
	fs.StringVar(&in.Genre, "genre", "", "genre")
	file := fs.String("file", "", "PDF file")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	f, err := readBookFile(*file)
	if err != nil {
		return err
	}

	id, err := books.Create(ctx, in, f)
	if err != nil {
		return err
	}
	c.io.Printf("✓ book %q saved (id %s)\n", in.Name, id)
	return nil
}

func (c *Cli) editBook(ctx context.Context, eng *optimistic.Engine[models.Book], books *data.Books, args []string) error {
	fs := c.flagSet("books edit")
	var flags data.BookInput
	fs.StringVar(&flags.Name, "name", "", "title")
	fs.StringVar(&flags.Author, "author", "", "author")
	fs.StringVar(&flags.Genre, "genre", "", "genre")
	file := fs.String("file", "", "new PDF file")
	id, err := parseWithID(fs, args)
	if err != nil {
		return err
	}

	current, ok := eng.Get(id)
	if !ok {
		return fmt.Errorf("book %s: %w", id, optimistic.ErrEntityNotFound)
	}
	in := data.BookInput{Name: current.Name, Author: current.Author, Genre: current.Genre}
	set := visited(fs)
	if set["name"] {
		in.Name = flags.Name
	}
	if set["author"] {
		in.Author = flags.Author
	}
	if set["genre"] {
		in.Genre = flags.Genre
	}

	f, err := readBookFile(*file)
	if err != nil {
		return err
	}

	if err := books.Edit(ctx, id, in, f); err != nil {
		return err
	}
	c.io.Printf("✓ book %q updated\n", in.Name)
	return nil
}
