package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/iudanet/storekeeper/internal/models"
)

func (c *Cli) runWatch(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: watch requires a collection", ErrUsage)
	}
	collection := args[0]

	fs := c.flagSet("watch")
	duration := fs.Duration("for", 0, "stop after this duration (0 = until interrupted)")
	if err := parseFlags(fs, args[1:]); err != nil {
		return err
	}
	if c.offline() {
		return fmt.Errorf("watch needs a server connection")
	}

	if *duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, *duration)
		defer cancel()
	}

	switch collection {
	case models.CollectionProducts:
		return watchCollection(ctx, c, collection, c.products, func(p models.Product) string {
			return fmt.Sprintf("%s - $%s [%s]", p.Name, models.FormatPrice(p.Price), p.Category)
		})
	case models.CollectionCategories:
		return watchCollection(ctx, c, collection, c.categories, func(cat models.Category) string {
			return cat.Name + ": " + cat.Description
		})
	case models.CollectionBooks:
		return watchCollection(ctx, c, collection, c.books, func(b models.Book) string {
			return fmt.Sprintf("%s by %s [%s]", b.Name, b.Author, b.Genre)
		})
	case models.CollectionChat:
		return watchCollection(ctx, c, collection, c.chat, func(m models.ChatMessage) string {
			return fmt.Sprintf("[%s] %s", m.Sender, m.Text)
		})
	default:
		return fmt.Errorf("%w: unknown collection %q", ErrUsage, collection)
	}
}

// watchCollection печатает каждый снимок подписки до отмены ctx
func watchCollection[T models.Entity[T]](ctx context.Context, c *Cli, collection string, remote Remote[T], line func(T) string) error {
	s, err := openSession(ctx, c, collection, remote, c.pageSize)
	if err != nil {
		return err
	}
	defer s.close()

	s.engine.Observe(func(items []T) {
		c.io.Printf("--- %s: %d item(s) at %s ---\n", collection, len(items), time.Now().Format(time.TimeOnly))
		for _, item := range items {
			c.io.Printf("  %s\n", line(item))
		}
	})
	if err := s.engine.Watch(ctx, remote); err != nil {
		return err
	}

	<-ctx.Done()
	return nil
}
