package cli

import (
	"context"
	"fmt"
	"time"
)

func (c *Cli) runPending(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: pending requires list or clear", ErrUsage)
	}
	var collection string
	if len(args) > 1 {
		collection = args[1]
	}

	switch args[0] {
	case "list", "ls":
		items, err := c.sync.ListPending(ctx, collection)
		if err != nil {
			return fmt.Errorf("failed to list pending changes: %w", err)
		}
		if len(items) == 0 {
			c.io.Println("No offline changes recorded.")
			return nil
		}

		c.io.Printf("%d offline change(s):\n", len(items))
		for _, m := range items {
			c.io.Printf("%4d. %s %s %s at %s\n", m.Seq, m.Collection, m.Kind, m.EntityID,
				time.UnixMilli(m.Timestamp).Format(time.RFC3339))
			if len(m.Payload) > 0 {
				c.io.Printf("      %s\n", m.Payload)
			}
		}
		return nil

	case "clear":
		n, err := c.sync.ClearPending(ctx, collection)
		if err != nil {
			return fmt.Errorf("failed to clear pending changes: %w", err)
		}
		c.io.Printf("✓ %d offline change(s) removed\n", n)
		return nil

	default:
		return fmt.Errorf("%w: unknown pending subcommand %q", ErrUsage, args[0])
	}
}
