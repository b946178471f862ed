package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"strings"
)

// ErrUsage неверные аргументы команды
var ErrUsage = errors.New("invalid usage")

// Run выполняет команду
func (c *Cli) Run(ctx context.Context, command string, args []string) error {
	switch command {
	case "login":
		return c.runLogin(ctx, args)
	case "logout":
		return c.runLogout(ctx)
	case "status":
		return c.runStatus(ctx)
	case "products", "product":
		return c.runProducts(ctx, args)
	case "categories", "category":
		return c.runCategories(ctx, args)
	case "books", "book":
		return c.runBooks(ctx, args)
	case "catalog":
		return c.runCatalog(ctx, args)
	case "stats":
		return c.runStats(ctx)
	case "export":
		return c.runExport(ctx, args)
	case "watch":
		return c.runWatch(ctx, args)
	case "chat":
		return c.runChat(ctx)
	case "pending":
		return c.runPending(ctx, args)
	case "help", "-h", "--help":
		c.PrintUsage()
		return nil
	default:
		c.PrintUsage()
		return fmt.Errorf("%w: unknown command %q", ErrUsage, command)
	}
}

// PrintUsage печатает справку
func (c *Cli) PrintUsage() {
	_ = c.render(usageTemplate, nil)
}

func (c *Cli) flagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(c.io)
	return fs
}

// parseWithID разбирает "ID [flags]" или "[flags] ID"
func parseWithID(fs *flag.FlagSet, args []string) (string, error) {
	var id string
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		id, args = args[0], args[1:]
	}
	if err := fs.Parse(args); err != nil {
		return "", fmt.Errorf("%w: %v", ErrUsage, err)
	}
	if id == "" && fs.NArg() > 0 {
		id = fs.Arg(0)
	}
	if id == "" {
		return "", fmt.Errorf("%w: %s requires an id", ErrUsage, fs.Name())
	}
	return id, nil
}

func parseFlags(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}
	return nil
}

// visited имена флагов, заданных явно
func visited(fs *flag.FlagSet) map[string]bool {
	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	return set
}

func subcommand(args []string, what string) (string, []string, error) {
	if len(args) == 0 {
		return "", nil, fmt.Errorf("%w: missing %s subcommand (list, add, edit, delete)", ErrUsage, what)
	}
	return args[0], args[1:], nil
}
