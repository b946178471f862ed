package cli

import (
	"context"
	"fmt"
	"log/slog"
	"text/template"

	"github.com/iudanet/storekeeper/internal/client/auth"
	"github.com/iudanet/storekeeper/internal/client/chat"
	"github.com/iudanet/storekeeper/internal/client/connectivity"
	"github.com/iudanet/storekeeper/internal/client/data"
	"github.com/iudanet/storekeeper/internal/client/iocli"
	"github.com/iudanet/storekeeper/internal/client/optimistic"
	"github.com/iudanet/storekeeper/internal/client/sync"
	"github.com/iudanet/storekeeper/internal/clock"
	"github.com/iudanet/storekeeper/internal/models"
)

// Remote удаленная коллекция, как ее видит CLI (api.Collection)
type Remote[T any] interface {
	optimistic.Remote[T]
	optimistic.Subscriber[T]
	sync.Lister[T]
}

// Deps зависимости CLI
type Deps struct {
	IO         iocli.IO
	Auth       auth.Service
	Sync       sync.Service
	Monitor    *connectivity.Monitor
	Blobs      data.BlobStore
	Classifier chat.Classifier // nil, если ключ Gemini не задан
	Products   Remote[models.Product]
	Categories Remote[models.Category]
	Books      Remote[models.Book]
	Chat       Remote[models.ChatMessage]
	Clock      *clock.Clock
	Logger     *slog.Logger
	ServerURL  string
	ExportDir  string
	PageSize   int
}

type Cli struct {
	io         iocli.IO
	auth       auth.Service
	sync       sync.Service
	monitor    *connectivity.Monitor
	blobs      data.BlobStore
	classifier chat.Classifier
	products   Remote[models.Product]
	categories Remote[models.Category]
	books      Remote[models.Book]
	chat       Remote[models.ChatMessage]
	clock      *clock.Clock
	logger     *slog.Logger
	serverURL  string
	exportDir  string
	pageSize   int
}

func New(d Deps) *Cli {
	if d.Clock == nil {
		d.Clock = clock.New()
	}
	if d.Logger == nil {
		d.Logger = slog.Default()
	}
	if d.PageSize <= 0 {
		d.PageSize = 4
	}
	if d.ExportDir == "" {
		d.ExportDir = "."
	}
	return &Cli{
		io:         d.IO,
		auth:       d.Auth,
		sync:       d.Sync,
		monitor:    d.Monitor,
		blobs:      d.Blobs,
		classifier: d.Classifier,
		products:   d.Products,
		categories: d.Categories,
		books:      d.Books,
		chat:       d.Chat,
		clock:      d.Clock,
		logger:     d.Logger,
		serverURL:  d.ServerURL,
		exportDir:  d.ExportDir,
		pageSize:   d.PageSize,
	}
}

func (c *Cli) offline() bool {
	return c.monitor.State().Offline()
}

// notify печатает уведомления движка
func (c *Cli) notify(n optimistic.Notice) {
	switch n.Level {
	case optimistic.NoticeError:
		c.io.Printf("✗ [%s] %s\n", n.Collection, n.Message)
	case optimistic.NoticeSuccess:
		c.io.Printf("✓ [%s] %s\n", n.Collection, n.Message)
	default:
		c.io.Printf("• [%s] %s\n", n.Collection, n.Message)
	}
}

// session движок коллекции, загруженный с сервера или из локального кэша
type session[T models.Entity[T]] struct {
	engine    *optimistic.Engine[T]
	remoteErr error
	fromCache bool
}

func (s *session[T]) close() {
	s.engine.Wait()
	s.engine.Close()
}

// openSession создает движок, загружает коллекцию и подключает сохранение снимков в кэш
func openSession[T models.Entity[T]](ctx context.Context, c *Cli, collection string, remote Remote[T], pageSize int) (*session[T], error) {
	eng := optimistic.New(optimistic.Config[T]{
		Remote:       remote,
		Connectivity: c.monitor.State(),
		Pending:      c.sync,
		Notifier:     optimistic.NotifierFunc(c.notify),
		Clock:        c.clock,
		Logger:       c.logger,
		Collection:   collection,
		PageSize:     pageSize,
	})

	loaded, err := sync.Load[T](ctx, c.sync, remote, collection, c.offline(), c.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", collection, err)
	}
	eng.Reset(loaded.Items)
	eng.Observe(sync.Persister[T](ctx, c.sync, collection, c.logger))

	if loaded.FromCache {
		if loaded.RemoteErr != nil {
			c.io.Printf("(server unavailable: %v; showing cached %s)\n", loaded.RemoteErr, collection)
		} else {
			c.io.Printf("(offline: showing cached %s)\n", collection)
		}
	}

	return &session[T]{engine: eng, fromCache: loaded.FromCache, remoteErr: loaded.RemoteErr}, nil
}

// report ждет удаленной части мутации и печатает итог
func (c *Cli) report(ctx context.Context, what string, res *optimistic.Result) error {
	outcome, err := res.Wait(ctx)
	switch outcome {
	case optimistic.OutcomeConfirmed:
		if id := res.ServerID(); id != "" {
			c.io.Printf("✓ %s saved (id %s)\n", what, id)
		} else {
			c.io.Printf("✓ %s saved\n", what)
		}
	case optimistic.OutcomeQueued:
		c.io.Printf("✓ %s saved locally (id %s); it will not be sent until you run it online\n", what, res.EntityID())
	case optimistic.OutcomeNoOp:
		c.io.Printf("Nothing to change for %s\n", what)
	case optimistic.OutcomeRejected:
		return fmt.Errorf("%s was rejected by the server: %w", what, err)
	default:
		return fmt.Errorf("%s: %w", what, err)
	}
	return nil
}

func (c *Cli) render(tmpl *template.Template, v any) error {
	if err := tmpl.Execute(c.io, v); err != nil {
		return fmt.Errorf("failed to render output: %w", err)
	}
	return nil
}
