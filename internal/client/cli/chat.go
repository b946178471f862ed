package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/iudanet/storekeeper/internal/client/chat"
	"github.com/iudanet/storekeeper/internal/client/connectivity"
	"github.com/iudanet/storekeeper/internal/client/sync"
	"github.com/iudanet/storekeeper/internal/models"
)

// ErrNoClassifier чат без настроенного классификатора
var ErrNoClassifier = errors.New("chat requires STOREKEEPER_GEMINI_API_KEY")

func (c *Cli) runChat(ctx context.Context) error {
	if c.classifier == nil {
		return ErrNoClassifier
	}

	s, err := openSession(ctx, c, models.CollectionCategories, c.categories, c.pageSize)
	if err != nil {
		return err
	}
	defer s.close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	c.monitor.OnChange(func(ev connectivity.Event) {
		c.io.Println(connectivityNotice(ev))
	})
	go c.monitor.Run(ctx)

	var store chat.Store
	if !c.offline() {
		store = c.chat
		if err := s.engine.Watch(ctx, c.categories); err != nil {
			c.logger.Warn("Live category updates unavailable", "error", err)
		}
	}

	transcript := chat.NewTranscript(c.clock, store, c.logger)
	history, err := sync.Load[models.ChatMessage](ctx, c.sync, c.chat, models.CollectionChat, c.offline(), c.logger)
	if err != nil {
		c.logger.Warn("Chat history unavailable", "error", err)
	} else {
		transcript.Load(history.Items)
	}

	controller := chat.NewController(c.classifier, s.engine, transcript, c.logger)

	c.io.Println("=== Category assistant ===")
	c.io.Println("Ask to list, create, update or delete categories. Type 'reset' to cancel, 'exit' to quit.")

	prompt := ""
	if c.io.IsTerminal() {
		prompt = "> "
	}

	for {
		line, err := c.io.ReadInput(prompt)
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return fmt.Errorf("failed to read message: %w", err)
		}

		switch strings.ToLower(line) {
		case "exit", "quit":
			return c.saveChatHistory(ctx, transcript)
		case "reset":
			controller.Reset()
			c.io.Println("Operation cancelled.")
			continue
		}

		for _, reply := range controller.Handle(ctx, line) {
			c.io.Println(reply.Text)
		}
		if ctx.Err() != nil {
			break
		}
	}

	return c.saveChatHistory(ctx, transcript)
}

// saveChatHistory сохраняет журнал в локальный кэш для offline чтения
func (c *Cli) saveChatHistory(ctx context.Context, transcript *chat.Transcript) error {
	if err := c.sync.SaveSnapshot(context.WithoutCancel(ctx), models.CollectionChat, transcript.Messages()); err != nil {
		c.logger.Warn("Failed to cache chat history", "error", err)
	}
	return nil
}

// connectivityNotice строка для пользователя о переходе online/offline
func connectivityNotice(ev connectivity.Event) string {
	if ev.Offline {
		return "Connection lost: changes are kept locally until the server is back."
	}
	return "Connection restored."
}
