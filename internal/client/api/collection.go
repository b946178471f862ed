package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/iudanet/storekeeper/pkg/api"
)

const (
	defaultPollWait   = 20 * time.Second
	defaultRetryDelay = time.Second
	maxRetryDelay     = 30 * time.Second
)

// Collection типизированный доступ к одной коллекции документов сервера
type Collection[T any] struct {
	client     *Client
	name       string
	pollWait   time.Duration
	retryDelay time.Duration
}

// NewCollection создает клиента коллекции name
func NewCollection[T any](client *Client, name string) *Collection[T] {
	return &Collection[T]{
		client:     client,
		name:       name,
		pollWait:   defaultPollWait,
		retryDelay: defaultRetryDelay,
	}
}

// Name имя коллекции
func (c *Collection[T]) Name() string {
	return c.name
}

func (c *Collection[T]) basePath() string {
	return "/api/v1/collections/" + url.PathEscape(c.name)
}

func (c *Collection[T]) itemPath(id string) string {
	return c.basePath() + "/" + url.PathEscape(id)
}

// List возвращает все записи коллекции
func (c *Collection[T]) List(ctx context.Context) ([]T, error) {
	items, _, err := c.list(ctx, "")
	return items, err
}

func (c *Collection[T]) list(ctx context.Context, query string) ([]T, int64, error) {
	var resp api.ListResponse
	path := c.basePath()
	if query != "" {
		path += "?" + query
	}
	if err := c.client.doRequest(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, 0, fmt.Errorf("list %s failed: %w", c.name, err)
	}

	items := make([]T, 0, len(resp.Items))
	for _, raw := range resp.Items {
		var item T
		if err := json.Unmarshal(raw, &item); err != nil {
			return nil, 0, fmt.Errorf("failed to decode %s item: %w", c.name, err)
		}
		items = append(items, item)
	}
	return items, resp.Revision, nil
}

// Get возвращает одну запись
func (c *Collection[T]) Get(ctx context.Context, id string) (T, error) {
	var item T
	if err := c.client.doRequest(ctx, http.MethodGet, c.itemPath(id), nil, &item); err != nil {
		return item, fmt.Errorf("get %s/%s failed: %w", c.name, id, err)
	}
	return item, nil
}

// Create создает запись и возвращает серверный id
func (c *Collection[T]) Create(ctx context.Context, entity T) (string, error) {
	var resp api.CreateResponse
	if err := c.client.doRequest(ctx, http.MethodPost, c.basePath(), entity, &resp); err != nil {
		return "", fmt.Errorf("create in %s failed: %w", c.name, err)
	}
	if resp.ID == "" {
		return "", fmt.Errorf("create in %s: server returned empty id", c.name)
	}
	return resp.ID, nil
}

// Update заменяет запись целиком
func (c *Collection[T]) Update(ctx context.Context, id string, entity T) error {
	if err := c.client.doRequest(ctx, http.MethodPut, c.itemPath(id), entity, nil); err != nil {
		return fmt.Errorf("update %s/%s failed: %w", c.name, id, err)
	}
	return nil
}

// Delete удаляет запись
func (c *Collection[T]) Delete(ctx context.Context, id string) error {
	if err := c.client.doRequest(ctx, http.MethodDelete, c.itemPath(id), nil, nil); err != nil {
		return fmt.Errorf("delete %s/%s failed: %w", c.name, id, err)
	}
	return nil
}

// Subscribe загружает текущий снимок, передает его в onChange и дальше
// следит за коллекцией long-poll запросами: каждый новый снимок передается целиком.
// Возвращенная функция отписывается и ждет завершения фоновой горутины.
func (c *Collection[T]) Subscribe(ctx context.Context, onChange func([]T)) (func(), error) {
	items, rev, err := c.list(ctx, "")
	if err != nil {
		return nil, err
	}
	onChange(items)

	ctx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		c.poll(ctx, rev, onChange)
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			cancel()
			wg.Wait()
		})
	}, nil
}

func (c *Collection[T]) poll(ctx context.Context, rev int64, onChange func([]T)) {
	delay := c.retryDelay
	logger := c.client.logger.With("collection", c.name)

	for {
		q := url.Values{}
		q.Set("wait", c.pollWait.String())
		q.Set("rev", strconv.FormatInt(rev, 10))

		items, newRev, err := c.list(ctx, q.Encode())
		if ctx.Err() != nil {
			return
		}
		if err != nil {
			logger.Warn("Subscription poll failed, retrying", "error", err, "retry_in", delay)
			if errors.Is(err, ErrUnauthorized) {
				logger.Error("Subscription stopped: token rejected")
				return
			}
			select {
			case <-ctx.Done():
				return
			case <-time.After(delay):
			}
			delay = min(delay*2, maxRetryDelay)
			continue
		}
		delay = c.retryDelay

		// сервер вернул ту же ревизию: ожидание истекло без изменений
		if newRev == rev {
			continue
		}
		rev = newRev
		onChange(items)
	}
}
