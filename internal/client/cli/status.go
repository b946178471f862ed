package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/iudanet/storekeeper/internal/client/storage"
	"github.com/iudanet/storekeeper/internal/models"
)

type collectionStatus struct {
	Name      string
	Refreshed string
}

type statusView struct {
	Server      string
	Subject     string
	Expires     string
	Collections []collectionStatus
	Pending     int
	Offline     bool
}

func (c *Cli) runStatus(ctx context.Context) error {
	v := statusView{
		Server:  c.serverURL,
		Offline: c.monitor.Check(ctx),
	}

	authData, err := c.auth.Current(ctx)
	switch {
	case err == nil:
		v.Subject = authData.Subject
		if v.Subject == "" {
			v.Subject = "(anonymous token)"
		}
		if authData.ExpiresAt > 0 {
			exp := time.Unix(authData.ExpiresAt, 0)
			v.Expires = exp.Format(time.RFC3339)
			if time.Now().After(exp) {
				v.Expires += ", EXPIRED"
			}
		}
	case errors.Is(err, storage.ErrAuthNotFound):
	default:
		return fmt.Errorf("failed to get auth data: %w", err)
	}

	for _, name := range models.Collections() {
		cs := collectionStatus{Name: name}
		ts, err := c.sync.LastRefresh(ctx, name)
		if err != nil {
			c.logger.Warn("Failed to read refresh time", "collection", name, "error", err)
		} else if !ts.IsZero() {
			cs.Refreshed = ts.Format(time.RFC3339)
		}
		v.Collections = append(v.Collections, cs)
	}

	// Не прерываем выполнение, если буфер не читается
	pending, err := c.sync.GetPendingSyncCount(ctx)
	if err != nil {
		c.io.Printf("Warning: failed to get pending count: %v\n", err)
	}
	v.Pending = pending

	return c.render(statusTemplate, v)
}
