package cli

import (
	"context"
	"fmt"
	"time"
)

func (c *Cli) runLogin(ctx context.Context, args []string) error {
	c.io.Println("=== Login ===")

	var token string
	if len(args) > 0 {
		token = args[0]
	} else {
		var err error
		token, err = c.io.ReadPassword("API token: ")
		if err != nil {
			return fmt.Errorf("failed to read token: %w", err)
		}
	}

	offline := c.offline()
	data, err := c.auth.Login(ctx, token, !offline)
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	c.io.Println("✓ Token saved")
	if data.Subject != "" {
		c.io.Printf("Subject: %s\n", data.Subject)
	}
	if data.ExpiresAt > 0 {
		c.io.Printf("Expires: %s\n", time.Unix(data.ExpiresAt, 0).Format(time.RFC3339))
	}
	if offline {
		c.io.Println("Offline: the token was not verified by the server.")
	}
	return nil
}
