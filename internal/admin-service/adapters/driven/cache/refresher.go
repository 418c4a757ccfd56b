package cache

import (
	"context"
	"fmt"
	"net/http"

	"transfer-admin/internal/admin-service/core/ports"
	"transfer-admin/internal/config"
	"transfer-admin/internal/mylogger"
)

// Refresher pokes the quote-cache service after a pricing batch so stale
// quotes are dropped. A disabled refresher (empty URL) is a no-op, the
// database remains the source of truth either way.
type Refresher struct {
	cfg    config.Cacheconfig
	mylog  mylogger.Logger
	client *http.Client
}

func New(cfg config.Cacheconfig, mylog mylogger.Logger) ports.ICacheRefresher {
	return &Refresher{
		cfg:    cfg,
		mylog:  mylog,
		client: &http.Client{Timeout: cfg.Timeout},
	}
}

func (c *Refresher) Refresh(ctx context.Context) error {
	if c.cfg.RefreshURL == "" {
		c.mylog.Action("cache_refresh").Debug("no refresh url configured, skipping")
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.RefreshURL, nil)
	if err != nil {
		return fmt.Errorf("build cache refresh request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("cache refresh call: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("cache refresh returned status %d", resp.StatusCode)
	}
	return nil
}
