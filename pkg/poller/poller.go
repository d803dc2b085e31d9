// Package poller implements the client side of the polling-refresh
// contract: orders are re-fetched every 2 seconds and the menu every
// 3 seconds until the owning context is cancelled.
package poller

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"tableside/internal/models"
)

const (
	DefaultOrderInterval = 2 * time.Second
	DefaultMenuInterval  = 3 * time.Second
)

type Config struct {
	BaseURL       string
	OrderInterval time.Duration
	MenuInterval  time.Duration
	HTTPClient    *http.Client

	// OnOrders and OnMenu receive each successfully fetched snapshot.
	OnOrders func([]models.Order)
	OnMenu   func([]models.MenuItem)
	// OnError is invoked for fetch failures; polling continues regardless.
	OnError func(error)
}

type Poller struct {
	cfg Config
}

func New(cfg Config) *Poller {
	if cfg.OrderInterval <= 0 {
		cfg.OrderInterval = DefaultOrderInterval
	}
	if cfg.MenuInterval <= 0 {
		cfg.MenuInterval = DefaultMenuInterval
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = http.DefaultClient
	}
	return &Poller{cfg: cfg}
}

// Run fetches both resources immediately, then on their intervals, until ctx
// is cancelled.
func (p *Poller) Run(ctx context.Context) {
	p.pollOrders(ctx)
	p.pollMenu(ctx)

	orderTicker := time.NewTicker(p.cfg.OrderInterval)
	defer orderTicker.Stop()
	menuTicker := time.NewTicker(p.cfg.MenuInterval)
	defer menuTicker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-orderTicker.C:
			p.pollOrders(ctx)
		case <-menuTicker.C:
			p.pollMenu(ctx)
		}
	}
}

func (p *Poller) pollOrders(ctx context.Context) {
	if p.cfg.OnOrders == nil {
		return
	}
	var resp struct {
		Orders []models.Order `json:"orders"`
	}
	if err := p.fetch(ctx, "/api/orders", &resp); err != nil {
		p.reportError(err)
		return
	}
	p.cfg.OnOrders(resp.Orders)
}

func (p *Poller) pollMenu(ctx context.Context) {
	if p.cfg.OnMenu == nil {
		return
	}
	var resp struct {
		MenuItems []models.MenuItem `json:"menuItems"`
	}
	if err := p.fetch(ctx, "/api/menu", &resp); err != nil {
		p.reportError(err)
		return
	}
	p.cfg.OnMenu(resp.MenuItems)
}

func (p *Poller) fetch(ctx context.Context, path string, dest interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.cfg.BaseURL+path, nil)
	if err != nil {
		return err
	}
	resp, err := p.cfg.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("GET %s: unexpected status %d", path, resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(dest)
}

func (p *Poller) reportError(err error) {
	if p.cfg.OnError == nil || errors.Is(err, context.Canceled) {
		return
	}
	p.cfg.OnError(err)
}
