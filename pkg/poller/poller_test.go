package poller

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"tableside/internal/models"

	"github.com/gin-gonic/gin"
)

func testServer(t *testing.T) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/api/orders", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"orders": []models.Order{
			{ID: 2, TableNumber: 4, CustomerName: "Alice", Status: models.StatusPreparing, Total: "25.98"},
			{ID: 1, TableNumber: 2, CustomerName: "Bob", Status: models.StatusPending, Total: "9.99"},
		}})
	})
	r.GET("/api/menu", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"menuItems": []models.MenuItem{
			{ID: 1, Name: "Margherita Pizza", Price: "12.99", Category: "Pizza"},
		}})
	})
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func TestPollerDeliversSnapshots(t *testing.T) {
	srv := testServer(t)

	var mu sync.Mutex
	var orderPolls, menuPolls int
	var lastOrders []models.Order
	var lastMenu []models.MenuItem

	p := New(Config{
		BaseURL:       srv.URL,
		OrderInterval: 10 * time.Millisecond,
		MenuInterval:  15 * time.Millisecond,
		OnOrders: func(orders []models.Order) {
			mu.Lock()
			defer mu.Unlock()
			orderPolls++
			lastOrders = orders
		},
		OnMenu: func(items []models.MenuItem) {
			mu.Lock()
			defer mu.Unlock()
			menuPolls++
			lastMenu = items
		},
		OnError: func(err error) { t.Errorf("unexpected poll error: %v", err) },
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		p.Run(ctx)
		close(done)
	}()

	time.Sleep(60 * time.Millisecond)
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("poller did not stop after cancellation")
	}

	mu.Lock()
	if orderPolls < 2 {
		t.Errorf("orderPolls = %d, want repeated polling", orderPolls)
	}
	if menuPolls < 2 {
		t.Errorf("menuPolls = %d, want repeated polling", menuPolls)
	}
	if len(lastOrders) != 2 || lastOrders[0].CustomerName != "Alice" {
		t.Errorf("lastOrders = %+v", lastOrders)
	}
	if len(lastMenu) != 1 || lastMenu[0].Name != "Margherita Pizza" {
		t.Errorf("lastMenu = %+v", lastMenu)
	}
	before := orderPolls
	mu.Unlock()

	// no further callbacks after cancellation
	time.Sleep(30 * time.Millisecond)
	mu.Lock()
	if orderPolls != before {
		t.Errorf("poller kept polling after cancel: before=%d after=%d", before, orderPolls)
	}
	mu.Unlock()
}

func TestPollerReportsErrorsAndKeepsGoing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	var mu sync.Mutex
	var errCount int
	p := New(Config{
		BaseURL:       srv.URL,
		OrderInterval: 10 * time.Millisecond,
		MenuInterval:  10 * time.Millisecond,
		OnOrders:      func([]models.Order) { t.Error("OnOrders called for a failing server") },
		OnError: func(err error) {
			mu.Lock()
			errCount++
			mu.Unlock()
		},
	})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	p.Run(ctx)

	mu.Lock()
	defer mu.Unlock()
	if errCount < 2 {
		t.Errorf("errCount = %d, want repeated error reports", errCount)
	}
}

func TestPollerDefaults(t *testing.T) {
	p := New(Config{BaseURL: "http://localhost"})
	if p.cfg.OrderInterval != DefaultOrderInterval {
		t.Errorf("OrderInterval = %v", p.cfg.OrderInterval)
	}
	if p.cfg.MenuInterval != DefaultMenuInterval {
		t.Errorf("MenuInterval = %v", p.cfg.MenuInterval)
	}
	if p.cfg.HTTPClient == nil {
		t.Error("HTTPClient not defaulted")
	}
}
