package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"
	"time"

	"tableside/internal/database"
	"tableside/internal/middleware"
	"tableside/internal/repository"
	"tableside/internal/services"
	"tableside/internal/session"
	"tableside/pkg/imagestore"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type testEnv struct {
	router   *gin.Engine
	sessions *session.MemoryStore
	auth     services.AuthService
	menus    services.MenuService
	orders   services.OrderService
	images   *imagestore.Store
}

// newTestEnv wires the full route table the way cmd/server does, backed by
// in-memory SQLite, an in-memory session store and a temp upload dir.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	images, err := imagestore.New(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	sessions := session.NewMemoryStore()
	authService := services.NewAuthService(repository.NewUserRepository(db))
	menuService := services.NewMenuService(repository.NewMenuRepository(db))
	orderService := services.NewOrderService(repository.NewOrderRepository(db))

	authHandler := NewAuthHandler(authService, sessions, 24*time.Hour, false)
	menuHandler := NewMenuHandler(menuService, images)
	orderHandler := NewOrderHandler(orderService, sessions)

	router := gin.New()
	api := router.Group("/api")
	{
		api.POST("/auth/login", authHandler.Login)
		api.POST("/auth/logout", authHandler.Logout)
		api.GET("/menu", menuHandler.List)
		api.GET("/orders", orderHandler.List)
		api.POST("/orders", orderHandler.Create)
	}
	admin := router.Group("/api")
	admin.Use(middleware.AuthRequired(sessions))
	{
		admin.GET("/auth/user", authHandler.CurrentUser)
		admin.POST("/menu", menuHandler.Create)
		admin.PUT("/menu/:id", menuHandler.Update)
		admin.DELETE("/menu/:id", menuHandler.Delete)
		admin.PATCH("/orders/:id/status", orderHandler.UpdateStatus)
	}

	return &testEnv{
		router:   router,
		sessions: sessions,
		auth:     authService,
		menus:    menuService,
		orders:   orderService,
		images:   images,
	}
}

// loginAsAdmin seeds the staff account and returns its session cookie.
func (e *testEnv) loginAsAdmin(t *testing.T) *http.Cookie {
	t.Helper()
	if _, err := e.auth.CreateUser("admin", "admin123", "Restaurant Admin", "admin@restaurant.local"); err != nil {
		t.Fatal(err)
	}
	w := e.doJSON(t, http.MethodPost, "/api/auth/login", map[string]string{
		"username": "admin",
		"password": "admin123",
	}, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("login failed: %d %s", w.Code, w.Body.String())
	}
	for _, c := range w.Result().Cookies() {
		if c.Name == middleware.SessionCookie && c.Value != "" {
			return c
		}
	}
	t.Fatal("no session cookie set on login")
	return nil
}

func (e *testEnv) doJSON(t *testing.T, method, path string, body interface{}, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

// menuItemForm builds a multipart body with the item fields and optionally an
// image part carrying a real image content type.
func menuItemForm(t *testing.T, fields map[string]string, imageName, imageType string, imageData []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatal(err)
		}
	}
	if imageName != "" {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="image"; filename="%s"`, imageName))
		h.Set("Content-Type", imageType)
		part, err := mw.CreatePart(h)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := part.Write(imageData); err != nil {
			t.Fatal(err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatal(err)
	}
	return &buf, mw.FormDataContentType()
}

func (e *testEnv) doMultipart(t *testing.T, method, path string, body *bytes.Buffer, contentType string, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", contentType)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decodeJSON(t *testing.T, w *httptest.ResponseRecorder, dest interface{}) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), dest); err != nil {
		t.Fatalf("failed to decode response %q: %v", w.Body.String(), err)
	}
}
