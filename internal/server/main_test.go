package server

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"kiroku/internal/cache"
	"kiroku/internal/config"
	"kiroku/internal/models"
	"kiroku/internal/storage"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const testJWTSecret = "test-secret-key"

// setupTestServer builds a Server over an in-memory SQLite database and a
// temp-dir object store, with Redis absent (cache and limiter fail open).
func setupTestServer(t *testing.T) (*Server, *fiber.App, *gorm.DB) {
	t.Helper()
	return newTestServer(t, nil)
}

// setupTestServerWithCache is setupTestServer with a miniredis-backed
// client, for tests that assert cache behavior.
func setupTestServerWithCache(t *testing.T) (*Server, *fiber.App, *gorm.DB) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return newTestServer(t, rdb)
}

func newTestServer(t *testing.T, rdb *redis.Client) (*Server, *fiber.App, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Category{},
		&models.Todo{},
		&models.Post{},
		&models.Comment{},
		&models.Reply{},
	); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}

	cfg := &config.Config{
		JWTSecret:     testJWTSecret,
		Port:          "0",
		UploadDir:     t.TempDir(),
		PublicBaseURL: "http://localhost:8080",
	}
	store := storage.NewDiskStore(cfg.UploadDir, cfg.PublicBaseURL)

	s, err := NewServerWithDeps(cfg, db, rdb, store)
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	t.Cleanup(func() { cache.SetClient(nil) })

	app := fiber.New()
	s.SetupRoutes(app)

	return s, app, db
}

func TestNewServerWithDepsWiresCacheClient(t *testing.T) {
	s, _, _ := setupTestServerWithCache(t)

	if cache.GetClient() != s.redis {
		t.Fatal("cache helpers are not bound to the server's redis client")
	}
}

// testToken issues a bearer token the way the session provider would.
func testToken(t *testing.T) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "test-user",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(testJWTSecret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func jsonRequest(t *testing.T, method, path string, body any) *http.Request {
	t.Helper()
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req
}

func decodeBody(t *testing.T, resp *http.Response, dest any) {
	t.Helper()
	defer func() { _ = resp.Body.Close() }()
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

func multipartUpload(t *testing.T, path, field, filename string, content []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile(field, filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := fw.Write(content); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}
