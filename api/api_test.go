package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/conduit-labs/conduit/auth/jwt"
	"github.com/conduit-labs/conduit/auth/password"
	"github.com/conduit-labs/conduit/database"
	"github.com/conduit-labs/conduit/logger"
	"github.com/conduit-labs/conduit/server/middleware"
	"github.com/conduit-labs/conduit/store"
)

// newTestAPI wires the full handler stack against a throwaway sqlite
// database. The KDF runs at reduced iterations to keep tests fast; the
// derivation pipeline is otherwise the production one.
func newTestAPI(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := database.Config{
		Driver:   database.DriverSQLite,
		DSN:      filepath.Join(t.TempDir(), "conduit_test.db"),
		LogLevel: "silent",
	}
	db, err := database.New(cfg, logger.NewDefault())
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	st := store.New(db)
	if err := st.Migrate(); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	tokens, err := jwt.NewService(jwt.Config{Secret: "api-test-secret"})
	if err != nil {
		t.Fatal(err)
	}
	passwords := password.NewPool(
		password.NewPBKDF2Hasher(password.WithIterations(10)),
		2, time.Second,
	)

	a := New(st, tokens, passwords, logger.NewDefault())

	r := gin.New()
	r.Use(middleware.Recovery())
	a.RegisterRoutes(r)
	return r
}

// do performs a JSON request. An empty token sends no Authorization
// header.
func do(t *testing.T, r *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Token "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// decode unmarshals a response body, failing the test on garbage.
func decode(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), out); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
}

// register creates an account through the public endpoint and returns its
// token.
func register(t *testing.T, r *gin.Engine, username, email, pw string) string {
	t.Helper()

	w := do(t, r, http.MethodPost, "/api/users", "", map[string]any{
		"user": map[string]any{
			"username": username,
			"email":    email,
			"password": pw,
		},
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("register %s: status = %d, body %s", username, w.Code, w.Body.String())
	}

	var env userEnvelope
	decode(t, w, &env)
	if env.User.Token == "" {
		t.Fatalf("register %s: no token in response", username)
	}
	return env.User.Token
}

// createArticle posts an article and returns its slug.
func createArticle(t *testing.T, r *gin.Engine, token, title string, tags ...string) string {
	t.Helper()

	w := do(t, r, http.MethodPost, "/api/articles", token, map[string]any{
		"article": map[string]any{
			"title":       title,
			"description": "about " + title,
			"body":        "body of " + title,
			"tagList":     tags,
		},
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create article %q: status = %d, body %s", title, w.Code, w.Body.String())
	}

	var env articleEnvelope
	decode(t, w, &env)
	if env.Article.Slug == "" {
		t.Fatalf("create article %q: empty slug", title)
	}
	return env.Article.Slug
}

// errorField extracts errors.<field> from a failure body.
func errorField(t *testing.T, w *httptest.ResponseRecorder, field string) string {
	t.Helper()
	var body struct {
		Errors map[string]string `json:"errors"`
	}
	decode(t, w, &body)
	return body.Errors[field]
}

func uniqueEmail(username string) string {
	return fmt.Sprintf("%s@example.com", username)
}
