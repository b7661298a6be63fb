package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/conduit-labs/conduit/database"
	"github.com/conduit-labs/conduit/logger"
	"github.com/conduit-labs/conduit/model"
)

// newTestStore opens a throwaway sqlite database in a temp dir and runs
// migrations. A file DSN is used because every pooled connection to a
// plain :memory: DSN would see its own empty database.
func newTestStore(t *testing.T) *Store {
	t.Helper()

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

	s := New(db)
	if err := s.Migrate(); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return s
}

func mustCreateUser(t *testing.T, s *Store, username, email string) *model.User {
	t.Helper()
	user := &model.User{Username: username, Email: email}
	if err := s.Users.Create(context.Background(), user); err != nil {
		t.Fatalf("create user %s: %v", username, err)
	}
	return user
}

func mustCreateArticle(t *testing.T, s *Store, author *model.User, title string, tags ...string) *model.Article {
	t.Helper()
	article := &model.Article{
		Title:       title,
		Description: "about " + title,
		Body:        "body of " + title,
		AuthorID:    author.ID,
	}
	if err := s.Articles.Create(context.Background(), article, tags); err != nil {
		t.Fatalf("create article %s: %v", title, err)
	}
	return article
}
