// Package store exposes typed repositories over the database wrapper.
// It owns the association bookkeeping: favorite/follow set membership and
// the denormalized favorites counter.
package store

import (
	"github.com/conduit-labs/conduit/database"
	"github.com/conduit-labs/conduit/model"
)

// Store bundles the per-entity repositories over one database handle.
type Store struct {
	Users    *UserStore
	Articles *ArticleStore
	Comments *CommentStore
	Tags     *TagStore

	db *database.DB
}

// New creates a Store over an open database.
func New(db *database.DB) *Store {
	return &Store{
		Users:    &UserStore{db: db},
		Articles: &ArticleStore{db: db},
		Comments: &CommentStore{db: db},
		Tags:     &TagStore{db: db},
		db:       db,
	}
}

// Migrate runs auto-migration for every persisted type.
func (s *Store) Migrate() error {
	return s.db.AutoMigrate(
		&model.User{},
		&model.UserFollow{},
		&model.UserFavorite{},
		&model.Tag{},
		&model.Article{},
		&model.Comment{},
	)
}
