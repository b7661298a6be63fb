package store

import (
	"context"

	"github.com/conduit-labs/conduit/database"
)

// TagStore answers tag queries.
type TagStore struct {
	db *database.DB
}

// ListInUse returns the distinct tag names currently attached to at
// least one article.
func (s *TagStore) ListInUse(ctx context.Context) ([]string, error) {
	var names []string
	err := s.db.WithContext(ctx).
		Table("tags").
		Distinct("tags.name").
		Joins("JOIN article_tags ON article_tags.tag_id = tags.id").
		Order("tags.name ASC").
		Pluck("tags.name", &names).Error
	if err != nil {
		return nil, database.FromDatabase(err, "tag")
	}
	if names == nil {
		names = []string{}
	}
	return names, nil
}
