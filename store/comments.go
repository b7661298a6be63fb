package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/conduit-labs/conduit/database"
	"github.com/conduit-labs/conduit/model"
)

// CommentStore persists comments. Comments reference their article by
// foreign key, so creation is a single write and listing is a query.
type CommentStore struct {
	db *database.DB
}

// Create inserts a comment.
func (s *CommentStore) Create(ctx context.Context, comment *model.Comment) error {
	if err := s.db.WithContext(ctx).Create(comment).Error; err != nil {
		return database.FromDatabase(err, "comment")
	}
	return nil
}

// GetByID fetches a comment with its author.
func (s *CommentStore) GetByID(ctx context.Context, id uuid.UUID) (*model.Comment, error) {
	var comment model.Comment
	err := s.db.WithContext(ctx).Preload("Author").First(&comment, "id = ?", id).Error
	if err != nil {
		return nil, database.FromDatabase(err, "comment")
	}
	return &comment, nil
}

// ListByArticle returns an article's comments oldest first.
func (s *CommentStore) ListByArticle(ctx context.Context, articleID uuid.UUID) ([]model.Comment, error) {
	var comments []model.Comment
	err := s.db.WithContext(ctx).
		Preload("Author").
		Where("article_id = ?", articleID).
		Order("created_at ASC").
		Find(&comments).Error
	if err != nil {
		return nil, database.FromDatabase(err, "comment")
	}
	return comments, nil
}

// Delete removes a comment.
func (s *CommentStore) Delete(ctx context.Context, comment *model.Comment) error {
	if err := s.db.WithContext(ctx).Delete(comment).Error; err != nil {
		return database.FromDatabase(err, "comment")
	}
	return nil
}
