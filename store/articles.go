package store

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/conduit-labs/conduit/database"
	"github.com/conduit-labs/conduit/model"
)

// ArticleStore persists articles and owns the favorite-set bookkeeping.
type ArticleStore struct {
	db *database.DB
}

// ListFilter narrows List results. Zero values mean "no filter".
type ListFilter struct {
	Tag       string
	Author    string
	Favorited string
	Limit     int
	Offset    int
}

// DefaultPageSize bounds unpaged list requests.
const DefaultPageSize = 20

// Create inserts an article with its tag set, generating the slug from
// the title. Tags are created on first use.
func (s *ArticleStore) Create(ctx context.Context, article *model.Article, tagNames []string) error {
	article.Slug = model.Slugify(article.Title)

	return s.db.Transaction(ctx, func(tx *gorm.DB) error {
		tags, err := resolveTags(tx, tagNames)
		if err != nil {
			return database.FromDatabase(err, "article")
		}
		article.Tags = tags
		if err := tx.Create(article).Error; err != nil {
			return database.FromDatabase(err, "article")
		}
		return nil
	})
}

// GetBySlug fetches an article with its author and tags.
func (s *ArticleStore) GetBySlug(ctx context.Context, slug string) (*model.Article, error) {
	var article model.Article
	err := s.db.WithContext(ctx).
		Preload("Author").Preload("Tags").
		First(&article, "slug = ?", slug).Error
	if err != nil {
		return nil, database.FromDatabase(err, "article")
	}
	return &article, nil
}

// Update persists title/description/body changes. The caller resluggs on
// title change before calling.
func (s *ArticleStore) Update(ctx context.Context, article *model.Article) error {
	err := s.db.WithContext(ctx).
		Omit("Author", "Tags").
		Save(article).Error
	if err != nil {
		return database.FromDatabase(err, "article")
	}
	return nil
}

// Delete removes an article together with its comments, favorite-set
// entries and tag links, in one transaction.
func (s *ArticleStore) Delete(ctx context.Context, article *model.Article) error {
	return s.db.Transaction(ctx, func(tx *gorm.DB) error {
		if err := tx.Where("article_id = ?", article.ID).Delete(&model.Comment{}).Error; err != nil {
			return database.FromDatabase(err, "article")
		}
		if err := tx.Where("article_id = ?", article.ID).Delete(&model.UserFavorite{}).Error; err != nil {
			return database.FromDatabase(err, "article")
		}
		if err := tx.Model(article).Association("Tags").Clear(); err != nil {
			return database.FromDatabase(err, "article")
		}
		if err := tx.Delete(article).Error; err != nil {
			return database.FromDatabase(err, "article")
		}
		return nil
	})
}

// List returns articles newest first, filtered by tag name, author
// username, or favoriting username, with the total count before paging.
func (s *ArticleStore) List(ctx context.Context, filter ListFilter) ([]model.Article, int64, error) {
	query := s.db.WithContext(ctx).Model(&model.Article{})

	if filter.Tag != "" {
		query = query.Where(
			"id IN (?)",
			s.db.WithContext(ctx).
				Table("article_tags").
				Select("article_tags.article_id").
				Joins("JOIN tags ON tags.id = article_tags.tag_id").
				Where("tags.name = ?", filter.Tag),
		)
	}
	if filter.Author != "" {
		query = query.Where(
			"author_id IN (?)",
			s.db.WithContext(ctx).Model(&model.User{}).
				Select("id").Where("username = ?", filter.Author),
		)
	}
	if filter.Favorited != "" {
		query = query.Where(
			"id IN (?)",
			s.db.WithContext(ctx).Model(&model.UserFavorite{}).
				Select("article_id").
				Where("user_id IN (?)",
					s.db.WithContext(ctx).Model(&model.User{}).
						Select("id").Where("username = ?", filter.Favorited),
				),
		)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, database.FromDatabase(err, "article")
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = DefaultPageSize
	}

	var articles []model.Article
	err := query.
		Preload("Author").Preload("Tags").
		Order("created_at DESC").
		Limit(limit).Offset(filter.Offset).
		Find(&articles).Error
	if err != nil {
		return nil, 0, database.FromDatabase(err, "article")
	}
	return articles, total, nil
}

// Feed returns articles authored by identities the user follows, newest
// first, with the total count before paging.
func (s *ArticleStore) Feed(ctx context.Context, userID uuid.UUID, limit, offset int) ([]model.Article, int64, error) {
	query := s.db.WithContext(ctx).Model(&model.Article{}).
		Where("author_id IN (?)",
			s.db.WithContext(ctx).Model(&model.UserFollow{}).
				Select("followee_id").Where("follower_id = ?", userID),
		)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, database.FromDatabase(err, "article")
	}

	if limit <= 0 {
		limit = DefaultPageSize
	}

	var articles []model.Article
	err := query.
		Preload("Author").Preload("Tags").
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&articles).Error
	if err != nil {
		return nil, 0, database.FromDatabase(err, "article")
	}
	return articles, total, nil
}

// Favorite adds the article to the user's favorite-set and recomputes the
// denormalized counter in the same transaction. Favoriting an
// already-favorited article is a no-op that still succeeds and returns
// the current count.
func (s *ArticleStore) Favorite(ctx context.Context, userID uuid.UUID, article *model.Article) error {
	return s.db.Transaction(ctx, func(tx *gorm.DB) error {
		entry := model.UserFavorite{UserID: userID, ArticleID: article.ID}
		err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&entry).Error
		if err != nil && !database.IsDuplicate(err) {
			return database.FromDatabase(err, "article")
		}
		return recomputeFavoritesCount(tx, article)
	})
}

// Unfavorite removes the article from the user's favorite-set and
// recomputes the counter. Unfavoriting a never-favorited article is a
// no-op success.
func (s *ArticleStore) Unfavorite(ctx context.Context, userID uuid.UUID, article *model.Article) error {
	return s.db.Transaction(ctx, func(tx *gorm.DB) error {
		err := tx.Where("user_id = ? AND article_id = ?", userID, article.ID).
			Delete(&model.UserFavorite{}).Error
		if err != nil {
			return database.FromDatabase(err, "article")
		}
		return recomputeFavoritesCount(tx, article)
	})
}

// IsFavorite reports favorite-set membership.
func (s *ArticleStore) IsFavorite(ctx context.Context, userID, articleID uuid.UUID) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.UserFavorite{}).
		Where("user_id = ? AND article_id = ?", userID, articleID).
		Count(&count).Error
	if err != nil {
		return false, database.FromDatabase(err, "article")
	}
	return count > 0, nil
}

// RecomputeFavoritesCount rederives the counter from the authoritative
// favorite-set and persists it. Exposed for convergence repair; the
// favorite/unfavorite paths already run it transactionally.
func (s *ArticleStore) RecomputeFavoritesCount(ctx context.Context, article *model.Article) error {
	return s.db.Transaction(ctx, func(tx *gorm.DB) error {
		return recomputeFavoritesCount(tx, article)
	})
}

// recomputeFavoritesCount counts membership rather than applying a delta,
// so the counter self-heals even when concurrent mutations race.
func recomputeFavoritesCount(tx *gorm.DB, article *model.Article) error {
	var count int64
	err := tx.Model(&model.UserFavorite{}).
		Where("article_id = ?", article.ID).
		Count(&count).Error
	if err != nil {
		return database.FromDatabase(err, "article")
	}

	article.FavoritesCount = int(count)
	err = tx.Model(&model.Article{}).
		Where("id = ?", article.ID).
		Update("favorites_count", count).Error
	if err != nil {
		return database.FromDatabase(err, "article")
	}
	return nil
}

// resolveTags maps tag names to Tag rows, creating missing ones.
func resolveTags(tx *gorm.DB, names []string) ([]model.Tag, error) {
	tags := make([]model.Tag, 0, len(names))
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true

		var tag model.Tag
		if err := tx.Where("name = ?", name).FirstOrCreate(&tag, model.Tag{Name: name}).Error; err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}
	return tags, nil
}
