package store

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm/clause"

	"github.com/conduit-labs/conduit/database"
	"github.com/conduit-labs/conduit/errors"
	"github.com/conduit-labs/conduit/model"
)

// UserStore persists identities and their follow-set.
type UserStore struct {
	db *database.DB
}

// Create inserts a new identity. Username and email are normalized to
// lowercase before the write; uniqueness violations surface as 422 field
// errors naming the taken field.
func (s *UserStore) Create(ctx context.Context, user *model.User) error {
	normalize(user)
	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		if database.IsDuplicate(err) {
			return s.takenField(ctx, user)
		}
		return database.FromDatabase(err, "user")
	}
	return nil
}

// GetByID fetches an identity by primary key.
func (s *UserStore) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	var user model.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, database.FromDatabase(err, "user")
	}
	return &user, nil
}

// GetByEmail fetches an identity by email, case-insensitively.
func (s *UserStore) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	err := s.db.WithContext(ctx).First(&user, "email = ?", strings.ToLower(email)).Error
	if err != nil {
		return nil, database.FromDatabase(err, "user")
	}
	return &user, nil
}

// GetByUsername fetches an identity by username, case-insensitively.
func (s *UserStore) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	var user model.User
	err := s.db.WithContext(ctx).First(&user, "username = ?", strings.ToLower(username)).Error
	if err != nil {
		return nil, database.FromDatabase(err, "user")
	}
	return &user, nil
}

// Update persists changes to an identity, renormalizing the unique fields.
func (s *UserStore) Update(ctx context.Context, user *model.User) error {
	normalize(user)
	if err := s.db.WithContext(ctx).Save(user).Error; err != nil {
		if database.IsDuplicate(err) {
			return s.takenField(ctx, user)
		}
		return database.FromDatabase(err, "user")
	}
	return nil
}

// Follow adds followee to follower's follow-set. Idempotent: following an
// already-followed identity succeeds without a second edge. Self-follow
// is rejected.
func (s *UserStore) Follow(ctx context.Context, followerID, followeeID uuid.UUID) error {
	if followerID == followeeID {
		return errors.FieldViolation("username", "can't follow yourself")
	}
	edge := model.UserFollow{FollowerID: followerID, FolloweeID: followeeID}
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&edge).Error
	if err != nil && !database.IsDuplicate(err) {
		return database.FromDatabase(err, "profile")
	}
	return nil
}

// Unfollow removes followee from follower's follow-set. Removing an edge
// that does not exist is a no-op success.
func (s *UserStore) Unfollow(ctx context.Context, followerID, followeeID uuid.UUID) error {
	err := s.db.WithContext(ctx).
		Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
		Delete(&model.UserFollow{}).Error
	if err != nil {
		return database.FromDatabase(err, "profile")
	}
	return nil
}

// IsFollowing reports follow-set membership.
func (s *UserStore) IsFollowing(ctx context.Context, followerID, followeeID uuid.UUID) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.UserFollow{}).
		Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
		Count(&count).Error
	if err != nil {
		return false, database.FromDatabase(err, "profile")
	}
	return count > 0, nil
}

// takenField resolves which unique field caused a duplicate-key failure
// by probing for an existing owner of each candidate value.
func (s *UserStore) takenField(ctx context.Context, user *model.User) error {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.User{}).
		Where("username = ? AND id <> ?", user.Username, user.ID).
		Count(&count).Error
	if err == nil && count > 0 {
		return errors.Taken("username")
	}
	return errors.Taken("email")
}

func normalize(user *model.User) {
	user.Username = strings.ToLower(strings.TrimSpace(user.Username))
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
}
