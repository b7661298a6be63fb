// Package model defines the persisted record types. Identities, articles
// and comments are explicit structs with typed relations; favorites and
// follows are composite-key join tables, which makes set membership
// duplicate-free by construction.
package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/conduit-labs/conduit/auth/password"
	"github.com/conduit-labs/conduit/database"
)

// User is a registered identity. Username and email are stored lowercase
// and unique at the storage layer. The credential pair is never
// serialized and never logged.
type User struct {
	database.BaseModel
	Username string `gorm:"uniqueIndex;not null"`
	Email    string `gorm:"uniqueIndex;not null"`
	Bio      string
	Image    string
	Salt     string `json:"-"`
	Hash     string `json:"-"`
}

// Credential returns the stored password pair.
func (u *User) Credential() password.Credential {
	return password.Credential{Salt: u.Salt, Hash: u.Hash}
}

// SetCredential overwrites the stored password pair. Persistence is the
// caller's responsibility.
func (u *User) SetCredential(cred password.Credential) {
	u.Salt = cred.Salt
	u.Hash = cred.Hash
}

// UserFollow is one edge of the follow-set: follower follows followee.
// The composite primary key rules out duplicate edges.
type UserFollow struct {
	FollowerID uuid.UUID `gorm:"type:uuid;primaryKey"`
	FolloweeID uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
}

// UserFavorite is one member of a user's favorite-set.
type UserFavorite struct {
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	ArticleID uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}
