package model

import (
	"github.com/google/uuid"

	"github.com/conduit-labs/conduit/database"
)

// Comment belongs to exactly one article and one author. The article
// relation is a plain foreign key, so comment listing is a derived query
// and creation is a single write.
type Comment struct {
	database.BaseModel
	Body      string
	AuthorID  uuid.UUID `gorm:"type:uuid;index;not null"`
	Author    User
	ArticleID uuid.UUID `gorm:"type:uuid;index;not null"`
}
