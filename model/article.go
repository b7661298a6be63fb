package model

import (
	"crypto/rand"
	"math/big"
	"strings"

	"github.com/google/uuid"

	"github.com/conduit-labs/conduit/database"
)

// Article is an authored post. The author reference is fixed at creation
// and gates update/delete. FavoritesCount is denormalized and recomputed
// from user_favorites after every favorite mutation.
type Article struct {
	database.BaseModel
	Slug           string `gorm:"uniqueIndex;not null"`
	Title          string
	Description    string
	Body           string
	FavoritesCount int       `gorm:"not null;default:0"`
	AuthorID       uuid.UUID `gorm:"type:uuid;index;not null"`
	Author         User
	Tags           []Tag `gorm:"many2many:article_tags"`
}

// Tag is a label attached to articles through the article_tags join.
type Tag struct {
	database.BaseModel
	Name string `gorm:"uniqueIndex;not null"`
}

// TagNames flattens the tag relation for serialization.
func (a *Article) TagNames() []string {
	names := make([]string, 0, len(a.Tags))
	for _, t := range a.Tags {
		names = append(names, t.Name)
	}
	return names
}

const slugSuffixAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// Slugify derives a URL slug from the title plus a random base36 suffix
// so retitled or identically-titled articles never collide.
func Slugify(title string) string {
	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(title) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	base := strings.TrimSuffix(b.String(), "-")
	if base == "" {
		base = "article"
	}
	return base + "-" + randomSuffix(6)
}

func randomSuffix(n int) string {
	out := make([]byte, n)
	max := big.NewInt(int64(len(slugSuffixAlphabet)))
	for i := range out {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand failing means the process is in a bad way;
			// fall back to a fixed character rather than crash slug
			// generation.
			out[i] = 'x'
			continue
		}
		out[i] = slugSuffixAlphabet[idx.Int64()]
	}
	return string(out)
}
