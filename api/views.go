package api

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/conduit-labs/conduit/model"
)

// UserView is the authenticated-user payload, always carrying a fresh
// token. The credential pair never leaves the model layer.
type UserView struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Bio      string `json:"bio"`
	Image    string `json:"image"`
	Token    string `json:"token"`
}

// ProfileView is the public face of an identity, with the follow relation
// computed against the caller.
type ProfileView struct {
	Username  string `json:"username"`
	Bio       string `json:"bio"`
	Image     string `json:"image"`
	Following bool   `json:"following"`
}

// ArticleView serializes an article with caller-relative state.
type ArticleView struct {
	Slug           string      `json:"slug"`
	Title          string      `json:"title"`
	Description    string      `json:"description"`
	Body           string      `json:"body"`
	TagList        []string    `json:"tagList"`
	CreatedAt      time.Time   `json:"createdAt"`
	UpdatedAt      time.Time   `json:"updatedAt"`
	Favorited      bool        `json:"favorited"`
	FavoritesCount int         `json:"favoritesCount"`
	Author         ProfileView `json:"author"`
}

// CommentView serializes a comment.
type CommentView struct {
	ID        string      `json:"id"`
	Body      string      `json:"body"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
	Author    ProfileView `json:"author"`
}

type userEnvelope struct {
	User UserView `json:"user"`
}

type profileEnvelope struct {
	Profile ProfileView `json:"profile"`
}

type articleEnvelope struct {
	Article ArticleView `json:"article"`
}

type articlesEnvelope struct {
	Articles      []ArticleView `json:"articles"`
	ArticlesCount int64         `json:"articlesCount"`
}

type commentEnvelope struct {
	Comment CommentView `json:"comment"`
}

type commentsEnvelope struct {
	Comments []CommentView `json:"comments"`
}

type tagsEnvelope struct {
	Tags []string `json:"tags"`
}

// userView issues a fresh token for the identity and builds its payload.
func (a *API) userView(user *model.User) (UserView, error) {
	token, err := a.tokens.Issue(user.ID.String(), user.Username)
	if err != nil {
		return UserView{}, err
	}
	return UserView{
		Username: user.Username,
		Email:    user.Email,
		Bio:      user.Bio,
		Image:    user.Image,
		Token:    token,
	}, nil
}

// profileView computes the follow relation against the caller; anonymous
// callers always see following=false.
func (a *API) profileView(ctx context.Context, viewer uuid.UUID, hasViewer bool, user *model.User) (ProfileView, error) {
	following := false
	if hasViewer && viewer != user.ID {
		var err error
		following, err = a.store.Users.IsFollowing(ctx, viewer, user.ID)
		if err != nil {
			return ProfileView{}, err
		}
	}
	return ProfileView{
		Username:  user.Username,
		Bio:       user.Bio,
		Image:     user.Image,
		Following: following,
	}, nil
}

// articleView computes favorited and the author relation against the
// caller. The article must have Author and Tags preloaded.
func (a *API) articleView(ctx context.Context, viewer uuid.UUID, hasViewer bool, article *model.Article) (ArticleView, error) {
	author, err := a.profileView(ctx, viewer, hasViewer, &article.Author)
	if err != nil {
		return ArticleView{}, err
	}

	favorited := false
	if hasViewer {
		favorited, err = a.store.Articles.IsFavorite(ctx, viewer, article.ID)
		if err != nil {
			return ArticleView{}, err
		}
	}

	return ArticleView{
		Slug:           article.Slug,
		Title:          article.Title,
		Description:    article.Description,
		Body:           article.Body,
		TagList:        article.TagNames(),
		CreatedAt:      article.CreatedAt,
		UpdatedAt:      article.UpdatedAt,
		Favorited:      favorited,
		FavoritesCount: article.FavoritesCount,
		Author:         author,
	}, nil
}

// articleViews maps a result page.
func (a *API) articleViews(ctx context.Context, viewer uuid.UUID, hasViewer bool, articles []model.Article) ([]ArticleView, error) {
	views := make([]ArticleView, 0, len(articles))
	for i := range articles {
		view, err := a.articleView(ctx, viewer, hasViewer, &articles[i])
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}
	return views, nil
}

// commentView builds a comment payload. The comment must have Author
// preloaded.
func (a *API) commentView(ctx context.Context, viewer uuid.UUID, hasViewer bool, comment *model.Comment) (CommentView, error) {
	author, err := a.profileView(ctx, viewer, hasViewer, &comment.Author)
	if err != nil {
		return CommentView{}, err
	}
	return CommentView{
		ID:        comment.ID.String(),
		Body:      comment.Body,
		CreatedAt: comment.CreatedAt,
		UpdatedAt: comment.UpdatedAt,
		Author:    author,
	}, nil
}
