package api

import (
	"context"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/conduit-labs/conduit/errors"
	"github.com/conduit-labs/conduit/model"
	"github.com/conduit-labs/conduit/server"
	"github.com/conduit-labs/conduit/store"
	"github.com/conduit-labs/conduit/validation"
)

// ListArticles returns the global article list, newest first, filtered by
// tag, author username, or favoriting username.
func (a *API) ListArticles(c *gin.Context) {
	ctx := c.Request.Context()
	filter := store.ListFilter{
		Tag:       c.Query("tag"),
		Author:    c.Query("author"),
		Favorited: c.Query("favorited"),
		Limit:     queryInt(c, "limit", store.DefaultPageSize),
		Offset:    queryInt(c, "offset", 0),
	}

	articles, total, err := a.store.Articles.List(ctx, filter)
	if err != nil {
		server.RespondWithError(c, err)
		return
	}

	viewer, hasViewer := viewerID(c)
	views, err := a.articleViews(ctx, viewer, hasViewer, articles)
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	server.RespondOK(c, articlesEnvelope{Articles: views, ArticlesCount: total})
}

// Feed returns articles by the identities the caller follows.
func (a *API) Feed(c *gin.Context) {
	viewer, ok := requireViewerID(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()

	limit := queryInt(c, "limit", store.DefaultPageSize)
	offset := queryInt(c, "offset", 0)

	articles, total, err := a.store.Articles.Feed(ctx, viewer, limit, offset)
	if err != nil {
		server.RespondWithError(c, err)
		return
	}

	views, err := a.articleViews(ctx, viewer, true, articles)
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	server.RespondOK(c, articlesEnvelope{Articles: views, ArticlesCount: total})
}

// GetArticle returns a single article by slug.
func (a *API) GetArticle(c *gin.Context) {
	ctx := c.Request.Context()

	article, err := a.store.Articles.GetBySlug(ctx, c.Param("slug"))
	if err != nil {
		server.RespondWithError(c, err)
		return
	}

	viewer, hasViewer := viewerID(c)
	view, err := a.articleView(ctx, viewer, hasViewer, article)
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	server.RespondOK(c, articleEnvelope{Article: view})
}

type createArticleRequest struct {
	Article struct {
		Title       string   `json:"title" validate:"required"`
		Description string   `json:"description" validate:"required"`
		Body        string   `json:"body" validate:"required"`
		TagList     []string `json:"tagList"`
	} `json:"article"`
}

// CreateArticle creates an article authored by the caller. The slug is
// derived from the title and never collides.
func (a *API) CreateArticle(c *gin.Context) {
	viewer, ok := requireViewerID(c)
	if !ok {
		return
	}

	var req createArticleRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := validation.Struct(req.Article); err != nil {
		server.RespondWithError(c, err)
		return
	}

	ctx := c.Request.Context()

	article := model.Article{
		Title:       req.Article.Title,
		Description: req.Article.Description,
		Body:        req.Article.Body,
		AuthorID:    viewer,
	}
	if err := a.store.Articles.Create(ctx, &article, req.Article.TagList); err != nil {
		server.RespondWithError(c, err)
		return
	}

	// Reload so the author relation is populated for serialization.
	created, err := a.store.Articles.GetBySlug(ctx, article.Slug)
	if err != nil {
		server.RespondWithError(c, err)
		return
	}

	view, err := a.articleView(ctx, viewer, true, created)
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	server.RespondCreated(c, articleEnvelope{Article: view})
}

type updateArticleRequest struct {
	Article struct {
		Title       *string `json:"title"`
		Description *string `json:"description"`
		Body        *string `json:"body"`
	} `json:"article"`
}

// UpdateArticle applies a partial update. Author-only; a title change
// regenerates the slug, so old links to the article go stale.
func (a *API) UpdateArticle(c *gin.Context) {
	viewer, ok := requireViewerID(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()

	article, err := a.store.Articles.GetBySlug(ctx, c.Param("slug"))
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	if article.AuthorID != viewer {
		server.RespondWithError(c, errors.Forbidden("only the author can edit an article"))
		return
	}

	var req updateArticleRequest
	if !bindJSON(c, &req) {
		return
	}

	fields := make(map[string]string)
	if req.Article.Title != nil && *req.Article.Title == "" {
		fields["title"] = "can't be blank"
	}
	if req.Article.Description != nil && *req.Article.Description == "" {
		fields["description"] = "can't be blank"
	}
	if req.Article.Body != nil && *req.Article.Body == "" {
		fields["body"] = "can't be blank"
	}
	if len(fields) > 0 {
		server.RespondWithError(c, errors.Unprocessable(fields))
		return
	}

	if req.Article.Title != nil && *req.Article.Title != article.Title {
		article.Title = *req.Article.Title
		article.Slug = model.Slugify(article.Title)
	}
	if req.Article.Description != nil {
		article.Description = *req.Article.Description
	}
	if req.Article.Body != nil {
		article.Body = *req.Article.Body
	}

	if err := a.store.Articles.Update(ctx, article); err != nil {
		server.RespondWithError(c, err)
		return
	}

	view, err := a.articleView(ctx, viewer, true, article)
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	server.RespondOK(c, articleEnvelope{Article: view})
}

// DeleteArticle removes an article and everything hanging off it.
// Author-only.
func (a *API) DeleteArticle(c *gin.Context) {
	viewer, ok := requireViewerID(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()

	article, err := a.store.Articles.GetBySlug(ctx, c.Param("slug"))
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	if article.AuthorID != viewer {
		server.RespondWithError(c, errors.Forbidden("only the author can delete an article"))
		return
	}

	if err := a.store.Articles.Delete(ctx, article); err != nil {
		server.RespondWithError(c, err)
		return
	}
	server.RespondNoContent(c)
}

// FavoriteArticle adds the article to the caller's favorite-set and
// returns it with the recomputed counter.
func (a *API) FavoriteArticle(c *gin.Context) {
	a.mutateFavorite(c, a.store.Articles.Favorite)
}

// UnfavoriteArticle removes the article from the caller's favorite-set.
func (a *API) UnfavoriteArticle(c *gin.Context) {
	a.mutateFavorite(c, a.store.Articles.Unfavorite)
}

func (a *API) mutateFavorite(c *gin.Context, mutate func(ctx context.Context, userID uuid.UUID, article *model.Article) error) {
	viewer, ok := requireViewerID(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()

	article, err := a.store.Articles.GetBySlug(ctx, c.Param("slug"))
	if err != nil {
		server.RespondWithError(c, err)
		return
	}

	if err := mutate(ctx, viewer, article); err != nil {
		server.RespondWithError(c, err)
		return
	}

	view, err := a.articleView(ctx, viewer, true, article)
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	server.RespondOK(c, articleEnvelope{Article: view})
}

// queryInt parses a non-negative integer query parameter, falling back to
// def on absence or garbage.
func queryInt(c *gin.Context, name string, def int) int {
	raw := c.Query(name)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return def
	}
	return n
}
