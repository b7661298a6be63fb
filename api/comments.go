package api

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/conduit-labs/conduit/errors"
	"github.com/conduit-labs/conduit/model"
	"github.com/conduit-labs/conduit/server"
	"github.com/conduit-labs/conduit/validation"
)

// ListComments returns an article's comments oldest first.
func (a *API) ListComments(c *gin.Context) {
	ctx := c.Request.Context()

	article, err := a.store.Articles.GetBySlug(ctx, c.Param("slug"))
	if err != nil {
		server.RespondWithError(c, err)
		return
	}

	comments, err := a.store.Comments.ListByArticle(ctx, article.ID)
	if err != nil {
		server.RespondWithError(c, err)
		return
	}

	viewer, hasViewer := viewerID(c)
	views := make([]CommentView, 0, len(comments))
	for i := range comments {
		view, err := a.commentView(ctx, viewer, hasViewer, &comments[i])
		if err != nil {
			server.RespondWithError(c, err)
			return
		}
		views = append(views, view)
	}
	server.RespondOK(c, commentsEnvelope{Comments: views})
}

type createCommentRequest struct {
	Comment struct {
		Body string `json:"body" validate:"required"`
	} `json:"comment"`
}

// CreateComment adds a comment to an article on behalf of the caller.
func (a *API) CreateComment(c *gin.Context) {
	viewer, ok := requireViewerID(c)
	if !ok {
		return
	}

	var req createCommentRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := validation.Struct(req.Comment); err != nil {
		server.RespondWithError(c, err)
		return
	}

	ctx := c.Request.Context()

	article, err := a.store.Articles.GetBySlug(ctx, c.Param("slug"))
	if err != nil {
		server.RespondWithError(c, err)
		return
	}

	comment := model.Comment{
		Body:      req.Comment.Body,
		AuthorID:  viewer,
		ArticleID: article.ID,
	}
	if err := a.store.Comments.Create(ctx, &comment); err != nil {
		server.RespondWithError(c, err)
		return
	}

	// Reload so the author relation is populated for serialization.
	created, err := a.store.Comments.GetByID(ctx, comment.ID)
	if err != nil {
		server.RespondWithError(c, err)
		return
	}

	view, err := a.commentView(ctx, viewer, true, created)
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	server.RespondCreated(c, commentEnvelope{Comment: view})
}

// DeleteComment removes a comment. Author-only; the comment must belong
// to the named article.
func (a *API) DeleteComment(c *gin.Context) {
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

	commentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		server.RespondWithError(c, errors.NotFound("comment"))
		return
	}

	comment, err := a.store.Comments.GetByID(ctx, commentID)
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	if comment.ArticleID != article.ID {
		server.RespondWithError(c, errors.NotFound("comment"))
		return
	}
	if comment.AuthorID != viewer {
		server.RespondWithError(c, errors.Forbidden("only the author can delete a comment"))
		return
	}

	if err := a.store.Comments.Delete(ctx, comment); err != nil {
		server.RespondWithError(c, err)
		return
	}
	server.RespondNoContent(c)
}
