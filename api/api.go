// Package api exposes the REST surface: registration and login, profiles
// with follows, articles with favorites and comments, and the tag listing.
// Handlers bind JSON envelopes, validate, call the store, and serialize
// view types; all policy decisions (who may see or mutate what) live here.
package api

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/conduit-labs/conduit/auth/authctx"
	"github.com/conduit-labs/conduit/auth/jwt"
	"github.com/conduit-labs/conduit/auth/password"
	"github.com/conduit-labs/conduit/errors"
	"github.com/conduit-labs/conduit/logger"
	"github.com/conduit-labs/conduit/server"
	"github.com/conduit-labs/conduit/server/middleware"
	"github.com/conduit-labs/conduit/store"
)

// API holds the handler dependencies.
type API struct {
	store     *store.Store
	tokens    *jwt.Service
	passwords *password.Pool
	log       *logger.Logger
}

// New creates the API handler set.
func New(st *store.Store, tokens *jwt.Service, passwords *password.Pool, log *logger.Logger) *API {
	return &API{
		store:     st,
		tokens:    tokens,
		passwords: passwords,
		log:       log.WithComponent("api"),
	}
}

// RegisterRoutes mounts all endpoints under /api on the given router.
func (a *API) RegisterRoutes(r gin.IRouter) {
	required := middleware.Auth(a.tokens, middleware.Required)
	optional := middleware.Auth(a.tokens, middleware.Optional)

	api := r.Group("/api")

	api.POST("/users", a.Register)
	api.POST("/users/login", a.Login)
	api.GET("/user", required, a.CurrentUser)
	api.PUT("/user", required, a.UpdateUser)

	api.GET("/profiles/:username", optional, a.GetProfile)
	api.POST("/profiles/:username/follow", required, a.Follow)
	api.DELETE("/profiles/:username/follow", required, a.Unfollow)

	api.GET("/articles", optional, a.ListArticles)
	api.GET("/articles/feed", required, a.Feed)
	api.POST("/articles", required, a.CreateArticle)
	api.GET("/articles/:slug", optional, a.GetArticle)
	api.PUT("/articles/:slug", required, a.UpdateArticle)
	api.DELETE("/articles/:slug", required, a.DeleteArticle)

	api.POST("/articles/:slug/favorite", required, a.FavoriteArticle)
	api.DELETE("/articles/:slug/favorite", required, a.UnfavoriteArticle)

	api.GET("/articles/:slug/comments", optional, a.ListComments)
	api.POST("/articles/:slug/comments", required, a.CreateComment)
	api.DELETE("/articles/:slug/comments/:id", required, a.DeleteComment)

	api.GET("/tags", a.ListTags)
}

// viewerID returns the authenticated caller's id, or (uuid.Nil, false)
// when the request is anonymous.
func viewerID(c *gin.Context) (uuid.UUID, bool) {
	claims, ok := authctx.Get(c.Request.Context())
	if !ok {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(claims.ID)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// requireViewerID is viewerID for routes behind the required gate. A
// missing identity here means the route was mounted without the gate;
// respond 401 rather than panic.
func requireViewerID(c *gin.Context) (uuid.UUID, bool) {
	id, ok := viewerID(c)
	if !ok {
		server.RespondWithError(c, errors.Unauthorized("authentication required"))
		return uuid.Nil, false
	}
	return id, true
}

// bindJSON decodes the request body, translating decode failures into the
// 422 envelope instead of Gin's default 400.
func bindJSON(c *gin.Context, out any) bool {
	if err := c.ShouldBindJSON(out); err != nil {
		server.RespondWithError(c, errors.FieldViolation("body", "is invalid"))
		return false
	}
	return true
}
