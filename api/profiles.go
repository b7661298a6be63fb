package api

import (
	"github.com/gin-gonic/gin"

	"github.com/conduit-labs/conduit/errors"
	"github.com/conduit-labs/conduit/server"
)

// GetProfile returns a public profile. The follow flag is computed against
// the caller and is always false for anonymous requests.
func (a *API) GetProfile(c *gin.Context) {
	ctx := c.Request.Context()

	user, err := a.store.Users.GetByUsername(ctx, c.Param("username"))
	if err != nil {
		server.RespondWithError(c, err)
		return
	}

	viewer, hasViewer := viewerID(c)
	view, err := a.profileView(ctx, viewer, hasViewer, user)
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	server.RespondOK(c, profileEnvelope{Profile: view})
}

// Follow adds the named identity to the caller's follow-set and returns
// the profile. Idempotent; following yourself is a 422.
func (a *API) Follow(c *gin.Context) {
	viewer, ok := requireViewerID(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()

	user, err := a.store.Users.GetByUsername(ctx, c.Param("username"))
	if err != nil {
		server.RespondWithError(c, err)
		return
	}

	if err := a.store.Users.Follow(ctx, viewer, user.ID); err != nil {
		server.RespondWithError(c, err)
		return
	}

	view, err := a.profileView(ctx, viewer, true, user)
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	server.RespondOK(c, profileEnvelope{Profile: view})
}

// Unfollow removes the named identity from the caller's follow-set.
// Unfollowing someone never followed is a no-op success.
func (a *API) Unfollow(c *gin.Context) {
	viewer, ok := requireViewerID(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()

	user, err := a.store.Users.GetByUsername(ctx, c.Param("username"))
	if err != nil {
		server.RespondWithError(c, err)
		return
	}

	if viewer == user.ID {
		server.RespondWithError(c, errors.FieldViolation("username", "can't follow yourself"))
		return
	}

	if err := a.store.Users.Unfollow(ctx, viewer, user.ID); err != nil {
		server.RespondWithError(c, err)
		return
	}

	view, err := a.profileView(ctx, viewer, true, user)
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	server.RespondOK(c, profileEnvelope{Profile: view})
}
