package api

import (
	"github.com/gin-gonic/gin"

	"github.com/conduit-labs/conduit/server"
)

// ListTags returns the distinct tags currently attached to at least one
// article.
func (a *API) ListTags(c *gin.Context) {
	tags, err := a.store.Tags.ListInUse(c.Request.Context())
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	server.RespondOK(c, tagsEnvelope{Tags: tags})
}
