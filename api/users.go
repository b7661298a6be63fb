package api

import (
	"github.com/gin-gonic/gin"

	"github.com/conduit-labs/conduit/errors"
	"github.com/conduit-labs/conduit/model"
	"github.com/conduit-labs/conduit/server"
	"github.com/conduit-labs/conduit/validation"
)

type registerRequest struct {
	User struct {
		Username string `json:"username" validate:"required,alphanum"`
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	} `json:"user"`
}

// Register creates an identity and returns it with a fresh token.
func (a *API) Register(c *gin.Context) {
	var req registerRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := validation.Struct(req.User); err != nil {
		server.RespondWithError(c, err)
		return
	}

	ctx := c.Request.Context()

	cred, err := a.passwords.HashCtx(ctx, req.User.Password)
	if err != nil {
		server.RespondWithError(c, err)
		return
	}

	user := model.User{
		Username: req.User.Username,
		Email:    req.User.Email,
	}
	user.SetCredential(cred)

	if err := a.store.Users.Create(ctx, &user); err != nil {
		server.RespondWithError(c, err)
		return
	}

	view, err := a.userView(&user)
	if err != nil {
		server.RespondWithError(c, err)
		return
	}

	a.log.Info("User registered", map[string]interface{}{
		"username": user.Username,
	})
	server.RespondCreated(c, userEnvelope{User: view})
}

type loginRequest struct {
	User struct {
		Email    string `json:"email" validate:"required"`
		Password string `json:"password" validate:"required"`
	} `json:"user"`
}

// Login authenticates by email and password. Failures are deliberately
// 422 form errors, mirroring registration, not 401s.
func (a *API) Login(c *gin.Context) {
	var req loginRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := validation.Struct(req.User); err != nil {
		server.RespondWithError(c, err)
		return
	}

	ctx := c.Request.Context()

	user, err := a.store.Users.GetByEmail(ctx, req.User.Email)
	if err != nil {
		if errors.IsNotFound(err) {
			server.RespondWithError(c, errors.FieldViolation("email", "Incorrect username."))
			return
		}
		server.RespondWithError(c, err)
		return
	}

	ok, err := a.passwords.VerifyCtx(ctx, req.User.Password, user.Credential())
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	if !ok {
		server.RespondWithError(c, errors.FieldViolation("password", "Incorrect password."))
		return
	}

	view, err := a.userView(user)
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	server.RespondOK(c, userEnvelope{User: view})
}

// CurrentUser returns the authenticated identity with a fresh token. A
// token whose identity has since been deleted gets a 401, not a 404.
func (a *API) CurrentUser(c *gin.Context) {
	id, ok := requireViewerID(c)
	if !ok {
		return
	}

	user, err := a.store.Users.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.IsNotFound(err) {
			server.RespondWithError(c, errors.Unauthorized("identity no longer exists"))
			return
		}
		server.RespondWithError(c, err)
		return
	}

	view, err := a.userView(user)
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	server.RespondOK(c, userEnvelope{User: view})
}

type updateUserRequest struct {
	User struct {
		Username *string `json:"username"`
		Email    *string `json:"email"`
		Bio      *string `json:"bio"`
		Image    *string `json:"image"`
		Password *string `json:"password"`
	} `json:"user"`
}

// fieldErrors collects per-field problems from a partial update before any
// write happens.
func (r *updateUserRequest) fieldErrors() map[string]string {
	fields := make(map[string]string)
	if r.User.Username != nil {
		switch {
		case *r.User.Username == "":
			fields["username"] = "can't be blank"
		case !isAlphanumeric(*r.User.Username):
			fields["username"] = "is invalid"
		}
	}
	if r.User.Email != nil {
		if *r.User.Email == "" {
			fields["email"] = "can't be blank"
		} else if err := validation.Struct(struct {
			Email string `json:"email" validate:"email"`
		}{Email: *r.User.Email}); err != nil {
			fields["email"] = "is invalid"
		}
	}
	if r.User.Password != nil && *r.User.Password == "" {
		fields["password"] = "can't be blank"
	}
	return fields
}

func isAlphanumeric(s string) bool {
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		default:
			return false
		}
	}
	return true
}

// UpdateUser applies a partial update to the authenticated identity.
// Absent fields are left untouched; a password field rehashes.
func (a *API) UpdateUser(c *gin.Context) {
	id, ok := requireViewerID(c)
	if !ok {
		return
	}

	var req updateUserRequest
	if !bindJSON(c, &req) {
		return
	}
	if fields := req.fieldErrors(); len(fields) > 0 {
		server.RespondWithError(c, errors.Unprocessable(fields))
		return
	}

	ctx := c.Request.Context()

	user, err := a.store.Users.GetByID(ctx, id)
	if err != nil {
		if errors.IsNotFound(err) {
			server.RespondWithError(c, errors.Unauthorized("identity no longer exists"))
			return
		}
		server.RespondWithError(c, err)
		return
	}

	if req.User.Username != nil {
		user.Username = *req.User.Username
	}
	if req.User.Email != nil {
		user.Email = *req.User.Email
	}
	if req.User.Bio != nil {
		user.Bio = *req.User.Bio
	}
	if req.User.Image != nil {
		user.Image = *req.User.Image
	}
	if req.User.Password != nil {
		cred, err := a.passwords.HashCtx(ctx, *req.User.Password)
		if err != nil {
			server.RespondWithError(c, err)
			return
		}
		user.SetCredential(cred)
	}

	if err := a.store.Users.Update(ctx, user); err != nil {
		server.RespondWithError(c, err)
		return
	}

	view, err := a.userView(user)
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	server.RespondOK(c, userEnvelope{User: view})
}
