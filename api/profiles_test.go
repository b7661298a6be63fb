package api

import (
	"net/http"
	"testing"
)

func TestGetProfile(t *testing.T) {
	r := newTestAPI(t)
	register(t, r, "ada", uniqueEmail("ada"), "pw12345")

	t.Run("anonymous sees following false", func(t *testing.T) {
		w := do(t, r, http.MethodGet, "/api/profiles/ada", "", nil)
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
		}
		var env profileEnvelope
		decode(t, w, &env)
		if env.Profile.Username != "ada" {
			t.Errorf("username = %q", env.Profile.Username)
		}
		if env.Profile.Following {
			t.Error("anonymous viewer reported as following")
		}
	})

	t.Run("case-insensitive lookup", func(t *testing.T) {
		w := do(t, r, http.MethodGet, "/api/profiles/ADA", "", nil)
		if w.Code != http.StatusOK {
			t.Errorf("status = %d", w.Code)
		}
	})

	t.Run("unknown username", func(t *testing.T) {
		w := do(t, r, http.MethodGet, "/api/profiles/ghost", "", nil)
		if w.Code != http.StatusNotFound {
			t.Errorf("status = %d, want 404", w.Code)
		}
	})
}

func TestFollowLifecycle(t *testing.T) {
	r := newTestAPI(t)
	token := register(t, r, "ada", uniqueEmail("ada"), "pw12345")
	register(t, r, "grace", uniqueEmail("grace"), "pw12345")

	t.Run("requires authentication", func(t *testing.T) {
		w := do(t, r, http.MethodPost, "/api/profiles/grace/follow", "", nil)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", w.Code)
		}
	})

	t.Run("follow sets the flag", func(t *testing.T) {
		w := do(t, r, http.MethodPost, "/api/profiles/grace/follow", token, nil)
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
		}
		var env profileEnvelope
		decode(t, w, &env)
		if !env.Profile.Following {
			t.Error("following = false after follow")
		}
	})

	t.Run("follow is idempotent", func(t *testing.T) {
		w := do(t, r, http.MethodPost, "/api/profiles/grace/follow", token, nil)
		if w.Code != http.StatusOK {
			t.Fatalf("repeat follow: status = %d, body %s", w.Code, w.Body.String())
		}
	})

	t.Run("profile reflects the relation per viewer", func(t *testing.T) {
		w := do(t, r, http.MethodGet, "/api/profiles/grace", token, nil)
		var env profileEnvelope
		decode(t, w, &env)
		if !env.Profile.Following {
			t.Error("follower does not see following = true")
		}

		w = do(t, r, http.MethodGet, "/api/profiles/grace", "", nil)
		decode(t, w, &env)
		if env.Profile.Following {
			t.Error("anonymous viewer sees following = true")
		}
	})

	t.Run("unfollow clears the flag", func(t *testing.T) {
		w := do(t, r, http.MethodDelete, "/api/profiles/grace/follow", token, nil)
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
		}
		var env profileEnvelope
		decode(t, w, &env)
		if env.Profile.Following {
			t.Error("following = true after unfollow")
		}
	})

	t.Run("unfollow never-followed is a no-op success", func(t *testing.T) {
		w := do(t, r, http.MethodDelete, "/api/profiles/grace/follow", token, nil)
		if w.Code != http.StatusOK {
			t.Errorf("status = %d, body %s", w.Code, w.Body.String())
		}
	})

	t.Run("self-follow rejected", func(t *testing.T) {
		w := do(t, r, http.MethodPost, "/api/profiles/ada/follow", token, nil)
		if w.Code != http.StatusUnprocessableEntity {
			t.Fatalf("status = %d, want 422", w.Code)
		}
		if got := errorField(t, w, "username"); got != "can't follow yourself" {
			t.Errorf("errors.username = %q", got)
		}
	})

	t.Run("follow unknown username", func(t *testing.T) {
		w := do(t, r, http.MethodPost, "/api/profiles/ghost/follow", token, nil)
		if w.Code != http.StatusNotFound {
			t.Errorf("status = %d, want 404", w.Code)
		}
	})
}
