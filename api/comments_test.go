package api

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
)

func postComment(t *testing.T, r *gin.Engine, token, slug, body string) CommentView {
	t.Helper()
	w := do(t, r, http.MethodPost, "/api/articles/"+slug+"/comments", token, map[string]any{
		"comment": map[string]any{"body": body},
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("post comment: status = %d, body %s", w.Code, w.Body.String())
	}
	var env commentEnvelope
	decode(t, w, &env)
	return env.Comment
}

func TestComments(t *testing.T) {
	r := newTestAPI(t)
	author := register(t, r, "ada", uniqueEmail("ada"), "pw12345")
	reader := register(t, r, "grace", uniqueEmail("grace"), "pw12345")
	slug := createArticle(t, r, author, "Discussed")

	first := postComment(t, r, reader, slug, "first!")
	second := postComment(t, r, author, slug, "thanks for reading")

	t.Run("created comment carries its author", func(t *testing.T) {
		if first.Author.Username != "grace" {
			t.Errorf("author = %q", first.Author.Username)
		}
		if first.ID == "" {
			t.Error("empty comment id")
		}
	})

	t.Run("list oldest first, anonymous allowed", func(t *testing.T) {
		w := do(t, r, http.MethodGet, "/api/articles/"+slug+"/comments", "", nil)
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
		}
		var env commentsEnvelope
		decode(t, w, &env)
		if len(env.Comments) != 2 {
			t.Fatalf("len = %d", len(env.Comments))
		}
		if env.Comments[0].ID != first.ID || env.Comments[1].ID != second.ID {
			t.Errorf("order = [%s %s]", env.Comments[0].Body, env.Comments[1].Body)
		}
	})

	t.Run("blank body rejected", func(t *testing.T) {
		w := do(t, r, http.MethodPost, "/api/articles/"+slug+"/comments", reader, map[string]any{
			"comment": map[string]any{"body": ""},
		})
		if w.Code != http.StatusUnprocessableEntity {
			t.Fatalf("status = %d", w.Code)
		}
		if got := errorField(t, w, "body"); got != "can't be blank" {
			t.Errorf("errors.body = %q", got)
		}
	})

	t.Run("comment on unknown article", func(t *testing.T) {
		w := do(t, r, http.MethodPost, "/api/articles/no-such-slug/comments", reader, map[string]any{
			"comment": map[string]any{"body": "void"},
		})
		if w.Code != http.StatusNotFound {
			t.Errorf("status = %d, want 404", w.Code)
		}
	})

	t.Run("delete requires comment author", func(t *testing.T) {
		w := do(t, r, http.MethodDelete, "/api/articles/"+slug+"/comments/"+first.ID, author, nil)
		if w.Code != http.StatusForbidden {
			t.Errorf("status = %d, want 403", w.Code)
		}
	})

	t.Run("author deletes own comment", func(t *testing.T) {
		w := do(t, r, http.MethodDelete, "/api/articles/"+slug+"/comments/"+first.ID, reader, nil)
		if w.Code != http.StatusNoContent {
			t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
		}

		w = do(t, r, http.MethodGet, "/api/articles/"+slug+"/comments", "", nil)
		var env commentsEnvelope
		decode(t, w, &env)
		if len(env.Comments) != 1 {
			t.Errorf("len = %d after delete", len(env.Comments))
		}
	})

	t.Run("delete unknown comment id", func(t *testing.T) {
		w := do(t, r, http.MethodDelete, "/api/articles/"+slug+"/comments/not-a-uuid", reader, nil)
		if w.Code != http.StatusNotFound {
			t.Errorf("status = %d, want 404", w.Code)
		}
	})

	t.Run("comment must belong to the named article", func(t *testing.T) {
		otherSlug := createArticle(t, r, author, "Unrelated")
		w := do(t, r, http.MethodDelete, "/api/articles/"+otherSlug+"/comments/"+second.ID, author, nil)
		if w.Code != http.StatusNotFound {
			t.Errorf("status = %d, want 404", w.Code)
		}
	})
}

func TestListTags(t *testing.T) {
	r := newTestAPI(t)
	token := register(t, r, "ada", uniqueEmail("ada"), "pw12345")

	t.Run("empty when nothing tagged", func(t *testing.T) {
		w := do(t, r, http.MethodGet, "/api/tags", "", nil)
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d", w.Code)
		}
		var env tagsEnvelope
		decode(t, w, &env)
		if len(env.Tags) != 0 {
			t.Errorf("tags = %v", env.Tags)
		}
	})

	t.Run("distinct tags in use", func(t *testing.T) {
		createArticle(t, r, token, "One", "go", "web")
		createArticle(t, r, token, "Two", "go")

		w := do(t, r, http.MethodGet, "/api/tags", "", nil)
		var env tagsEnvelope
		decode(t, w, &env)
		if len(env.Tags) != 2 {
			t.Errorf("tags = %v, want 2 distinct", env.Tags)
		}
	})
}
