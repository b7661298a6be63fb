package authctx

import (
	"context"
	"testing"

	"github.com/conduit-labs/conduit/auth/jwt"
)

func TestSetGet(t *testing.T) {
	claims := &jwt.Claims{ID: "user-1", Username: "ada"}
	ctx := Set(context.Background(), claims)

	got, ok := Get(ctx)
	if !ok {
		t.Fatal("expected claims in context")
	}
	if got.ID != "user-1" || got.Username != "ada" {
		t.Errorf("got %+v", got)
	}
}

func TestGetAnonymous(t *testing.T) {
	if _, ok := Get(context.Background()); ok {
		t.Error("expected no claims in empty context")
	}
}

func TestMustGetPanicsWhenAnonymous(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	MustGet(context.Background())
}
