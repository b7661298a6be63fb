package store

import (
	"context"
	"testing"

	"github.com/conduit-labs/conduit/errors"
	"github.com/conduit-labs/conduit/model"
)

func TestUserCreateAndGet(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	created := mustCreateUser(t, s, "Ada", "Ada@X.com")
	if created.Username != "ada" || created.Email != "ada@x.com" {
		t.Errorf("unique fields not lowercased: %s / %s", created.Username, created.Email)
	}

	byID, err := s.Users.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if byID.Username != "ada" {
		t.Errorf("got %s", byID.Username)
	}

	// lookups are case-insensitive because storage is normalized
	if _, err := s.Users.GetByEmail(ctx, "ADA@x.COM"); err != nil {
		t.Errorf("GetByEmail: %v", err)
	}
	if _, err := s.Users.GetByUsername(ctx, "ADA"); err != nil {
		t.Errorf("GetByUsername: %v", err)
	}
}

func TestUserUniqueness(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	mustCreateUser(t, s, "ada", "ada@x.com")

	tests := []struct {
		name  string
		user  model.User
		field string
	}{
		{"duplicate username", model.User{Username: "ada", Email: "other@x.com"}, "username"},
		{"duplicate username different case", model.User{Username: "ADA", Email: "other2@x.com"}, "username"},
		{"duplicate email", model.User{Username: "grace", Email: "ada@x.com"}, "email"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := tt.user
			err := s.Users.Create(ctx, &u)
			if err == nil {
				t.Fatal("expected uniqueness violation")
			}
			appErr, ok := errors.AsAppError(err)
			if !ok {
				t.Fatalf("expected AppError, got %v", err)
			}
			if appErr.Fields[tt.field] != "is already taken." {
				t.Errorf("fields = %v, want %s taken", appErr.Fields, tt.field)
			}
		})
	}
}

func TestUserGetMissing(t *testing.T) {
	s := newTestStore(t)
	_, err := s.Users.GetByUsername(context.Background(), "nobody")
	appErr, ok := errors.AsAppError(err)
	if !ok || appErr.Code != errors.ErrCodeNotFound {
		t.Errorf("expected NotFound, got %v", err)
	}
}

func TestUserUpdate(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	user := mustCreateUser(t, s, "ada", "ada@x.com")

	user.Bio = "mathematician"
	user.Image = "https://example.com/ada.png"
	if err := s.Users.Update(ctx, user); err != nil {
		t.Fatalf("Update: %v", err)
	}

	got, err := s.Users.GetByID(ctx, user.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Bio != "mathematician" {
		t.Errorf("bio = %q", got.Bio)
	}
}

func TestUserUpdateUniquenessConflict(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	mustCreateUser(t, s, "ada", "ada@x.com")
	grace := mustCreateUser(t, s, "grace", "grace@x.com")

	grace.Username = "ada"
	err := s.Users.Update(ctx, grace)
	appErr, ok := errors.AsAppError(err)
	if !ok || appErr.Fields["username"] != "is already taken." {
		t.Errorf("expected username taken, got %v", err)
	}
}

func TestFollowLifecycle(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	ada := mustCreateUser(t, s, "ada", "ada@x.com")
	grace := mustCreateUser(t, s, "grace", "grace@x.com")

	following, err := s.Users.IsFollowing(ctx, ada.ID, grace.ID)
	if err != nil || following {
		t.Fatalf("expected not following, got %v %v", following, err)
	}

	if err := s.Users.Follow(ctx, ada.ID, grace.ID); err != nil {
		t.Fatalf("Follow: %v", err)
	}
	// idempotent
	if err := s.Users.Follow(ctx, ada.ID, grace.ID); err != nil {
		t.Fatalf("second Follow: %v", err)
	}

	following, err = s.Users.IsFollowing(ctx, ada.ID, grace.ID)
	if err != nil || !following {
		t.Fatalf("expected following, got %v %v", following, err)
	}
	// follow is directed
	reverse, err := s.Users.IsFollowing(ctx, grace.ID, ada.ID)
	if err != nil || reverse {
		t.Fatalf("follow should be directed")
	}

	if err := s.Users.Unfollow(ctx, ada.ID, grace.ID); err != nil {
		t.Fatalf("Unfollow: %v", err)
	}
	// unfollow of a non-followed identity is a no-op success
	if err := s.Users.Unfollow(ctx, ada.ID, grace.ID); err != nil {
		t.Fatalf("second Unfollow: %v", err)
	}

	following, _ = s.Users.IsFollowing(ctx, ada.ID, grace.ID)
	if following {
		t.Error("expected not following after unfollow")
	}
}

func TestSelfFollowRejected(t *testing.T) {
	s := newTestStore(t)
	ada := mustCreateUser(t, s, "ada", "ada@x.com")

	err := s.Users.Follow(context.Background(), ada.ID, ada.ID)
	if err == nil {
		t.Fatal("expected self-follow rejection")
	}
	appErr, ok := errors.AsAppError(err)
	if !ok || appErr.HTTPStatus != 422 {
		t.Errorf("expected 422, got %v", err)
	}
}
