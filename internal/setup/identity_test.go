package setup

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/navanexis/site/internal/authn/oauth2"
	"github.com/navanexis/site/internal/authz"
	"github.com/navanexis/site/internal/store"
	"github.com/pkg/errors"
)

func TestIdentitySync(t *testing.T) {
	ctx := context.Background()

	userStore := store.NewStore(filepath.Join(t.TempDir(), "identity.db"))
	t.Cleanup(func() {
		if err := userStore.Close(); err != nil {
			t.Errorf("%+v", errors.WithStack(err))
		}
	})

	policy := authz.NewPolicy([]authz.Admin{{Email: "jane@example.com"}})
	identity := NewIdentity(nil, userStore, policy)

	sessionUser := &oauth2.User{
		Subject:  "1",
		Provider: "google",
		Nickname: "jane",
		Email:    "john@example.com",
	}

	first, err := identity.sync(ctx, sessionUser)
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if first.ConnectedAt.IsZero() {
		t.Fatalf("expected the connection time to be recorded")
	}

	// A recent connection of an unchanged user is not written again
	recent := time.Now().UTC().Add(-time.Minute).Truncate(time.Second)
	first.ConnectedAt = recent
	if _, err := userStore.UpdateUser(ctx, first); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	second, err := identity.sync(ctx, sessionUser)
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := recent, second.ConnectedAt; !e.Equal(g) {
		t.Errorf("second.ConnectedAt: expected '%v', got '%v'", e, g)
	}

	// A changed email is written along with its role
	sessionUser.Email = "jane@example.com"

	third, err := identity.sync(ctx, sessionUser)
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := authz.RoleAdmin, third.Role; e != g {
		t.Errorf("third.Role: expected '%v', got '%v'", e, g)
	}

	if !third.ConnectedAt.After(recent) {
		t.Errorf("expected the connection time to be refreshed, got '%v'", third.ConnectedAt)
	}

	// A stale connection time is refreshed
	stale := time.Now().UTC().Add(-2 * connectionRefreshInterval).Truncate(time.Second)
	third.ConnectedAt = stale
	if _, err := userStore.UpdateUser(ctx, third); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	fourth, err := identity.sync(ctx, sessionUser)
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if !fourth.ConnectedAt.After(stale) {
		t.Errorf("expected the stale connection time to be refreshed, got '%v'", fourth.ConnectedAt)
	}

	stored, err := userStore.GetUsers(ctx, fourth.ID)
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := 1, len(stored); e != g {
		t.Fatalf("len(stored): expected '%v', got '%v'", e, g)
	}

	if e, g := "jane@example.com", stored[0].Email; e != g {
		t.Errorf("stored[0].Email: expected '%v', got '%v'", e, g)
	}
}
