package memory

import (
	"context"
	"testing"
)

func TestPreferencesRepository(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := NewPreferencesRepository()

	if _, ok, err := repo.Get(ctx, "auth_token"); ok || err != nil {
		t.Fatalf("Get() on empty repo = %v, %v", ok, err)
	}

	if err := repo.PutAll(ctx, map[string]string{"auth_token": "t1", "user_id": "u1"}); err != nil {
		t.Fatalf("PutAll() error = %v", err)
	}
	if v, ok, _ := repo.Get(ctx, "auth_token"); !ok || v != "t1" {
		t.Errorf("Get(auth_token) = %q, %v", v, ok)
	}

	if err := repo.Delete(ctx, "auth_token", "user_id", "missing"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, ok, _ := repo.Get(ctx, "user_id"); ok {
		t.Error("user_id should be deleted")
	}
	if err := repo.Health(ctx); err != nil {
		t.Errorf("Health() error = %v", err)
	}
}
