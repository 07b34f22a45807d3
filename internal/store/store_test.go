package store

import (
	"context"
	"testing"
)

type fixture struct {
	Name  string  `json:"name"`
	Count int     `json:"count"`
	Price float64 `json:"price"`
}

func backends(t *testing.T) map[string]Store {
	t.Helper()

	fileStore, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}

	return map[string]Store{
		"memory": NewMemoryStore(),
		"file":   fileStore,
	}
}

func TestStoreRoundTrip(t *testing.T) {
	ctx := context.Background()

	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			want := fixture{Name: "tomatoes", Count: 2, Price: 3.99}
			if err := s.Set(ctx, "cart:user-1", want); err != nil {
				t.Fatalf("Set: %v", err)
			}

			var got fixture
			ok, err := s.Get(ctx, "cart:user-1", &got)
			if err != nil {
				t.Fatalf("Get: %v", err)
			}
			if !ok {
				t.Fatal("expected key to exist")
			}
			if got != want {
				t.Fatalf("round trip mismatch: got %+v want %+v", got, want)
			}
		})
	}
}

func TestStoreAbsentKey(t *testing.T) {
	ctx := context.Background()

	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			var got fixture
			ok, err := s.Get(ctx, "missing", &got)
			if err != nil {
				t.Fatalf("Get: %v", err)
			}
			if ok {
				t.Fatal("expected absent key to report ok=false")
			}
		})
	}
}

func TestStoreRemove(t *testing.T) {
	ctx := context.Background()

	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			if err := s.Set(ctx, "prefs:user-1", fixture{Name: "en"}); err != nil {
				t.Fatalf("Set: %v", err)
			}
			if err := s.Remove(ctx, "prefs:user-1"); err != nil {
				t.Fatalf("Remove: %v", err)
			}

			var got fixture
			ok, err := s.Get(ctx, "prefs:user-1", &got)
			if err != nil {
				t.Fatalf("Get after Remove: %v", err)
			}
			if ok {
				t.Fatal("expected key to be gone after Remove")
			}

			// Removing an absent key is not an error
			if err := s.Remove(ctx, "prefs:user-1"); err != nil {
				t.Fatalf("Remove of absent key: %v", err)
			}
		})
	}
}

func TestStoreOverwrite(t *testing.T) {
	ctx := context.Background()

	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			if err := s.Set(ctx, "k", fixture{Count: 1}); err != nil {
				t.Fatalf("Set: %v", err)
			}
			if err := s.Set(ctx, "k", fixture{Count: 2}); err != nil {
				t.Fatalf("Set overwrite: %v", err)
			}

			var got fixture
			if _, err := s.Get(ctx, "k", &got); err != nil {
				t.Fatalf("Get: %v", err)
			}
			if got.Count != 2 {
				t.Fatalf("expected overwritten value, got %+v", got)
			}
		})
	}
}
