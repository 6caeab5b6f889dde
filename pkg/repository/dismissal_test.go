package repository_test

import (
	"context"
	"os"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/threekidsinatrenchcoat/giftwise/pkg/domain/interfaces"
	"github.com/threekidsinatrenchcoat/giftwise/pkg/domain/types"
	"github.com/threekidsinatrenchcoat/giftwise/pkg/repository/firestore"
	"github.com/threekidsinatrenchcoat/giftwise/pkg/repository/memory"
)

func runDismissalRepositoryTest(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	t.Helper()

	t.Run("Insert and ListKeys", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		keyA := types.NewSuggestionKey("Camera", "https://example.com/camera")
		keyB := types.NewSuggestionKey("Socks", "")

		gt.NoError(t, repo.Dismissal().Insert(ctx, keyA))
		gt.NoError(t, repo.Dismissal().Insert(ctx, keyB))

		keys, err := repo.Dismissal().ListKeys(ctx)
		gt.NoError(t, err).Required()
		gt.Array(t, keys).Length(2)
	})

	t.Run("re-dismissing the same key is idempotent", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		key := types.NewSuggestionKey("Camera", "https://example.com/camera")
		gt.NoError(t, repo.Dismissal().Insert(ctx, key))
		gt.NoError(t, repo.Dismissal().Insert(ctx, key))

		keys, err := repo.Dismissal().ListKeys(ctx)
		gt.NoError(t, err).Required()
		gt.Array(t, keys).Length(1)
		gt.Value(t, keys[0]).Equal(key)
	})

	t.Run("differently rendered duplicates collapse", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		gt.NoError(t, repo.Dismissal().Insert(ctx, types.NewSuggestionKey("Camera", "HTTP://X")))
		gt.NoError(t, repo.Dismissal().Insert(ctx, types.NewSuggestionKey("camera", "http://x")))

		keys, err := repo.Dismissal().ListKeys(ctx)
		gt.NoError(t, err).Required()
		gt.Array(t, keys).Length(1)
	})
}

func TestDismissalRepository_Memory(t *testing.T) {
	runDismissalRepositoryTest(t, func(t *testing.T) interfaces.Repository {
		return memory.New()
	})
}

func TestDismissalRepository_Firestore(t *testing.T) {
	projectID := os.Getenv("FIRESTORE_PROJECT_ID")
	if projectID == "" {
		t.Skip("FIRESTORE_PROJECT_ID not set")
	}

	runDismissalRepositoryTest(t, func(t *testing.T) interfaces.Repository {
		repo, err := firestore.New(context.Background(), projectID, "")
		gt.NoError(t, err).Required()
		return repo
	})
}
