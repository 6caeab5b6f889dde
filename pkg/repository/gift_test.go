package repository_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/threekidsinatrenchcoat/giftwise/pkg/domain/interfaces"
	"github.com/threekidsinatrenchcoat/giftwise/pkg/domain/model"
	"github.com/threekidsinatrenchcoat/giftwise/pkg/domain/types"
	"github.com/threekidsinatrenchcoat/giftwise/pkg/repository/firestore"
	"github.com/threekidsinatrenchcoat/giftwise/pkg/repository/memory"
)

func runGiftRepositoryTest(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	t.Helper()

	t.Run("Create and Get", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		person, err := repo.Person().Create(ctx, &model.Person{Name: "Alice"})
		gt.NoError(t, err).Required()

		created, err := repo.Gift().Create(ctx, &model.Gift{
			Title:    "Trail camera",
			URL:      "https://example.com/camera",
			Price:    120,
			PersonID: person.ID,
		})
		gt.NoError(t, err).Required()
		gt.Value(t, created.ID).NotEqual(types.GiftID(0))

		got, err := repo.Gift().Get(ctx, created.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, got.Title).Equal("Trail camera")
		gt.Value(t, got.PersonID).Equal(person.ID)
	})

	t.Run("ListByPerson filters by person", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		alice, err := repo.Person().Create(ctx, &model.Person{Name: "Alice"})
		gt.NoError(t, err).Required()
		bob, err := repo.Person().Create(ctx, &model.Person{Name: "Bob"})
		gt.NoError(t, err).Required()

		for i := 0; i < 2; i++ {
			_, err := repo.Gift().Create(ctx, &model.Gift{Title: "For Alice", PersonID: alice.ID})
			gt.NoError(t, err).Required()
		}
		_, err = repo.Gift().Create(ctx, &model.Gift{Title: "For Bob", PersonID: bob.ID})
		gt.NoError(t, err).Required()

		gifts, err := repo.Gift().ListByPerson(ctx, alice.ID)
		gt.NoError(t, err).Required()
		gt.Array(t, gifts).Length(2)
		for _, g := range gifts {
			gt.Value(t, g.PersonID).Equal(alice.ID)
		}
	})

	t.Run("Update keeps CreatedAt", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.Gift().Create(ctx, &model.Gift{Title: "Book"})
		gt.NoError(t, err).Required()

		created.Purchased = true
		updated, err := repo.Gift().Update(ctx, created)
		gt.NoError(t, err).Required()
		gt.Bool(t, updated.Purchased).True()
		gt.Value(t, updated.CreatedAt).Equal(created.CreatedAt)
	})

	t.Run("Get unknown ID returns ErrNotFound", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		_, err := repo.Gift().Get(ctx, types.GiftID(424242))
		gt.Bool(t, errors.Is(err, interfaces.ErrNotFound)).True()
	})

	t.Run("Delete removes gift", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.Gift().Create(ctx, &model.Gift{Title: "Socks"})
		gt.NoError(t, err).Required()

		gt.NoError(t, repo.Gift().Delete(ctx, created.ID))
		_, err = repo.Gift().Get(ctx, created.ID)
		gt.Bool(t, errors.Is(err, interfaces.ErrNotFound)).True()
	})
}

func TestGiftRepository_Memory(t *testing.T) {
	runGiftRepositoryTest(t, func(t *testing.T) interfaces.Repository {
		return memory.New()
	})
}

func TestGiftRepository_Firestore(t *testing.T) {
	projectID := os.Getenv("FIRESTORE_PROJECT_ID")
	if projectID == "" {
		t.Skip("FIRESTORE_PROJECT_ID not set")
	}

	runGiftRepositoryTest(t, func(t *testing.T) interfaces.Repository {
		repo, err := firestore.New(context.Background(), projectID, "")
		gt.NoError(t, err).Required()
		return repo
	})
}
