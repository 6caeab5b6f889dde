package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/threekidsinatrenchcoat/giftwise/pkg/domain/interfaces"
	"github.com/threekidsinatrenchcoat/giftwise/pkg/domain/model"
	"github.com/threekidsinatrenchcoat/giftwise/pkg/domain/types"
)

type giftRepository struct {
	mu     sync.RWMutex
	gifts  map[types.GiftID]*model.Gift
	nextID types.GiftID
}

func newGiftRepository() *giftRepository {
	return &giftRepository{
		gifts:  make(map[types.GiftID]*model.Gift),
		nextID: 1,
	}
}

func copyGift(g *model.Gift) *model.Gift {
	copied := *g
	return &copied
}

func (r *giftRepository) Create(ctx context.Context, gift *model.Gift) (*model.Gift, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	created := copyGift(gift)
	created.ID = r.nextID
	created.CreatedAt = now
	created.UpdatedAt = now
	r.nextID++

	r.gifts[created.ID] = created
	return copyGift(created), nil
}

func (r *giftRepository) Get(ctx context.Context, id types.GiftID) (*model.Gift, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	gift, exists := r.gifts[id]
	if !exists {
		return nil, goerr.Wrap(interfaces.ErrNotFound, "gift not found", goerr.V("id", id))
	}

	return copyGift(gift), nil
}

func (r *giftRepository) List(ctx context.Context) ([]*model.Gift, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	gifts := make([]*model.Gift, 0, len(r.gifts))
	for _, gift := range r.gifts {
		gifts = append(gifts, copyGift(gift))
	}

	return gifts, nil
}

func (r *giftRepository) ListByPerson(ctx context.Context, personID types.PersonID) ([]*model.Gift, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var gifts []*model.Gift
	for _, gift := range r.gifts {
		if gift.PersonID == personID {
			gifts = append(gifts, copyGift(gift))
		}
	}

	// Match the backing store's ordering, newest first.
	sort.Slice(gifts, func(i, j int) bool {
		return gifts[i].CreatedAt.After(gifts[j].CreatedAt)
	})

	return gifts, nil
}

func (r *giftRepository) Update(ctx context.Context, gift *model.Gift) (*model.Gift, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.gifts[gift.ID]
	if !exists {
		return nil, goerr.Wrap(interfaces.ErrNotFound, "gift not found", goerr.V("id", gift.ID))
	}

	updated := copyGift(gift)
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	r.gifts[updated.ID] = updated
	return copyGift(updated), nil
}

func (r *giftRepository) Delete(ctx context.Context, id types.GiftID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.gifts[id]; !exists {
		return goerr.Wrap(interfaces.ErrNotFound, "gift not found", goerr.V("id", id))
	}

	delete(r.gifts, id)
	return nil
}
