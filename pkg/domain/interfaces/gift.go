package interfaces

import (
	"context"

	"github.com/threekidsinatrenchcoat/giftwise/pkg/domain/model"
	"github.com/threekidsinatrenchcoat/giftwise/pkg/domain/types"
)

type GiftRepository interface {
	// Create creates a new gift with auto-generated ID
	Create(ctx context.Context, gift *model.Gift) (*model.Gift, error)

	// Get retrieves a gift by ID
	Get(ctx context.Context, id types.GiftID) (*model.Gift, error)

	// List retrieves all gifts
	List(ctx context.Context) ([]*model.Gift, error)

	// ListByPerson retrieves all gifts attached to a person
	ListByPerson(ctx context.Context, personID types.PersonID) ([]*model.Gift, error)

	// Update updates an existing gift
	Update(ctx context.Context, gift *model.Gift) (*model.Gift, error)

	// Delete deletes a gift by ID
	Delete(ctx context.Context, id types.GiftID) error
}
