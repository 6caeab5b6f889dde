package interfaces

import (
	"context"

	"github.com/threekidsinatrenchcoat/giftwise/pkg/domain/model"
	"github.com/threekidsinatrenchcoat/giftwise/pkg/domain/types"
)

type PersonRepository interface {
	// Create creates a new person with auto-generated ID
	Create(ctx context.Context, person *model.Person) (*model.Person, error)

	// Get retrieves a person by ID
	Get(ctx context.Context, id types.PersonID) (*model.Person, error)

	// List retrieves all persons
	List(ctx context.Context) ([]*model.Person, error)

	// Update updates an existing person
	Update(ctx context.Context, person *model.Person) (*model.Person, error)

	// Delete deletes a person by ID
	Delete(ctx context.Context, id types.PersonID) error
}
