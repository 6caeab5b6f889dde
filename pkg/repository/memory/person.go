package memory

import (
	"context"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/threekidsinatrenchcoat/giftwise/pkg/domain/interfaces"
	"github.com/threekidsinatrenchcoat/giftwise/pkg/domain/model"
	"github.com/threekidsinatrenchcoat/giftwise/pkg/domain/types"
)

type personRepository struct {
	mu      sync.RWMutex
	persons map[types.PersonID]*model.Person
	nextID  types.PersonID
}

func newPersonRepository() *personRepository {
	return &personRepository{
		persons: make(map[types.PersonID]*model.Person),
		nextID:  1,
	}
}

// copyPerson returns a copy to prevent external modification
func copyPerson(p *model.Person) *model.Person {
	copied := &model.Person{
		ID:            p.ID,
		Name:          p.Name,
		Notes:         p.Notes,
		DefaultBudget: p.DefaultBudget,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
	copied.Relationships = append([]string(nil), p.Relationships...)
	copied.Preferences = append([]string(nil), p.Preferences...)
	return copied
}

func (r *personRepository) Create(ctx context.Context, person *model.Person) (*model.Person, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	created := copyPerson(person)
	created.ID = r.nextID
	created.CreatedAt = now
	created.UpdatedAt = now
	r.nextID++

	r.persons[created.ID] = created
	return copyPerson(created), nil
}

func (r *personRepository) Get(ctx context.Context, id types.PersonID) (*model.Person, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	person, exists := r.persons[id]
	if !exists {
		return nil, goerr.Wrap(interfaces.ErrNotFound, "person not found", goerr.V("id", id))
	}

	return copyPerson(person), nil
}

func (r *personRepository) List(ctx context.Context) ([]*model.Person, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	persons := make([]*model.Person, 0, len(r.persons))
	for _, person := range r.persons {
		persons = append(persons, copyPerson(person))
	}

	return persons, nil
}

func (r *personRepository) Update(ctx context.Context, person *model.Person) (*model.Person, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.persons[person.ID]
	if !exists {
		return nil, goerr.Wrap(interfaces.ErrNotFound, "person not found", goerr.V("id", person.ID))
	}

	updated := copyPerson(person)
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	r.persons[updated.ID] = updated
	return copyPerson(updated), nil
}

func (r *personRepository) Delete(ctx context.Context, id types.PersonID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.persons[id]; !exists {
		return goerr.Wrap(interfaces.ErrNotFound, "person not found", goerr.V("id", id))
	}

	delete(r.persons, id)
	return nil
}
