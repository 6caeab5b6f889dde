package firestore

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/threekidsinatrenchcoat/giftwise/pkg/domain/interfaces"
	"github.com/threekidsinatrenchcoat/giftwise/pkg/domain/model"
	"github.com/threekidsinatrenchcoat/giftwise/pkg/domain/types"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type personDocument struct {
	ID            int64     `firestore:"id"`
	Name          string    `firestore:"name"`
	Relationships []string  `firestore:"relationships"`
	Notes         string    `firestore:"notes"`
	Preferences   []string  `firestore:"preferences"`
	DefaultBudget float64   `firestore:"default_budget"`
	CreatedAt     time.Time `firestore:"created_at"`
	UpdatedAt     time.Time `firestore:"updated_at"`
}

func (d *personDocument) toModel() *model.Person {
	return &model.Person{
		ID:            types.PersonID(d.ID),
		Name:          d.Name,
		Relationships: d.Relationships,
		Notes:         d.Notes,
		Preferences:   d.Preferences,
		DefaultBudget: d.DefaultBudget,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
}

type personRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newPersonRepository(client *firestore.Client) *personRepository {
	return &personRepository{
		client:           client,
		collectionPrefix: "",
	}
}

func (r *personRepository) personsCollection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_persons"
	}
	return "persons"
}

func (r *personRepository) counterCollection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_counters"
	}
	return "counters"
}

func (r *personRepository) getNextID(ctx context.Context) (int64, error) {
	counterRef := r.client.Collection(r.counterCollection()).Doc("person_counter")
	return nextCounterValue(ctx, r.client, counterRef)
}

func (r *personRepository) Create(ctx context.Context, person *model.Person) (*model.Person, error) {
	id, err := r.getNextID(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	doc := &personDocument{
		ID:            id,
		Name:          person.Name,
		Relationships: person.Relationships,
		Notes:         person.Notes,
		Preferences:   person.Preferences,
		DefaultBudget: person.DefaultBudget,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	docRef := r.client.Collection(r.personsCollection()).Doc(fmt.Sprintf("%d", id))
	if _, err := docRef.Set(ctx, doc); err != nil {
		return nil, goerr.Wrap(err, "failed to create person")
	}

	return doc.toModel(), nil
}

func (r *personRepository) Get(ctx context.Context, id types.PersonID) (*model.Person, error) {
	docRef := r.client.Collection(r.personsCollection()).Doc(fmt.Sprintf("%d", id))
	doc, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(interfaces.ErrNotFound, "person not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get person", goerr.V("id", id))
	}

	var personDoc personDocument
	if err := doc.DataTo(&personDoc); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal person", goerr.V("id", id))
	}

	return personDoc.toModel(), nil
}

func (r *personRepository) List(ctx context.Context) ([]*model.Person, error) {
	iter := r.client.Collection(r.personsCollection()).Documents(ctx)
	defer iter.Stop()

	var persons []*model.Person
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate persons")
		}

		var personDoc personDocument
		if err := doc.DataTo(&personDoc); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal person")
		}

		persons = append(persons, personDoc.toModel())
	}

	return persons, nil
}

func (r *personRepository) Update(ctx context.Context, person *model.Person) (*model.Person, error) {
	docRef := r.client.Collection(r.personsCollection()).Doc(fmt.Sprintf("%d", person.ID))

	doc, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(interfaces.ErrNotFound, "person not found", goerr.V("id", person.ID))
		}
		return nil, goerr.Wrap(err, "failed to get person", goerr.V("id", person.ID))
	}

	var existing personDocument
	if err := doc.DataTo(&existing); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal person", goerr.V("id", person.ID))
	}

	updated := &personDocument{
		ID:            existing.ID,
		Name:          person.Name,
		Relationships: person.Relationships,
		Notes:         person.Notes,
		Preferences:   person.Preferences,
		DefaultBudget: person.DefaultBudget,
		CreatedAt:     existing.CreatedAt,
		UpdatedAt:     time.Now().UTC(),
	}

	if _, err := docRef.Set(ctx, updated); err != nil {
		return nil, goerr.Wrap(err, "failed to update person", goerr.V("id", person.ID))
	}

	return updated.toModel(), nil
}

func (r *personRepository) Delete(ctx context.Context, id types.PersonID) error {
	docRef := r.client.Collection(r.personsCollection()).Doc(fmt.Sprintf("%d", id))

	if _, err := docRef.Get(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return goerr.Wrap(interfaces.ErrNotFound, "person not found", goerr.V("id", id))
		}
		return goerr.Wrap(err, "failed to get person", goerr.V("id", id))
	}

	if _, err := docRef.Delete(ctx); err != nil {
		return goerr.Wrap(err, "failed to delete person", goerr.V("id", id))
	}

	return nil
}
