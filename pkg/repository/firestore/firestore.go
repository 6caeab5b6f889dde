package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/threekidsinatrenchcoat/giftwise/pkg/domain/interfaces"
)

type Firestore struct {
	client    *firestore.Client
	person    *personRepository
	gift      *giftRepository
	dismissal *dismissalRepository
	message   *messageRepository
}

var _ interfaces.Repository = &Firestore{}

type Option func(*Firestore)

// WithCollectionPrefix namespaces all collections, used to isolate test data.
func WithCollectionPrefix(prefix string) Option {
	return func(f *Firestore) {
		f.person.collectionPrefix = prefix
		f.gift.collectionPrefix = prefix
		f.dismissal.collectionPrefix = prefix
		f.message.collectionPrefix = prefix
	}
}

func New(ctx context.Context, projectID, databaseID string, opts ...Option) (*Firestore, error) {
	var client *firestore.Client
	var err error
	if databaseID != "" {
		client, err = firestore.NewClientWithDatabase(ctx, projectID, databaseID)
	} else {
		client, err = firestore.NewClient(ctx, projectID)
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create firestore client",
			goerr.V("projectID", projectID), goerr.V("databaseID", databaseID))
	}

	f := &Firestore{
		client:    client,
		person:    newPersonRepository(client),
		gift:      newGiftRepository(client),
		dismissal: newDismissalRepository(client),
		message:   newMessageRepository(client),
	}

	for _, opt := range opts {
		opt(f)
	}

	return f, nil
}

func (f *Firestore) Person() interfaces.PersonRepository {
	return f.person
}

func (f *Firestore) Gift() interfaces.GiftRepository {
	return f.gift
}

func (f *Firestore) Dismissal() interfaces.DismissalRepository {
	return f.dismissal
}

func (f *Firestore) Message() interfaces.MessageRepository {
	return f.message
}

func (f *Firestore) Close() error {
	if f.client != nil {
		return f.client.Close()
	}
	return nil
}
