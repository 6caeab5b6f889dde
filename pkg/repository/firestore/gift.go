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

type giftDocument struct {
	ID          int64     `firestore:"id"`
	Title       string    `firestore:"title"`
	Description string    `firestore:"description"`
	URL         string    `firestore:"url"`
	Price       float64   `firestore:"price"`
	PersonID    int64     `firestore:"person_id"`
	Purchased   bool      `firestore:"purchased"`
	PurchasedAt time.Time `firestore:"purchased_at"`
	EventAt     time.Time `firestore:"event_at"`
	CreatedAt   time.Time `firestore:"created_at"`
	UpdatedAt   time.Time `firestore:"updated_at"`
}

func (d *giftDocument) toModel() *model.Gift {
	return &model.Gift{
		ID:          types.GiftID(d.ID),
		Title:       d.Title,
		Description: d.Description,
		URL:         d.URL,
		Price:       d.Price,
		PersonID:    types.PersonID(d.PersonID),
		Purchased:   d.Purchased,
		PurchasedAt: d.PurchasedAt,
		EventAt:     d.EventAt,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

func giftToDocument(g *model.Gift) *giftDocument {
	return &giftDocument{
		ID:          int64(g.ID),
		Title:       g.Title,
		Description: g.Description,
		URL:         g.URL,
		Price:       g.Price,
		PersonID:    int64(g.PersonID),
		Purchased:   g.Purchased,
		PurchasedAt: g.PurchasedAt,
		EventAt:     g.EventAt,
		CreatedAt:   g.CreatedAt,
		UpdatedAt:   g.UpdatedAt,
	}
}

type giftRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newGiftRepository(client *firestore.Client) *giftRepository {
	return &giftRepository{
		client:           client,
		collectionPrefix: "",
	}
}

func (r *giftRepository) giftsCollection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_gifts"
	}
	return "gifts"
}

func (r *giftRepository) counterCollection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_counters"
	}
	return "counters"
}

func (r *giftRepository) getNextID(ctx context.Context) (int64, error) {
	counterRef := r.client.Collection(r.counterCollection()).Doc("gift_counter")
	return nextCounterValue(ctx, r.client, counterRef)
}

func (r *giftRepository) Create(ctx context.Context, gift *model.Gift) (*model.Gift, error) {
	id, err := r.getNextID(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	doc := giftToDocument(gift)
	doc.ID = id
	doc.CreatedAt = now
	doc.UpdatedAt = now

	docRef := r.client.Collection(r.giftsCollection()).Doc(fmt.Sprintf("%d", id))
	if _, err := docRef.Set(ctx, doc); err != nil {
		return nil, goerr.Wrap(err, "failed to create gift")
	}

	return doc.toModel(), nil
}

func (r *giftRepository) Get(ctx context.Context, id types.GiftID) (*model.Gift, error) {
	docRef := r.client.Collection(r.giftsCollection()).Doc(fmt.Sprintf("%d", id))
	doc, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(interfaces.ErrNotFound, "gift not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get gift", goerr.V("id", id))
	}

	var giftDoc giftDocument
	if err := doc.DataTo(&giftDoc); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal gift", goerr.V("id", id))
	}

	return giftDoc.toModel(), nil
}

func (r *giftRepository) List(ctx context.Context) ([]*model.Gift, error) {
	iter := r.client.Collection(r.giftsCollection()).Documents(ctx)
	defer iter.Stop()

	return collectGifts(iter)
}

func (r *giftRepository) ListByPerson(ctx context.Context, personID types.PersonID) ([]*model.Gift, error) {
	iter := r.client.Collection(r.giftsCollection()).
		Where("person_id", "==", int64(personID)).
		OrderBy("created_at", firestore.Desc).
		Documents(ctx)
	defer iter.Stop()

	return collectGifts(iter)
}

func collectGifts(iter *firestore.DocumentIterator) ([]*model.Gift, error) {
	var gifts []*model.Gift
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate gifts")
		}

		var giftDoc giftDocument
		if err := doc.DataTo(&giftDoc); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal gift")
		}

		gifts = append(gifts, giftDoc.toModel())
	}

	return gifts, nil
}

func (r *giftRepository) Update(ctx context.Context, gift *model.Gift) (*model.Gift, error) {
	docRef := r.client.Collection(r.giftsCollection()).Doc(fmt.Sprintf("%d", gift.ID))

	doc, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(interfaces.ErrNotFound, "gift not found", goerr.V("id", gift.ID))
		}
		return nil, goerr.Wrap(err, "failed to get gift", goerr.V("id", gift.ID))
	}

	var existing giftDocument
	if err := doc.DataTo(&existing); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal gift", goerr.V("id", gift.ID))
	}

	updated := giftToDocument(gift)
	updated.ID = existing.ID
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	if _, err := docRef.Set(ctx, updated); err != nil {
		return nil, goerr.Wrap(err, "failed to update gift", goerr.V("id", gift.ID))
	}

	return updated.toModel(), nil
}

func (r *giftRepository) Delete(ctx context.Context, id types.GiftID) error {
	docRef := r.client.Collection(r.giftsCollection()).Doc(fmt.Sprintf("%d", id))

	if _, err := docRef.Get(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return goerr.Wrap(interfaces.ErrNotFound, "gift not found", goerr.V("id", id))
		}
		return goerr.Wrap(err, "failed to get gift", goerr.V("id", id))
	}

	if _, err := docRef.Delete(ctx); err != nil {
		return goerr.Wrap(err, "failed to delete gift", goerr.V("id", id))
	}

	return nil
}
