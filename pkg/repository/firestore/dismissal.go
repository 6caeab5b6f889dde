package firestore

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/threekidsinatrenchcoat/giftwise/pkg/domain/types"
	"google.golang.org/api/iterator"
)

type dismissalDocument struct {
	SuggestionKey string    `firestore:"suggestion_key"`
	DismissedAt   time.Time `firestore:"dismissed_at"`
}

type dismissalRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newDismissalRepository(client *firestore.Client) *dismissalRepository {
	return &dismissalRepository{
		client:           client,
		collectionPrefix: "",
	}
}

func (r *dismissalRepository) dismissalsCollection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_dismissals"
	}
	return "dismissals"
}

// docID hashes the suggestion key so arbitrary URLs stay within Firestore's
// document ID constraints.
func docID(key types.SuggestionKey) string {
	sum := sha256.Sum256([]byte(key))
	return hex.EncodeToString(sum[:])
}

func (r *dismissalRepository) Insert(ctx context.Context, key types.SuggestionKey) error {
	doc := &dismissalDocument{
		SuggestionKey: key.String(),
		DismissedAt:   time.Now().UTC(),
	}

	// Set on a key-derived document ID makes re-dismissal a latest-wins
	// overwrite of the same record.
	docRef := r.client.Collection(r.dismissalsCollection()).Doc(docID(key))
	if _, err := docRef.Set(ctx, doc); err != nil {
		return goerr.Wrap(err, "failed to insert dismissal", goerr.V("key", key))
	}

	return nil
}

func (r *dismissalRepository) ListKeys(ctx context.Context) ([]types.SuggestionKey, error) {
	iter := r.client.Collection(r.dismissalsCollection()).Documents(ctx)
	defer iter.Stop()

	var keys []types.SuggestionKey
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate dismissals")
		}

		var dismissalDoc dismissalDocument
		if err := doc.DataTo(&dismissalDoc); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal dismissal")
		}

		keys = append(keys, types.SuggestionKey(dismissalDoc.SuggestionKey))
	}

	return keys, nil
}
