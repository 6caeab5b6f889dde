package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/threekidsinatrenchcoat/giftwise/pkg/domain/model"
	"github.com/threekidsinatrenchcoat/giftwise/pkg/domain/types"
	"google.golang.org/api/iterator"
)

type messageDocument struct {
	ID        string    `firestore:"id"`
	Address   string    `firestore:"address"`
	Body      string    `firestore:"body"`
	SentAt    time.Time `firestore:"sent_at"`
	Direction string    `firestore:"direction"`
	ThreadID  string    `firestore:"thread_id"`
}

func (d *messageDocument) toModel() *model.Message {
	return &model.Message{
		ID:        d.ID,
		Address:   d.Address,
		Body:      d.Body,
		SentAt:    d.SentAt,
		Direction: types.Direction(d.Direction),
		ThreadID:  d.ThreadID,
	}
}

type messageRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newMessageRepository(client *firestore.Client) *messageRepository {
	return &messageRepository{
		client:           client,
		collectionPrefix: "",
	}
}

func (r *messageRepository) messagesCollection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_messages"
	}
	return "messages"
}

// Append writes a batch of synced messages. The message ID doubles as the
// document ID so re-syncing the same batch is idempotent.
func (r *messageRepository) Append(ctx context.Context, messages []*model.Message) error {
	if len(messages) == 0 {
		return nil
	}

	bw := r.client.BulkWriter(ctx)
	for _, msg := range messages {
		doc := &messageDocument{
			ID:        msg.ID,
			Address:   msg.Address,
			Body:      msg.Body,
			SentAt:    msg.SentAt,
			Direction: msg.Direction.String(),
			ThreadID:  msg.ThreadID,
		}
		docRef := r.client.Collection(r.messagesCollection()).Doc(msg.ID)
		if _, err := bw.Set(docRef, doc); err != nil {
			return goerr.Wrap(err, "failed to queue message write", goerr.V("id", msg.ID))
		}
	}
	bw.End()

	return nil
}

func (r *messageRepository) Query(ctx context.Context, since time.Time) ([]*model.Message, error) {
	iter := r.client.Collection(r.messagesCollection()).
		Where("sent_at", ">=", since).
		OrderBy("sent_at", firestore.Desc).
		Documents(ctx)
	defer iter.Stop()

	var messages []*model.Message
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate messages")
		}

		var msgDoc messageDocument
		if err := doc.DataTo(&msgDoc); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal message")
		}

		messages = append(messages, msgDoc.toModel())
	}

	return messages, nil
}
