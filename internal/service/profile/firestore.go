package profile

import (
	"context"
	"errors"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	businessesCollection = "businesses"
	vasCollection        = "vas"
)

// FirestoreStore implements Service over the businesses and vas collections.
// Profile documents carry a "user" field referencing the owning user.
type FirestoreStore struct {
	client *firestore.Client
}

// NewFirestoreStore creates a new Firestore-backed store.
func NewFirestoreStore(client *firestore.Client) *FirestoreStore {
	return &FirestoreStore{client: client}
}

// BusinessByUser returns the business profile owned by the given user.
func (s *FirestoreStore) BusinessByUser(ctx context.Context, userID string) (*Doc, error) {
	return s.byUser(ctx, businessesCollection, userID)
}

// VAByUser returns the VA profile owned by the given user.
func (s *FirestoreStore) VAByUser(ctx context.Context, userID string) (*Doc, error) {
	return s.byUser(ctx, vasCollection, userID)
}

func (s *FirestoreStore) byUser(ctx context.Context, collection, userID string) (*Doc, error) {
	iter := s.client.Collection(collection).
		Where("user", "==", userID).
		Limit(1).
		Documents(ctx)
	defer iter.Stop()

	doc, err := iter.Next()
	if err != nil {
		if errors.Is(err, iterator.Done) || status.Code(err) == codes.NotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &Doc{
		ID:        doc.Ref.ID,
		Fields:    doc.Data(),
		UpdatedAt: doc.UpdateTime,
	}, nil
}

// Compile-time interface check
var _ Service = (*FirestoreStore)(nil)
