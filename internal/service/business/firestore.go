package business

import (
	"context"
	"errors"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const businessesCollection = "businesses"

// firestoreBusiness maps to the Firestore document structure.
type firestoreBusiness struct {
	User    string `firestore:"user"`
	Company string `firestore:"company"`
}

// FirestoreStore implements Service over the businesses collection.
type FirestoreStore struct {
	client *firestore.Client
}

// NewFirestoreStore creates a new Firestore-backed store.
func NewFirestoreStore(client *firestore.Client) *FirestoreStore {
	return &FirestoreStore{client: client}
}

// ByUser returns the business owned by the given user.
func (s *FirestoreStore) ByUser(ctx context.Context, userID string) (*Business, error) {
	iter := s.client.Collection(businessesCollection).
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

	var fb firestoreBusiness
	if err := doc.DataTo(&fb); err != nil {
		return nil, err
	}

	return &Business{
		ID:          doc.Ref.ID,
		UserID:      fb.User,
		CompanyName: fb.Company,
	}, nil
}

// Compile-time interface check
var _ Service = (*FirestoreStore)(nil)
