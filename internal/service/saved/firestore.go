package saved

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"cloud.google.com/go/firestore/apiv1/firestorepb"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const savedCollection = "saved_vas"

// firestoreEntry is the stored document shape.
type firestoreEntry struct {
	BusinessID string    `firestore:"business"`
	VAID       string    `firestore:"va"`
	UserID     string    `firestore:"user"`
	Brand      string    `firestore:"brand"`
	Notes      string    `firestore:"notes"`
	SavedAt    time.Time `firestore:"savedAt"`
}

// FirestoreStore implements Store over the saved_vas collection. Documents
// are keyed "<businessID>_<vaID>" so the (business, va) uniqueness
// constraint is the document ID itself.
type FirestoreStore struct {
	client *firestore.Client
}

// NewFirestoreStore creates a new Firestore-backed store.
func NewFirestoreStore(client *firestore.Client) *FirestoreStore {
	return &FirestoreStore{client: client}
}

func entryDocID(businessID, vaID string) string {
	return businessID + "_" + vaID
}

// Create inserts an entry, failing with ErrAlreadySaved when a document
// for the pair already exists. The transactional create makes concurrent
// duplicate saves resolve deterministically.
func (s *FirestoreStore) Create(ctx context.Context, entry Entry) (*Entry, error) {
	ref := s.client.Collection(savedCollection).Doc(entryDocID(entry.BusinessID, entry.VAID))

	err := s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		return tx.Create(ref, firestoreEntry{
			BusinessID: entry.BusinessID,
			VAID:       entry.VAID,
			UserID:     entry.UserID,
			Brand:      entry.Brand,
			Notes:      entry.Notes,
			SavedAt:    entry.SavedAt,
		})
	})
	if err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return nil, ErrAlreadySaved
		}
		return nil, err
	}

	entry.ID = ref.ID
	return &entry, nil
}

// Get returns the entry for a (business, va) pair, or ErrNotSaved.
func (s *FirestoreStore) Get(ctx context.Context, businessID, vaID string) (*Entry, error) {
	doc, err := s.client.Collection(savedCollection).Doc(entryDocID(businessID, vaID)).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, ErrNotSaved
		}
		return nil, err
	}
	return docToEntry(doc)
}

// Delete removes the entry for a (business, va) pair, or returns
// ErrNotSaved when none exists.
func (s *FirestoreStore) Delete(ctx context.Context, businessID, vaID string) error {
	ref := s.client.Collection(savedCollection).Doc(entryDocID(businessID, vaID))
	_, err := ref.Delete(ctx, firestore.Exists)
	if err != nil {
		if status.Code(err) == codes.NotFound || status.Code(err) == codes.FailedPrecondition {
			return ErrNotSaved
		}
		return err
	}
	return nil
}

// ListByBusiness returns one page of a business's entries ordered by save
// date descending, plus the total entry count.
func (s *FirestoreStore) ListByBusiness(ctx context.Context, businessID string, offset, limit int) ([]Entry, int, error) {
	total, err := s.CountByBusiness(ctx, businessID)
	if err != nil {
		return nil, 0, err
	}

	iter := s.client.Collection(savedCollection).
		Where("business", "==", businessID).
		OrderBy("savedAt", firestore.Desc).
		Offset(offset).
		Limit(limit).
		Documents(ctx)
	defer iter.Stop()

	var entries []Entry
	for {
		doc, err := iter.Next()
		if err != nil {
			if err == iterator.Done {
				break
			}
			return nil, 0, err
		}
		entry, err := docToEntry(doc)
		if err != nil {
			return nil, 0, err
		}
		entries = append(entries, *entry)
	}
	return entries, total, nil
}

// CountByBusiness returns the number of entries a business holds, using a
// server-side count aggregation.
func (s *FirestoreStore) CountByBusiness(ctx context.Context, businessID string) (int, error) {
	query := s.client.Collection(savedCollection).Where("business", "==", businessID)
	result, err := query.NewAggregationQuery().WithCount("count").Get(ctx)
	if err != nil {
		return 0, err
	}
	value, ok := result["count"]
	if !ok {
		return 0, nil
	}
	count, ok := value.(*firestorepb.Value)
	if !ok {
		return 0, nil
	}
	return int(count.GetIntegerValue()), nil
}

// DeleteByBusiness removes every entry a business holds and returns the
// number removed.
func (s *FirestoreStore) DeleteByBusiness(ctx context.Context, businessID string) (int, error) {
	iter := s.client.Collection(savedCollection).
		Where("business", "==", businessID).
		Documents(ctx)
	defer iter.Stop()

	removed := 0
	writer := s.client.BulkWriter(ctx)
	for {
		doc, err := iter.Next()
		if err != nil {
			if err == iterator.Done {
				break
			}
			return removed, err
		}
		if _, err := writer.Delete(doc.Ref); err != nil {
			return removed, err
		}
		removed++
	}
	writer.End()
	return removed, nil
}

func docToEntry(doc *firestore.DocumentSnapshot) (*Entry, error) {
	var stored firestoreEntry
	if err := doc.DataTo(&stored); err != nil {
		return nil, err
	}
	return &Entry{
		ID:         doc.Ref.ID,
		BusinessID: stored.BusinessID,
		VAID:       stored.VAID,
		UserID:     stored.UserID,
		Brand:      stored.Brand,
		Notes:      stored.Notes,
		SavedAt:    stored.SavedAt,
	}, nil
}

// Compile-time interface check
var _ Store = (*FirestoreStore)(nil)
