package va

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const vasCollection = "vas"

// firestoreVA maps to the Firestore document structure.
type firestoreVA struct {
	FirstName         string    `firestore:"firstName"`
	LastName          string    `firestore:"lastName"`
	Hero              string    `firestore:"hero"`
	Title             string    `firestore:"title"`
	Skills            []string  `firestore:"skills"`
	Specialties       []string  `firestore:"specialties"`
	Rating            float64   `firestore:"rating"`
	HourlyRate        float64   `firestore:"hourlyRate"`
	Availability      string    `firestore:"availability"`
	Timezone          string    `firestore:"timezone"`
	Avatar            string    `firestore:"avatar"`
	Bio               string    `firestore:"bio"`
	Status            string    `firestore:"status"`
	Industry          string    `firestore:"industry"`
	Location          string    `firestore:"location"`
	YearsOfExperience int       `firestore:"yearsOfExperience"`
	LastActive        time.Time `firestore:"lastActive"`
}

// FirestoreStore implements Service over the vas collection.
type FirestoreStore struct {
	client *firestore.Client
}

// NewFirestoreStore creates a new Firestore-backed store.
func NewFirestoreStore(client *firestore.Client) *FirestoreStore {
	return &FirestoreStore{client: client}
}

// Get retrieves a VA by document ID.
func (s *FirestoreStore) Get(ctx context.Context, id string) (*VA, error) {
	doc, err := s.client.Collection(vasCollection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var fv firestoreVA
	if err := doc.DataTo(&fv); err != nil {
		return nil, err
	}

	return &VA{
		ID:                doc.Ref.ID,
		FirstName:         fv.FirstName,
		LastName:          fv.LastName,
		Hero:              fv.Hero,
		Title:             fv.Title,
		Skills:            fv.Skills,
		Specialties:       fv.Specialties,
		Rating:            fv.Rating,
		HourlyRate:        fv.HourlyRate,
		Availability:      fv.Availability,
		Timezone:          fv.Timezone,
		Avatar:            fv.Avatar,
		Bio:               fv.Bio,
		Status:            fv.Status,
		Industry:          fv.Industry,
		Location:          fv.Location,
		YearsOfExperience: fv.YearsOfExperience,
		LastActive:        fv.LastActive,
	}, nil
}

// Exists reports whether a VA document exists without decoding it.
func (s *FirestoreStore) Exists(ctx context.Context, id string) (bool, error) {
	_, err := s.client.Collection(vasCollection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Compile-time interface check
var _ Service = (*FirestoreStore)(nil)
