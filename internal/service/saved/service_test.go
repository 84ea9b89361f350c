package saved

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/linkagehub/marketplace-api/internal/platform/auth"
	"github.com/linkagehub/marketplace-api/internal/service/analytics"
	"github.com/linkagehub/marketplace-api/internal/service/business"
	"github.com/linkagehub/marketplace-api/internal/service/va"
)

func newTestService(t *testing.T, cfg Config) (*Service, *MockStore, *business.MockService, *va.MockService, *analytics.Recorder) {
	t.Helper()
	store := NewMockStore()
	businesses := business.NewMockService()
	vas := va.NewMockService()
	recorder := analytics.NewRecorder()
	svc := NewService(store, vas, businesses, recorder, cfg)
	return svc, store, businesses, vas, recorder
}

func seedBusinessAndVA(businesses *business.MockService, vas *va.MockService, p *auth.Principal) {
	businesses.Set(p.UID, &business.Business{ID: "biz-1", UserID: p.UID, CompanyName: "Acme"})
	vas.Set(&va.VA{ID: "va-1", FirstName: "Maria", LastName: "Santos", Status: va.StatusActive})
}

func TestSaveCreatesEntry(t *testing.T) {
	svc, store, businesses, vas, recorder := newTestService(t, Config{})
	p := auth.TestBusinessPrincipal()
	seedBusinessAndVA(businesses, vas, p)

	result, err := svc.Save(context.Background(), p, "va-1", "great portfolio", "")
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !result.Created {
		t.Error("expected Created=true on first save")
	}
	if result.Entry.BusinessID != "biz-1" || result.Entry.VAID != "va-1" {
		t.Errorf("unexpected entry %+v", result.Entry)
	}
	if result.Entry.Notes != "great portfolio" {
		t.Errorf("notes = %q", result.Entry.Notes)
	}
	if result.Entry.Brand != auth.BrandESystems {
		t.Errorf("brand = %q, want %q", result.Entry.Brand, auth.BrandESystems)
	}
	if result.Entry.SavedAt.IsZero() {
		t.Error("SavedAt not set")
	}

	count, err := store.CountByBusiness(context.Background(), "biz-1")
	if err != nil {
		t.Fatalf("CountByBusiness: %v", err)
	}
	if count != 1 {
		t.Errorf("count = %d, want 1", count)
	}

	events := recorder.Events()
	if len(events) != 1 || events[0].Name != analytics.EventSaveVA {
		t.Errorf("events = %+v, want one %s", events, analytics.EventSaveVA)
	}
	if got := events[0].Properties["context"]; got != "va_profile" {
		t.Errorf("context property = %v, want va_profile", got)
	}
}

func TestSaveIsIdempotent(t *testing.T) {
	svc, _, businesses, vas, _ := newTestService(t, Config{})
	p := auth.TestBusinessPrincipal()
	seedBusinessAndVA(businesses, vas, p)

	first, err := svc.Save(context.Background(), p, "va-1", "original notes", "")
	if err != nil {
		t.Fatalf("first Save: %v", err)
	}
	second, err := svc.Save(context.Background(), p, "va-1", "different notes", "")
	if err != nil {
		t.Fatalf("second Save: %v", err)
	}
	if second.Created {
		t.Error("expected Created=false on repeat save")
	}
	if second.Entry.ID != first.Entry.ID {
		t.Errorf("repeat save returned ID %q, want %q", second.Entry.ID, first.Entry.ID)
	}
	// First write wins: the repeat save must not overwrite notes.
	if second.Entry.Notes != "original notes" {
		t.Errorf("notes = %q, want original preserved", second.Entry.Notes)
	}

	count, err := svc.Count(context.Background(), p)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if count != 1 {
		t.Errorf("count = %d after repeat save, want 1", count)
	}
}

func TestSaveResolvesCreateRace(t *testing.T) {
	svc, store, businesses, vas, _ := newTestService(t, Config{})
	p := auth.TestBusinessPrincipal()
	seedBusinessAndVA(businesses, vas, p)

	// Simulate a concurrent save landing between the existence check and
	// the create: the entry appears only once Create runs.
	raced := racingStore{MockStore: store}
	svc.store = &raced

	result, err := svc.Save(context.Background(), p, "va-1", "", "")
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if result.Created {
		t.Error("expected Created=false after losing the race")
	}
	if result.Entry.VAID != "va-1" {
		t.Errorf("entry = %+v", result.Entry)
	}
}

// racingStore injects a conflicting entry just before Create runs.
type racingStore struct {
	*MockStore
}

func (r *racingStore) Create(ctx context.Context, entry Entry) (*Entry, error) {
	r.Seed(Entry{BusinessID: entry.BusinessID, VAID: entry.VAID, UserID: "other-user"})
	return r.MockStore.Create(ctx, entry)
}

func TestSaveEnforcesLimit(t *testing.T) {
	svc, store, businesses, vas, _ := newTestService(t, Config{MaxSaved: 2})
	p := auth.TestBusinessPrincipal()
	seedBusinessAndVA(businesses, vas, p)
	vas.Set(&va.VA{ID: "va-2", Status: va.StatusActive})
	vas.Set(&va.VA{ID: "va-3", Status: va.StatusActive})

	for _, id := range []string{"va-2", "va-3"} {
		if _, err := svc.Save(context.Background(), p, id, "", ""); err != nil {
			t.Fatalf("Save %s: %v", id, err)
		}
	}

	_, err := svc.Save(context.Background(), p, "va-1", "", "")
	if !errors.Is(err, ErrLimitExceeded) {
		t.Fatalf("Save over limit: err = %v, want ErrLimitExceeded", err)
	}

	count, _ := store.CountByBusiness(context.Background(), "biz-1")
	if count != 2 {
		t.Errorf("count = %d after rejected save, want 2", count)
	}

	// Re-saving an already saved VA still succeeds at the limit.
	result, err := svc.Save(context.Background(), p, "va-2", "", "")
	if err != nil {
		t.Fatalf("repeat save at limit: %v", err)
	}
	if result.Created {
		t.Error("repeat save at limit should not create")
	}
}

func TestSaveRejectsUnknownVA(t *testing.T) {
	svc, _, businesses, vas, _ := newTestService(t, Config{})
	p := auth.TestBusinessPrincipal()
	seedBusinessAndVA(businesses, vas, p)

	_, err := svc.Save(context.Background(), p, "missing-va", "", "")
	if !errors.Is(err, ErrVANotFound) {
		t.Errorf("err = %v, want ErrVANotFound", err)
	}
}

func TestSaveRequiresBusinessProfile(t *testing.T) {
	svc, _, _, vas, _ := newTestService(t, Config{})
	p := auth.TestBusinessPrincipal()
	vas.Set(&va.VA{ID: "va-1", Status: va.StatusActive})

	_, err := svc.Save(context.Background(), p, "va-1", "", "")
	if !errors.Is(err, ErrBusinessNotFound) {
		t.Errorf("err = %v, want ErrBusinessNotFound", err)
	}
}

func TestSaveGatesByBrand(t *testing.T) {
	svc, _, businesses, vas, recorder := newTestService(t, Config{})
	p := auth.TestVAPrincipal()
	seedBusinessAndVA(businesses, vas, p)

	_, err := svc.Save(context.Background(), p, "va-1", "", "")
	if !errors.Is(err, ErrForbidden) {
		t.Errorf("err = %v, want ErrForbidden", err)
	}
	if len(recorder.Events()) != 0 {
		t.Error("gated save must not emit events")
	}
}

func TestSaveTruncatesNotes(t *testing.T) {
	svc, _, businesses, vas, _ := newTestService(t, Config{})
	p := auth.TestBusinessPrincipal()
	seedBusinessAndVA(businesses, vas, p)

	long := strings.Repeat("n", MaxNotesLength+100)
	result, err := svc.Save(context.Background(), p, "va-1", long, "")
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if len(result.Entry.Notes) != MaxNotesLength {
		t.Errorf("notes length = %d, want %d", len(result.Entry.Notes), MaxNotesLength)
	}
}

func TestUnsaveRoundtrip(t *testing.T) {
	svc, _, businesses, vas, recorder := newTestService(t, Config{})
	p := auth.TestBusinessPrincipal()
	seedBusinessAndVA(businesses, vas, p)
	ctx := context.Background()

	if _, err := svc.Save(ctx, p, "va-1", "", ""); err != nil {
		t.Fatalf("Save: %v", err)
	}
	saved, err := svc.IsSaved(ctx, p, "va-1")
	if err != nil || !saved {
		t.Fatalf("IsSaved = %v, %v; want true", saved, err)
	}

	if err := svc.Unsave(ctx, p, "va-1", "saved_list"); err != nil {
		t.Fatalf("Unsave: %v", err)
	}
	saved, err = svc.IsSaved(ctx, p, "va-1")
	if err != nil || saved {
		t.Fatalf("IsSaved after unsave = %v, %v; want false", saved, err)
	}

	if err := svc.Unsave(ctx, p, "va-1", ""); !errors.Is(err, ErrNotSaved) {
		t.Errorf("second Unsave err = %v, want ErrNotSaved", err)
	}

	events := recorder.Events()
	if len(events) != 2 || events[1].Name != analytics.EventUnsaveVA {
		t.Errorf("events = %+v, want save then unsave", events)
	}
	if got := events[1].Properties["context"]; got != "saved_list" {
		t.Errorf("unsave context = %v, want saved_list", got)
	}
}

func TestCountShortCircuits(t *testing.T) {
	svc, store, businesses, vas, _ := newTestService(t, Config{})
	p := auth.TestBusinessPrincipal()
	seedBusinessAndVA(businesses, vas, p)
	store.Seed(Entry{BusinessID: "biz-1", VAID: "va-1", UserID: p.UID})

	// Wrong brand: zero, no error.
	count, err := svc.Count(context.Background(), auth.TestVAPrincipal())
	if err != nil || count != 0 {
		t.Errorf("gated Count = %d, %v; want 0, nil", count, err)
	}

	// No business profile: zero, no error.
	count, err = svc.Count(context.Background(), &auth.Principal{
		UID:      "no-profile",
		Email:    "new@esystemsmanagement.com",
		Role:     auth.RoleBusiness,
		Business: true,
	})
	if err != nil || count != 0 {
		t.Errorf("profileless Count = %d, %v; want 0, nil", count, err)
	}

	count, err = svc.Count(context.Background(), p)
	if err != nil || count != 1 {
		t.Errorf("Count = %d, %v; want 1, nil", count, err)
	}
}

func TestIsSavedShortCircuits(t *testing.T) {
	svc, _, _, _, _ := newTestService(t, Config{})

	saved, err := svc.IsSaved(context.Background(), auth.TestVAPrincipal(), "va-1")
	if err != nil || saved {
		t.Errorf("gated IsSaved = %v, %v; want false, nil", saved, err)
	}
}

func TestDeleteByBusinessCascades(t *testing.T) {
	svc, store, _, _, _ := newTestService(t, Config{})
	store.Seed(
		Entry{BusinessID: "biz-1", VAID: "va-1"},
		Entry{BusinessID: "biz-1", VAID: "va-2"},
		Entry{BusinessID: "biz-2", VAID: "va-1"},
	)

	removed, err := svc.DeleteByBusiness(context.Background(), "biz-1")
	if err != nil {
		t.Fatalf("DeleteByBusiness: %v", err)
	}
	if removed != 2 {
		t.Errorf("removed = %d, want 2", removed)
	}
	if count, _ := store.CountByBusiness(context.Background(), "biz-2"); count != 1 {
		t.Errorf("unrelated business count = %d, want 1", count)
	}
}

func TestESystemsGate(t *testing.T) {
	tests := []struct {
		name        string
		deployBrand string
		mode        bool
		principal   *auth.Principal
		want        bool
	}{
		{
			name:      "nil principal",
			principal: nil,
			want:      false,
		},
		{
			name:        "business with brand claim",
			deployBrand: auth.BrandLinkage,
			principal:   &auth.Principal{Role: auth.RoleBusiness, Business: true, Brand: auth.BrandESystems},
			want:        true,
		},
		{
			name:        "business via deployment brand",
			deployBrand: auth.BrandESystems,
			principal:   &auth.Principal{Role: auth.RoleBusiness, Business: true},
			want:        true,
		},
		{
			name:      "business via esystems mode",
			mode:      true,
			principal: &auth.Principal{Role: auth.RoleBusiness, Business: true},
			want:      true,
		},
		{
			name:        "business via email domain",
			deployBrand: auth.BrandLinkage,
			principal:   &auth.Principal{Role: auth.RoleBusiness, Business: true, Email: "x@esystemsmanagement.com"},
			want:        true,
		},
		{
			name:        "linkage business",
			deployBrand: auth.BrandLinkage,
			principal:   &auth.Principal{Role: auth.RoleBusiness, Business: true, Brand: auth.BrandLinkage, Email: "x@example.com"},
			want:        false,
		},
		{
			name:        "va in esystems deployment",
			deployBrand: auth.BrandESystems,
			principal:   &auth.Principal{Role: auth.RoleVA, VA: true},
			want:        false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gate := ESystemsGate(tt.deployBrand, tt.mode)
			if got := gate(tt.principal); got != tt.want {
				t.Errorf("gate = %v, want %v", got, tt.want)
			}
		})
	}
}
