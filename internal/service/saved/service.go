// Package saved implements the saved-VA bookmark list for E-Systems
// business accounts: idempotent save, unsave, count/exists checks and the
// filtered list pipeline.
package saved

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	appmiddleware "github.com/linkagehub/marketplace-api/internal/middleware"
	"github.com/linkagehub/marketplace-api/internal/platform/auth"
	"github.com/linkagehub/marketplace-api/internal/service/analytics"
	"github.com/linkagehub/marketplace-api/internal/service/business"
	"github.com/linkagehub/marketplace-api/internal/service/va"
)

// Service errors
var (
	// ErrForbidden indicates the principal lacks the authorized brand context.
	ErrForbidden = errors.New("feature not available for this account")

	// ErrVANotFound indicates the referenced VA does not exist.
	ErrVANotFound = errors.New("va not found")

	// ErrBusinessNotFound indicates the principal has no business profile.
	ErrBusinessNotFound = errors.New("business profile not found")

	// ErrNotSaved indicates no saved entry exists for the (business, va) pair.
	ErrNotSaved = errors.New("va not found in saved list")

	// ErrAlreadySaved is the store-level uniqueness conflict for (business, va).
	ErrAlreadySaved = errors.New("va already saved")

	// ErrLimitExceeded indicates the per-business saved limit was reached.
	ErrLimitExceeded = errors.New("saved vas limit reached")
)

// DefaultMaxSaved is the default per-business saved-entry limit.
const DefaultMaxSaved = 500

// MaxNotesLength bounds the free-text notes on an entry.
const MaxNotesLength = 500

// Entry is a business's bookmark of a VA. At most one entry exists per
// (business, va) pair; the store enforces this as a uniqueness constraint.
type Entry struct {
	ID         string
	BusinessID string
	VAID       string
	UserID     string
	Brand      string
	Notes      string
	SavedAt    time.Time
}

// Store persists saved entries. Create must fail with ErrAlreadySaved when
// an entry for the same (business, va) pair exists, so concurrent
// duplicate saves resolve through the conflict rather than a pre-check.
type Store interface {
	Create(ctx context.Context, entry Entry) (*Entry, error)
	Get(ctx context.Context, businessID, vaID string) (*Entry, error)
	Delete(ctx context.Context, businessID, vaID string) error
	// ListByBusiness returns one page ordered by SavedAt descending plus
	// the total entry count for the business.
	ListByBusiness(ctx context.Context, businessID string, offset, limit int) ([]Entry, int, error)
	CountByBusiness(ctx context.Context, businessID string) (int, error)
	// DeleteByBusiness removes every entry owned by a business and returns
	// the number removed. Cascade hook for business deletion.
	DeleteByBusiness(ctx context.Context, businessID string) (int, error)
}

// BrandGate decides whether a principal may use the saved-VA feature.
type BrandGate func(p *auth.Principal) bool

// ESystemsGate authorizes business-role principals operating in the
// E-Systems brand context: deployment-wide brand configuration, an
// explicit brand claim, or an @esystemsmanagement.com address.
func ESystemsGate(deployBrand string, esystemsMode bool) BrandGate {
	return func(p *auth.Principal) bool {
		if p == nil {
			return false
		}
		isBusinessRole := p.Business && p.Role == auth.RoleBusiness
		isESystems := deployBrand == auth.BrandESystems ||
			esystemsMode ||
			p.Brand == auth.BrandESystems ||
			strings.Contains(p.Email, "@esystemsmanagement.com")
		return isBusinessRole && isESystems
	}
}

// Config tunes the service.
type Config struct {
	MaxSaved int       // per-business entry limit; DefaultMaxSaved when <= 0
	Brand    string    // brand tag recorded on new entries
	Gate     BrandGate // brand authorization predicate
}

// Service implements the saved-VA operations over a Store.
type Service struct {
	store      Store
	vas        va.Service
	businesses business.Service
	tracker    analytics.Tracker
	gate       BrandGate
	maxSaved   int
	brand      string
}

// NewService wires the saved-VA service.
func NewService(store Store, vas va.Service, businesses business.Service, tracker analytics.Tracker, cfg Config) *Service {
	maxSaved := cfg.MaxSaved
	if maxSaved <= 0 {
		maxSaved = DefaultMaxSaved
	}
	brand := cfg.Brand
	if brand == "" {
		brand = auth.BrandESystems
	}
	gate := cfg.Gate
	if gate == nil {
		gate = ESystemsGate(brand, false)
	}
	if tracker == nil {
		tracker = analytics.Noop{}
	}
	return &Service{
		store:      store,
		vas:        vas,
		businesses: businesses,
		tracker:    tracker,
		gate:       gate,
		maxSaved:   maxSaved,
		brand:      brand,
	}
}

// MaxSaved returns the configured per-business limit.
func (s *Service) MaxSaved() int {
	return s.maxSaved
}

// SaveResult reports the entry and whether this call created it.
type SaveResult struct {
	Entry   *Entry
	Created bool
}

// Save bookmarks a VA for the principal's business. Saving an already
// saved VA is idempotent: the existing entry is returned unchanged, notes
// included (first write wins). The per-business limit is enforced before
// creation.
func (s *Service) Save(ctx context.Context, p *auth.Principal, vaID, notes, eventContext string) (*SaveResult, error) {
	if !s.gate(p) {
		return nil, ErrForbidden
	}

	exists, err := s.vas.Exists(ctx, vaID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrVANotFound
	}

	biz, err := s.businesses.ByUser(ctx, p.UID)
	if err != nil {
		if errors.Is(err, business.ErrNotFound) {
			return nil, ErrBusinessNotFound
		}
		return nil, err
	}

	if existing, err := s.store.Get(ctx, biz.ID, vaID); err == nil {
		return &SaveResult{Entry: existing, Created: false}, nil
	} else if !errors.Is(err, ErrNotSaved) {
		return nil, err
	}

	count, err := s.store.CountByBusiness(ctx, biz.ID)
	if err != nil {
		return nil, err
	}
	if count >= s.maxSaved {
		return nil, ErrLimitExceeded
	}

	entry, err := s.store.Create(ctx, Entry{
		BusinessID: biz.ID,
		VAID:       vaID,
		UserID:     p.UID,
		Brand:      s.brand,
		Notes:      truncate(notes, MaxNotesLength),
		SavedAt:    time.Now().UTC(),
	})
	if err != nil {
		if errors.Is(err, ErrAlreadySaved) {
			// Lost a race against a concurrent save; the uniqueness
			// constraint resolved it, so read the winner back.
			existing, getErr := s.store.Get(ctx, biz.ID, vaID)
			if getErr != nil {
				return nil, getErr
			}
			return &SaveResult{Entry: existing, Created: false}, nil
		}
		return nil, err
	}

	s.tracker.Track(ctx, analytics.Event{
		UserID: p.UID,
		Name:   analytics.EventSaveVA,
		Properties: map[string]any{
			"va_id":       vaID,
			"business_id": biz.ID,
			"brand":       s.brand,
			"context":     defaultContext(eventContext),
		},
	})
	appmiddleware.LogAuditEvent(ctx, "create", p.UID, "saved_va", entry.ID, "success",
		map[string]any{"business_id": biz.ID, "va_id": vaID})

	return &SaveResult{Entry: entry, Created: true}, nil
}

// Unsave removes a bookmark. ErrNotSaved when none exists.
func (s *Service) Unsave(ctx context.Context, p *auth.Principal, vaID, eventContext string) error {
	if !s.gate(p) {
		return ErrForbidden
	}

	biz, err := s.businesses.ByUser(ctx, p.UID)
	if err != nil {
		if errors.Is(err, business.ErrNotFound) {
			return ErrBusinessNotFound
		}
		return err
	}

	if err := s.store.Delete(ctx, biz.ID, vaID); err != nil {
		return err
	}

	s.tracker.Track(ctx, analytics.Event{
		UserID: p.UID,
		Name:   analytics.EventUnsaveVA,
		Properties: map[string]any{
			"va_id":       vaID,
			"business_id": biz.ID,
			"brand":       s.brand,
			"context":     defaultContext(eventContext),
		},
	})
	appmiddleware.LogAuditEvent(ctx, "delete", p.UID, "saved_va", biz.ID+"_"+vaID, "success",
		map[string]any{"business_id": biz.ID, "va_id": vaID})

	return nil
}

// Count returns the principal's saved-entry count. It short-circuits to
// zero, not an error, without authorized brand context or a business
// profile: the count backs UI badges that must never hard-fail.
func (s *Service) Count(ctx context.Context, p *auth.Principal) (int, error) {
	if !s.gate(p) {
		return 0, nil
	}
	biz, err := s.businesses.ByUser(ctx, p.UID)
	if err != nil {
		if errors.Is(err, business.ErrNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return s.store.CountByBusiness(ctx, biz.ID)
}

// IsSaved reports whether the principal's business has saved the VA.
// Short-circuits to false like Count.
func (s *Service) IsSaved(ctx context.Context, p *auth.Principal, vaID string) (bool, error) {
	if !s.gate(p) {
		return false, nil
	}
	biz, err := s.businesses.ByUser(ctx, p.UID)
	if err != nil {
		if errors.Is(err, business.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	_, err = s.store.Get(ctx, biz.ID, vaID)
	if err != nil {
		if errors.Is(err, ErrNotSaved) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// DeleteByBusiness cascades entry deletion when a business is removed.
func (s *Service) DeleteByBusiness(ctx context.Context, businessID string) (int, error) {
	removed, err := s.store.DeleteByBusiness(ctx, businessID)
	if err != nil {
		return 0, err
	}
	appmiddleware.LogInfo(ctx, "cascade deleted saved entries",
		zap.String("business_id", businessID), zap.Int("removed", removed))
	return removed, nil
}

func defaultContext(eventContext string) string {
	if eventContext == "" {
		return "va_profile"
	}
	return eventContext
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
