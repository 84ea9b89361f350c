// Package completion exposes profile-completion gating middleware and the
// completion status endpoint.
package completion

import (
	"context"
	"errors"

	"github.com/linkagehub/marketplace-api/internal/platform/auth"
	completionsvc "github.com/linkagehub/marketplace-api/internal/service/completion"
	profilesvc "github.com/linkagehub/marketplace-api/internal/service/profile"
)

// DefaultThreshold is the completion percentage required to pass the gate.
const DefaultThreshold = 80

// ErrNoAssociation indicates the principal has neither a business nor a
// VA profile association.
var ErrNoAssociation = errors.New("no profile association")

// Checker resolves a principal's profile and scores its completion. The
// gate middleware, the warning middleware and the status endpoint all
// share it so they classify fields identically.
type Checker struct {
	profiles  profilesvc.Service
	scorer    *completionsvc.Scorer
	threshold int
}

// NewChecker wires a checker. A non-positive threshold falls back to
// DefaultThreshold.
func NewChecker(profiles profilesvc.Service, scorer *completionsvc.Scorer, threshold int) *Checker {
	if scorer == nil {
		scorer = completionsvc.NewDefaultScorer()
	}
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	return &Checker{profiles: profiles, scorer: scorer, threshold: threshold}
}

// Threshold returns the configured completion threshold.
func (c *Checker) Threshold() int {
	return c.threshold
}

// Assessment is one principal's scored profile.
type Assessment struct {
	Percentage  int
	UserType    string
	Profile     *profilesvc.Doc
	Missing     completionsvc.Missing
	Suggestions []completionsvc.Suggestion
}

// Complete reports whether the assessment passes the threshold. Exactly
// at the threshold passes.
func (a *Assessment) Complete(threshold int) bool {
	return a.Percentage >= threshold
}

// Assess loads the principal's profile document and scores it. Returns
// ErrNoAssociation when the principal has no profile kind, and
// profilesvc.ErrNotFound when the association exists but the document
// does not.
func (c *Checker) Assess(ctx context.Context, p *auth.Principal) (*Assessment, error) {
	userType, err := userTypeOf(p)
	if err != nil {
		return nil, err
	}

	var doc *profilesvc.Doc
	switch userType {
	case completionsvc.UserTypeBusiness:
		doc, err = c.profiles.BusinessByUser(ctx, p.UID)
	default:
		doc, err = c.profiles.VAByUser(ctx, p.UID)
	}
	if err != nil {
		return nil, err
	}

	missing := c.scorer.Missing(doc.Fields, userType)
	return &Assessment{
		Percentage:  c.scorer.Percentage(doc.Fields, userType),
		UserType:    userType,
		Profile:     doc,
		Missing:     missing,
		Suggestions: completionsvc.Suggestions(missing, userType),
	}, nil
}

func userTypeOf(p *auth.Principal) (string, error) {
	switch {
	case p == nil:
		return "", ErrNoAssociation
	case p.Business:
		return completionsvc.UserTypeBusiness, nil
	case p.VA:
		return completionsvc.UserTypeVA, nil
	default:
		return "", ErrNoAssociation
	}
}
