package auth

import (
	"context"
	"errors"
	"strings"

	fbauth "firebase.google.com/go/v4/auth"
)

// Role values carried in custom claims.
const (
	RoleAdmin    = "admin"
	RoleBusiness = "business"
	RoleVA       = "va"
)

// Brand values carried in custom claims.
const (
	BrandESystems = "esystems"
	BrandLinkage  = "linkage"
)

// Principal represents an authenticated marketplace user.
// Role, brand and profile associations come from Firebase custom claims
// set when the user record is provisioned.
type Principal struct {
	UID           string
	Email         string
	EmailVerified bool
	Admin         bool
	Role          string // RoleAdmin, RoleBusiness, RoleVA or empty
	Brand         string // BrandESystems, BrandLinkage or empty
	Business      bool   // has a business profile association
	VA            bool   // has a VA profile association
}

// Error types for authentication failures.
var (
	// ErrNoToken indicates missing Authorization header.
	ErrNoToken = errors.New("missing authorization header")

	// ErrInvalidToken indicates an invalid token format or signature.
	ErrInvalidToken = errors.New("invalid token")

	// ErrTokenExpired indicates the token has expired.
	ErrTokenExpired = errors.New("token expired")

	// ErrTokenRevoked indicates the token has been revoked.
	ErrTokenRevoked = errors.New("token revoked")

	// ErrUserDisabled indicates the user account is disabled.
	ErrUserDisabled = errors.New("user disabled")

	// ErrCertificateFetch indicates a network error fetching public keys.
	// This should result in HTTP 503 (service unavailable).
	ErrCertificateFetch = errors.New("failed to fetch certificates")
)

// Verifier validates tokens and returns principal information.
type Verifier interface {
	Verify(ctx context.Context, token string) (*Principal, error)
}

// FirebaseVerifier implements Verifier using Firebase Admin SDK.
type FirebaseVerifier struct {
	client *fbauth.Client
}

// NewFirebaseVerifier creates a new verifier with the given auth client.
func NewFirebaseVerifier(client *fbauth.Client) *FirebaseVerifier {
	return &FirebaseVerifier{client: client}
}

// Verify validates a Firebase ID token, checks for revocation and maps
// the marketplace claims onto a Principal.
func (v *FirebaseVerifier) Verify(ctx context.Context, idToken string) (*Principal, error) {
	token, err := v.client.VerifyIDTokenAndCheckRevoked(ctx, idToken)
	if err != nil {
		switch {
		case fbauth.IsCertificateFetchFailed(err):
			return nil, ErrCertificateFetch
		case fbauth.IsIDTokenExpired(err):
			return nil, ErrTokenExpired
		case fbauth.IsIDTokenRevoked(err):
			return nil, ErrTokenRevoked
		case fbauth.IsUserDisabled(err):
			return nil, ErrUserDisabled
		case fbauth.IsIDTokenInvalid(err):
			return nil, ErrInvalidToken
		default:
			return nil, ErrInvalidToken
		}
	}

	return principalFromClaims(token.UID, token.Claims), nil
}

// principalFromClaims builds a Principal from token claims. Unknown or
// missing claims degrade to zero values rather than failing verification.
func principalFromClaims(uid string, claims map[string]any) *Principal {
	email, _ := claims["email"].(string)
	verified, _ := claims["email_verified"].(bool)
	admin, _ := claims["admin"].(bool)
	role, _ := claims["role"].(string)
	brand, _ := claims["brand"].(string)
	business, _ := claims["business"].(bool)
	va, _ := claims["va"].(bool)

	if admin {
		role = RoleAdmin
	}

	return &Principal{
		UID:           uid,
		Email:         email,
		EmailVerified: verified,
		Admin:         admin,
		Role:          role,
		Brand:         brand,
		Business:      business,
		VA:            va,
	}
}

// ExtractBearerToken extracts the token from Authorization header.
func ExtractBearerToken(header string) (string, error) {
	if header == "" {
		return "", ErrNoToken
	}
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
		return "", ErrInvalidToken
	}
	return parts[1], nil
}

// Compile-time interface check
var _ Verifier = (*FirebaseVerifier)(nil)
