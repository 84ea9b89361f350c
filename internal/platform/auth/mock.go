package auth

import (
	"context"
)

// MockVerifier provides fake token verification for tests.
type MockVerifier struct {
	Principal *Principal
	Error     error
}

// Verify returns the configured principal or error.
func (m *MockVerifier) Verify(_ context.Context, _ string) (*Principal, error) {
	if m.Error != nil {
		return nil, m.Error
	}
	return m.Principal, nil
}

// TestBusinessPrincipal returns a standard E-Systems business principal for tests.
func TestBusinessPrincipal() *Principal {
	return &Principal{
		UID:           "test-business-user",
		Email:         "owner@esystemsmanagement.com",
		EmailVerified: true,
		Role:          RoleBusiness,
		Brand:         BrandESystems,
		Business:      true,
	}
}

// TestVAPrincipal returns a standard VA principal for tests.
func TestVAPrincipal() *Principal {
	return &Principal{
		UID:           "test-va-user",
		Email:         "va@example.com",
		EmailVerified: true,
		Role:          RoleVA,
		Brand:         BrandLinkage,
		VA:            true,
	}
}

// TestAdminPrincipal returns a standard admin principal for tests.
func TestAdminPrincipal() *Principal {
	return &Principal{
		UID:           "test-admin-user",
		Email:         "admin@linkagewebsolutions.com",
		EmailVerified: true,
		Admin:         true,
		Role:          RoleAdmin,
	}
}

// Compile-time interface check
var _ Verifier = (*MockVerifier)(nil)
