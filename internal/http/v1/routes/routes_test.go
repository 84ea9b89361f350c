package routes

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"

	"github.com/linkagehub/marketplace-api/internal/http/v1/completion"
	"github.com/linkagehub/marketplace-api/internal/platform/auth"
	"github.com/linkagehub/marketplace-api/internal/service/analytics"
	businesssvc "github.com/linkagehub/marketplace-api/internal/service/business"
	"github.com/linkagehub/marketplace-api/internal/service/profile"
	savedsvc "github.com/linkagehub/marketplace-api/internal/service/saved"
	vasvc "github.com/linkagehub/marketplace-api/internal/service/va"
)

func newTestRouter() chi.Router {
	profiles := profile.NewMockService()
	profiles.SetBusiness("test-business-user", "biz-profile-1", map[string]any{
		"contactName": "Jane Roe",
		"company":     "Acme Staffing",
		"bio":         "We hire great VAs",
		"email":       "jane@acme.test",
		"phone":       "+15551234567",
		"city":        "Austin",
		"state":       "TX",
		"country":     "US",
		"industry":    "staffing",
		"companySize": "11-50",
	})

	businesses := businesssvc.NewMockService()
	businesses.Set("test-business-user", &businesssvc.Business{
		ID: "biz-1", UserID: "test-business-user", CompanyName: "Acme Staffing",
	})

	svc := savedsvc.NewService(
		savedsvc.NewMockStore(),
		vasvc.NewMockService(),
		businesses,
		analytics.Noop{},
		savedsvc.Config{},
	)

	router := chi.NewRouter()
	api := humachi.New(router, huma.DefaultConfig("RoutesTest", "test"))
	Register(api, Deps{
		Verifier: &auth.MockVerifier{Principal: auth.TestBusinessPrincipal()},
		Checker:  completion.NewChecker(profiles, nil, 80),
		Saved:    svc,
		Version:  "test",
	})
	return router
}

func TestRegisterHealthIsPublic(t *testing.T) {
	router := newTestRouter()

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/health", nil))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
}

func TestRegisterSecuredRoutesRequireAuth(t *testing.T) {
	router := newTestRouter()

	paths := []string{"/profile/completion", "/saved", "/saved/count"}
	for _, path := range paths {
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, path, nil))
		if resp.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401 for %s without token, got %d", path, resp.Code)
		}
	}
}

func TestRegisterSecuredRoutesRespondWithAuth(t *testing.T) {
	router := newTestRouter()

	paths := []string{"/profile/completion", "/saved", "/saved/count", "/saved/exists/va-1"}
	for _, path := range paths {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.Header.Set("Authorization", "Bearer valid-token")
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)
		if resp.Code != http.StatusOK {
			t.Fatalf("expected 200 for %s, got %d: %s", path, resp.Code, resp.Body.String())
		}
	}
}
