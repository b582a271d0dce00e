package tenant_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vendora/vendora/app/models"
	"github.com/vendora/vendora/pkg/apperr"
	"github.com/vendora/vendora/pkg/tenant"
)

type stubResolver struct {
	vendors map[string]*models.Vendor
	calls   int
}

func (s *stubResolver) FindByDomain(domain string) (*models.Vendor, error) {
	s.calls++
	if v, ok := s.vendors[domain]; ok {
		return v, nil
	}
	return nil, apperr.ErrNotFound
}

func TestDomainPrefersHeader(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "http://ignored.test/", nil)
	r.Header.Set("X-Tenant-Domain", "acme.test")
	assert.Equal(t, "acme.test", tenant.Domain(r))
}

func TestDomainFallsBackToHost(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "http://acme.test/", nil)
	assert.Equal(t, "acme.test", tenant.Domain(r))

	r = httptest.NewRequest(http.MethodGet, "http://acme.test:8080/", nil)
	assert.Equal(t, "acme.test", tenant.Domain(r), "port must be stripped")
}

func TestMiddlewareAttachesVendor(t *testing.T) {
	acme := &models.Vendor{Name: "Acme", Domain: "acme.test"}
	acme.ID = 1
	resolver := &stubResolver{vendors: map[string]*models.Vendor{"acme.test": acme}}

	var got *models.Vendor
	handler := tenant.Middleware(resolver)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = tenant.FromCtx(r.Context())
	}))

	r := httptest.NewRequest(http.MethodGet, "http://acme.test/", nil)
	handler.ServeHTTP(httptest.NewRecorder(), r)

	require.NotNil(t, got)
	assert.Equal(t, acme.ID, got.ID)
}

func TestMiddlewareUnknownDomainIsSilent(t *testing.T) {
	resolver := &stubResolver{vendors: map[string]*models.Vendor{}}

	called := false
	handler := tenant.Middleware(resolver)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		assert.Nil(t, tenant.FromCtx(r.Context()))
	}))

	r := httptest.NewRequest(http.MethodGet, "http://nowhere.test/", nil)
	handler.ServeHTTP(httptest.NewRecorder(), r)

	// Resolution failure is not a request failure; handlers decide.
	assert.True(t, called)
}

func TestFromCtxWithoutMiddleware(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "http://acme.test/", nil)
	assert.Nil(t, tenant.FromCtx(r.Context()))
}
