// Package tenant resolves the active tenant for each request and threads it
// through the request context.
//
// The domain comes from the configured tenant header (X-Tenant-Domain by
// default), falling back to the request host with the port stripped. A
// request with no matching vendor is NOT an error here; each downstream
// operation decides whether a missing tenant is fatal.
package tenant

import (
	"context"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/vendora/vendora/app/models"
	"github.com/vendora/vendora/config"
	"github.com/vendora/vendora/pkg/cache"
	"github.com/vendora/vendora/pkg/metrics"
)

// cacheTTL bounds how stale a cached domain→vendor mapping can get.
const cacheTTL = time.Minute

// Resolver looks a vendor up by its unique domain.
type Resolver interface {
	FindByDomain(domain string) (*models.Vendor, error)
}

// ctxKey is the unexported context key for the resolved vendor.
type ctxKey struct{}

// WithVendor stores the resolved vendor (possibly nil) in ctx.
func WithVendor(ctx context.Context, v *models.Vendor) context.Context {
	return context.WithValue(ctx, ctxKey{}, v)
}

// FromCtx returns the vendor resolved for this request, or nil.
func FromCtx(ctx context.Context) *models.Vendor {
	v, _ := ctx.Value(ctxKey{}).(*models.Vendor)
	return v
}

// Domain extracts the tenant domain from the request: explicit header first,
// then the host name with any port stripped.
func Domain(r *http.Request) string {
	if d := strings.TrimSpace(r.Header.Get(config.TenantHeader())); d != "" {
		return d
	}

	host := r.Host
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	return host
}

// Middleware resolves the tenant for every request and attaches it to the
// context. Lookups are cached in Redis for a short TTL; InvalidateDomain
// must be called when a vendor's record changes.
func Middleware(resolver Resolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			vendor := resolve(resolver, Domain(r))
			next.ServeHTTP(w, r.WithContext(WithVendor(r.Context(), vendor)))
		})
	}
}

func resolve(resolver Resolver, domain string) *models.Vendor {
	if domain == "" {
		return nil
	}

	key := cacheKey(domain)

	var cached models.Vendor
	if cache.Get(key, &cached) {
		metrics.TenantResolutions.WithLabelValues("hit").Inc()
		return &cached
	}

	vendor, err := resolver.FindByDomain(domain)
	if err != nil || vendor == nil {
		metrics.TenantResolutions.WithLabelValues("miss").Inc()
		return nil
	}

	_ = cache.Set(key, vendor, cacheTTL)
	metrics.TenantResolutions.WithLabelValues("hit").Inc()
	return vendor
}

// InvalidateDomain drops the cached lookup for a domain. Called after
// vendor updates so resolution never serves a stale record past the TTL.
func InvalidateDomain(domain string) {
	if domain == "" {
		return
	}
	_ = cache.Forget(cacheKey(domain))
}

func cacheKey(domain string) string {
	return "tenant:domain:" + strings.ToLower(domain)
}
