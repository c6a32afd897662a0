package middleware

import (
	"net/http"
	"strings"
)

// Directive is one Content-Security-Policy directive and its sources.
type Directive struct {
	Name    string
	Sources []string
}

// Policy is an ordered list of directives.
type Policy []Directive

// String renders the header value, skipping directives without sources.
func (p Policy) String() string {
	parts := make([]string, 0, len(p))
	for _, d := range p {
		if len(d.Sources) == 0 {
			continue
		}
		parts = append(parts, d.Name+" "+strings.Join(d.Sources, " "))
	}
	return strings.Join(parts, "; ")
}

// StrictPolicy suits JSON endpoints that never render HTML.
func StrictPolicy() Policy {
	return Policy{
		{"default-src", []string{"'none'"}},
		{"connect-src", []string{"'self'"}},
		{"frame-ancestors", []string{"'none'"}},
		{"base-uri", []string{"'self'"}},
		{"form-action", []string{"'self'"}},
	}
}

// SwaggerUIPolicy allows the inline scripts and styles Swagger UI needs.
func SwaggerUIPolicy() Policy {
	return Policy{
		{"default-src", []string{"'self'"}},
		{"script-src", []string{"'self'", "'unsafe-inline'"}},
		{"style-src", []string{"'self'", "'unsafe-inline'"}},
		{"img-src", []string{"'self'", "data:", "https:"}},
		{"font-src", []string{"'self'", "data:"}},
		{"connect-src", []string{"'self'", "blob:"}},
		{"frame-ancestors", []string{"'none'"}},
		{"base-uri", []string{"'self'"}},
		{"form-action", []string{"'self'"}},
		{"object-src", []string{"'none'"}},
	}
}

// SecurityConfig selects the CSP per path prefix. The longest matching
// prefix wins; Default applies otherwise.
type SecurityConfig struct {
	Default      Policy
	PathPolicies map[string]Policy
	// ReportOnly sends Content-Security-Policy-Report-Only instead.
	ReportOnly bool
}

// DefaultSecurityConfig uses StrictPolicy everywhere except /swagger/.
func DefaultSecurityConfig(reportOnly bool) SecurityConfig {
	return SecurityConfig{
		Default:      StrictPolicy(),
		PathPolicies: map[string]Policy{"/swagger/": SwaggerUIPolicy()},
		ReportOnly:   reportOnly,
	}
}

func (c SecurityConfig) policyFor(path string) string {
	best, policy := -1, c.Default
	for prefix, p := range c.PathPolicies {
		if strings.HasPrefix(path, prefix) && len(prefix) > best {
			best, policy = len(prefix), p
		}
	}
	return policy.String()
}

// SecurityHeaders sets the CSP and a few fixed hardening headers before the
// handler runs.
func SecurityHeaders(config SecurityConfig) func(http.Handler) http.Handler {
	header := "Content-Security-Policy"
	if config.ReportOnly {
		header = "Content-Security-Policy-Report-Only"
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			if v := config.policyFor(r.URL.Path); v != "" {
				h.Set(header, v)
			}
			h.Set("X-Content-Type-Options", "nosniff")
			h.Set("X-Frame-Options", "DENY")
			h.Set("Referrer-Policy", "no-referrer")
			next.ServeHTTP(w, r)
		})
	}
}
