package httpserver

import (
	"net"
	"net/http"
	"strings"

	"github.com/localgit/localgit/internal/config"
	"github.com/localgit/localgit/internal/githubapi"
)

// subdomainRewrite implements spec.md §4.1: when enabled, a Host of
// "owner.repo.<base>" (base being one of cfg.SubdomainMapping.BaseDomains)
// is rewritten to the path prefix "/owner/repo", and the request is marked
// "mapped" in context so SelfURL composes localhost-relative links instead
// of echoing the subdomain back. It never errors — a non-matching Host
// passes through unchanged, exactly as spec.md requires.
func subdomainRewrite(cfg *config.EffectiveConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !cfg.SubdomainMapping.Enable {
				next.ServeHTTP(w, r)
				return
			}

			host := r.Host
			if h, _, err := net.SplitHostPort(host); err == nil {
				host = h
			}

			for _, base := range cfg.SubdomainMapping.BaseDomains {
				suffix := "." + base
				if !strings.HasSuffix(host, suffix) {
					continue
				}
				lead := strings.TrimSuffix(host, suffix)
				if lead == "" {
					continue
				}

				segments := strings.Split(lead, ".")
				prefix := "/" + strings.Join(segments, "/")
				r = r.WithContext(githubapi.WithSubdomainMapped(r.Context(), true))
				r.URL.Path = prefix + r.URL.Path
				r.RequestURI = r.URL.RequestURI()
				break
			}

			next.ServeHTTP(w, r)
		})
	}
}
