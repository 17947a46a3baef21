package githubapi

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"net"
	"net/http"
	"strings"
)

// SelfURL composes an absolute URL for the current request's scheme and
// host plus the given path, honoring a reverse proxy's
// X-Forwarded-Proto/X-Forwarded-Host. When the request arrived through the
// subdomain rewrite (spec.md §4.1), the host is substituted with
// "localhost:<port>" rather than the external owner.repo.<base> name, per
// spec.md's "mark the request as mapped so downstream handlers can
// substitute localhost:<port> for the external host" rule.
func SelfURL(r *http.Request, path string) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if fwd := r.Header.Get("X-Forwarded-Proto"); fwd != "" {
		scheme = fwd
	}

	host := r.Host
	if fwd := r.Header.Get("X-Forwarded-Host"); fwd != "" {
		host = fwd
	}
	if IsSubdomainMapped(r.Context()) {
		host = "localhost" + portSuffix(host)
	}

	path = strings.TrimPrefix(path, "/")
	return fmt.Sprintf("%s://%s/%s", scheme, host, path)
}

func portSuffix(host string) string {
	_, port, err := net.SplitHostPort(host)
	if err != nil || port == "" {
		return ""
	}
	return ":" + port
}

// GravatarURL returns the gravatar avatar URL for an email address, per
// spec.md §4.5's author.avatar_url = gravatar(md5(email)).
func GravatarURL(email string) string {
	sum := md5.Sum([]byte(strings.ToLower(strings.TrimSpace(email))))
	return "https://www.gravatar.com/avatar/" + hex.EncodeToString(sum[:])
}
