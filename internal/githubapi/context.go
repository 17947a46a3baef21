package githubapi

import "context"

type ctxKey int

const subdomainMappedKey ctxKey = iota

// WithSubdomainMapped records whether the current request arrived through
// the owner.repo.<base> subdomain rewrite (spec.md §4.2) rather than the
// /:owner/:repo path form, so SelfURL composes its links against
// localhost:<port> instead of the subdomain host the request came in on.
func WithSubdomainMapped(ctx context.Context, mapped bool) context.Context {
	return context.WithValue(ctx, subdomainMappedKey, mapped)
}

// IsSubdomainMapped reports the flag set by WithSubdomainMapped, defaulting
// to false (path form) when absent.
func IsSubdomainMapped(ctx context.Context) bool {
	mapped, _ := ctx.Value(subdomainMappedKey).(bool)
	return mapped
}
