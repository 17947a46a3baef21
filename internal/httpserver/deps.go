package httpserver

import (
	"log/slog"

	"github.com/localgit/localgit/internal/archive"
	"github.com/localgit/localgit/internal/config"
	"github.com/localgit/localgit/internal/gitrepo"
	"github.com/localgit/localgit/internal/resolver"
)

// handle holds every dependency the route handlers need, following the
// teacher pack's convention (internal/github.GitHubRepository,
// other_examples' knotserver.Handle) of a single struct of collaborators
// bound once at router-construction time rather than passed piecemeal.
type handle struct {
	cfg      *config.EffectiveConfig
	resolver *resolver.Resolver
	archive  *archive.Producer
	log      *slog.Logger
	openRepo func(path string) (gitrepo.Repository, error)
}
