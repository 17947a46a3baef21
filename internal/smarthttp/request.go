package smarthttp

import "strings"

// Action identifies which Smart HTTP service a request names.
type Action string

const (
	ActionInfoRefs    Action = "info-refs"
	ActionUploadPack  Action = "upload-pack"
	ActionReceivePack Action = "receive-pack"
)

// Request describes one Smart HTTP request resolved to a child-process
// invocation (spec.md §4.8): action, the Content-Type the response must
// carry, and the "git <args…>" command line (repoPath is appended by the
// caller once the target directory is known).
type Request struct {
	Action      Action
	ContentType string
	Service     string // "git-upload-pack" or "git-receive-pack"
	Args        []string
}

// ParseRequest maps the URL suffix after "/:owner/:repo.git" (and, for
// info/refs, the "service" query parameter) to a Request. ok is false for
// anything that isn't one of the three Smart HTTP endpoints spec.md §6.1
// lists.
func ParseRequest(method, suffix, service string) (Request, bool) {
	suffix = strings.TrimPrefix(suffix, "/")

	switch {
	case method == "GET" && suffix == "info/refs":
		if service != "git-upload-pack" && service != "git-receive-pack" {
			return Request{}, false
		}
		verb := strings.TrimPrefix(service, "git-")
		return Request{
			Action:      ActionInfoRefs,
			ContentType: "application/x-" + service + "-advertisement",
			Service:     service,
			Args:        []string{verb, "--stateless-rpc", "--advertise-refs"},
		}, true

	case method == "POST" && suffix == "git-upload-pack":
		return Request{
			Action:      ActionUploadPack,
			ContentType: "application/x-git-upload-pack-result",
			Service:     "git-upload-pack",
			Args:        []string{"upload-pack", "--stateless-rpc"},
		}, true

	case method == "POST" && suffix == "git-receive-pack":
		return Request{
			Action:      ActionReceivePack,
			ContentType: "application/x-git-receive-pack-result",
			Service:     "git-receive-pack",
			Args:        []string{"receive-pack", "--stateless-rpc"},
		}, true

	default:
		return Request{}, false
	}
}
