package githubapi

// ErrorBody is the JSON body for a GitHub-API-shaped error response.
// go-github's ErrorResponse is a client-side decode target tied to the
// *http.Response it came from, so a small producer-side type is declared
// here instead; the field names match go-github's verbatim.
type ErrorBody struct {
	Message          string `json:"message"`
	DocumentationURL string `json:"documentation_url,omitempty"`
}

// NotFoundBody builds the standard "Not Found" error body get-blob and
// get-tree use (spec.md §4.5).
func NotFoundBody() ErrorBody {
	return ErrorBody{
		Message:          "Not Found",
		DocumentationURL: "https://docs.github.com/rest",
	}
}

// NoCommitForRefBody builds get-contents's ref-specific 404 body (spec.md
// §4.5).
func NoCommitForRefBody(ref string) ErrorBody {
	return ErrorBody{Message: "No commit found for the ref " + ref}
}
