package httpserver

import (
	"net/http"

	"github.com/localgit/localgit/internal/apierror"
	"github.com/localgit/localgit/internal/githubapi"
)

// writeAPIError classifies err via apierror.Kind (spec.md §7's error table)
// and writes the matching GitHub-shape JSON error body and status.
func writeAPIError(w http.ResponseWriter, err error) {
	apiErr, ok := apierror.As(err)
	if !ok {
		writeJSON(w, http.StatusNotFound, githubapi.NotFoundBody())
		return
	}

	switch apiErr.Kind {
	case apierror.KindInvalidSha:
		writeJSON(w, http.StatusUnprocessableEntity, githubapi.ErrorBody{Message: apiErr.Message})
	case apierror.KindBadRequest:
		writeJSON(w, http.StatusBadRequest, githubapi.ErrorBody{Message: apiErr.Message})
	case apierror.KindUpstream:
		writeJSON(w, http.StatusInternalServerError, githubapi.ErrorBody{Message: apiErr.Message})
	default:
		writeJSON(w, http.StatusNotFound, githubapi.ErrorBody{Message: apiErr.Message})
	}
}
