// Package apierror classifies the request-level error kinds NotFound,
// InvalidSha, BadRequest and Upstream; the HTTP layer translates them into
// the response each route family expects. Fatal startup failures are not
// classified here; they are returned as ordinary errors.
package apierror
