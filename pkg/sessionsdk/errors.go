package sessionsdk

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// APIError is a typed error for any non-success response from the service.
// Code and Description mirror the wire error body when one was present.
type APIError struct {
	StatusCode  int
	Code        string
	Description string
}

func (e *APIError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("session service returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Description)
}

// parseErrorResponse lifts an error body into an APIError. Bodies that are
// not the standard error shape still produce a usable error carrying the
// status code.
func parseErrorResponse(resp *http.Response, body []byte) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}

	var wire ErrorResponse
	if err := json.Unmarshal(body, &wire); err == nil {
		apiErr.Code = wire.Error
		apiErr.Description = wire.ErrorDescription
	}

	return apiErr
}
