// Package stores defines what the individual state containers have in
// common. Each store owns one slice of client state behind an interface of
// actions; actions never propagate errors past the store boundary — they
// either return a Result discriminator or record an error string into state
// for the UI to poll.
package stores

import (
	"errors"

	"github.com/pandonyx/fitsupply-cli/internal/client/api"
)

// Result is the discriminated outcome of a store action. Callers must
// branch on OK; Message is ready for display and Fields carries per-field
// validation errors for forms.
type Result struct {
	OK      bool
	Message string
	Fields  map[string][]string
}

// OK is the successful Result.
func OK() Result { return Result{OK: true} }

// Fail builds a failed Result from err. For backend errors the display
// message prefers the structured detail, then message, then fallback; the
// raw field errors ride along so the caller can render per-field messages.
func Fail(err error, fallback string) Result {
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		return Result{Message: apiErr.FriendlyMessage(fallback), Fields: apiErr.Fields}
	}
	return Result{Message: fallback}
}
