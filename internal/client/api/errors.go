package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/pandonyx/fitsupply-cli/internal/common"
)

// Error is a non-2xx backend response. The client does not interpret
// business-level error bodies; it only lifts the conventional fields out of
// the JSON so callers can render them.
//
// Field sources, in the DRF convention the backend follows:
//   - Detail:  the "detail" string, e.g. {"detail": "Not found."}
//   - Message: the "message" string, used by some endpoints instead
//   - Fields:  any remaining keys whose values are strings or string arrays,
//     i.e. per-field validation errors such as {"email": ["already taken"]}
type Error struct {
	Status  int
	Detail  string
	Message string
	Fields  map[string][]string
	Body    []byte
}

func (e *Error) Error() string {
	msg := e.Detail
	if msg == "" {
		msg = e.Message
	}
	if msg == "" {
		return fmt.Sprintf("api: %d %s", e.Status, http.StatusText(e.Status))
	}
	return fmt.Sprintf("api: %d %s: %s", e.Status, http.StatusText(e.Status), msg)
}

// Unwrap maps well-known statuses to the shared sentinels so callers can use
// errors.Is without inspecting status codes.
func (e *Error) Unwrap() error {
	switch e.Status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return common.ErrUnauthorized
	case http.StatusNotFound:
		return common.ErrNotFound
	}
	return nil
}

// FriendlyMessage returns the best human-readable message for display:
// Detail, then Message, then the supplied fallback.
func (e *Error) FriendlyMessage(fallback string) string {
	if e.Detail != "" {
		return e.Detail
	}
	if e.Message != "" {
		return e.Message
	}
	return fallback
}

// parseError builds an *Error from a failed response body. Unparseable
// bodies still produce a usable Error carrying the status and raw bytes.
func parseError(status int, body []byte) *Error {
	e := &Error{Status: status, Body: body}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return e
	}

	for key, val := range raw {
		switch key {
		case "detail":
			_ = json.Unmarshal(val, &e.Detail)
		case "message":
			_ = json.Unmarshal(val, &e.Message)
		default:
			var many []string
			if err := json.Unmarshal(val, &many); err == nil {
				if e.Fields == nil {
					e.Fields = make(map[string][]string)
				}
				e.Fields[key] = many
				continue
			}
			var one string
			if err := json.Unmarshal(val, &one); err == nil {
				if e.Fields == nil {
					e.Fields = make(map[string][]string)
				}
				e.Fields[key] = []string{one}
			}
		}
	}

	return e
}
