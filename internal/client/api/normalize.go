package api

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// listEnvelope is the DRF-style paginated wrapper some endpoints return
// instead of a bare array.
type listEnvelope[T any] struct {
	Count   int `json:"count"`
	Results []T `json:"results"`
}

// DecodeList decodes a list payload that arrives either as a bare JSON array
// or wrapped in an envelope with a results field. Both shapes normalize to
// the same slice; the result is never nil.
func DecodeList[T any](data []byte) ([]T, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return []T{}, nil
	}

	switch trimmed[0] {
	case '[':
		var items []T
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, fmt.Errorf("decode list: %w", err)
		}
		if items == nil {
			items = []T{}
		}
		return items, nil
	case '{':
		var env listEnvelope[T]
		if err := json.Unmarshal(trimmed, &env); err != nil {
			return nil, fmt.Errorf("decode list envelope: %w", err)
		}
		if env.Results == nil {
			env.Results = []T{}
		}
		return env.Results, nil
	default:
		return nil, fmt.Errorf("decode list: unexpected payload %q", trimmed[0])
	}
}
