package domain

import (
	"bytes"
	"encoding/json"
	"errors"
)

type envelope struct {
	Items      []map[string]any `json:"items"`
	TotalCount *int             `json:"totalCount"`
}

// ParseRawPage accepts the {"items":[...],"totalCount":N} envelope or a
// bare JSON array of records.
func ParseRawPage(b []byte) (RawPage, error) {
	b = bytes.TrimSpace(b)
	if len(b) == 0 {
		return RawPage{}, errors.New("empty body")
	}
	if b[0] == '[' {
		var items []map[string]any
		if err := json.Unmarshal(b, &items); err != nil {
			return RawPage{}, err
		}
		return RawPage{Items: items, TotalCount: len(items)}, nil
	}
	var env envelope
	if err := json.Unmarshal(b, &env); err != nil {
		return RawPage{}, err
	}
	if env.Items == nil {
		return RawPage{}, errors.New(`response has no "items" array`)
	}
	page := RawPage{Items: env.Items, TotalCount: len(env.Items)}
	if env.TotalCount != nil {
		page.TotalCount = *env.TotalCount
	}
	return page, nil
}
