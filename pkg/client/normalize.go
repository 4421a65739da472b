package client

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
)

// The upstream API's response envelope is not contractually stable: the
// same logical list may arrive as a bare array, wrapped in {"data": [...]},
// or wrapped under the resource name, e.g. {"products": [...]}. decodeList
// accepts all three and returns the bare sequence.
func decodeList[T any](raw []byte, key string) ([]T, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, true
	}

	var items []T
	if err := json.Unmarshal(raw, &items); err == nil {
		return items, true
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, false
	}
	for _, k := range []string{"data", key} {
		inner, ok := envelope[k]
		if !ok {
			continue
		}
		if err := json.Unmarshal(inner, &items); err == nil {
			return items, true
		}
	}
	return nil, false
}

// decodeObject is the single-record counterpart of decodeList: the payload
// may be the bare object, {"data": {...}}, or {"<key>": {...}}.
func decodeObject[T any](raw []byte, key string) (*T, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, true
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(raw, &envelope); err == nil {
		for _, k := range []string{"data", key} {
			inner, ok := envelope[k]
			if !ok {
				continue
			}
			var out T
			if err := json.Unmarshal(inner, &out); err == nil {
				return &out, true
			}
		}
	}

	var out T
	if err := json.Unmarshal(raw, &out); err == nil {
		return &out, true
	}
	return nil, false
}

// getList fetches path and normalizes the list payload. key names the
// resource-specific envelope field.
func getList[T any](ctx context.Context, c *Client, path, key string) ([]T, error) {
	raw, err := c.doRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	items, ok := decodeList[T](raw, key)
	if !ok {
		return nil, &APIError{
			Kind:     KindMalformed,
			Message:  "failed to parse server response",
			Body:     string(raw),
			Endpoint: path,
		}
	}
	return items, nil
}

// getObject fetches path and normalizes a single-record payload.
func getObject[T any](ctx context.Context, c *Client, path, key string) (*T, error) {
	raw, err := c.doRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	out, ok := decodeObject[T](raw, key)
	if !ok {
		return nil, &APIError{
			Kind:     KindMalformed,
			Message:  "failed to parse server response",
			Body:     string(raw),
			Endpoint: path,
		}
	}
	return out, nil
}

// EmptyOnError is the degrade-to-empty read policy: read-only list views
// render an empty collection instead of failing when the fetch errors, so
// a transient failure shows "nothing found" rather than breaking the page.
// The error is deliberately discarded; callers that need it use the
// underlying method directly.
func EmptyOnError[T any](items []T, err error) []T {
	if err != nil {
		return nil
	}
	return items
}
