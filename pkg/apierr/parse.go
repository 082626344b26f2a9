package apierr

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
)

// Parse decodes an error body. slurp should already be size-limited.
//
// Confluence answers with several shapes depending on the API generation:
//
//	v1: {"statusCode":404,"message":"No content found with id: 1"}
//	v2: {"errors":[{"status":404,"code":"NOT_FOUND","title":"Not Found","detail":null}]}
//	gateway: {"title":"Unauthorized","detail":"...","status":401}
func Parse(slurp []byte, status int) *APIError {
	trimmed := strings.TrimSpace(string(slurp))

	if len(trimmed) == 0 || trimmed[0] != '{' {
		return &APIError{
			Status:  status,
			Message: coalesce(trimmed, http.StatusText(status)),
			Raw:     trimmed,
		}
	}

	var obj map[string]any
	if err := json.Unmarshal([]byte(trimmed), &obj); err != nil {
		return &APIError{
			Status:  status,
			Message: http.StatusText(status),
			Raw:     trimmed,
		}
	}

	return &APIError{
		Status:  status,
		Message: coalesce(summarize(obj), http.StatusText(status)),
		Payload: obj,
		Raw:     trimmed,
	}
}

func summarize(obj map[string]any) string {
	if msg, ok := GetString(obj, "message"); ok && msg != "" {
		return msg
	}

	title, _ := GetString(obj, "title")
	detail, _ := GetString(obj, "detail")
	if title != "" && detail != "" && !strings.EqualFold(title, detail) {
		return title + ": " + detail
	}
	if s := coalesce(detail, title); s != "" {
		return s
	}

	if first, ok := FirstError(obj); ok {
		if msg, ok := GetString(first, "message"); ok && msg != "" {
			return msg
		}
		t, _ := GetString(first, "title")
		d, _ := GetString(first, "detail")
		if t != "" && d != "" {
			return t + ": " + d
		}
		return coalesce(d, t)
	}

	if s, ok := GetString(obj, "error"); ok {
		return s
	}
	return ""
}

// FirstError returns the first object of an "errors" array, if any.
func FirstError(obj map[string]any) (map[string]any, bool) {
	list, ok := obj["errors"].([]any)
	if !ok || len(list) == 0 {
		return nil, false
	}
	first, ok := list[0].(map[string]any)
	return first, ok
}

// GetString reads a string field; non-string values report false.
func GetString(m map[string]any, key string) (string, bool) {
	if v, ok := m[key]; ok {
		if s, ok := v.(string); ok {
			return s, true
		}
	}
	return "", false
}

// GetInt reads an integer field, accepting JSON numbers and numeric strings.
func GetInt(m map[string]any, key string) (int, bool) {
	v, ok := m[key]
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case json.Number:
		if i, err := strconv.Atoi(n.String()); err == nil {
			return i, true
		}
	case float64:
		return int(n), true
	case int:
		return n, true
	case string:
		// accept numeric strings: "429", "500"
		if i, err := strconv.Atoi(strings.TrimSpace(n)); err == nil {
			return i, true
		}
	}
	return 0, false
}

func coalesce(ss ...string) string {
	for _, s := range ss {
		if s != "" {
			return s
		}
	}
	return ""
}
