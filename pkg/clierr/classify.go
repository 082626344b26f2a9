package clierr

import (
	"errors"
	"net/http"

	"github.com/habedi/conflux/pkg/apierr"
)

// Classifier maps raw failures to a Kind and status code. It holds no mutable
// state, so one value can be shared by concurrent requests.
type Classifier struct {
	kw Keywords
}

// NewClassifier returns a classifier using the given keyword families.
func NewClassifier(kw Keywords) *Classifier {
	return &Classifier{kw: DefaultKeywords().Merge(kw)}
}

var defaultClassifier = NewClassifier(Keywords{})

// Classify uses the built-in keyword families.
func Classify(err error) (Kind, int) { return defaultClassifier.Classify(err) }

// Classify inspects err and returns its kind and status code. The first
// matching rule wins:
//
//  0. an *Error that already carries a specific kind keeps it
//  1. transport failure signatures in the message
//  2. rate limiting (message or status 429)
//  3. the structured vendor payload found in the cause chain
//  4. keyword families in the message text
//  5. the attached status code
//  6. Unexpected / 500
//
// It never panics; a failure while matching degrades to rule 6.
func (c *Classifier) Classify(err error) (kind Kind, status int) {
	defer func() {
		if r := recover(); r != nil {
			kind, status = Unexpected, http.StatusInternalServerError
		}
	}()

	if err == nil {
		return Unexpected, http.StatusInternalServerError
	}

	if typed, ok := find[*Error](err); ok && typed.Kind != "" && typed.Kind != APIFailure && typed.Kind != Unexpected {
		return typed.Kind, typed.StatusCode
	}

	msg := err.Error()
	code := statusOf(err)

	if containsAny(msg, c.kw.Network) {
		return Network, http.StatusInternalServerError
	}

	if code == http.StatusTooManyRequests || containsAny(msg, c.kw.RateLimit) {
		return RateLimit, http.StatusTooManyRequests
	}

	if payload := payloadOf(err); payload != nil {
		if k, s, ok := c.fromPayload(payload); ok {
			return k, s
		}
	}

	if k, s, ok := c.fromText(msg, code); ok {
		return k, s
	}

	switch {
	case code == http.StatusNotFound:
		return NotFound, code
	case code == http.StatusUnauthorized || code == http.StatusForbidden:
		return AccessDenied, code
	case code == http.StatusBadRequest || code == http.StatusUnprocessableEntity:
		return Validation, code
	case code > 0:
		return Unexpected, code
	}

	return Unexpected, http.StatusInternalServerError
}

func (c *Classifier) fromPayload(p map[string]any) (Kind, int, bool) {
	title, _ := apierr.GetString(p, "title")
	detail, _ := apierr.GetString(p, "detail")
	own, _ := apierr.GetInt(p, "status")
	if own == 0 {
		own, _ = apierr.GetInt(p, "statusCode")
	}

	if title != "" || detail != "" {
		text := title + " " + detail
		switch {
		case own == http.StatusNotFound || containsAny(text, c.kw.NotFound):
			return NotFound, http.StatusNotFound, true
		case containsAny(text, c.kw.Access):
			return AccessDenied, statusOr(own, http.StatusForbidden), true
		case containsAny(text, c.kw.Validation):
			return Validation, statusOr(own, http.StatusBadRequest), true
		case containsAny(text, c.kw.RateLimit):
			return RateLimit, http.StatusTooManyRequests, true
		}
	}

	if first, ok := apierr.FirstError(p); ok {
		m, _ := apierr.GetString(first, "message")
		t, _ := apierr.GetString(first, "title")
		text := m + " " + t
		entryStatus, _ := apierr.GetInt(first, "status")
		entryStatus = statusOr(entryStatus, own)
		switch {
		case containsAny(text, c.kw.QuerySyntax):
			return QuerySyntax, http.StatusBadRequest, true
		case containsAny(text, c.kw.NotFound):
			return NotFound, http.StatusNotFound, true
		case containsAny(text, c.kw.Access):
			return AccessDenied, statusOr(entryStatus, http.StatusForbidden), true
		case containsAny(text, c.kw.ContentState):
			return ContentState, statusOr(entryStatus, http.StatusConflict), true
		}
	}

	if m, ok := apierr.GetString(p, "message"); ok && m != "" {
		switch {
		case containsAny(m, c.kw.NotFound):
			return NotFound, http.StatusNotFound, true
		case containsAny(m, c.kw.Access):
			return AccessDenied, statusOr(own, http.StatusForbidden), true
		case containsAny(m, c.kw.QuerySyntax):
			return QuerySyntax, http.StatusBadRequest, true
		}
	}

	return "", 0, false
}

func (c *Classifier) fromText(msg string, code int) (Kind, int, bool) {
	switch {
	case containsAny(msg, c.kw.NotFound):
		return NotFound, http.StatusNotFound, true
	case containsAny(msg, c.kw.Access):
		if code == http.StatusUnauthorized || code == http.StatusForbidden {
			return AccessDenied, code, true
		}
		return AccessDenied, http.StatusForbidden, true
	case containsAny(msg, c.kw.QuerySyntax):
		return QuerySyntax, http.StatusBadRequest, true
	case containsAny(msg, c.kw.Validation):
		return Validation, http.StatusBadRequest, true
	}
	return "", 0, false
}

// statusOf returns the first non-zero status found along the chain.
func statusOf(err error) int {
	cur := err
	for depth := 0; cur != nil && depth <= MaxCauseDepth; depth++ {
		if sc, ok := cur.(interface{ HTTPStatus() int }); ok && sc.HTTPStatus() > 0 {
			return sc.HTTPStatus()
		}
		cur = errors.Unwrap(cur)
	}
	return 0
}

func payloadOf(err error) map[string]any {
	if ae, ok := find[*apierr.APIError](err); ok {
		return ae.Payload
	}
	return nil
}

// find is a depth-bounded errors.As.
func find[T error](err error) (T, bool) {
	var zero T
	cur := err
	for depth := 0; cur != nil && depth <= MaxCauseDepth; depth++ {
		if t, ok := cur.(T); ok {
			return t, true
		}
		cur = errors.Unwrap(cur)
	}
	return zero, false
}

func statusOr(s, def int) int {
	if s > 0 {
		return s
	}
	return def
}
