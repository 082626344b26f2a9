package clierr

import (
	"errors"

	"github.com/habedi/conflux/pkg/apierr"
	"github.com/rs/zerolog/log"
)

// Gate is the single place where controller failures become *Error values.
type Gate struct {
	classifier *Classifier
}

// NewGate returns a gate using c, or the default classifier when c is nil.
func NewGate(c *Classifier) *Gate {
	if c == nil {
		c = defaultClassifier
	}
	return &Gate{classifier: c}
}

var defaultGate = NewGate(nil)

// Handle uses the default classifier.
func Handle(err error, ctx Context) *Error { return defaultGate.Handle(err, ctx) }

// Handle classifies err, builds the user-facing message and returns a new
// *Error of the resolved kind with err as its cause. It never returns nil.
// Validation messages are user-authored and pass through unmodified.
func (g *Gate) Handle(err error, ctx Context) *Error {
	if err == nil {
		err = errors.New("unknown error")
	}
	c := defaultClassifier
	if g != nil && g.classifier != nil {
		c = g.classifier
	}

	kind, status := c.Classify(err)

	msg := err.Error()
	if kind != Validation {
		msg = BuildMessage(kind, withVendorDetail(ctx, err), msg)
	}

	log.Debug().
		Str("source", ctx.Source).
		Str("operation", ctx.Operation).
		Str("kind", string(kind)).
		Int("status", status).
		Err(err).
		Msg("Controller error handled")

	return New(kind, msg, status, err)
}

// withVendorDetail copies ctx and records the vendor's own message as the
// secondary detail unless the caller already supplied one.
func withVendorDetail(ctx Context, err error) Context {
	if ctx.detail() != "" {
		return ctx
	}
	ae, ok := find[*apierr.APIError](err)
	if !ok || ae.Message == "" {
		return ctx
	}
	info := make(map[string]any, len(ctx.AdditionalInfo)+1)
	for k, v := range ctx.AdditionalInfo {
		info[k] = v
	}
	info[DetailKey] = ae.Message
	ctx.AdditionalInfo = info
	return ctx
}
