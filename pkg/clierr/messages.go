package clierr

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DetailKey is the AdditionalInfo key holding a secondary vendor detail.
const DetailKey = "detail"

// Context describes the call site that failed. Create one per call.
type Context struct {
	EntityType     string            // e.g. "Page", "Space"
	EntityID       string            // single identifier
	EntityIDParts  map[string]string // composite identifier, used when EntityID is empty
	Operation      string            // e.g. "retrieving page details"
	Source         string            // caller identifier, for logs
	AdditionalInfo map[string]any
}

func (c Context) entity() string {
	if c.EntityType == "" {
		return "Resource"
	}
	return cases.Title(language.English, cases.NoLower).String(c.EntityType)
}

func (c Context) id() string {
	if c.EntityID != "" {
		return c.EntityID
	}
	if len(c.EntityIDParts) == 0 {
		return ""
	}
	keys := make([]string, 0, len(c.EntityIDParts))
	for k := range c.EntityIDParts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+c.EntityIDParts[k])
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// subject renders "Page 123" or "Page" when there is no identifier.
func (c Context) subject() string {
	if id := c.id(); id != "" {
		return c.entity() + " " + id
	}
	return c.entity()
}

func (c Context) detail() string {
	if c.AdditionalInfo == nil {
		return ""
	}
	s, _ := c.AdditionalInfo[DetailKey].(string)
	return strings.TrimSpace(s)
}

var notFoundHints = map[string]string{
	"space":     "Check the space key is spelled correctly, including case.",
	"page":      "Ensure the page hasn't been trashed or deleted.",
	"blog post": "Ensure the blog post hasn't been trashed or deleted.",
	"comment":   "Ensure the comment and the page it belongs to still exist.",
	"label":     "Label names are matched exactly; check the spelling.",
}

var accessHints = map[string]string{
	"space": "Space permissions may hide this space from your account.",
	"page":  "Page restrictions may prevent your account from viewing or editing it.",
}

// BuildMessage returns a user-facing message for kind. Kinds without a
// dedicated template return raw unchanged, plus the secondary detail from
// ctx when it adds something.
func BuildMessage(kind Kind, ctx Context, raw string) string {
	raw = strings.TrimSpace(raw)
	entityKey := strings.ToLower(ctx.EntityType)

	var msg string
	switch kind {
	case NotFound:
		switch {
		case ctx.id() != "":
			msg = fmt.Sprintf("%s not found. Verify the identifier is correct and that you have access.", ctx.subject())
			if hint, ok := notFoundHints[entityKey]; ok {
				msg += " " + hint
			}
		case ctx.Operation != "":
			msg = fmt.Sprintf("Nothing was found while %s. Check the request and that you have access.", ctx.Operation)
		default:
			msg = fmt.Sprintf("%s not found. Confirm that it exists and that you have access.", ctx.entity())
		}
	case AccessDenied:
		// Operations without an identifier already name what they act on.
		switch {
		case ctx.Operation != "" && ctx.id() != "":
			msg = fmt.Sprintf("Permission denied while %s %s.", ctx.Operation, ctx.subject())
		case ctx.Operation != "":
			msg = fmt.Sprintf("Permission denied while %s.", ctx.Operation)
		default:
			msg = fmt.Sprintf("Permission denied for %s.", ctx.subject())
		}
		msg += " Confirm your API token is valid and that your account has access."
		if hint, ok := accessHints[entityKey]; ok && ctx.id() != "" {
			msg += " " + hint
		}
	case InvalidCursor:
		msg = "The pagination cursor is invalid or has expired. Run the command again without a cursor to start from the first page."
	case QuerySyntax:
		msg = "The search query could not be parsed. Check the CQL syntax: quote values that contain spaces and use valid fields such as title, space, label or type."
	case ContentState:
		op := ctx.Operation
		if op == "" {
			op = "this operation"
		}
		msg = fmt.Sprintf("%s is in a state that does not allow %s. It may be archived, still a draft, or changed since you fetched it; refresh and try again.", ctx.subject(), op)
	default:
		return appendDetail(raw, ctx.detail())
	}

	return appendDetail(msg, raw)
}

// appendDetail adds "Error details: ..." unless detail is empty or already present.
func appendDetail(msg, detail string) string {
	switch {
	case detail == "":
		if msg == "" {
			return "An unexpected error occurred."
		}
		return msg
	case msg == "":
		return detail
	case strings.Contains(msg, detail):
		return msg
	}
	return msg + " Error details: " + detail
}
