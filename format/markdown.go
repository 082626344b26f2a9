// Package format converts between Confluence storage format and Markdown and
// renders API objects as Markdown for the terminal.
package format

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	gmhtml "github.com/yuin/goldmark/renderer/html"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var md = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithRendererOptions(gmhtml.WithXHTML()),
)

// MarkdownToStorage renders Markdown as XHTML, which Confluence accepts as storage format.
func MarkdownToStorage(source string) (string, error) {
	var buf bytes.Buffer
	if err := md.Convert([]byte(source), &buf); err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return strings.TrimSpace(buf.String()), nil
}

var (
	blankLines = regexp.MustCompile(`\n{3,}`)
	cdata      = regexp.MustCompile(`(?s)<!\[CDATA\[(.*?)\]\]>`)
)

// StorageToMarkdown converts a storage-format body to Markdown. Unknown
// elements contribute their text. It does not fail: unparsable input comes
// back as plain text.
func StorageToMarkdown(storage string) string {
	// HTML parsing would turn CDATA into a comment cut at the first '>'
	escaped := cdata.ReplaceAllStringFunc(storage, func(m string) string {
		return html.EscapeString(cdata.FindStringSubmatch(m)[1])
	})
	nodes, err := html.ParseFragment(strings.NewReader(escaped), &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body})
	if err != nil {
		return strings.TrimSpace(storage)
	}
	w := &mdWriter{}
	for _, n := range nodes {
		w.node(n)
	}
	out := blankLines.ReplaceAllString(w.b.String(), "\n\n")
	return strings.TrimSpace(out)
}

// structural elements ignore whitespace between their children.
var structural = map[string]bool{"ul": true, "ol": true, "table": true, "thead": true, "tbody": true, "tr": true}

type mdWriter struct {
	b      strings.Builder
	lists  []listState
	inPre  bool
	prefix string // blockquote marker
}

type listState struct {
	ordered bool
	n       int
}

func (w *mdWriter) write(s string) { w.b.WriteString(s) }

func (w *mdWriter) atLineStart() bool {
	s := w.b.String()
	return s == "" || strings.HasSuffix(s, "\n"+w.prefix) || s == w.prefix
}

func (w *mdWriter) block() {
	w.write("\n\n" + w.prefix)
}

func (w *mdWriter) children(n *html.Node) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		w.node(c)
	}
}

func (w *mdWriter) node(n *html.Node) {
	switch n.Type {
	case html.TextNode:
		if w.inPre {
			w.write(n.Data)
			return
		}
		if n.Parent != nil && structural[n.Parent.Data] && strings.TrimSpace(n.Data) == "" {
			return
		}
		text := collapseSpace(n.Data)
		if w.atLineStart() {
			text = strings.TrimLeft(text, " ")
		}
		w.write(text)
		return
	case html.CommentNode:
		return
	case html.ElementNode:
	default:
		w.children(n)
		return
	}

	switch n.Data {
	case "h1", "h2", "h3", "h4", "h5", "h6":
		w.block()
		w.write(strings.Repeat("#", int(n.Data[1]-'0')) + " ")
		w.children(n)
		w.block()
	case "p", "div":
		w.block()
		w.children(n)
		w.block()
	case "br":
		w.write("  \n" + w.prefix)
	case "hr":
		w.block()
		w.write("---")
		w.block()
	case "strong", "b":
		w.inline("**", n)
	case "em", "i":
		w.inline("_", n)
	case "s", "del":
		w.inline("~~", n)
	case "code":
		if w.inPre {
			w.children(n)
			return
		}
		w.inline("`", n)
	case "pre":
		w.fence("", func() { w.children(n) })
	case "a":
		href := attr(n, "href")
		if href == "" {
			w.children(n)
			return
		}
		w.write("[")
		w.children(n)
		w.write("](" + href + ")")
	case "img":
		w.write("![" + attr(n, "alt") + "](" + attr(n, "src") + ")")
	case "ul", "ol":
		if len(w.lists) == 0 {
			w.block()
		}
		w.lists = append(w.lists, listState{ordered: n.Data == "ol"})
		w.children(n)
		w.lists = w.lists[:len(w.lists)-1]
		if len(w.lists) == 0 {
			w.block()
		}
	case "li":
		w.listItem(n)
	case "blockquote":
		w.quote(n)
	case "table":
		w.table(n)
	case "ac:structured-macro":
		w.macro(n)
	case "ac:link":
		w.acLink(n)
	case "ac:parameter", "ri:attachment", "ri:user":
		// metadata only
	default:
		w.children(n)
	}
}

func (w *mdWriter) inline(marker string, n *html.Node) {
	w.write(marker)
	w.children(n)
	w.write(marker)
}

func (w *mdWriter) fence(lang string, body func()) {
	w.block()
	w.write("```" + lang + "\n")
	w.inPre = true
	body()
	w.inPre = false
	if !strings.HasSuffix(w.b.String(), "\n") {
		w.write("\n")
	}
	w.write("```")
	w.block()
}

func (w *mdWriter) listItem(n *html.Node) {
	depth := len(w.lists)
	if depth == 0 {
		w.write("\n- ")
		w.children(n)
		return
	}
	st := &w.lists[depth-1]
	st.n++
	marker := "- "
	if st.ordered {
		marker = fmt.Sprintf("%d. ", st.n)
	}
	w.write("\n" + w.prefix + strings.Repeat("  ", depth-1) + marker)
	w.children(n)
}

func (w *mdWriter) quote(n *html.Node) {
	saved := w.prefix
	w.prefix += "> "
	w.block()
	w.children(n)
	w.prefix = saved
	w.block()
}

func (w *mdWriter) table(n *html.Node) {
	var rows [][]string
	var walk func(*html.Node)
	walk = func(x *html.Node) {
		if x.Type == html.ElementNode && x.Data == "tr" {
			var row []string
			for c := x.FirstChild; c != nil; c = c.NextSibling {
				if c.Type == html.ElementNode && (c.Data == "td" || c.Data == "th") {
					row = append(row, strings.ReplaceAll(cellText(c), "|", `\|`))
				}
			}
			rows = append(rows, row)
			return
		}
		for c := x.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	if len(rows) == 0 {
		return
	}

	width := 0
	for _, r := range rows {
		width = max(width, len(r))
	}
	w.block()
	for i, r := range rows {
		for len(r) < width {
			r = append(r, "")
		}
		w.write("| " + strings.Join(r, " | ") + " |\n")
		if i == 0 {
			w.write("|" + strings.Repeat(" --- |", width) + "\n")
		}
	}
	w.block()
}

func (w *mdWriter) macro(n *html.Node) {
	name := attr(n, "ac:name")
	switch name {
	case "code", "noformat":
		lang := ""
		var body *html.Node
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type != html.ElementNode {
				continue
			}
			switch {
			case c.Data == "ac:parameter" && attr(c, "ac:name") == "language":
				lang = strings.TrimSpace(textOf(c))
			case c.Data == "ac:plain-text-body":
				body = c
			}
		}
		w.fence(lang, func() {
			if body != nil {
				w.children(body)
			}
		})
	case "info", "note", "warning", "tip":
		saved := w.prefix
		w.prefix += "> "
		w.block()
		w.write("**" + strings.ToUpper(name[:1]) + name[1:] + ":** ")
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.ElementNode && c.Data == "ac:rich-text-body" {
				w.children(c)
			}
		}
		w.prefix = saved
		w.block()
	default:
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.ElementNode && c.Data == "ac:rich-text-body" {
				w.children(c)
			}
		}
	}
}

// acLink renders a link to another page by its title.
func (w *mdWriter) acLink(n *html.Node) {
	title := ""
	var label *html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		switch c.Data {
		case "ri:page":
			title = attr(c, "ri:content-title")
		case "ac:plain-text-link-body", "ac:link-body":
			label = c
		}
	}
	w.write("[")
	if label != nil {
		w.children(label)
	} else {
		w.write(title)
	}
	w.write("]")
	if title != "" {
		w.write("(" + strings.ReplaceAll(title, " ", "%20") + ")")
	}
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func textOf(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(x *html.Node) {
		if x.Type == html.TextNode {
			b.WriteString(x.Data)
		}
		for c := x.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

func cellText(n *html.Node) string {
	return strings.TrimSpace(collapseSpace(textOf(n)))
}

func collapseSpace(s string) string {
	if s == "" {
		return s
	}
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return " "
	}
	out := strings.Join(fields, " ")
	if isSpace(s[0]) {
		out = " " + out
	}
	if isSpace(s[len(s)-1]) {
		out += " "
	}
	return out
}

func isSpace(c byte) bool { return c == ' ' || c == '\n' || c == '\t' || c == '\r' }
