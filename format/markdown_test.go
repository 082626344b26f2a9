package format_test

import (
	"testing"

	"github.com/habedi/conflux/format"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStorageToMarkdown(t *testing.T) {
	tests := []struct {
		name    string
		storage string
		want    string
	}{
		{
			name:    "heading and inline styles",
			storage: `<h1>Title</h1><p>Hello <strong>world</strong> and <em>you</em></p>`,
			want:    "# Title\n\nHello **world** and _you_",
		},
		{
			name:    "link",
			storage: `<p>See <a href="https://example.com">docs</a></p>`,
			want:    "See [docs](https://example.com)",
		},
		{
			name:    "unordered list",
			storage: `<ul><li>one</li><li>two</li></ul>`,
			want:    "- one\n- two",
		},
		{
			name:    "ordered list",
			storage: `<ol><li>first</li><li>second</li></ol>`,
			want:    "1. first\n2. second",
		},
		{
			name:    "inline code",
			storage: `<p>Run <code>make</code></p>`,
			want:    "Run `make`",
		},
		{
			name:    "empty",
			storage: ``,
			want:    "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, format.StorageToMarkdown(tt.storage))
		})
	}
}

func TestStorageToMarkdown_CodeMacroKeepsAngleBrackets(t *testing.T) {
	storage := `<ac:structured-macro ac:name="code"><ac:parameter ac:name="language">go</ac:parameter>` +
		`<ac:plain-text-body><![CDATA[if a > b {
	return "<x>"
}]]></ac:plain-text-body></ac:structured-macro>`

	got := format.StorageToMarkdown(storage)
	assert.Equal(t, "```go\nif a > b {\n\treturn \"<x>\"\n}\n```", got)
}

func TestStorageToMarkdown_Table(t *testing.T) {
	storage := `<table><tbody><tr><th>Name</th><th>Role</th></tr><tr><td>Ann</td><td>a|b</td></tr></tbody></table>`
	got := format.StorageToMarkdown(storage)
	assert.Equal(t, "| Name | Role |\n| --- | --- |\n| Ann | a\\|b |", got)
}

func TestStorageToMarkdown_InfoPanelAndPageLink(t *testing.T) {
	storage := `<ac:structured-macro ac:name="info"><ac:rich-text-body><p>Heads up</p></ac:rich-text-body></ac:structured-macro>` +
		`<p><ac:link><ri:page ri:content-title="Release Notes" /></ac:link></p>`
	got := format.StorageToMarkdown(storage)
	assert.Contains(t, got, "> **Info:**")
	assert.Contains(t, got, "Heads up")
	assert.Contains(t, got, "[Release Notes](Release%20Notes)")
}

func TestMarkdownToStorage(t *testing.T) {
	got, err := format.MarkdownToStorage("# Title\n\nSome **bold** text.\n\n- a\n- b\n")
	require.NoError(t, err)
	assert.Contains(t, got, "<h1>Title</h1>")
	assert.Contains(t, got, "<strong>bold</strong>")
	assert.Contains(t, got, "<li>a</li>")
}

func TestMarkdownToStorage_XHTMLVoidElements(t *testing.T) {
	got, err := format.MarkdownToStorage("line one  \nline two\n\n---\n")
	require.NoError(t, err)
	assert.Contains(t, got, "<br />")
	assert.Contains(t, got, "<hr />")
}

func TestRoundTrip(t *testing.T) {
	src := "# Runbook\n\nRestart the **api** service.\n\n- check logs\n- page on-call"
	storage, err := format.MarkdownToStorage(src)
	require.NoError(t, err)
	assert.Equal(t, src, format.StorageToMarkdown(storage))
}
