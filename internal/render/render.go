// Package render maps resolved spans to HTML or MarkdownV2 tag pairs.
package render

import (
	"github.com/riverfjs/tgmarkup/internal/types"
)

// Renderer 为一个 span 生成开闭标签
type Renderer interface {
	// Tags returns the opening and closing markup for a span. Both are empty
	// when the span renders as plain text.
	Tags(span types.ResolvedSpan) (open, close string)
}

// Render wraps substring in the tags r produces for span.
func Render(r Renderer, span types.ResolvedSpan, substring string) string {
	open, close := r.Tags(span)
	return open + substring + close
}

// For returns the renderer for the given markup mode.
func For(m types.Markup) Renderer {
	if m == types.MarkupMarkdown {
		return Markdown{}
	}
	return HTML{}
}

// HTML renders Telegram HTML parse mode tags. Neither the substring nor the
// URL is escaped.
type HTML struct{}

var htmlTags = map[types.Kind]string{
	types.KindBold:          "b",
	types.KindItalic:        "i",
	types.KindUnderline:     "u",
	types.KindStrikethrough: "s",
	types.KindCode:          "code",
	types.KindPre:           "pre",
}

func (HTML) Tags(span types.ResolvedSpan) (string, string) {
	if span.Kind == types.KindLink {
		return `<a href="` + span.URL + `">`, "</a>"
	}
	tag, ok := htmlTags[span.Kind]
	if !ok {
		return "", ""
	}
	return "<" + tag + ">", "</" + tag + ">"
}

// Markdown renders Telegram MarkdownV2 delimiters, unescaped.
type Markdown struct{}

var markdownDelims = map[types.Kind]string{
	types.KindBold:          "*",
	types.KindItalic:        "_",
	types.KindUnderline:     "__",
	types.KindStrikethrough: "~",
	types.KindCode:          "`",
}

func (Markdown) Tags(span types.ResolvedSpan) (string, string) {
	switch span.Kind {
	case types.KindLink:
		return "[", "](" + span.URL + ")"
	case types.KindPre:
		return "```" + span.Language + "\n", "\n```"
	}
	d, ok := markdownDelims[span.Kind]
	if !ok {
		return "", ""
	}
	return d, d
}
