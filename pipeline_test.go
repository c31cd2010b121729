package tgmarkup

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestProcessMarkdown_Single(t *testing.T) {
	texts, err := ProcessMarkdown(context.Background(), "**bold** and [link](https://t.me)", 0)
	if err != nil {
		t.Fatalf("ProcessMarkdown() error = %v", err)
	}
	if len(texts) != 1 {
		t.Fatalf("ProcessMarkdown() returned %d messages, want 1", len(texts))
	}
	got := texts[0]
	if got.Text != "bold and link" {
		t.Errorf("Text = %q", got.Text)
	}
	if want := `<b>bold</b> and <a href="https://t.me">link</a>`; got.Markup != want {
		t.Errorf("Markup = %q, want %q", got.Markup, want)
	}
	if got.ParseMode != "HTML" {
		t.Errorf("ParseMode = %q, want HTML", got.ParseMode)
	}
	if got.SourceType != "text" || got.Extra["chunk"] != 0 {
		t.Errorf("ContentTrace = %+v", got.ContentTrace)
	}
}

func TestProcessMarkdown_SpoilerKeptInEntities(t *testing.T) {
	texts, err := ProcessMarkdown(context.Background(), "this is ||secret|| text", 0)
	if err != nil || len(texts) != 1 {
		t.Fatalf("ProcessMarkdown() = %d messages, %v", len(texts), err)
	}
	got := texts[0]
	if got.Markup != "this is secret text" {
		t.Errorf("Markup = %q, want plain text", got.Markup)
	}
	if len(got.Entities) != 1 || got.Entities[0].Type != "spoiler" || got.Entities[0].Offset != 8 || got.Entities[0].Length != 6 {
		t.Errorf("Entities = %+v, want spoiler 8/6", got.Entities)
	}
}

func TestProcessMarkdown_Empty(t *testing.T) {
	for _, md := range []string{"", "\n\n\n"} {
		texts, err := ProcessMarkdown(context.Background(), md, 0)
		if err != nil {
			t.Fatalf("ProcessMarkdown(%q) error = %v", md, err)
		}
		if len(texts) != 0 {
			t.Errorf("ProcessMarkdown(%q) = %d messages, want 0", md, len(texts))
		}
	}
}

// TestProcessMarkdown_Split 段落在换行处拆分，每块独立生成标记
func TestProcessMarkdown_Split(t *testing.T) {
	texts, err := ProcessMarkdown(context.Background(), "para one\n\n**para** two", 10)
	if err != nil {
		t.Fatalf("ProcessMarkdown() error = %v", err)
	}
	want := []string{"para one", "<b>para</b> two"}
	if len(texts) != len(want) {
		t.Fatalf("ProcessMarkdown() returned %d messages, want %d", len(texts), len(want))
	}
	for i, w := range want {
		if texts[i].Markup != w {
			t.Errorf("message %d markup = %q, want %q", i, texts[i].Markup, w)
		}
	}
}

func TestProcessMarkdown_ChunksFitLimit(t *testing.T) {
	var md strings.Builder
	for range 50 {
		md.WriteString("- **item** with 😀 emoji and `code`\n")
	}
	const limit = 120
	texts, err := ProcessMarkdown(context.Background(), md.String(), limit)
	if err != nil {
		t.Fatalf("ProcessMarkdown() error = %v", err)
	}
	if len(texts) < 2 {
		t.Fatalf("ProcessMarkdown() returned %d messages, want several", len(texts))
	}
	for i, txt := range texts {
		if n := UTF16Len(txt.Text); n > limit {
			t.Errorf("message %d is %d code units, limit %d", i, n, limit)
		}
		if strings.Count(txt.Markup, "<b>") != strings.Count(txt.Markup, "</b>") {
			t.Errorf("message %d has unbalanced bold tags: %q", i, txt.Markup)
		}
	}
}

func TestProcessMarkdown_MarkdownMode(t *testing.T) {
	texts, err := ProcessMarkdown(context.Background(), "**bold** _it_", 0, WithMarkup(MarkupMarkdown))
	if err != nil {
		t.Fatalf("ProcessMarkdown() error = %v", err)
	}
	if len(texts) != 1 {
		t.Fatalf("ProcessMarkdown() returned %d messages, want 1", len(texts))
	}
	if texts[0].Markup != "*bold* _it_" || texts[0].ParseMode != "MarkdownV2" {
		t.Errorf("message = %q (%s)", texts[0].Markup, texts[0].ParseMode)
	}
}

func TestProcessMarkdown_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := ProcessMarkdown(ctx, "hello", 0)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}
