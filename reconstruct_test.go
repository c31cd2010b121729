package tgmarkup

import (
	"errors"
	"testing"
)

func TestReconstruct_NoEntitiesIsIdentity(t *testing.T) {
	for _, text := range []string{"", "plain", "😀 emoji", "<b>not touched</b>"} {
		if got := Reconstruct(text, nil); got != text {
			t.Errorf("Reconstruct(%q, nil) = %q", text, got)
		}
		if got := Reconstruct(text, []MessageEntity{}); got != text {
			t.Errorf("Reconstruct(%q, []) = %q", text, got)
		}
	}
}

func TestReconstruct(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		entities []MessageEntity
		want     string
	}{
		{
			name:     "bold word",
			text:     "Hello world",
			entities: []MessageEntity{{Type: "bold", Offset: 6, Length: 5}},
			want:     "Hello <b>world</b>",
		},
		{
			name:     "after surrogate pair",
			text:     "😀 bold",
			entities: []MessageEntity{{Type: "bold", Offset: 3, Length: 4}},
			want:     "😀 <b>bold</b>",
		},
		{
			name:     "link",
			text:     "please click here",
			entities: []MessageEntity{{Type: "text_link", Offset: 7, Length: 5, URL: "https://example.com"}},
			want:     `please <a href="https://example.com">click</a> here`,
		},
		{
			name: "nested",
			text: "Hello world",
			entities: []MessageEntity{
				{Type: "bold", Offset: 0, Length: 11},
				{Type: "italic", Offset: 2, Length: 3},
			},
			want: "<b>He<i>llo</i> world</b>",
		},
		{
			name: "nested sharing end",
			text: "Hello world",
			entities: []MessageEntity{
				{Type: "underline", Offset: 6, Length: 5},
				{Type: "bold", Offset: 0, Length: 11},
			},
			want: "<b>Hello <u>world</u></b>",
		},
		{
			name: "same start keeps input order as nesting",
			text: "abc",
			entities: []MessageEntity{
				{Type: "bold", Offset: 0, Length: 3},
				{Type: "italic", Offset: 0, Length: 3},
			},
			want: "<b><i>abc</i></b>",
		},
		{
			name: "adjacent",
			text: "onetwo",
			entities: []MessageEntity{
				{Type: "bold", Offset: 0, Length: 3},
				{Type: "italic", Offset: 3, Length: 3},
			},
			want: "<b>one</b><i>two</i>",
		},
		{
			name:     "unknown kind passes through",
			text:     "secret word",
			entities: []MessageEntity{{Type: "spoiler", Offset: 0, Length: 6}},
			want:     "secret word",
		},
		{
			name:     "zero length",
			text:     "abc",
			entities: []MessageEntity{{Type: "bold", Offset: 1, Length: 0}},
			want:     "a<b></b>bc",
		},
		{
			name:     "negative length",
			text:     "abc",
			entities: []MessageEntity{{Type: "italic", Offset: 2, Length: -2}},
			want:     "ab<i></i>c",
		},
		{
			name:     "clamped past end",
			text:     "abc",
			entities: []MessageEntity{{Type: "code", Offset: 1, Length: 99}},
			want:     "a<code>bc</code>",
		},
		{
			name:     "offset past end",
			text:     "abc",
			entities: []MessageEntity{{Type: "pre", Offset: 10, Length: 2}},
			want:     "abc<pre></pre>",
		},
		{
			name:     "offset inside surrogate pair",
			text:     "😀ab",
			entities: []MessageEntity{{Type: "strikethrough", Offset: 1, Length: 2}},
			want:     "😀<s>a</s>b",
		},
		{
			name: "all kinds around emoji",
			text: "😀a😀b😀c",
			entities: []MessageEntity{
				{Type: "bold", Offset: 2, Length: 1},
				{Type: "italic", Offset: 5, Length: 1},
				{Type: "code", Offset: 8, Length: 1},
			},
			want: "😀<b>a</b>😀<i>b</i>😀<code>c</code>",
		},
		{
			name:     "link without url is plain",
			text:     "click",
			entities: []MessageEntity{{Type: "text_link", Offset: 0, Length: 5}},
			want:     "click",
		},
		{
			name: "crossing best effort interleaves",
			text: "0123456789",
			entities: []MessageEntity{
				{Type: "bold", Offset: 0, Length: 5},
				{Type: "italic", Offset: 3, Length: 5},
			},
			want: "<b>012<i>34</b>567</i>89",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Reconstruct(tt.text, tt.entities); got != tt.want {
				t.Errorf("Reconstruct() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestReconstruct_NestingSplit(t *testing.T) {
	tests := []struct {
		name     string
		entities []MessageEntity
		want     string
	}{
		{
			name: "crossing",
			entities: []MessageEntity{
				{Type: "bold", Offset: 0, Length: 5},
				{Type: "italic", Offset: 3, Length: 5},
			},
			want: "<b>012<i>34</i></b><i>567</i>89",
		},
		{
			name: "same start shorter first",
			entities: []MessageEntity{
				{Type: "code", Offset: 0, Length: 2},
				{Type: "bold", Offset: 0, Length: 4},
			},
			want: "<b><code>01</code>23</b>456789",
		},
		{
			name: "already nested unchanged",
			entities: []MessageEntity{
				{Type: "bold", Offset: 0, Length: 10},
				{Type: "italic", Offset: 2, Length: 3},
			},
			want: "<b>01<i>234</i>56789</b>",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Reconstruct("0123456789", tt.entities, WithNesting(NestingSplit))
			if got != tt.want {
				t.Errorf("Reconstruct() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestReconstruct_Markdown(t *testing.T) {
	text := "Hello world, see docs"
	entities := []MessageEntity{
		{Type: "bold", Offset: 0, Length: 11},
		{Type: "italic", Offset: 6, Length: 5},
		{Type: "text_link", Offset: 17, Length: 4, URL: "https://go.dev"},
	}
	got := Reconstruct(text, entities, WithMarkup(MarkupMarkdown))
	want := "*Hello _world_*, see [docs](https://go.dev)"
	if got != want {
		t.Errorf("Reconstruct() = %q, want %q", got, want)
	}
	if DefaultConfig().Markup != MarkupHTML {
		t.Error("WithMarkup must not modify the default config")
	}
}

func TestReconstruct_InputNotModified(t *testing.T) {
	entities := []MessageEntity{
		{Type: "italic", Offset: 3, Length: 5},
		{Type: "bold", Offset: 0, Length: 5},
	}
	before := append([]MessageEntity(nil), entities...)
	Reconstruct("0123456789", entities, WithNesting(NestingSplit))
	for i := range entities {
		if entities[i] != before[i] {
			t.Errorf("entity %d changed: %+v -> %+v", i, before[i], entities[i])
		}
	}
}

func TestReconstructStrict(t *testing.T) {
	got, err := ReconstructStrict("Hello world", []MessageEntity{{Type: "bold", Offset: 6, Length: 5}})
	if err != nil || got != "Hello <b>world</b>" {
		t.Errorf("ReconstructStrict() = %q, %v", got, err)
	}

	_, err = ReconstructStrict("click", []MessageEntity{{Type: "text_link", Offset: 0, Length: 5}})
	if !errors.Is(err, ErrMissingLinkURL) {
		t.Errorf("err = %v, want ErrMissingLinkURL", err)
	}

	_, err = ReconstructStrict("0123456789", []MessageEntity{
		{Type: "bold", Offset: 0, Length: 5},
		{Type: "italic", Offset: 3, Length: 5},
	})
	if !errors.Is(err, ErrCrossingSpans) {
		t.Fatalf("err = %v, want ErrCrossingSpans", err)
	}
	var ce *CrossingError
	if !errors.As(err, &ce) || ce.Outer.Start != 0 || ce.Inner.Start != 3 {
		t.Errorf("CrossingError = %+v", ce)
	}
}
