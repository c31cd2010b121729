package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"

	"github.com/riverfjs/tgmarkup"
	"github.com/riverfjs/tgmarkup/internal/profile"
	"github.com/riverfjs/tgmarkup/internal/wizard"
)

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, stderr bytes.Buffer
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRender(t *testing.T) {
	crossing := `{"text":"0123456789","entities":[{"type":"bold","offset":0,"length":5},{"type":"italic","offset":3,"length":5}]}`
	tests := []struct {
		name  string
		stdin string
		args  []string
		want  string
	}{
		{
			name:  "html",
			stdin: `{"text":"Hello world","entities":[{"type":"bold","offset":6,"length":5}]}`,
			args:  []string{"render"},
			want:  "Hello <b>world</b>\n",
		},
		{
			name:  "link",
			stdin: `{"text":"😀 click","entities":[{"type":"text_link","offset":3,"length":5,"url":"https://example.com"}]}`,
			args:  []string{"render", "-"},
			want:  "😀 <a href=\"https://example.com\">click</a>\n",
		},
		{
			name:  "markdown",
			stdin: `{"text":"Hello world","entities":[{"type":"italic","offset":0,"length":5}]}`,
			args:  []string{"render", "--markup", "markdown"},
			want:  "_Hello_ world\n",
		},
		{
			name:  "no entities",
			stdin: `{"text":"plain <b>"}`,
			args:  []string{"render"},
			want:  "plain <b>\n",
		},
		{
			name:  "split",
			stdin: crossing,
			args:  []string{"render", "--nesting", "split"},
			want:  "<b>012<i>34</i></b><i>567</i>89\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := execute(t, tt.stdin, tt.args...)
			if err != nil {
				t.Fatalf("execute() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("output = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRender_Errors(t *testing.T) {
	crossing := `{"text":"0123456789","entities":[{"type":"bold","offset":0,"length":5},{"type":"italic","offset":3,"length":5}]}`

	_, err := execute(t, crossing, "render", "--strict")
	if !errors.Is(err, tgmarkup.ErrCrossingSpans) {
		t.Errorf("--strict crossing err = %v, want ErrCrossingSpans", err)
	}
	_, err = execute(t, `{"text":"x","entities":[{"type":"text_link","offset":0,"length":1}]}`, "render", "--strict")
	if !errors.Is(err, tgmarkup.ErrMissingLinkURL) {
		t.Errorf("--strict link err = %v, want ErrMissingLinkURL", err)
	}
	if _, err := execute(t, "{", "render"); err == nil {
		t.Error("bad JSON should fail")
	}
	if _, err := execute(t, "{}", "render", "--markup", "bbcode"); err == nil {
		t.Error("unknown markup should fail")
	}
	if _, err := execute(t, "{}", "render", "--nesting", "deep"); err == nil {
		t.Error("unknown nesting should fail")
	}
	if _, err := execute(t, "{}", "render", "--log-level", "loud"); err == nil {
		t.Error("unknown log level should fail")
	}
}

func TestRender_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "msg.json")
	if err := os.WriteFile(path, []byte(`{"text":"ab","entities":[{"type":"code","offset":0,"length":2}]}`), 0o644); err != nil {
		t.Fatal(err)
	}
	got, err := execute(t, "", "render", path)
	if err != nil || got != "<code>ab</code>\n" {
		t.Errorf("render file = %q, %v", got, err)
	}
	if _, err := execute(t, "", "render", filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("missing file should fail")
	}
}

func TestConvert(t *testing.T) {
	got, err := execute(t, "**hi** [there](https://t.me)", "convert")
	if err != nil {
		t.Fatal(err)
	}
	if want := "<b>hi</b> <a href=\"https://t.me\">there</a>\n"; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}

	got, err = execute(t, "para one\n\n**para** two", "convert", "--max-length", "10")
	if err != nil {
		t.Fatal(err)
	}
	if want := "para one\n" + chunkSeparator + "<b>para</b> two\n"; got != want {
		t.Errorf("chunked output = %q, want %q", got, want)
	}

	got, err = execute(t, "**hi**", "convert", "--markup", "markdown")
	if err != nil || got != "*hi*\n" {
		t.Errorf("markdown output = %q, %v", got, err)
	}
}

const wizardScript = `/start
Luna
@luna
mystic
tarot, cards
!add_post_type
Promo
!example:promo
sample post
!post:promo
spring
`

func TestWizard(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.json")
	got, err := execute(t, wizardScript, "wizard", "--profile", path)
	if err != nil {
		t.Fatalf("execute() error = %v", err)
	}
	for _, want := range []string{"character's name", "Setup complete", "'promo' added", "[HTML]", "<b>SPRING</b>", "<i>mystic</i>"} {
		if !strings.Contains(got, want) {
			t.Errorf("output does not contain %q:\n%s", want, got)
		}
	}

	p, err := profile.NewFileStore(path).Load(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if p.Name != "Luna" {
		t.Errorf("profile name = %q", p.Name)
	}
	if ex, _ := p.Examples("promo"); len(ex) != 1 || ex[0] != "sample post" {
		t.Errorf("examples = %q", ex)
	}
}

func TestWizard_Menu(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.json")
	got, err := execute(t, "/menu\n\n!bogus\n", "wizard", "--profile", path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(got, "(➕ Add post type) !add_post_type") {
		t.Errorf("menu buttons missing:\n%s", got)
	}
	if !strings.Contains(got, "Unrecognized action") {
		t.Errorf("unknown action reply missing:\n%s", got)
	}
}

func TestWizard_Redis(t *testing.T) {
	mr := miniredis.RunT(t)
	path := filepath.Join(t.TempDir(), "profile.json")
	_, err := execute(t, "/start\n", "wizard", "--profile", path, "--redis-url", "redis://"+mr.Addr(), "--chat", "7")
	if err != nil {
		t.Fatal(err)
	}
	if !mr.Exists("tgmarkup:session:7") {
		t.Errorf("keys = %v, want tgmarkup:session:7", mr.Keys())
	}

	if _, err := execute(t, "", "wizard", "--profile", path, "--redis-url", "nope://x"); err == nil {
		t.Error("bad redis url should fail")
	}
}

func TestDraftPost(t *testing.T) {
	p := profile.New()
	p.Tag = "@luna"
	p.Services = []string{"tarot"}
	got, err := draftPost(context.Background(), wizard.Request{Profile: p, Topic: "moon"})
	if err != nil {
		t.Fatal(err)
	}
	if want := "**MOON**\n\n- tarot\n\n@luna"; got != want {
		t.Errorf("draftPost() = %q, want %q", got, want)
	}
}
