package token_test

import (
	"testing"

	"ewb/internal/source"
	"ewb/internal/token"
)

func TestKindString(t *testing.T) {
	cases := map[token.Kind]string{
		token.Invalid:  "Invalid",
		token.EOF:      "EOF",
		token.StartTag: "StartTag",
		token.EndTag:   "EndTag",
		token.Text:     "Text",
		token.Comment:  "Comment",
		token.Doctype:  "Doctype",
	}
	for k, want := range cases {
		if got := k.String(); got != want {
			t.Errorf("Kind(%d).String() = %q, want %q", k, got, want)
		}
	}
}

func TestConstructorsSetOnlyTheirVariant(t *testing.T) {
	sp := source.Span{Start: 1, End: 4}

	start := token.NewStartTag(sp, "a", []token.Attr{{Key: "href", Val: "1"}, {Key: "href", Val: "2"}}, false)
	if !start.IsTag() || start.Data != "" {
		t.Fatalf("unexpected start tag %+v", start)
	}
	if v, ok := start.Attr("href"); !ok || v != "1" {
		t.Errorf("Attr(href) = %q, %v; want first occurrence", v, ok)
	}
	if _, ok := start.Attr("title"); ok {
		t.Error("Attr(title) must be absent")
	}

	text := token.NewText(sp, "hi")
	if text.IsTag() || text.Name != "" || text.Attrs != nil {
		t.Fatalf("text token leaks tag fields: %+v", text)
	}
	if !token.NewEndTag(sp, "a").IsTag() {
		t.Error("end tag must be a tag")
	}
	if token.NewComment(sp, "c").Kind != token.Comment || token.NewDoctype(sp, "html").Kind != token.Doctype {
		t.Error("constructor kinds mismatch")
	}
}
