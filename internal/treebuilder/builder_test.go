package treebuilder

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"ewb/internal/diag"
	"ewb/internal/dom"
	"ewb/internal/htmlerr"
	"ewb/internal/source"
	"ewb/internal/testkit"

	"github.com/google/go-cmp/cmp"
)

type parsed struct {
	res  Result
	err  error
	bag  *diag.Bag
	file *source.File
}

func parse(t *testing.T, input string, opts Options) parsed {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("test.html", []byte(input)))
	bag := diag.NewBag(64)
	opts.Reporter = diag.BagReporter{Bag: bag}
	res, err := BuildFile(file, opts)
	if err == nil {
		if ierr := testkit.CheckTreeInvariants(res.Tree, file); ierr != nil {
			t.Fatalf("tree invariants broken for %q: %v", input, ierr)
		}
	}
	return parsed{res: res, err: err, bag: bag, file: file}
}

func mustParse(t *testing.T, input string, opts Options) parsed {
	t.Helper()
	p := parse(t, input, opts)
	if p.err != nil {
		t.Fatalf("unexpected error for %q: %v", input, p.err)
	}
	return p
}

// shape сворачивает поддерево в строку вида div(p("text"),br)
func shape(n dom.Node) string {
	parts := make([]string, 0, n.ChildCount())
	for _, c := range n.Children() {
		parts = append(parts, shapeNode(c))
	}
	return strings.Join(parts, ",")
}

func shapeNode(n dom.Node) string {
	switch n.Kind() {
	case dom.KindText:
		return fmt.Sprintf("%q", n.Data())
	case dom.KindElement:
		if n.ChildCount() == 0 {
			return n.TagName()
		}
		return n.TagName() + "(" + shape(n) + ")"
	default:
		return n.TagName()
	}
}

func codesOf(bag *diag.Bag) []diag.Code {
	items := bag.Items()
	out := make([]diag.Code, 0, len(items))
	for _, d := range items {
		out = append(out, d.Code)
	}
	return out
}

func TestBuildShapes(t *testing.T) {
	tests := []struct {
		name  string
		input string
		opts  Options
		want  string
		codes []diag.Code
	}{
		{
			name:  "well formed nesting is reproduced",
			input: `<html><body><div><p>hi</p><p>yo</p></div></body></html>`,
			want:  `html(body(div(p("hi"),p("yo"))))`,
		},
		{
			name:  "unclosed p closed by outer end tag",
			input: `<div><p>text</div>`,
			want:  `div(p("text"))`,
			codes: []diag.Code{diag.TreeImplicitClose},
		},
		{
			name:  "stray end tag ignored",
			input: `<div></span>text</div>`,
			want:  `div("text")`,
			codes: []diag.Code{diag.TreeStrayEndTag},
		},
		{
			name:  "void elements never take children",
			input: `<p>a<br>b<img src=x>c</p>`,
			want:  `p("a",br,"b",img,"c")`,
		},
		{
			name:  "explicit self closing is honoured",
			input: `<div/><span>x</span>`,
			want:  `div,span("x")`,
			codes: []diag.Code{diag.TreeSelfClosingNonVd},
		},
		{
			name:  "void end tag ignored",
			input: `<p>a</br>b</p>`,
			want:  `p("ab")`,
			codes: []diag.Code{diag.TreeVoidEndTag},
		},
		{
			name:  "open elements closed at eof",
			input: `<ul><li>one<li>two`,
			want:  `ul(li("one",li("two")))`,
			codes: []diag.Code{diag.TreeUnclosedAtEOF, diag.TreeUnclosedAtEOF, diag.TreeUnclosedAtEOF},
		},
		{
			name:  "mixed case end tag closes",
			input: `<DIV>a</div><Div>b</DIV>`,
			want:  `div("a"),div("b")`,
		},
		{
			name:  "comments dropped and text rejoined",
			input: `a<!-- c -->b`,
			want:  `"ab"`,
		},
		{
			name:  "comments kept on request",
			input: `a<!-- c -->b`,
			opts:  Options{KeepComments: true},
			want:  `"a",#comment,"b"`,
		},
		{
			name:  "doctype dropped by default",
			input: `<!DOCTYPE html><p>x</p>`,
			want:  `p("x")`,
		},
		{
			name:  "doctype kept on request",
			input: `<!DOCTYPE html><p>x</p>`,
			opts:  Options{KeepDoctype: true},
			want:  `#doctype,p("x")`,
		},
		{
			name:  "script body is one text node",
			input: `<script>if (a<b) { x = "</p>" }</script><p>y</p>`,
			want:  `script("if (a<b) { x = \"</p>\" }"),p("y")`,
		},
		{
			name:  "degraded markup stays text",
			input: `<p>1 < 2 & 3 > 2</p>`,
			want:  `p("1 < 2 & 3 > 2")`,
			codes: []diag.Code{diag.LexStrayLessThan},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := mustParse(t, tt.input, tt.opts)
			if got := shape(p.res.Tree.Root()); got != tt.want {
				t.Errorf("shape = %s\nwant    %s", got, tt.want)
			}
			if diff := cmp.Diff(tt.codes, codesOf(p.bag), cmpEmpty); diff != "" {
				t.Errorf("diagnostics mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

var cmpEmpty = cmp.FilterValues(func(a, b []diag.Code) bool {
	return len(a) == 0 && len(b) == 0
}, cmp.Ignore())

func TestRecoveredPTextIsReachable(t *testing.T) {
	p := mustParse(t, `<div><p>text</div>`, Options{})
	root := p.res.Tree.Root()
	ps := root.GetNodes("p")
	if len(ps) != 1 {
		t.Fatalf("expected one <p>, got %d", len(ps))
	}
	if ps[0].Parent().TagName() != "div" {
		t.Errorf("<p> parent = %s", ps[0].Parent())
	}
	texts := ps[0].GetTextNodes()
	if len(texts) != 1 || texts[0].Data() != "text" {
		t.Errorf("text under <p> = %v", texts)
	}
}

func TestStrayEndTagDoesNotCorruptStack(t *testing.T) {
	p := mustParse(t, `<div></span>text</div><p>after</p>`, Options{})
	root := p.res.Tree.Root()
	divs := root.GetNodes("div")
	if len(divs) != 1 {
		t.Fatalf("expected one div, got %d", len(divs))
	}
	if kids := divs[0].Children(); len(kids) != 1 || kids[0].Data() != "text" {
		t.Errorf("div children = %v", kids)
	}
	if p := root.Find("p"); p.Parent().ID() != root.ID() {
		t.Errorf("<p> must be a sibling of <div>, parent = %s", p.Parent())
	}
}

func TestGetNodesDocumentOrderAndIdempotent(t *testing.T) {
	p := mustParse(t, `<DIV id=1><div id=2></div></DIV><section><Div id=3></section>`, Options{})
	root := p.res.Tree.Root()
	ids := func(nodes []dom.Node) []string {
		out := make([]string, 0, len(nodes))
		for _, n := range nodes {
			v, _ := n.Attr("id")
			out = append(out, v)
		}
		return out
	}
	first := ids(root.GetNodes("div"))
	if diff := cmp.Diff([]string{"1", "2", "3"}, first); diff != "" {
		t.Errorf("GetNodes(div) order (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(first, ids(root.GetNodes("DIV"))); diff != "" {
		t.Errorf("GetNodes must be case-insensitive and idempotent:\n%s", diff)
	}
}

func TestDuplicateAttributeFirstWins(t *testing.T) {
	p := mustParse(t, `<a href="1" HREF="2" id=x></a>`, Options{})
	a := p.res.Tree.Root().Find("a")
	want := map[string]string{"href": "1", "id": "x"}
	if diff := cmp.Diff(want, a.Attributes()); diff != "" {
		t.Errorf("attributes (-want +got):\n%s", diff)
	}
	if n := p.bag.Count(diag.TreeDuplicateAttr); n != 1 {
		t.Errorf("expected one duplicate attribute diagnostic, got %d", n)
	}
}

func TestTextNodesReproduceVisibleText(t *testing.T) {
	p := mustParse(t, `<p>Hello, <b>wor</b>ld &amp; more</p>`, Options{})
	var sb strings.Builder
	for _, n := range p.res.Tree.Root().GetTextNodes() {
		if n.ChildCount() != 0 {
			t.Errorf("text node %v has children", n)
		}
		sb.WriteString(n.Data())
	}
	if got := sb.String(); got != "Hello, world & more" {
		t.Errorf("concatenated text = %q", got)
	}
}

func TestEmptyInputIsInvalid(t *testing.T) {
	p := parse(t, "", Options{})
	if !errors.Is(p.err, htmlerr.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", p.err)
	}
	if errors.Is(p.err, htmlerr.ErrResourceExhausted) {
		t.Errorf("empty input must not look like resource exhaustion")
	}
	if p.bag.Count(diag.IOEmptyInput) != 1 {
		t.Errorf("expected IOEmptyInput diagnostic, got %v", codesOf(p.bag))
	}

	if _, err := BuildFile(nil, Options{}); !errors.Is(err, htmlerr.ErrInvalidInput) {
		t.Errorf("nil file: expected ErrInvalidInput, got %v", err)
	}
}

func TestDepthLimit(t *testing.T) {
	deep := strings.Repeat("<div>", 10)
	p := parse(t, deep, Options{MaxDepth: 5})
	if !errors.Is(p.err, htmlerr.ErrResourceExhausted) {
		t.Fatalf("expected ErrResourceExhausted, got %v", p.err)
	}
	var herr *htmlerr.Error
	if !errors.As(p.err, &herr) || herr.Limit != "max_depth" {
		t.Errorf("expected max_depth limit, got %#v", p.err)
	}
	if p.bag.Count(diag.LimitDepthExceeded) != 1 {
		t.Errorf("expected LimitDepthExceeded, got %v", codesOf(p.bag))
	}

	atLimit := mustParse(t, strings.Repeat("<div>", 5), Options{MaxDepth: 5})
	if atLimit.res.Stats.MaxDepth != 5 {
		t.Errorf("MaxDepth stat = %d, want 5", atLimit.res.Stats.MaxDepth)
	}
}

func TestDepthLimitIgnoresVoidAndClosed(t *testing.T) {
	input := strings.Repeat("<p><br></p>", 100)
	p := mustParse(t, input, Options{MaxDepth: 1})
	if n := len(p.res.Tree.Root().GetNodes("br")); n != 100 {
		t.Errorf("expected 100 <br>, got %d", n)
	}
}

func TestNodeLimit(t *testing.T) {
	p := parse(t, `<a></a><b></b><c></c><d></d>`, Options{MaxNodes: 3})
	if !errors.Is(p.err, htmlerr.ErrResourceExhausted) {
		t.Fatalf("expected ErrResourceExhausted, got %v", p.err)
	}
	if p.bag.Count(diag.LimitNodesExceeded) != 1 {
		t.Errorf("expected LimitNodesExceeded, got %v", codesOf(p.bag))
	}
	mustParse(t, `<a></a><b></b><c></c>`, Options{MaxNodes: 3})
}

func TestInputSizeLimit(t *testing.T) {
	p := parse(t, "<p>hello</p>", Options{MaxInputBytes: 4})
	if !errors.Is(p.err, htmlerr.ErrResourceExhausted) {
		t.Fatalf("expected ErrResourceExhausted, got %v", p.err)
	}
	if p.bag.Count(diag.LimitInputTooLarge) != 1 {
		t.Errorf("expected LimitInputTooLarge, got %v", codesOf(p.bag))
	}
}

func TestNormalizeNFC(t *testing.T) {
	const decomposed = "e\u0301"
	input := "<p title=\"" + decomposed + "\">" + decomposed + "</p>"
	plain := mustParse(t, input, Options{})
	if got := plain.res.Tree.Root().Text(); got != decomposed {
		t.Errorf("text without NFC = %q", got)
	}
	nfc := mustParse(t, input, Options{NormalizeNFC: true})
	p := nfc.res.Tree.Root().Find("p")
	if got := p.Text(); got != "\u00e9" {
		t.Errorf("text with NFC = %q", got)
	}
	if v, _ := p.Attr("title"); v != "\u00e9" {
		t.Errorf("title with NFC = %q", v)
	}
}

func TestMalformedInputNeverFails(t *testing.T) {
	inputs := []string{
		`<`,
		`<<>>`,
		`</>`,
		`<a href="`,
		`<div><span><p></div></span></p>`,
		`<table><tr><td>x</table>`,
		`<!-- never closed`,
		`<p =oops>x`,
		`&&&;&#;&#x;`,
		`<script>`,
		`</div></div></div>`,
		`<br></br><img/></img>`,
	}
	for _, input := range inputs {
		p := parse(t, input, Options{})
		if p.err != nil {
			t.Errorf("%q: unexpected error %v", input, p.err)
		}
	}
}

func TestStatsCountTokensAndNodes(t *testing.T) {
	p := mustParse(t, `<p>a<!--x-->b</p>`, Options{})
	if p.res.Stats.Tokens != 5 {
		t.Errorf("tokens = %d, want 5", p.res.Stats.Tokens)
	}
	if p.res.Stats.Nodes != 2 {
		t.Errorf("nodes = %d, want 2", p.res.Stats.Nodes)
	}
}
