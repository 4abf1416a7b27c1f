package diagfmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"ewb/internal/dom"
	"ewb/internal/lexer"
	"ewb/internal/source"
	"ewb/internal/token"
	"ewb/internal/treebuilder"
)

func buildTree(t *testing.T, input string, opts treebuilder.Options) (dom.Node, *source.FileSet) {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("t.html", []byte(input)))
	res, err := treebuilder.BuildFile(file, opts)
	if err != nil {
		t.Fatal(err)
	}
	return res.Tree.Root(), fs
}

func TestFormatTreePretty(t *testing.T) {
	root, fs := buildTree(t, `<div id="a"><p>one</p><br>two</div><!-- c -->`, treebuilder.Options{KeepComments: true})

	var buf bytes.Buffer
	if err := FormatTreePretty(&buf, root, fs, TreeOpts{}); err != nil {
		t.Fatal(err)
	}
	want := strings.Join([]string{
		`#document`,
		`├─ <div id="a">`,
		`│  ├─ <p>`,
		`│  │  └─ #text "one"`,
		`│  ├─ <br>`,
		`│  └─ #text "two"`,
		`└─ #comment " c "`,
		``,
	}, "\n")
	if buf.String() != want {
		t.Errorf("got:\n%s\nwant:\n%s", buf.String(), want)
	}
}

func TestFormatTreeTruncatesByWidth(t *testing.T) {
	root, fs := buildTree(t, "<p>"+strings.Repeat("字", 10)+"</p>", treebuilder.Options{})

	var buf bytes.Buffer
	if err := FormatTreePretty(&buf, root, fs, TreeOpts{TextWidth: 6}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), `#text "字字…"`) {
		t.Errorf("expected width-aware truncation:\n%s", buf.String())
	}
}

func TestFormatTreeSpans(t *testing.T) {
	root, fs := buildTree(t, "<b>x</b>", treebuilder.Options{})
	var buf bytes.Buffer
	if err := FormatTreePretty(&buf, root, fs, TreeOpts{ShowSpans: true}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), `#text "x" (span: 1:4-1:5)`) {
		t.Errorf("expected span annotation:\n%s", buf.String())
	}
}

func TestFormatTreeJSON(t *testing.T) {
	root, _ := buildTree(t, `<a href="/x">go</a>`, treebuilder.Options{})

	var buf bytes.Buffer
	if err := FormatTreeJSON(&buf, root); err != nil {
		t.Fatal(err)
	}
	var out NodeOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatal(err)
	}
	if out.Kind != "document" || len(out.Children) != 1 {
		t.Fatalf("unexpected root %+v", out)
	}
	a := out.Children[0]
	if a.Tag != "a" || len(a.Attrs) != 1 || a.Attrs[0].Value != "/x" || a.Children[0].Data != "go" {
		t.Errorf("unexpected element %+v", a)
	}
}

func TestFormatTreeZeroNode(t *testing.T) {
	if err := FormatTreePretty(&bytes.Buffer{}, dom.Node{}, nil, TreeOpts{}); err == nil {
		t.Errorf("expected error for zero node")
	}
}

func TestFormatTokens(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("t.html", []byte(`<img src="a.png"/>hi`)))
	lx := lexer.New(file, lexer.Options{})
	var toks []token.Token
	for {
		tok := lx.Next()
		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			break
		}
	}

	var buf bytes.Buffer
	if err := FormatTokensPretty(&buf, toks, fs); err != nil {
		t.Fatal(err)
	}
	want := "  1: StartTag  <img src=\"a.png\" /> at 1:1-1:19\n" +
		"  2: Text      \"hi\" at 1:19-1:21\n" +
		"  3: EOF       at 1:21-1:21\n"
	if buf.String() != want {
		t.Errorf("got:\n%s\nwant:\n%s", buf.String(), want)
	}

	buf.Reset()
	if err := FormatTokensJSON(&buf, toks); err != nil {
		t.Fatal(err)
	}
	var out []TokenOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatal(err)
	}
	if len(out) != 3 || !out[0].SelfClosing || out[0].Attrs[0].Value != "a.png" || out[1].Data != "hi" {
		t.Errorf("unexpected tokens %+v", out)
	}
}
