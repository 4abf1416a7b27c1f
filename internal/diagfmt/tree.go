package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"ewb/internal/dom"
	"ewb/internal/source"
)

// NodeOutput is the JSON form of a tree node.
type NodeOutput struct {
	Kind     string       `json:"kind"`
	Tag      string       `json:"tag,omitempty"`
	Attrs    []AttrOutput `json:"attrs,omitempty"`
	Data     string       `json:"data,omitempty"`
	Span     source.Span  `json:"span"`
	Children []NodeOutput `json:"children,omitempty"`
}

type treePalette struct {
	tag, attr, text, meta *color.Color
}

func newTreePalette(enabled bool) treePalette {
	mk := func(attrs ...color.Attribute) *color.Color {
		c := color.New(attrs...)
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
		return c
	}
	return treePalette{
		tag:  mk(color.FgCyan, color.Bold),
		attr: mk(color.FgYellow),
		text: mk(color.FgGreen),
		meta: mk(color.Faint),
	}
}

// FormatTreePretty печатает дерево с ветками ├─ / └─, начиная с root.
func FormatTreePretty(w io.Writer, root dom.Node, fs *source.FileSet, opts TreeOpts) error {
	if root.IsZero() {
		return fmt.Errorf("empty tree")
	}
	if opts.TextWidth <= 0 {
		opts.TextWidth = DefaultTextWidth
	}
	pal := newTreePalette(opts.Color)

	var sb strings.Builder
	sb.WriteString(nodeLabel(root, fs, opts, pal))
	sb.WriteString("\n")

	// явный стек вместо рекурсии: глубина дерева ограничена только max_depth
	type frame struct {
		node   dom.Node
		prefix string
		last   bool
	}
	children := root.Children()
	stack := make([]frame, 0, len(children))
	for i := len(children) - 1; i >= 0; i-- {
		stack = append(stack, frame{node: children[i], last: i == len(children)-1})
	}
	for len(stack) > 0 {
		fr := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		branch, next := "├─ ", "│  "
		if fr.last {
			branch, next = "└─ ", "   "
		}
		sb.WriteString(fr.prefix)
		sb.WriteString(branch)
		sb.WriteString(nodeLabel(fr.node, fs, opts, pal))
		sb.WriteString("\n")

		kids := fr.node.Children()
		for i := len(kids) - 1; i >= 0; i-- {
			stack = append(stack, frame{node: kids[i], prefix: fr.prefix + next, last: i == len(kids)-1})
		}
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

func nodeLabel(n dom.Node, fs *source.FileSet, opts TreeOpts, pal treePalette) string {
	var label string
	switch n.Kind() {
	case dom.KindDocument:
		label = pal.meta.Sprint(dom.DocumentName)
	case dom.KindElement:
		var sb strings.Builder
		sb.WriteString(pal.tag.Sprint("<" + n.TagName()))
		for _, a := range n.AttrList() {
			sb.WriteString(" ")
			sb.WriteString(pal.attr.Sprint(a.Key))
			sb.WriteString("=")
			sb.WriteString(strconv.Quote(truncate(a.Value, opts.TextWidth)))
		}
		sb.WriteString(pal.tag.Sprint(">"))
		label = sb.String()
	case dom.KindText:
		label = pal.meta.Sprint("#text ") + pal.text.Sprint(strconv.Quote(truncate(n.Data(), opts.TextWidth)))
	case dom.KindComment:
		label = pal.meta.Sprint(dom.CommentName+" ") + strconv.Quote(truncate(n.Data(), opts.TextWidth))
	case dom.KindDoctype:
		label = pal.meta.Sprint(dom.DoctypeName+" ") + n.Data()
	default:
		label = n.String()
	}
	if opts.ShowSpans {
		label += pal.meta.Sprintf(" (span: %s)", formatSpan(n.Span(), fs))
	}
	return label
}

// truncate обрезает по ширине в колонках терминала, а не по байтам.
func truncate(s string, width int) string {
	if runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, "…")
}

// FormatTreeJSON выводит дерево в JSON.
func FormatTreeJSON(w io.Writer, root dom.Node) error {
	if root.IsZero() {
		return fmt.Errorf("empty tree")
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(BuildNodeOutput(root))
}

// BuildNodeOutput converts the subtree under n into its JSON form.
func BuildNodeOutput(n dom.Node) NodeOutput {
	out := NodeOutput{
		Kind: n.Kind().String(),
		Data: n.Data(),
		Span: n.Span(),
	}
	if n.Kind() == dom.KindElement {
		out.Tag = n.TagName()
		for _, a := range n.AttrList() {
			out.Attrs = append(out.Attrs, AttrOutput{Key: a.Key, Value: a.Value})
		}
	}
	for _, c := range n.Children() {
		out.Children = append(out.Children, BuildNodeOutput(c))
	}
	return out
}
