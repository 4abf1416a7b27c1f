package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"ewb/internal/source"
	"ewb/internal/token"
)

type AttrOutput struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

type TokenOutput struct {
	Kind        string       `json:"kind"`
	Name        string       `json:"name,omitempty"`
	Attrs       []AttrOutput `json:"attrs,omitempty"`
	SelfClosing bool         `json:"self_closing,omitempty"`
	Data        string       `json:"data,omitempty"`
	Span        source.Span  `json:"span"`
}

// FormatTokensPretty выводит токены в человекочитаемом формате
func FormatTokensPretty(w io.Writer, tokens []token.Token, fs *source.FileSet) error {
	var sb strings.Builder
	for i, tok := range tokens {
		fmt.Fprintf(&sb, "%3d: %-9s", i+1, tok.Kind.String())
		switch tok.Kind {
		case token.StartTag:
			sb.WriteString(" <" + tok.Name)
			for _, a := range tok.Attrs {
				fmt.Fprintf(&sb, " %s=%q", a.Key, a.Val)
			}
			if tok.SelfClosing {
				sb.WriteString(" /")
			}
			sb.WriteString(">")
		case token.EndTag:
			sb.WriteString(" </" + tok.Name + ">")
		case token.Text, token.Comment, token.Doctype:
			fmt.Fprintf(&sb, " %q", tok.Data)
		}
		fmt.Fprintf(&sb, " at %s\n", formatSpan(tok.Span, fs))
		if tok.Kind == token.EOF {
			break
		}
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

// FormatTokensJSON выводит токены в JSON формате
func FormatTokensJSON(w io.Writer, tokens []token.Token) error {
	output := make([]TokenOutput, 0, len(tokens))
	for _, tok := range tokens {
		out := TokenOutput{
			Kind:        tok.Kind.String(),
			Name:        tok.Name,
			SelfClosing: tok.SelfClosing,
			Data:        tok.Data,
			Span:        tok.Span,
		}
		for _, a := range tok.Attrs {
			out.Attrs = append(out.Attrs, AttrOutput{Key: a.Key, Value: a.Val})
		}
		output = append(output, out)
		if tok.Kind == token.EOF {
			break
		}
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}
