package treebuilder

import (
	"errors"
	"fmt"

	"ewb/internal/diag"
	"ewb/internal/dom"
	"ewb/internal/htmlerr"
	"ewb/internal/lexer"
	"ewb/internal/source"
	"ewb/internal/token"

	"golang.org/x/text/unicode/norm"
)

const op = "parse"

var errEmptyInput = errors.New("document is empty")

// Stats describes one build.
type Stats struct {
	Tokens   int
	Nodes    int // без корня
	MaxDepth int
}

type Result struct {
	Tree  *dom.Tree
	Stats Stats
}

// Builder — состояние построения дерева для одного документа
type Builder struct {
	lx    *lexer.Lexer
	tree  *dom.Tree
	opts  Options
	stack []dom.NodeID // открытые элементы; stack[0] — корень
	names []string     // имена тегов параллельно stack
	stats Stats

	// куски текста, ждущие записи в узел pendID одной копией
	pendID    dom.NodeID
	pendParts []string
	pendSpan  source.Span
}

// BuildFile lexes and builds one document.
// It fails only with htmlerr.InvalidInput for a nil or empty file and
// htmlerr.ResourceExhausted when a limit is hit.
func BuildFile(file *source.File, opts Options) (Result, error) {
	if file == nil || len(file.Content) == 0 {
		sp := source.Span{}
		if file != nil {
			sp.File = file.ID
		}
		report(opts.Reporter, diag.IOEmptyInput, diag.SevError, sp, "document is empty")
		return Result{}, htmlerr.Invalid(op, errEmptyInput)
	}
	if size := int64(len(file.Content)); size > opts.maxInputBytes() {
		report(opts.Reporter, diag.LimitInputTooLarge, diag.SevError, source.Span{File: file.ID},
			fmt.Sprintf("document is %d bytes, limit is %d", size, opts.maxInputBytes()))
		return Result{}, htmlerr.Exhausted(op, "max_input_bytes", opts.maxInputBytes())
	}
	lx := lexer.New(file, lexer.Options{Reporter: opts.Reporter, MaxTokenLength: opts.MaxTokenLength})
	return Build(lx, opts)
}

// Build pulls tokens from lx until EOF and returns the finished tree.
func Build(lx *lexer.Lexer, opts Options) (Result, error) {
	hint := uint(len(lx.File().Content) / 16)
	b := &Builder{
		lx:   lx,
		tree: dom.NewTree(lx.File().ID, dom.Hints{Nodes: min(hint, 1<<16)}),
		opts: opts,
	}
	b.stack = append(b.stack, b.tree.RootID())
	b.names = append(b.names, "")

	for tok := lx.Next(); tok.Kind != token.EOF; tok = lx.Next() {
		b.stats.Tokens++
		if err := b.step(tok); err != nil {
			return Result{}, err
		}
	}
	b.flushText()
	b.closeAll()
	b.stats.Nodes = int(b.tree.Len()) - 1
	return Result{Tree: b.tree, Stats: b.stats}, nil
}

func (b *Builder) step(tok token.Token) error {
	switch tok.Kind {
	case token.StartTag:
		return b.startTag(tok)
	case token.EndTag:
		b.endTag(tok)
	case token.Text:
		return b.text(tok)
	case token.Comment:
		if b.opts.KeepComments {
			return b.leaf(b.tree.NewComment(tok.Data, tok.Span), tok.Span)
		}
	case token.Doctype:
		if b.opts.KeepDoctype {
			return b.leaf(b.tree.NewDoctype(tok.Data, tok.Span), tok.Span)
		}
	}
	return nil
}

func (b *Builder) top() dom.NodeID { return b.stack[len(b.stack)-1] }

func (b *Builder) checkNodes(sp source.Span) error {
	if uint(b.tree.Len()-1) < b.opts.maxNodes() {
		return nil
	}
	b.report(diag.LimitNodesExceeded, diag.SevError, sp,
		fmt.Sprintf("document has more than %d nodes", b.opts.maxNodes()))
	return htmlerr.Exhausted(op, "max_nodes", int64(b.opts.maxNodes())) // #nosec G115 -- limit is small
}

func (b *Builder) startTag(tok token.Token) error {
	if err := b.checkNodes(tok.Span); err != nil {
		return err
	}
	name := token.CanonicalName(tok.Name)
	id := b.tree.NewElement(name, b.attributes(tok), tok.Span)
	b.tree.AppendChild(b.top(), id)

	void := token.IsVoid(name)
	if tok.SelfClosing && !void {
		b.report(diag.TreeSelfClosingNonVd, diag.SevInfo, tok.Span,
			fmt.Sprintf("<%s/> is not a void element, kept empty", name))
	}
	if tok.SelfClosing || void {
		return nil
	}

	depth := len(b.stack) // глубина нового элемента; корень на глубине 0
	if uint(depth) > b.opts.maxDepth() {
		b.report(diag.LimitDepthExceeded, diag.SevError, tok.Span,
			fmt.Sprintf("<%s> nests deeper than %d elements", name, b.opts.maxDepth()))
		return htmlerr.Exhausted(op, "max_depth", int64(b.opts.maxDepth())) // #nosec G115 -- limit is small
	}
	b.stack = append(b.stack, id)
	b.names = append(b.names, name)
	b.stats.MaxDepth = max(b.stats.MaxDepth, depth)
	return nil
}

// attributes: первый атрибут с ключом побеждает.
func (b *Builder) attributes(tok token.Token) []dom.Attribute {
	if len(tok.Attrs) == 0 {
		return nil
	}
	out := make([]dom.Attribute, 0, len(tok.Attrs))
	for _, a := range tok.Attrs {
		if dup := indexAttr(out, a.Key); dup >= 0 {
			b.report(diag.TreeDuplicateAttr, diag.SevWarning, a.Span,
				fmt.Sprintf("duplicate attribute %q on <%s> ignored", a.Key, tok.Name))
			continue
		}
		out = append(out, dom.Attribute{Key: a.Key, Value: b.normalize(a.Val)})
	}
	return out
}

func indexAttr(attrs []dom.Attribute, key string) int {
	for i, a := range attrs {
		if a.Key == key {
			return i
		}
	}
	return -1
}

func (b *Builder) endTag(tok token.Token) {
	name := token.CanonicalName(tok.Name)
	if token.IsVoid(name) {
		b.report(diag.TreeVoidEndTag, diag.SevWarning, tok.Span,
			fmt.Sprintf("end tag for void element <%s> ignored", name))
		return
	}
	// ищем сверху вниз; корень (индекс 0) не участвует
	for i := len(b.stack) - 1; i >= 1; i-- {
		if b.names[i] != name {
			continue
		}
		for j := len(b.stack) - 1; j > i; j-- {
			b.report(diag.TreeImplicitClose, diag.SevWarning, b.tree.Get(b.stack[j]).Span,
				fmt.Sprintf("<%s> implicitly closed by </%s>", b.names[j], name))
		}
		b.stack = b.stack[:i]
		b.names = b.names[:i]
		return
	}
	b.report(diag.TreeStrayEndTag, diag.SevWarning, tok.Span,
		fmt.Sprintf("end tag </%s> has no open element, ignored", name))
}

func (b *Builder) text(tok token.Token) error {
	data := b.normalize(tok.Data)
	if last := b.tree.LastChild(b.top()); last.IsValid() && b.tree.Get(last).Kind == dom.KindText {
		// текст, разделённый отброшенным комментарием, склеивается
		if last != b.pendID {
			b.flushText()
			b.pendID = last
			b.pendSpan = tok.Span
		}
		b.pendParts = append(b.pendParts, data)
		b.pendSpan = b.pendSpan.Cover(tok.Span)
		return nil
	}
	if err := b.checkNodes(tok.Span); err != nil {
		return err
	}
	b.tree.AppendChild(b.top(), b.tree.NewText(data, tok.Span))
	return nil
}

func (b *Builder) flushText() {
	if !b.pendID.IsValid() {
		return
	}
	b.tree.ExtendText(b.pendID, b.pendSpan, b.pendParts...)
	b.pendID = dom.NoNodeID
	clear(b.pendParts)
	b.pendParts = b.pendParts[:0]
}

func (b *Builder) leaf(id dom.NodeID, sp source.Span) error {
	if err := b.checkNodes(sp); err != nil {
		return err
	}
	b.tree.AppendChild(b.top(), id)
	return nil
}

func (b *Builder) closeAll() {
	for i := len(b.stack) - 1; i >= 1; i-- {
		b.report(diag.TreeUnclosedAtEOF, diag.SevInfo, b.tree.Get(b.stack[i]).Span,
			fmt.Sprintf("<%s> closed at end of document", b.names[i]))
	}
	b.stack = b.stack[:1]
	b.names = b.names[:1]
}

func (b *Builder) normalize(s string) string {
	if !b.opts.NormalizeNFC || norm.NFC.IsNormalString(s) {
		return s
	}
	return norm.NFC.String(s)
}

func (b *Builder) report(code diag.Code, sev diag.Severity, sp source.Span, msg string) {
	report(b.opts.Reporter, code, sev, sp, msg)
}

func report(r diag.Reporter, code diag.Code, sev diag.Severity, sp source.Span, msg string) {
	if r != nil {
		diag.NewReportBuilder(r, sev, code, sp, msg).Emit()
	}
}
