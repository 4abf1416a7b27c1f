package fuzztests

import (
	"errors"
	"testing"

	"ewb/internal/diag"
	"ewb/internal/htmlerr"
	"ewb/internal/source"
	"ewb/internal/testkit"
	"ewb/internal/treebuilder"
)

// FuzzTreeBuilder: построитель не падает, ошибки только типизированные,
// инварианты дерева выполняются, запросы идемпотентны.
func FuzzTreeBuilder(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, data []byte) {
		if len(data) > maxFuzzInput {
			t.Skip()
		}
		fs := source.NewFileSet()
		file := fs.Get(fs.AddVirtual("fuzz.html", data))
		res, err := treebuilder.BuildFile(file, treebuilder.Options{
			Reporter:     diag.BagReporter{Bag: diag.NewBag(64)},
			MaxDepth:     32,
			MaxNodes:     4096,
			KeepComments: true,
			KeepDoctype:  true,
		})
		if err != nil {
			if !errors.Is(err, htmlerr.ErrInvalidInput) && !errors.Is(err, htmlerr.ErrResourceExhausted) {
				t.Fatalf("untyped error: %v", err)
			}
			if len(data) > 0 && errors.Is(err, htmlerr.ErrInvalidInput) {
				t.Fatalf("non-empty input rejected as invalid: %v", err)
			}
			return
		}
		if err := testkit.CheckTreeInvariants(res.Tree, file); err != nil {
			t.Fatal(err)
		}
		root := res.Tree.Root()
		texts := root.GetTextNodes()
		for _, n := range texts {
			if n.ChildCount() != 0 {
				t.Fatalf("text node with children")
			}
		}
		if again := root.GetTextNodes(); len(again) != len(texts) {
			t.Fatalf("GetTextNodes not idempotent: %d vs %d", len(texts), len(again))
		}
		for _, n := range root.GetNodes("DIV") {
			if n.TagName() != "div" {
				t.Fatalf("GetNodes(DIV) returned %q", n.TagName())
			}
		}
	})
}
