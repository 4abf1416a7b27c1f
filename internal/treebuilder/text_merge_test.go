package treebuilder

import (
	"runtime"
	"strings"
	"testing"

	"ewb/internal/source"
)

func TestSplitTextMergesAcrossNodes(t *testing.T) {
	p := mustParse(t, "a<!--1-->b</q>c<p>d<!---->e</i>f</p>g", Options{})
	if got, want := shape(p.res.Tree.Root()), `"abc",p("def"),"g"`; got != want {
		t.Fatalf("shape = %s, want %s", got, want)
	}
	first := p.res.Tree.Root().Children()[0]
	if sp := first.Span(); sp.Start != 0 || sp.End != 15 {
		t.Errorf("merged span = %s, want 0..15", sp)
	}
}

// allocBuild возвращает число байт, выделенных одной сборкой дерева
func allocBuild(t *testing.T, input string) uint64 {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("merge.html", []byte(input)))
	var before, after runtime.MemStats
	runtime.GC()
	runtime.ReadMemStats(&before)
	res, err := BuildFile(file, Options{})
	runtime.ReadMemStats(&after)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if n := res.Tree.Root().ChildCount(); n != 1 {
		t.Fatalf("expected one merged text node, got %d children", n)
	}
	return after.TotalAlloc - before.TotalAlloc
}

func TestSplitTextMergeIsLinear(t *testing.T) {
	if testing.Short() {
		t.Skip("allocation measurement")
	}
	for _, piece := range []string{"x</q>", "x<!---->"} {
		const n = 20000
		small := allocBuild(t, strings.Repeat(piece, n))
		large := allocBuild(t, strings.Repeat(piece, 2*n))
		// линейный рост даёт ~2x, квадратичный ~4x
		if large > 3*small {
			t.Errorf("%q: doubling input grew allocations from %d to %d bytes", piece, small, large)
		}
	}
}
