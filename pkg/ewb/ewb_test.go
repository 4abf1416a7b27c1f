package ewb

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func texts(nodes []Node) []string {
	out := make([]string, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, n.Data())
	}
	return out
}

func TestLoadAndFindTextNodes(t *testing.T) {
	root, err := Load("<html><body><h1>Title</h1><p>One <i>two</i></p></body></html>")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := []string{"Title", "One ", "two"}
	if diff := cmp.Diff(want, texts(FindTextNodes(root))); diff != "" {
		t.Errorf("text nodes mismatch (-want +got):\n%s", diff)
	}
	if got := len(FindNodes(root, "P")); got != 1 {
		t.Errorf("FindNodes(P) = %d, want 1", got)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(""); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("empty input: got %v, want ErrInvalidInput", err)
	}
	deep := strings.Repeat("<div>", 20)
	if _, err := Load(deep, MaxDepth(5)); !errors.Is(err, ErrResourceExhausted) {
		t.Errorf("deep input: got %v, want ErrResourceExhausted", err)
	}
}

func TestOnWarning(t *testing.T) {
	var got []Warning
	_, err := Load("<div>\n</span>text</div>", OnWarning(func(w Warning) { got = append(got, w) }))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got) != 1 || got[0].Code != "TRE2001" {
		t.Fatalf("warnings = %+v", got)
	}
	if got[0].Line != 2 || got[0].Col != 1 {
		t.Errorf("position = %d:%d, want 2:1", got[0].Line, got[0].Col)
	}
}

func TestKeepComments(t *testing.T) {
	root, err := Load("<p><!-- c -->x</p>", KeepComments())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	p := root.Find("p")
	if p.ChildCount() != 2 {
		t.Errorf("expected comment and text under <p>, got %d children", p.ChildCount())
	}
}

func TestRequest(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("User-Agent") != "ewb-test" {
			http.Error(w, "bad agent", http.StatusForbidden)
			return
		}
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("<p>hi</p>"))
	}))
	defer srv.Close()

	body, err := Request(context.Background(), srv.URL, UserAgent("ewb-test"))
	if err != nil {
		t.Fatalf("Request: %v", err)
	}
	if body != "<p>hi</p>" {
		t.Errorf("body = %q", body)
	}

	_, err = Request(context.Background(), srv.URL)
	var fe *FetchError
	if !errors.As(err, &fe) || fe.Status != http.StatusForbidden {
		t.Fatalf("expected FetchError with 403, got %v", err)
	}
	if !IsFetchError(err) {
		t.Error("IsFetchError should match")
	}

	if _, err := Request(context.Background(), "ftp://example.com/"); !IsFetchError(err) {
		t.Errorf("unsupported scheme: got %v", err)
	}
}
