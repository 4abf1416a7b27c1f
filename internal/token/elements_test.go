package token

import "testing"

func TestLookupElement(t *testing.T) {
	cases := map[string]ElementClass{
		"br":       ClassVoid,
		"img":      ClassVoid,
		"input":    ClassVoid,
		"meta":     ClassVoid,
		"script":   ClassRawText,
		"style":    ClassRawText,
		"textarea": ClassEscapableRawText,
		"title":    ClassEscapableRawText,
		"div":      ClassNormal,
		"p":        ClassNormal,
		"x-custom": ClassNormal,
	}
	for name, want := range cases {
		if got := LookupElement(name); got != want {
			t.Errorf("LookupElement(%q) = %v, want %v", name, got, want)
		}
	}
	if !IsVoid("hr") || IsVoid("span") {
		t.Error("IsVoid misclassifies")
	}
	if !IsRawText("script") || IsRawText("div") {
		t.Error("IsRawText misclassifies")
	}
}

func TestCanonicalName(t *testing.T) {
	if got := CanonicalName("div"); got != "div" {
		t.Errorf("CanonicalName(div) = %q", got)
	}
	if got := CanonicalName("my-widget"); got != "my-widget" {
		t.Errorf("CanonicalName(my-widget) = %q", got)
	}
}
