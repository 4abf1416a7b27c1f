package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const maxSeedBytes = 64 << 10 // 64 KiB — ограничение для тестового корпуса

// malformedSeeds покрывают пути восстановления лексера и построителя
var malformedSeeds = []string{
	"",
	"plain text",
	"<div><p>text</div>",
	"<div></span>text</div>",
	`<a href="x>text</a>`,
	"a < b <3 c",
	"<!-- open",
	"<!doctype html><html><body>",
	"<script>if (a < b) { x = '</div>'; }</script>",
	"<style>p{}</STYLE>",
	"<textarea><b>bold?</b>",
	"<br/><img src=x><input disabled>",
	"<p a=1 a=2 A=3>",
	"&amp;&bogus;&#x41;&#9999999;",
	"<?xml version='1.0'?><r/>",
	"</ >< /><<<>>>",
	strings.Repeat("<div>", 64),
}

func addCorpusSeeds(f *testing.F) {
	for _, s := range malformedSeeds {
		f.Add([]byte(s))
	}
	addTestdataSeeds(f)
}

func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..", "..", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	// проходим по testdata, добавляем все *.html файлы
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() || filepath.Ext(path) != ".html" {
			return nil
		}
		// #nosec G304 -- path comes from repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clampSeed(src))
		return nil
	})
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}
