package driver

import (
	"fmt"

	"ewb/internal/config"
	"ewb/internal/diag"
	"ewb/internal/lexer"
	"ewb/internal/source"
	"ewb/internal/token"
)

type TokenizeResult struct {
	FileSet *source.FileSet
	File    *source.File
	Tokens  []token.Token // включая завершающий EOF
	Bag     *diag.Bag
}

// Tokenize loads path and returns its full token stream.
func Tokenize(path string, cfg config.ParseConfig) (*TokenizeResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return tokenizeFile(fs, fs.Get(fileID), cfg), nil
}

// TokenizeBytes tokenizes an in-memory document.
func TokenizeBytes(name string, content []byte, cfg config.ParseConfig) *TokenizeResult {
	fs := source.NewFileSet()
	fileID := fs.AddNormalized(name, content, source.FileVirtual)
	return tokenizeFile(fs, fs.Get(fileID), cfg)
}

func tokenizeFile(fs *source.FileSet, file *source.File, cfg config.ParseConfig) *TokenizeResult {
	bag := diag.NewBag(cfg.MaxDiagnostics)
	reporterAdapter := &lexer.ReporterAdapter{Bag: bag}
	rep := diag.NewDedupReporter(reporterAdapter.Reporter(), cfg.MaxPerCode)
	lx := lexer.New(file, lexer.Options{
		Reporter:       rep,
		MaxTokenLength: cfg.MaxTokenLength,
	})

	var tokens []token.Token
	for {
		tok := lx.Next()
		tokens = append(tokens, tok)
		if tok.Kind == token.EOF {
			break
		}
	}
	rep.Flush()
	return &TokenizeResult{FileSet: fs, File: file, Tokens: tokens, Bag: bag}
}
