package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Лексические (восстановимые)
	LexInfo                 Code = 1000
	LexStrayLessThan        Code = 1001
	LexUnterminatedQuote    Code = 1002
	LexUnterminatedComment  Code = 1003
	LexUnterminatedTag      Code = 1004
	LexBadEntity            Code = 1005
	LexTokenTooLong         Code = 1006
	LexBogusDeclaration     Code = 1007
	LexUnterminatedRawText  Code = 1008
	LexMissingAttributeName Code = 1009

	// Построение дерева
	TreeInfo             Code = 2000
	TreeStrayEndTag      Code = 2001
	TreeImplicitClose    Code = 2002
	TreeUnclosedAtEOF    Code = 2003
	TreeVoidEndTag       Code = 2004
	TreeDuplicateAttr    Code = 2005
	TreeSelfClosingNonVd Code = 2006

	// Лимиты
	LimitInputTooLarge Code = 3001
	LimitDepthExceeded Code = 3002
	LimitNodesExceeded Code = 3003

	// Ошибки I/O
	IOLoadFileError Code = 4001
	IOEmptyInput    Code = 4002

	// Fetch
	FetchFailed         Code = 5001
	FetchBadStatus      Code = 5002
	FetchUnsupported    Code = 5003
	FetchBodyTruncated  Code = 5004
	FetchCharsetUnknown Code = 5005

	// Наблюдаемость
	ObsTimings Code = 6001
)

var codeDescription = map[Code]string{
	UnknownCode:             "Unknown error",
	LexInfo:                 "Lexical information",
	LexStrayLessThan:        "Stray '<' treated as text",
	LexUnterminatedQuote:    "Unterminated attribute quote",
	LexUnterminatedComment:  "Unterminated comment",
	LexUnterminatedTag:      "Unterminated tag treated as text",
	LexBadEntity:            "Unrecognized character reference",
	LexTokenTooLong:         "Token too long",
	LexBogusDeclaration:     "Unrecognized markup declaration",
	LexUnterminatedRawText:  "Raw text element not closed",
	LexMissingAttributeName: "Attribute value without a name",

	TreeInfo:             "Tree construction information",
	TreeStrayEndTag:      "End tag without matching open element",
	TreeImplicitClose:    "Element closed implicitly",
	TreeUnclosedAtEOF:    "Element not closed before end of input",
	TreeVoidEndTag:       "End tag for void element",
	TreeDuplicateAttr:    "Duplicate attribute",
	TreeSelfClosingNonVd: "Self-closing syntax on non-void element",

	LimitInputTooLarge: "Input exceeds size limit",
	LimitDepthExceeded: "Nesting depth limit exceeded",
	LimitNodesExceeded: "Node count limit exceeded",

	IOLoadFileError: "I/O error",
	IOEmptyInput:    "Empty input",

	FetchFailed:         "Fetch failed",
	FetchBadStatus:      "Non-success HTTP status",
	FetchUnsupported:    "Unsupported response",
	FetchBodyTruncated:  "Response body truncated",
	FetchCharsetUnknown: "Unknown response charset",

	ObsTimings: "Pipeline timings",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("TRE%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("LIM%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("NET%04d", ic)
	case ic >= 6000 && ic < 7000:
		return fmt.Sprintf("OBS%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
