package token

// Kind represents the category of a markup token.
type Kind uint8

const (
	// Invalid indicates an erroneous token. The lexer never hands it out;
	// malformed markup degrades to Text instead.
	Invalid Kind = iota
	// EOF marks the end of the document.
	EOF
	// StartTag is <name attr=value ...> or <name ... />.
	StartTag
	// EndTag is </name>.
	EndTag
	// Text is a merged run of character data.
	Text
	// Comment is <!-- ... -->.
	Comment
	// Doctype is <!DOCTYPE ...>.
	Doctype
)

func (k Kind) String() string {
	switch k {
	case EOF:
		return "EOF"
	case StartTag:
		return "StartTag"
	case EndTag:
		return "EndTag"
	case Text:
		return "Text"
	case Comment:
		return "Comment"
	case Doctype:
		return "Doctype"
	default:
		return "Invalid"
	}
}

// IsEOF reports whether k terminates the stream.
func (k Kind) IsEOF() bool { return k == EOF }

// IsTag reports whether k is a start or end tag.
func (k Kind) IsTag() bool { return k == StartTag || k == EndTag }
