package dom

// Kind classifies a node.
type Kind uint8

const (
	KindInvalid Kind = iota
	// KindDocument is the synthetic root; there is exactly one per tree.
	KindDocument
	KindElement
	KindText
	// KindComment exists only when the builder keeps comments.
	KindComment
	// KindDoctype exists only when the builder keeps the doctype.
	KindDoctype
)

func (k Kind) String() string {
	switch k {
	case KindDocument:
		return "document"
	case KindElement:
		return "element"
	case KindText:
		return "text"
	case KindComment:
		return "comment"
	case KindDoctype:
		return "doctype"
	default:
		return "invalid"
	}
}

// Имена не-элементов. У текстовых узлов имени нет.
const (
	DocumentName = "#document"
	CommentName  = "#comment"
	DoctypeName  = "#doctype"
)
