package diagfmt

// PathMode specifies how file paths are displayed.
type PathMode uint8

const (
	// PathModeAuto keeps the path as loaded.
	PathModeAuto PathMode = iota
	PathModeAbsolute
	PathModeRelative // relative to BaseDir
	PathModeBasename
)

// PrettyOpts configures pretty-printing of diagnostics.
type PrettyOpts struct {
	Color     bool
	PathMode  PathMode
	BaseDir   string
	ShowNotes bool
}

// JSONOpts configures JSON output of diagnostics.
type JSONOpts struct {
	IncludePositions bool // добавить line/col
	PathMode         PathMode
	BaseDir          string
	Max              int // обрезка вывода, не Bag
	IncludeNotes     bool
}

// TreeOpts configures the document tree dump.
type TreeOpts struct {
	Color     bool
	ShowSpans bool
	TextWidth int // ширина обрезки текста в колонках, 0 - DefaultTextWidth
}

// DefaultTextWidth limits text and comment previews in the tree dump.
const DefaultTextWidth = 60
