package driver

import "time"

// DocStatus reports where a document of a ParseDir batch is.
type DocStatus int

const (
	// DocStarted is sent when a worker picks the document up.
	DocStarted DocStatus = iota
	DocDone
	DocFailed
)

// DocEvent describes one document's progress in ParseDir.
type DocEvent struct {
	Index   int
	Total   int
	Path    string
	Status  DocStatus
	Nodes   int
	Elapsed time.Duration
	Err     error
}

// DocObserver receives DocEvents. It is called from worker goroutines
// and must be safe for concurrent use.
type DocObserver func(DocEvent)
