package driver

import (
	"lime/internal/observ"
	"lime/internal/trace"
)

// Options configures a Driver.
type Options struct {
	Charset        string
	Debug          bool
	MaxErrors      uint
	MaxDiagnostics int
	// Jobs bounds parallel file analysis; 0 means GOMAXPROCS.
	Jobs int

	// Cache, when set, short-circuits analysis of unchanged content.
	Cache  *DiskCache
	Timer  *observ.Timer
	Tracer trace.Tracer
	// Events receives per-file progress; the driver never closes it.
	Events chan<- Event
}

// Status is the progress state of one file.
type Status uint8

const (
	StatusQueued Status = iota
	StatusWorking
	StatusDone
	StatusCached
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusQueued:
		return "queued"
	case StatusWorking:
		return "working"
	case StatusDone:
		return "done"
	case StatusCached:
		return "cached"
	case StatusFailed:
		return "failed"
	}
	return "unknown"
}

// Event reports a status change of one file.
type Event struct {
	Path   string
	Status Status
	// Errors is the number of error diagnostics once the file is finished.
	Errors int
}
