// Package pipeline describes per-file progress of a batch run.
package pipeline

import "time"

// Stage describes a high-level pipeline phase.
type Stage string

const (
	// StageRead loads and decodes the file.
	StageRead Stage = "read"
	// StageParse runs the hybrid assembler.
	StageParse Stage = "parse"
	// StageTranspile runs the manual transpiler.
	StageTranspile Stage = "transpile"
	// StageWrite writes output files.
	StageWrite Stage = "write"
)

// Status captures progress state within a stage.
type Status string

const (
	StatusQueued  Status = "queued"
	StatusWorking Status = "working"
	StatusCached  Status = "cached"
	StatusDone    Status = "done"
	StatusError   Status = "error"
)

// Event reports progress for a file (or for the overall run when File is empty).
type Event struct {
	File     string
	Stage    Stage
	Status   Status
	Err      error
	Elapsed  time.Duration
	Coverage float64
}

// Sink consumes progress events.
type Sink interface {
	OnEvent(Event)
}

// Progress returns the share of work a stage represents, in [0,1].
func (s Stage) Progress() float64 {
	switch s {
	case StageRead:
		return 0.1
	case StageParse:
		return 0.4
	case StageTranspile:
		return 0.7
	case StageWrite:
		return 0.9
	default:
		return 0
	}
}

// Label is the word shown for a file that is busy in stage s.
func (s Stage) Label() string {
	switch s {
	case StageRead:
		return "reading"
	case StageParse:
		return "parsing"
	case StageTranspile:
		return "transpiling"
	case StageWrite:
		return "writing"
	default:
		return ""
	}
}
