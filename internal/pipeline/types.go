package pipeline

import "time"

// Phase names a pipeline step.
type Phase string

const (
	// PhaseParse turns source text into a syntax tree.
	PhaseParse Phase = "parse"
	// PhaseAnalyze resolves names and checks types.
	PhaseAnalyze Phase = "analyze"
	// PhaseOptimize runs optimization passes; skipped unless the bundle asks for it.
	PhaseOptimize Phase = "optimize"
	// PhaseEmit produces the target artifact.
	PhaseEmit Phase = "emit"
)

// Phases returns the pipeline steps in execution order.
func Phases() []Phase {
	return []Phase{PhaseParse, PhaseAnalyze, PhaseOptimize, PhaseEmit}
}

// Status captures progress state within a phase.
type Status string

const (
	// StatusWorking indicates the phase is running.
	StatusWorking Status = "working"
	// StatusDone indicates the phase finished.
	StatusDone Status = "done"
	// StatusSkipped indicates the phase was not run.
	StatusSkipped Status = "skipped"
	// StatusError indicates the phase failed.
	StatusError Status = "error"
)

// Event reports progress of one unit.
type Event struct {
	Unit    string
	Phase   Phase
	Status  Status
	Err     error
	Elapsed time.Duration
}

// ProgressSink consumes progress events.
type ProgressSink interface {
	OnEvent(Event)
}

// ChannelSink forwards events into a channel.
type ChannelSink struct {
	Ch chan<- Event
}

func (s ChannelSink) OnEvent(evt Event) {
	if s.Ch == nil {
		return
	}
	s.Ch <- evt
}
