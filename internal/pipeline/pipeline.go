// Package pipeline drives compilation units through the parse, analyze,
// optimize and emit phases.
//
// The phases themselves are supplied by the caller as Stage values. The
// pipeline owns the contract between them: every stage of a run sees the
// same option bundle, the optimize phase only runs when the bundle asks for
// it, and the emit phase learns its backend from the bundle's target.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"turbo/internal/observ"
	"turbo/internal/options"
	"turbo/internal/report"
)

// Unit is one compilation unit moving through the pipeline.
type Unit struct {
	Path   string
	Source []byte
	// State is owned by the stages; the pipeline never looks at it.
	State any
	// Output is the emitted artifact.
	Output []byte
}

// Env is what a stage receives besides the unit.
type Env struct {
	Options options.Options
	Log     *zap.Logger
	Backend Backend
}

// Stage implements one phase. Stages used with RunAll must be safe for
// concurrent use.
type Stage interface {
	Run(ctx context.Context, unit *Unit, env Env) error
}

// StageFunc adapts a function to Stage.
type StageFunc func(ctx context.Context, unit *Unit, env Env) error

func (f StageFunc) Run(ctx context.Context, unit *Unit, env Env) error {
	return f(ctx, unit, env)
}

// ErrMissingStage indicates a required phase has no stage.
var ErrMissingStage = errors.New("missing stage")

// StageError wraps a failure of one phase.
type StageError struct {
	Unit  string
	Phase Phase
	Err   error
}

func (e *StageError) Error() string {
	if e.Unit == "" {
		return fmt.Sprintf("%s: %v", e.Phase, e.Err)
	}
	return fmt.Sprintf("%s: %s: %v", e.Unit, e.Phase, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }

// Pipeline holds the stages of a compiler. Optimize may be nil.
type Pipeline struct {
	Parse    Stage
	Analyze  Stage
	Optimize Stage
	Emit     Stage

	// Progress receives per-phase events when set. Under RunAll it is called
	// from several goroutines and must be safe for concurrent use.
	Progress ProgressSink
	// Output receives log entries; defaults to stderr. Runs share one locked
	// sink over it, so Output itself need not be safe for concurrent use.
	Output io.Writer

	sinkOnce sync.Once
	sink     zapcore.WriteSyncer
}

// Result describes one finished run.
type Result struct {
	Unit        *Unit
	Options     options.Options
	Backend     Backend
	Fingerprint string
	Timings     observ.Report
}

func (p *Pipeline) stage(ph Phase) Stage {
	switch ph {
	case PhaseParse:
		return p.Parse
	case PhaseAnalyze:
		return p.Analyze
	case PhaseOptimize:
		return p.Optimize
	case PhaseEmit:
		return p.Emit
	}
	return nil
}

func (p *Pipeline) logSink() zapcore.WriteSyncer {
	p.sinkOnce.Do(func() {
		out := p.Output
		if out == nil {
			out = os.Stderr
		}
		p.sink = report.Sink(out)
	})
	return p.sink
}

func (p *Pipeline) emit(ev Event) {
	if p.Progress != nil {
		p.Progress.OnEvent(ev)
	}
}

// Run compiles one unit with opts.
func (p *Pipeline) Run(ctx context.Context, unit *Unit, opts options.Options) (Result, error) {
	if unit == nil {
		return Result{}, fmt.Errorf("missing compilation unit")
	}
	if !opts.Valid() {
		return Result{}, fmt.Errorf("%s: options were not constructed", unit.Path)
	}
	for _, ph := range []Phase{PhaseParse, PhaseAnalyze, PhaseEmit} {
		if p.stage(ph) == nil {
			return Result{}, &StageError{Unit: unit.Path, Phase: ph, Err: ErrMissingStage}
		}
	}

	log := report.New(opts, p.logSink()).With(zap.String("unit", unit.Path))
	defer func() { _ = log.Sync() }()

	fingerprint, err := opts.Fingerprint()
	if err != nil {
		return Result{}, err
	}
	env := Env{Options: opts, Log: log, Backend: BackendFor(opts)}
	res := Result{Unit: unit, Options: opts, Backend: env.Backend, Fingerprint: fingerprint}
	timer := observ.NewTimer()
	started := time.Now()

	for _, ph := range Phases() {
		if err := ctx.Err(); err != nil {
			res.Timings = timer.Report()
			return res, err
		}
		st := p.stage(ph)
		if ph == PhaseOptimize && (!opts.Optimize() || st == nil) {
			note := "disabled"
			if st == nil {
				note = "no optimizer"
			}
			timer.Skip(string(ph), note)
			p.emit(Event{Unit: unit.Path, Phase: ph, Status: StatusSkipped})
			continue
		}

		p.emit(Event{Unit: unit.Path, Phase: ph, Status: StatusWorking})
		log.Debug("phase started", zap.String("phase", string(ph)))
		idx := timer.Begin(string(ph))
		phaseStart := time.Now()
		err := st.Run(ctx, unit, env)
		timer.End(idx, "")
		elapsed := time.Since(phaseStart)
		if err != nil {
			p.emit(Event{Unit: unit.Path, Phase: ph, Status: StatusError, Err: err, Elapsed: elapsed})
			log.Error("phase failed", zap.String("phase", string(ph)), zap.Error(err))
			res.Timings = timer.Report()
			return res, &StageError{Unit: unit.Path, Phase: ph, Err: err}
		}
		p.emit(Event{Unit: unit.Path, Phase: ph, Status: StatusDone, Elapsed: elapsed})
	}

	res.Timings = timer.Report()
	log.Info("compiled",
		zap.Stringer("target", opts.Target()),
		zap.String("output", env.Backend.OutputName(unit.Path)),
		zap.Duration("elapsed", time.Since(started)),
	)
	return res, nil
}
