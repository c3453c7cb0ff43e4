// Package report builds the logger compiler stages write status and errors to.
//
// The logger is derived from the option bundle: silent keeps only error
// entries, and logError decides whether those entries carry the underlying
// error and a stack trace or just the message.
package report

import (
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"turbo/internal/options"
)

// Sink wraps w for use by several loggers at once. Loggers built by New over
// the same Sink serialize their writes.
func Sink(w io.Writer) zapcore.WriteSyncer {
	return zapcore.Lock(zapcore.AddSync(w))
}

// New returns a console logger writing to w, configured from opts.
// A w that is already a zapcore.WriteSyncer (for example a Sink) is used as
// is; any other writer is locked for this logger only.
func New(opts options.Options, w io.Writer) *zap.Logger {
	level := zapcore.InfoLevel
	if opts.Silent() {
		level = zapcore.ErrorLevel
	}

	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.TimeKey = ""
	encCfg.CallerKey = ""
	if !opts.LogError() {
		encCfg.StacktraceKey = ""
	}

	var core zapcore.Core = zapcore.NewCore(
		zapcore.NewConsoleEncoder(encCfg),
		writeSyncer(w),
		level,
	)
	if !opts.LogError() {
		core = &terseCore{Core: core}
	}

	if opts.LogError() {
		return zap.New(core, zap.AddStacktrace(zapcore.ErrorLevel))
	}
	return zap.New(core)
}

func writeSyncer(w io.Writer) zapcore.WriteSyncer {
	if ws, ok := w.(zapcore.WriteSyncer); ok {
		return ws
	}
	return Sink(w)
}

// Nop returns a logger that discards everything.
func Nop() *zap.Logger { return zap.NewNop() }

// terseCore drops error-valued fields so failures are reported by message only.
type terseCore struct {
	zapcore.Core
}

func (c *terseCore) With(fields []zapcore.Field) zapcore.Core {
	return &terseCore{Core: c.Core.With(stripErrors(fields))}
}

func (c *terseCore) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(ent.Level) {
		return ce.AddCore(ent, c)
	}
	return ce
}

func (c *terseCore) Write(ent zapcore.Entry, fields []zapcore.Field) error {
	return c.Core.Write(ent, stripErrors(fields))
}

func stripErrors(fields []zapcore.Field) []zapcore.Field {
	out := fields[:0:0]
	for _, f := range fields {
		if f.Type == zapcore.ErrorType {
			continue
		}
		out = append(out, f)
	}
	return out
}
