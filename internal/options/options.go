// Package options defines the option bundle every compiler stage reads.
//
// A bundle is a plain value with unexported fields. Stages receive a copy and
// can only read it through accessors, so one bundle may be shared by any
// number of goroutines without locking. New bundles are derived from a base,
// normally Default, by applying overrides; construction either yields a fully
// populated bundle or an error, never something in between.
package options

import (
	"fmt"
	"strings"
	"sync"

	"turbo/internal/target"
)

// Options is the option bundle of one compilation run.
type Options struct {
	target   target.Target
	silent   bool
	logError bool
	optimize bool
	longPtr  bool
}

var defaults = sync.OnceValue(func() Options {
	return Options{
		target:   target.WebAssembly,
		silent:   true,
		logError: true,
		optimize: true,
		longPtr:  false,
	}
})

// Default returns the canonical bundle.
func Default() Options { return defaults() }

// Override changes one field of a bundle under construction.
type Override func(*Options) error

// WithTarget selects the backend.
func WithTarget(t target.Target) Override {
	return func(o *Options) error {
		if !t.Valid() {
			return invalid(FieldTarget.String(), t, &target.UnknownTargetError{Name: t.String()})
		}
		o.target = t
		return nil
	}
}

// WithSilent toggles suppression of non-error output.
func WithSilent(v bool) Override {
	return func(o *Options) error {
		o.silent = v
		return nil
	}
}

// WithLogError toggles diagnostic detail on errors.
func WithLogError(v bool) Override {
	return func(o *Options) error {
		o.logError = v
		return nil
	}
}

// WithOptimize toggles the optimization passes.
func WithOptimize(v bool) Override {
	return func(o *Options) error {
		o.optimize = v
		return nil
	}
}

// WithLongPtr toggles the wide pointer representation.
func WithLongPtr(v bool) Override {
	return func(o *Options) error {
		o.longPtr = v
		return nil
	}
}

// New derives a bundle from base. A base that was never constructed (for
// example the zero Options) is replaced by Default.
func New(base Options, overrides ...Override) (Options, error) {
	out := base
	if !out.target.Valid() {
		out = Default()
	}
	for _, apply := range overrides {
		if apply == nil {
			continue
		}
		if err := apply(&out); err != nil {
			return Options{}, err
		}
	}
	return out, nil
}

// Target returns the backend selected for emission.
func (o Options) Target() target.Target { return o.target }

// Silent reports whether non-error output is suppressed.
func (o Options) Silent() bool { return o.silent }

// LogError reports whether errors carry diagnostic detail.
func (o Options) LogError() bool { return o.logError }

// Optimize reports whether optimization passes run before emission.
func (o Options) Optimize() bool { return o.optimize }

// LongPtr reports whether the wide pointer representation is used.
func (o Options) LongPtr() bool { return o.longPtr }

// Valid reports whether o came out of New or Default.
func (o Options) Valid() bool { return o.target.Valid() }

// PointerSize returns the pointer width in bytes, or 0 for an unconstructed bundle.
func (o Options) PointerSize() int {
	if !o.Valid() {
		return 0
	}
	if o.longPtr {
		return 8
	}
	return target.Describe(o.target).PointerSize
}

// Get returns the value of f: a target.Target for FieldTarget, a bool otherwise.
func (o Options) Get(f Field) any {
	switch f {
	case FieldTarget:
		return o.target
	case FieldSilent:
		return o.silent
	case FieldLogError:
		return o.logError
	case FieldOptimize:
		return o.optimize
	case FieldLongPtr:
		return o.longPtr
	}
	return nil
}

func (o Options) String() string {
	var b strings.Builder
	b.WriteByte('{')
	for i, f := range Fields() {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s: %v", f, o.Get(f))
	}
	b.WriteByte('}')
	return b.String()
}
