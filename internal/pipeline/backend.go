package pipeline

import (
	"strings"

	"turbo/internal/options"
	"turbo/internal/target"
)

// Backend carries what the emit phase needs to know about its target.
type Backend struct {
	Target      target.Target
	Ext         string
	MediaType   string
	PointerSize int
}

// OutputName derives the artifact file name for a source path.
func (b Backend) OutputName(source string) string {
	base := source
	if i := strings.LastIndexAny(base, `/\`); i >= 0 {
		base = base[i+1:]
	}
	if i := strings.IndexByte(base, '.'); i > 0 {
		base = base[:i]
	}
	if base == "" {
		base = "out"
	}
	return base + b.Ext
}

type backendVisitor struct {
	opts options.Options
}

func (v backendVisitor) WebAssembly() Backend {
	return Backend{
		Target:      target.WebAssembly,
		Ext:         target.Describe(target.WebAssembly).Ext,
		MediaType:   "application/wasm",
		PointerSize: v.opts.PointerSize(),
	}
}

func (v backendVisitor) AsmJS() Backend {
	return Backend{
		Target:      target.AsmJS,
		Ext:         target.Describe(target.AsmJS).Ext,
		MediaType:   "text/javascript",
		PointerSize: v.opts.PointerSize(),
	}
}

// BackendFor selects the backend named by the bundle's target.
// opts must be a constructed bundle (opts.Valid()); BackendFor panics otherwise.
func BackendFor(opts options.Options) Backend {
	return target.Visit[Backend](opts.Target(), backendVisitor{opts: opts})
}
