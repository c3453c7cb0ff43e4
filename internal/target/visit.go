package target

import "fmt"

// Visitor has one method per target. Code that branches on a target implements
// Visitor instead of switching, so declaring a new target breaks the build of
// every dispatch site until it handles the new case.
type Visitor[R any] interface {
	WebAssembly() R
	AsmJS() R
}

// Visit calls the method of v that matches t.
// It panics on an invalid target: a constructed bundle never carries one.
func Visit[R any](t Target, v Visitor[R]) R {
	switch t {
	case WebAssembly:
		return v.WebAssembly()
	case AsmJS:
		return v.AsmJS()
	}
	panic(fmt.Sprintf("target: visit of %s", t))
}

// Info describes backend facts that do not depend on the option bundle.
type Info struct {
	Target Target
	// Ext is the file extension of the emitted artifact.
	Ext string
	// PointerSize is the narrow pointer width in bytes.
	PointerSize int
	// Binary reports whether the artifact is a binary format.
	Binary bool
}

type infoVisitor struct{}

func (infoVisitor) WebAssembly() Info {
	return Info{Target: WebAssembly, Ext: ".wasm", PointerSize: 4, Binary: true}
}

func (infoVisitor) AsmJS() Info {
	return Info{Target: AsmJS, Ext: ".asm.js", PointerSize: 4, Binary: false}
}

// Describe returns the Info for t.
func Describe(t Target) Info {
	return Visit[Info](t, infoVisitor{})
}
