package target

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
)

// Target selects the backend the compiler emits code for.
type Target uint8

const (
	// Invalid is the zero value; no bundle may carry it.
	Invalid Target = iota
	// WebAssembly emits a WebAssembly binary module.
	WebAssembly
	// AsmJS emits asm.js source.
	AsmJS

	targetCount
)

var names = [targetCount]string{
	Invalid:     "",
	WebAssembly: "WEBASSEMBLY",
	AsmJS:       "ASMJS",
}

// short spellings accepted on input, keyed by folded form
var aliases = map[string]Target{
	"wasm":  WebAssembly,
	"asmjs": AsmJS,
}

// fold applies Unicode case folding. A Caser keeps state, so each call gets its own.
func fold(s string) string { return cases.Fold().String(s) }

// UnknownTargetError reports a name that does not match any target.
type UnknownTargetError struct {
	Name string
}

func (e *UnknownTargetError) Error() string {
	return fmt.Sprintf("unknown target %q (expected: %s)", e.Name, strings.Join(Names(), "|"))
}

// All returns every target in declaration order.
func All() []Target {
	out := make([]Target, 0, targetCount-1)
	for t := Invalid + 1; t < targetCount; t++ {
		out = append(out, t)
	}
	return out
}

// Names returns the canonical names of all targets.
func Names() []string {
	all := All()
	out := make([]string, len(all))
	for i, t := range all {
		out[i] = t.String()
	}
	return out
}

// Valid reports whether t is one of the declared targets.
func (t Target) Valid() bool {
	return t > Invalid && t < targetCount
}

// String returns the canonical name of t.
func (t Target) String() string {
	if !t.Valid() {
		return fmt.Sprintf("Target(%d)", uint8(t))
	}
	return names[t]
}

// ParseTarget resolves a target name. Matching is case-insensitive.
func ParseTarget(name string) (Target, error) {
	key := fold(strings.TrimSpace(name))
	if key != "" {
		for t := Invalid + 1; t < targetCount; t++ {
			if fold(names[t]) == key {
				return t, nil
			}
		}
		if t, ok := aliases[key]; ok {
			return t, nil
		}
	}
	return Invalid, &UnknownTargetError{Name: name}
}

// MarshalText implements encoding.TextMarshaler.
func (t Target) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("cannot marshal %s", t)
	}
	return []byte(names[t]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *Target) UnmarshalText(text []byte) error {
	parsed, err := ParseTarget(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
