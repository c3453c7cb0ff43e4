package options

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"turbo/internal/target"
)

// FromStrings derives a bundle from base using textual overrides such as
// command-line values. Keys must be canonical field names.
func FromStrings(base Options, values map[string]string) (Options, error) {
	overrides := make([]Override, 0, len(values))
	for _, name := range sortedKeys(values) {
		ov, err := parseString(name, values[name])
		if err != nil {
			return Options{}, err
		}
		overrides = append(overrides, ov)
	}
	return New(base, overrides...)
}

// FromMap derives a bundle from base using decoded values, as produced by a
// TOML or JSON decoder. Booleans must be bool; the target may be a string or
// a target.Target.
func FromMap(base Options, values map[string]any) (Options, error) {
	overrides := make([]Override, 0, len(values))
	for _, name := range sortedKeys(values) {
		ov, err := parseValue(name, values[name])
		if err != nil {
			return Options{}, err
		}
		overrides = append(overrides, ov)
	}
	return New(base, overrides...)
}

// ParseAssignments splits "field=value" pairs into a map for FromStrings.
func ParseAssignments(pairs []string) (map[string]string, error) {
	out := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		name, value, ok := strings.Cut(pair, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, &ConfigValidationError{Field: name, Value: pair, Err: fmt.Errorf("%w: expected field=value", ErrBadValue)}
		}
		if _, seen := out[name]; seen {
			return nil, &ConfigValidationError{Field: name, Value: value, Err: ErrDuplicateField}
		}
		out[name] = strings.TrimSpace(value)
	}
	return out, nil
}

func parseString(name, raw string) (Override, error) {
	f, ok := ParseField(name)
	if !ok {
		return nil, invalid(name, raw, ErrUnknownField)
	}
	if f == FieldTarget {
		t, err := target.ParseTarget(raw)
		if err != nil {
			return nil, invalid(name, raw, err)
		}
		return WithTarget(t), nil
	}
	v, err := strconv.ParseBool(strings.TrimSpace(raw))
	if err != nil {
		return nil, invalid(name, raw, fmt.Errorf("%w: expected a boolean", ErrBadValue))
	}
	return boolOverride(f, v), nil
}

func parseValue(name string, raw any) (Override, error) {
	f, ok := ParseField(name)
	if !ok {
		return nil, invalid(name, raw, ErrUnknownField)
	}
	if f == FieldTarget {
		switch v := raw.(type) {
		case target.Target:
			return WithTarget(v), nil
		case string:
			t, err := target.ParseTarget(v)
			if err != nil {
				return nil, invalid(name, raw, err)
			}
			return WithTarget(t), nil
		default:
			return nil, invalid(name, raw, fmt.Errorf("%w: expected a target name, got %T", ErrBadValue, raw))
		}
	}
	v, ok := raw.(bool)
	if !ok {
		return nil, invalid(name, raw, fmt.Errorf("%w: expected a boolean, got %T", ErrBadValue, raw))
	}
	return boolOverride(f, v), nil
}

func boolOverride(f Field, v bool) Override {
	switch f {
	case FieldSilent:
		return WithSilent(v)
	case FieldLogError:
		return WithLogError(v)
	case FieldOptimize:
		return WithOptimize(v)
	case FieldLongPtr:
		return WithLongPtr(v)
	}
	panic(fmt.Sprintf("options: %s is not a boolean field", f))
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
