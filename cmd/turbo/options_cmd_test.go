package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"turbo/internal/options"
	"turbo/internal/target"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"--color", "off"}, args...))
	err := root.Execute()
	return out.String(), err
}

type optionsJSON struct {
	Options     map[string]any `json:"options"`
	Fingerprint string         `json:"fingerprint"`
	PointerSize int            `json:"pointer_size"`
	Manifest    string         `json:"manifest"`
	Layers      []string       `json:"layers"`
}

func decodeOptions(t *testing.T, out string) optionsJSON {
	t.Helper()
	var payload optionsJSON
	if err := json.Unmarshal([]byte(out), &payload); err != nil {
		t.Fatalf("decode output: %v\n%s", err, out)
	}
	return payload
}

func TestOptionsDefaults(t *testing.T) {
	out, err := runCLI(t, "options", "--no-manifest", "--format", "json")
	if err != nil {
		t.Fatalf("options: %v", err)
	}
	payload := decodeOptions(t, out)
	want := map[string]any{
		"target":   "WEBASSEMBLY",
		"silent":   true,
		"logError": true,
		"optimize": true,
		"longPtr":  false,
	}
	for k, v := range want {
		if payload.Options[k] != v {
			t.Fatalf("options[%s] = %v, want %v", k, payload.Options[k], v)
		}
	}
	fp, _ := options.Default().Fingerprint()
	if payload.Fingerprint != fp {
		t.Fatalf("fingerprint = %s, want %s", payload.Fingerprint, fp)
	}
	if payload.PointerSize != 4 {
		t.Fatalf("pointer_size = %d, want 4", payload.PointerSize)
	}
	if strings.Join(payload.Layers, ",") != "defaults" {
		t.Fatalf("layers = %v, want [defaults]", payload.Layers)
	}
}

func TestOptionsFlagsOverrideOnlyChangedFields(t *testing.T) {
	out, err := runCLI(t, "options", "--no-manifest", "--format", "json", "--optimize=false", "--target", "wasm")
	if err != nil {
		t.Fatalf("options: %v", err)
	}
	payload := decodeOptions(t, out)
	if payload.Options["optimize"] != false {
		t.Fatalf("optimize = %v, want false", payload.Options["optimize"])
	}
	if payload.Options["target"] != "WEBASSEMBLY" || payload.Options["silent"] != true || payload.Options["longPtr"] != false {
		t.Fatalf("unexpected options: %v", payload.Options)
	}
}

func TestOptionsLayering(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "turbo.toml")
	data := "[compiler]\ntarget = \"asmjs\"\nsilent = false\nlongPtr = true\n"
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatalf("write turbo.toml: %v", err)
	}

	out, err := runCLI(t, "options", "--manifest", path, "--format", "json", "--silent", "--set", "longPtr=false")
	if err != nil {
		t.Fatalf("options: %v", err)
	}
	payload := decodeOptions(t, out)
	if payload.Options["target"] != "ASMJS" {
		t.Fatalf("target = %v, want ASMJS from manifest", payload.Options["target"])
	}
	if payload.Options["silent"] != true {
		t.Fatalf("silent = %v, want flag to win over manifest", payload.Options["silent"])
	}
	if payload.Options["longPtr"] != false {
		t.Fatalf("longPtr = %v, want --set to win over manifest", payload.Options["longPtr"])
	}
	if payload.Manifest != path {
		t.Fatalf("manifest = %q, want %q", payload.Manifest, path)
	}
	if got := strings.Join(payload.Layers, ","); got != "defaults,manifest,flags,set" {
		t.Fatalf("layers = %s", got)
	}
}

func TestOptionsErrors(t *testing.T) {
	cases := []struct {
		name    string
		args    []string
		field   string
		value   string
		unknown bool
	}{
		{"unknown target flag", []string{"--target", "llvm"}, "target", "llvm", true},
		{"unknown set field", []string{"--set", "verbose=true"}, "verbose", "true", false},
		{"bad set bool", []string{"--set", "optimize=sometimes"}, "optimize", "sometimes", false},
		{"unknown set target", []string{"--set", "target=jvm"}, "target", "jvm", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			args := append([]string{"options", "--no-manifest"}, tc.args...)
			out, err := runCLI(t, args...)
			if err == nil {
				t.Fatalf("expected error, got output %q", out)
			}
			var cfgErr *options.ConfigValidationError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("expected ConfigValidationError, got %v", err)
			}
			if cfgErr.Field != tc.field || cfgErr.Value != tc.value {
				t.Fatalf("cfgErr = %s/%s, want %s/%s", cfgErr.Field, cfgErr.Value, tc.field, tc.value)
			}
			var unknown *target.UnknownTargetError
			if errors.As(err, &unknown) != tc.unknown {
				t.Fatalf("UnknownTargetError match = %v, want %v", !tc.unknown, tc.unknown)
			}
			if out != "" {
				t.Fatalf("no bundle may be printed on failure, got %q", out)
			}
		})
	}
}

func TestOptionsBadManifest(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "turbo.toml")
	if err := os.WriteFile(path, []byte("[compiler]\noptimize = 0\n"), 0o600); err != nil {
		t.Fatalf("write turbo.toml: %v", err)
	}
	_, err := runCLI(t, "options", "--manifest", path)
	var cfgErr *options.ConfigValidationError
	if !errors.As(err, &cfgErr) || cfgErr.Field != "optimize" {
		t.Fatalf("expected optimize validation error, got %v", err)
	}
}

func TestOptionsPretty(t *testing.T) {
	out, err := runCLI(t, "options", "--no-manifest", "--long-ptr")
	if err != nil {
		t.Fatalf("options: %v", err)
	}
	for _, want := range []string{
		"options from defaults + flags",
		"  target    WEBASSEMBLY",
		"  longPtr   true",
		"pointer size: 8 bytes",
		"fingerprint:",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func TestOptionsBadFormat(t *testing.T) {
	if _, err := runCLI(t, "options", "--no-manifest", "--format", "yaml"); err == nil {
		t.Fatalf("expected format error")
	}
}

func TestPrintError(t *testing.T) {
	var buf bytes.Buffer
	_, err := options.FromStrings(options.Default(), map[string]string{"target": "llvm"})
	printError(&buf, err)
	if !strings.Contains(buf.String(), "known targets: WEBASSEMBLY, ASMJS") {
		t.Fatalf("unexpected output: %s", buf.String())
	}

	buf.Reset()
	_, err = options.FromStrings(options.Default(), map[string]string{"verbose": "1"})
	printError(&buf, err)
	if !strings.Contains(buf.String(), "known fields: target, silent, logError, optimize, longPtr") {
		t.Fatalf("unexpected output: %s", buf.String())
	}
}

func TestTargetsAndVersion(t *testing.T) {
	out, err := runCLI(t, "targets")
	if err != nil {
		t.Fatalf("targets: %v", err)
	}
	if !strings.Contains(out, "WEBASSEMBLY") || !strings.Contains(out, "(default)") || !strings.Contains(out, ".asm.js") {
		t.Fatalf("unexpected targets output:\n%s", out)
	}

	out, err = runCLI(t, "version", "--format", "json", "--full")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	var payload versionPayload
	if err := json.Unmarshal([]byte(out), &payload); err != nil {
		t.Fatalf("decode version: %v", err)
	}
	if payload.Tool != "turbo" || payload.GitCommit == "" || payload.BuildDate == "" {
		t.Fatalf("unexpected version payload: %+v", payload)
	}
	if payload.DefaultTarget != "WEBASSEMBLY" || strings.Join(payload.Targets, ",") != "WEBASSEMBLY,ASMJS" {
		t.Fatalf("unexpected target metadata: %+v", payload)
	}

	out, err = runCLI(t, "version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if !strings.Contains(out, "default target") || !strings.Contains(out, "WEBASSEMBLY") || strings.Contains(out, "commit") {
		t.Fatalf("unexpected pretty version output:\n%s", out)
	}

	if _, err := runCLI(t, "version", "--format", "yaml"); err == nil {
		t.Fatalf("expected error for unsupported format")
	}
}

func TestReadColorMode(t *testing.T) {
	for _, v := range []string{"", "auto", "ON", " off "} {
		if _, err := readColorMode(v); err != nil {
			t.Fatalf("readColorMode(%q): %v", v, err)
		}
	}
	if _, err := readColorMode("rainbow"); err == nil {
		t.Fatalf("expected error for invalid color mode")
	}
}
