// Package manifest locates and decodes turbo.toml project files.
package manifest

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"turbo/internal/options"
)

// FileName is the project manifest looked up by the driver.
const FileName = "turbo.toml"

// Manifest is a decoded turbo.toml.
type Manifest struct {
	Path string
	Root string
	Name string
	// Compiler holds the raw [compiler] table; nil when the section is absent.
	Compiler map[string]any
}

type fileConfig struct {
	Package struct {
		Name string `toml:"name"`
	} `toml:"package"`
	Compiler map[string]any `toml:"compiler"`
}

// Find walks up from startDir looking for turbo.toml.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load decodes the manifest at path.
func Load(path string) (*Manifest, error) {
	var cfg fileConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	m := &Manifest{
		Path: path,
		Root: filepath.Dir(path),
		Name: strings.TrimSpace(cfg.Package.Name),
	}
	if meta.IsDefined("compiler") {
		m.Compiler = cfg.Compiler
		if m.Compiler == nil {
			m.Compiler = map[string]any{}
		}
	}
	return m, nil
}

// LoadFrom finds and decodes the manifest governing startDir.
func LoadFrom(startDir string) (*Manifest, bool, error) {
	path, ok, err := Find(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	m, err := Load(path)
	if err != nil {
		return nil, true, err
	}
	return m, true, nil
}

// Options applies the [compiler] table on top of base.
func (m *Manifest) Options(base options.Options) (options.Options, error) {
	if m == nil || m.Compiler == nil {
		return options.New(base)
	}
	opts, err := options.FromMap(base, m.Compiler)
	if err != nil {
		return options.Options{}, fmt.Errorf("%s: [compiler]: %w", m.Path, err)
	}
	return opts, nil
}
