package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"turbo/internal/manifest"
	"turbo/internal/options"
	"turbo/internal/target"
)

// flagFields maps command-line flag names onto bundle field names.
var flagFields = map[string]options.Field{
	"target":    options.FieldTarget,
	"silent":    options.FieldSilent,
	"log-error": options.FieldLogError,
	"optimize":  options.FieldOptimize,
	"long-ptr":  options.FieldLongPtr,
}

type resolved struct {
	Options  options.Options
	Manifest string
	Layers   []string
}

type optionsPayload struct {
	Options     options.Options `json:"options"`
	Fingerprint string          `json:"fingerprint"`
	PointerSize int             `json:"pointer_size"`
	Manifest    string          `json:"manifest,omitempty"`
	Layers      []string        `json:"layers"`
}

func newOptionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "options [flags]",
		Short: "Show the option bundle a compilation would use",
		Long: `Resolve the option bundle from the defaults, the [compiler] section of
turbo.toml, command-line flags and --set assignments, in that order.`,
		Args: cobra.NoArgs,
		RunE: optionsExecution,
	}
	registerOptionFlags(cmd.Flags())
	cmd.Flags().String("manifest", "", "path to turbo.toml (default: search upwards from the working directory)")
	cmd.Flags().Bool("no-manifest", false, "ignore turbo.toml")
	cmd.Flags().String("format", "pretty", "output format (pretty|json)")
	return cmd
}

func registerOptionFlags(fs *pflag.FlagSet) {
	d := options.Default()
	fs.String("target", d.Target().String(), "compilation target ("+strings.Join(target.Names(), "|")+")")
	fs.Bool("silent", d.Silent(), "suppress non-error output")
	fs.Bool("log-error", d.LogError(), "report diagnostic detail on errors")
	fs.Bool("optimize", d.Optimize(), "run optimization passes")
	fs.Bool("long-ptr", d.LongPtr(), "use 64-bit pointers")
	fs.StringArray("set", nil, "override a field by canonical name (field=value), repeatable")
}

// readFormat returns the normalized --format value.
func readFormat(cmd *cobra.Command) (string, error) {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return "", err
	}
	switch f := strings.ToLower(strings.TrimSpace(format)); f {
	case "pretty", "json":
		return f, nil
	default:
		return "", fmt.Errorf("unsupported format %q (must be pretty or json)", format)
	}
}

func optionsExecution(cmd *cobra.Command, _ []string) error {
	format, err := readFormat(cmd)
	if err != nil {
		return err
	}

	res, err := resolveOptions(cmd, ".")
	if err != nil {
		return err
	}
	fingerprint, err := res.Options.Fingerprint()
	if err != nil {
		return err
	}

	if format == "json" {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(optionsPayload{
			Options:     res.Options,
			Fingerprint: fingerprint,
			PointerSize: res.Options.PointerSize(),
			Manifest:    res.Manifest,
			Layers:      res.Layers,
		})
	}
	return renderOptionsPretty(cmd.OutOrStdout(), res, fingerprint)
}

// resolveOptions layers manifest, flags and --set assignments over the
// defaults. Any invalid entry aborts the whole resolution.
func resolveOptions(cmd *cobra.Command, workDir string) (resolved, error) {
	res := resolved{Options: options.Default(), Layers: []string{"defaults"}}

	noManifest, err := cmd.Flags().GetBool("no-manifest")
	if err != nil {
		return resolved{}, err
	}
	manifestPath, err := cmd.Flags().GetString("manifest")
	if err != nil {
		return resolved{}, err
	}
	if !noManifest {
		var m *manifest.Manifest
		if manifestPath != "" {
			m, err = manifest.Load(manifestPath)
		} else {
			m, _, err = manifest.LoadFrom(workDir)
		}
		if err != nil {
			return resolved{}, err
		}
		if m != nil {
			res.Options, err = m.Options(res.Options)
			if err != nil {
				return resolved{}, err
			}
			res.Manifest = m.Path
			if m.Compiler != nil {
				res.Layers = append(res.Layers, "manifest")
			}
		}
	}

	fromFlags := changedOptionFlags(cmd.Flags())
	if len(fromFlags) > 0 {
		res.Options, err = options.FromStrings(res.Options, fromFlags)
		if err != nil {
			return resolved{}, err
		}
		res.Layers = append(res.Layers, "flags")
	}

	assignments, err := cmd.Flags().GetStringArray("set")
	if err != nil {
		return resolved{}, err
	}
	if len(assignments) > 0 {
		values, err := options.ParseAssignments(assignments)
		if err != nil {
			return resolved{}, err
		}
		res.Options, err = options.FromStrings(res.Options, values)
		if err != nil {
			return resolved{}, err
		}
		res.Layers = append(res.Layers, "set")
	}
	return res, nil
}

// changedOptionFlags collects the bundle flags the user actually passed,
// keyed by canonical field name.
func changedOptionFlags(fs *pflag.FlagSet) map[string]string {
	out := map[string]string{}
	fs.Visit(func(f *pflag.Flag) {
		if field, ok := flagFields[f.Name]; ok {
			out[field.String()] = f.Value.String()
		}
	})
	return out
}

func renderOptionsPretty(out io.Writer, res resolved, fingerprint string) error {
	rows := make([]tableRow, 0, len(options.Fields()))
	for _, f := range options.Fields() {
		rows = append(rows, tableRow{key: f.String(), value: res.Options.Get(f)})
	}
	source := strings.Join(res.Layers, " + ")
	if res.Manifest != "" {
		source += " (" + res.Manifest + ")"
	}
	_, err := fmt.Fprintf(out, "%s\n%s\n%s %d bytes\n%s %s\n",
		headingStyle().Render("options from "+source),
		renderTable(rows),
		keyStyle().Render("pointer size:"), res.Options.PointerSize(),
		keyStyle().Render("fingerprint:"), fingerprint,
	)
	return err
}
