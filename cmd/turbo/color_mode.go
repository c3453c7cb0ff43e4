package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"turbo/internal/options"
	"turbo/internal/target"
)

type colorMode string

const (
	colorAuto colorMode = "auto"
	colorOn   colorMode = "on"
	colorOff  colorMode = "off"
)

func readColorMode(value string) (colorMode, error) {
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "", "auto":
		return colorAuto, nil
	case "on":
		return colorOn, nil
	case "off":
		return colorOff, nil
	default:
		return "", fmt.Errorf("invalid --color value %q (expected auto|on|off)", value)
	}
}

func applyColorMode(cmd *cobra.Command) error {
	value, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return fmt.Errorf("failed to get color flag: %w", err)
	}
	mode, err := readColorMode(value)
	if err != nil {
		return err
	}
	switch mode {
	case colorOn:
		color.NoColor = false
	case colorOff:
		color.NoColor = true
	default:
		color.NoColor = !isTerminal(os.Stdout) || os.Getenv("NO_COLOR") != ""
	}
	return nil
}

var errLabel = color.New(color.FgRed, color.Bold)

// printError reports err, pointing at the offending field or target when known.
func printError(w io.Writer, err error) {
	fmt.Fprintf(w, "%s %v\n", errLabel.Sprint("error:"), err)

	var unknown *target.UnknownTargetError
	var cfgErr *options.ConfigValidationError
	switch {
	case errors.As(err, &unknown):
		fmt.Fprintf(w, "  known targets: %s\n", strings.Join(target.Names(), ", "))
	case errors.As(err, &cfgErr) && errors.Is(err, options.ErrUnknownField):
		names := make([]string, 0, len(options.Fields()))
		for _, f := range options.Fields() {
			names = append(names, f.String())
		}
		fmt.Fprintf(w, "  known fields: %s\n", strings.Join(names, ", "))
	}
}
