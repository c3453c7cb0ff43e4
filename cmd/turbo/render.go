package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"turbo/internal/target"
)

type tableRow struct {
	key   string
	value any
}

var (
	trueColor   = color.New(color.FgGreen)
	falseColor  = color.New(color.FgRed)
	targetColor = color.New(color.FgCyan, color.Bold)
)

func headingStyle() lipgloss.Style {
	if color.NoColor {
		return lipgloss.NewStyle()
	}
	return lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
}

func keyStyle() lipgloss.Style {
	if color.NoColor {
		return lipgloss.NewStyle()
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
}

func renderValue(v any) string {
	switch v := v.(type) {
	case bool:
		if v {
			return trueColor.Sprint("true")
		}
		return falseColor.Sprint("false")
	case target.Target:
		return targetColor.Sprint(v.String())
	default:
		return fmt.Sprint(v)
	}
}

// renderTable aligns keys into one column, two spaces in.
func renderTable(rows []tableRow) string {
	width := 0
	for _, r := range rows {
		if w := runewidth.StringWidth(r.key); w > width {
			width = w
		}
	}
	var b strings.Builder
	for i, r := range rows {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString("  ")
		b.WriteString(keyStyle().Render(runewidth.FillRight(r.key, width)))
		b.WriteString("  ")
		b.WriteString(renderValue(r.value))
	}
	return b.String()
}
