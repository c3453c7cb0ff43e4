package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"turbo/internal/options"
	"turbo/internal/target"
	"turbo/internal/version"
)

// versionPayload is the json form of `turbo version`. Build metadata that was
// not requested stays empty and is omitted.
type versionPayload struct {
	Tool          string   `json:"tool"`
	Version       string   `json:"version"`
	DefaultTarget string   `json:"default_target"`
	Targets       []string `json:"targets"`
	GitCommit     string   `json:"git_commit,omitempty"`
	BuildDate     string   `json:"build_date,omitempty"`
}

func newVersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show turbo build metadata and supported targets",
		Args:  cobra.NoArgs,
		RunE:  versionExecution,
	}
	cmd.Flags().Bool("hash", false, "include git commit hash")
	cmd.Flags().Bool("date", false, "include build timestamp")
	cmd.Flags().Bool("full", false, "include all build metadata")
	cmd.Flags().String("format", "pretty", "output format (pretty|json)")
	return cmd
}

func versionExecution(cmd *cobra.Command, _ []string) error {
	format, err := readFormat(cmd)
	if err != nil {
		return err
	}
	showHash, showDate, err := readVersionDetail(cmd)
	if err != nil {
		return err
	}

	payload := versionPayload{
		Tool:          "turbo",
		Version:       strings.TrimSpace(version.Version),
		DefaultTarget: options.Default().Target().String(),
		Targets:       target.Names(),
	}
	if payload.Version == "" {
		payload.Version = "dev"
	}
	if showHash {
		payload.GitCommit = orUnknown(version.GitCommit)
	}
	if showDate {
		payload.BuildDate = orUnknown(version.BuildDate)
	}

	if format == "json" {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(payload)
	}
	return renderVersionPretty(cmd.OutOrStdout(), payload)
}

// readVersionDetail reports which build metadata to print; --full implies both.
func readVersionDetail(cmd *cobra.Command) (hash, date bool, err error) {
	fs := cmd.Flags()
	full, err := fs.GetBool("full")
	if err != nil {
		return false, false, err
	}
	if hash, err = fs.GetBool("hash"); err != nil {
		return false, false, err
	}
	if date, err = fs.GetBool("date"); err != nil {
		return false, false, err
	}
	return hash || full, date || full, nil
}

func renderVersionPretty(out io.Writer, p versionPayload) error {
	rows := []tableRow{
		{"default target", options.Default().Target()},
		{"targets", strings.Join(p.Targets, ", ")},
	}
	if p.GitCommit != "" {
		rows = append(rows, tableRow{"commit", p.GitCommit})
	}
	if p.BuildDate != "" {
		rows = append(rows, tableRow{"built", p.BuildDate})
	}
	_, err := fmt.Fprintf(out, "%s %s\n%s\n", headingStyle().Render(p.Tool), version.Colored(), renderTable(rows))
	return err
}

func orUnknown(s string) string {
	if s = strings.TrimSpace(s); s == "" {
		return "unknown"
	}
	return s
}
