// Package report renders resolutions for the terminal, for machines and for job summaries.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/samber/lo"
	"github.com/speakeasy-api/recentfile/internal/charm/styles"
	"github.com/speakeasy-api/recentfile/internal/recent"
	"gopkg.in/yaml.v3"
)

type Format string

const (
	FormatRaw  Format = "raw"
	FormatText Format = "text"
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

var Formats = []string{string(FormatRaw), string(FormatText), string(FormatYAML), string(FormatJSON)}

type entry struct {
	Path        string        `json:"path" yaml:"path"`
	Source      recent.Source `json:"source" yaml:"source"`
	Reason      recent.Reason `json:"reason" yaml:"reason"`
	ContentHash string        `json:"contentHash" yaml:"contentHash"`
	ForkPoint   string        `json:"forkPoint,omitempty" yaml:"forkPoint,omitempty"`
	Size        int           `json:"size" yaml:"size"`
	Content     string        `json:"content" yaml:"content"`
}

func toEntry(r *recent.Resolution, _ int) entry {
	return entry{
		Path:        r.Path,
		Source:      r.Source,
		Reason:      r.Reason,
		ContentHash: r.ContentHash,
		ForkPoint:   r.ForkPoint,
		Size:        len(r.Content),
		Content:     string(r.Content),
	}
}

// Render writes resolutions to w in the given format.
func Render(w io.Writer, format Format, resolutions []*recent.Resolution) error {
	switch format {
	case FormatRaw:
		for _, r := range resolutions {
			if _, err := w.Write(r.Content); err != nil {
				return err
			}
		}
		return nil
	case FormatText:
		_, err := io.WriteString(w, Text(resolutions))
		return err
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(lo.Map(resolutions, toEntry)); err != nil {
			return fmt.Errorf("failed to encode yaml report: %w", err)
		}
		return enc.Close()
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(lo.Map(resolutions, toEntry)); err != nil {
			return fmt.Errorf("failed to encode json report: %w", err)
		}
		return nil
	}

	return fmt.Errorf("unknown output format %q (available options: [%s])", format, strings.Join(Formats, ", "))
}

// Text is a styled one-line-per-path summary.
func Text(resolutions []*recent.Resolution) string {
	var sb strings.Builder
	for _, r := range resolutions {
		sb.WriteString(styles.Emphasized.Render(r.Path))
		sb.WriteString(" ")
		sb.WriteString(sourceStyle(r.Source).Render(string(r.Source)))
		sb.WriteString(styles.Dimmed.Render(fmt.Sprintf(" (%s) %s %s", r.Reason, shortHash(r.ContentHash), r.Size())))
		if r.ForkPoint != "" {
			sb.WriteString(styles.DimmedItalic.Render(" fork-point " + shortHash(r.ForkPoint)))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// Markdown renders a table suitable for a GitHub job summary.
func Markdown(resolutions []*recent.Resolution) string {
	rows := [][]string{{"Path", "Source", "Reason", "Content hash", "Fork point", "Size"}}
	for _, r := range resolutions {
		rows = append(rows, []string{
			"`" + r.Path + "`",
			string(r.Source),
			string(r.Reason),
			shortHash(r.ContentHash),
			shortHash(r.ForkPoint),
			r.Size(),
		})
	}
	return markdownTable(rows)
}

func markdownTable(rows [][]string) string {
	widths := make([]int, len(rows[0]))
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], len(escapeCell(cell)), 3)
		}
	}

	var sb strings.Builder
	writeRow := func(cells []string) {
		for i, cell := range cells {
			fmt.Fprintf(&sb, "| %-*s ", widths[i], cell)
		}
		sb.WriteString("|\n")
	}

	for i, row := range rows {
		writeRow(lo.Map(row, func(c string, _ int) string { return escapeCell(c) }))
		if i == 0 {
			writeRow(lo.Map(widths, func(w int, _ int) string { return strings.Repeat("-", w) }))
		}
	}

	return strings.TrimSuffix(sb.String(), "\n")
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}

func shortHash(hash string) string {
	if len(hash) > 12 {
		return hash[:12]
	}
	return hash
}

func sourceStyle(s recent.Source) lipgloss.Style {
	if s == recent.SourceHead {
		return styles.Warning
	}
	return styles.Info
}
