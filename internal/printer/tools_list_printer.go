// Package printer renders command results as text for humans.
package printer

import (
	"fmt"
	"io"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/mozilla-ai/dixa-mcp/internal/cmd/output"
)

var _ output.Printer[ToolEntry] = (*ToolsListPrinter)(nil)

// ToolEntry is one line of the tools list output.
type ToolEntry struct {
	Name        string `json:"name"                  yaml:"name"`
	Title       string `json:"title,omitempty"       yaml:"title,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	ReadOnly    bool   `json:"readOnly"              yaml:"read_only"`
	Destructive bool   `json:"destructive"           yaml:"destructive"`
}

// NewToolEntry summarizes an MCP tool. The description is only kept when detailed is set.
func NewToolEntry(tool mcp.Tool, detailed bool) ToolEntry {
	e := ToolEntry{
		Name:        tool.Name,
		Title:       tool.Annotations.Title,
		ReadOnly:    tool.Annotations.ReadOnlyHint != nil && *tool.Annotations.ReadOnlyHint,
		Destructive: tool.Annotations.DestructiveHint != nil && *tool.Annotations.DestructiveHint,
	}
	if detailed {
		e.Description = tool.Description
	}
	return e
}

type ToolsListPrinter struct {
	headerFunc output.WriteFunc[ToolEntry]
	footerFunc output.WriteFunc[ToolEntry]
}

// NewToolsListPrinter returns a printer with the default header.
func NewToolsListPrinter() *ToolsListPrinter {
	return &ToolsListPrinter{headerFunc: DefaultToolsHeader()}
}

func (p *ToolsListPrinter) Header(w io.Writer, count int) {
	if p.headerFunc != nil {
		p.headerFunc(w, count)
	}
}

func (p *ToolsListPrinter) SetHeader(fn output.WriteFunc[ToolEntry]) {
	p.headerFunc = fn
}

func (p *ToolsListPrinter) Item(w io.Writer, entry ToolEntry) error {
	var marks []string
	switch {
	case entry.ReadOnly:
		marks = append(marks, "read-only")
	case entry.Destructive:
		marks = append(marks, "destructive")
	}

	line := "  " + entry.Name
	if len(marks) > 0 {
		line += " [" + strings.Join(marks, ", ") + "]"
	}
	if entry.Title != "" {
		line += " - " + entry.Title
	}
	_, _ = fmt.Fprintln(w, line)

	if entry.Description != "" {
		for _, l := range strings.Split(strings.TrimSpace(entry.Description), "\n") {
			_, _ = fmt.Fprintf(w, "      %s\n", l)
		}
	}

	return nil
}

func (p *ToolsListPrinter) Footer(w io.Writer, count int) {
	if p.footerFunc != nil {
		p.footerFunc(w, count)
	}
}

func (p *ToolsListPrinter) SetFooter(fn output.WriteFunc[ToolEntry]) {
	p.footerFunc = fn
}

func DefaultToolsHeader() output.WriteFunc[ToolEntry] {
	return func(w io.Writer, count int) {
		_, _ = fmt.Fprintf(w, "Tools (%d total):\n", count)
	}
}
