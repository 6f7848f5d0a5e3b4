package printer

import (
	"fmt"
	"io"

	"github.com/mozilla-ai/dixa-mcp/internal/cmd/output"
	"github.com/mozilla-ai/dixa-mcp/internal/tools"
)

var _ output.Printer[CallResult] = (*CallResultPrinter)(nil)

// CallResult is the outcome of a single tool call.
type CallResult struct {
	Tool string `json:"tool" yaml:"tool"`
	Data any    `json:"data" yaml:"data"`
}

// CallResultPrinter prints the data of a call as indented JSON, the same text MCP clients receive.
type CallResultPrinter struct {
	headerFunc output.WriteFunc[CallResult]
	footerFunc output.WriteFunc[CallResult]
}

func (p *CallResultPrinter) Header(w io.Writer, count int) {
	if p.headerFunc != nil {
		p.headerFunc(w, count)
	}
}

func (p *CallResultPrinter) SetHeader(fn output.WriteFunc[CallResult]) {
	p.headerFunc = fn
}

func (p *CallResultPrinter) Item(w io.Writer, result CallResult) error {
	text, err := tools.FormatResult(result.Data)
	if err != nil {
		return fmt.Errorf("tool '%s': %w", result.Tool, err)
	}

	_, _ = fmt.Fprintln(w, text)

	return nil
}

func (p *CallResultPrinter) Footer(w io.Writer, count int) {
	if p.footerFunc != nil {
		p.footerFunc(w, count)
	}
}

func (p *CallResultPrinter) SetFooter(fn output.WriteFunc[CallResult]) {
	p.footerFunc = fn
}
