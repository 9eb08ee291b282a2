package diagfmt

import (
	"encoding/json"
	"io"

	"lime/internal/diag"
	"lime/internal/source"
)

// LocationJSON представляет диапазон в буфере для JSON
type LocationJSON struct {
	File      string `json:"file"`
	StartLine uint32 `json:"start_line"`
	StartCol  uint32 `json:"start_col"`
	EndLine   uint32 `json:"end_line"`
	EndCol    uint32 `json:"end_col"`
}

type HintJSON struct {
	Message  string        `json:"message"`
	Location *LocationJSON `json:"location,omitempty"`
}

// DiagnosticJSON представляет диагностику в JSON формате
type DiagnosticJSON struct {
	Severity string        `json:"severity"`
	Code     string        `json:"code"`
	Message  string        `json:"message"`
	Location *LocationJSON `json:"location,omitempty"`
	Hints    []HintJSON    `json:"hints,omitempty"`
}

// DiagnosticsOutput представляет корневую структуру JSON вывода
type DiagnosticsOutput struct {
	Diagnostics []DiagnosticJSON `json:"diagnostics"`
	Count       int              `json:"count"`
}

func makeLocation(sec *source.Section, opts JSONOpts) *LocationJSON {
	if sec == nil {
		return nil
	}
	file := ""
	if sec.Buffer != nil {
		file = displayPath(sec.Buffer.ID(), opts.PathMode, opts.BaseDir)
	}
	return &LocationJSON{
		File:      file,
		StartLine: sec.Start.Line,
		StartCol:  sec.Start.Column,
		EndLine:   sec.End.Line,
		EndCol:    sec.End.Column,
	}
}

// BuildDiagnosticsOutput формирует структуру JSON-вывода без сериализации.
func BuildDiagnosticsOutput(bag *diag.Bag, opts JSONOpts) DiagnosticsOutput {
	items := bag.Items()
	maxItems := len(items)
	if opts.Max > 0 && opts.Max < maxItems {
		maxItems = opts.Max
	}

	diagnostics := make([]DiagnosticJSON, 0, maxItems)
	for _, d := range items[:maxItems] {
		out := DiagnosticJSON{
			Severity: d.Severity.String(),
			Code:     d.Code.ID(),
			Message:  d.Message,
			Location: makeLocation(d.Range, opts),
		}
		if opts.IncludeHints && len(d.Hints) > 0 {
			out.Hints = make([]HintJSON, len(d.Hints))
			for j, h := range d.Hints {
				out.Hints[j] = HintJSON{Message: h.Message, Location: makeLocation(h.Range, opts)}
			}
		}
		diagnostics = append(diagnostics, out)
	}
	return DiagnosticsOutput{
		Diagnostics: diagnostics,
		Count:       len(diagnostics),
	}
}

// JSON форматирует диагностики в JSON формат.
func JSON(w io.Writer, bag *diag.Bag, opts JSONOpts) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(BuildDiagnosticsOutput(bag, opts))
}
