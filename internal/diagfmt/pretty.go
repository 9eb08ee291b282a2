package diagfmt

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"fortio.org/safecast"
	"github.com/fatih/color"
	"github.com/rivo/uniseg"

	"lime/internal/diag"
	"lime/internal/source"
)

const tabWidth = 4

type palette struct {
	err, warn, info, accent, bold *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:    color.New(color.FgRed, color.Bold),
		warn:   color.New(color.FgYellow, color.Bold),
		info:   color.New(color.FgCyan, color.Bold),
		accent: color.New(color.FgBlue, color.Bold),
		bold:   color.New(color.Bold),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.info, p.accent, p.bold} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(s diag.Severity) *color.Color {
	switch s {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	}
	return p.info
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждой диагностики печатает
//
//	<path>:<line>:<col>: <SEV> <CODE>: <Message>
//
// затем строку исходника с подчёркиванием ^~~~ по диапазону, затем хинты в
// том же формате.
func Pretty(w io.Writer, bag *diag.Bag, opts PrettyOpts) error {
	p := newPalette(opts.Color)
	for i, d := range bag.Items() {
		if i > 0 {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		var sb strings.Builder
		writeHeader(&sb, p, d, opts)
		if d.Range != nil && d.Range.Buffer != nil {
			writeExcerpt(&sb, p, p.severity(d.Severity), *d.Range, opts.Context)
		}
		if !opts.HideHints {
			for _, h := range d.Hints {
				sb.WriteString(p.accent.Sprint("  hint: "))
				if h.Range != nil {
					sb.WriteString(location(*h.Range, opts) + ": ")
				}
				sb.WriteString(h.Message + "\n")
				if h.Range != nil && h.Range.Buffer != nil && h.Range.Buffer.Len() > 0 {
					writeExcerpt(&sb, p, p.accent, *h.Range, 0)
				}
			}
		}
		if _, err := io.WriteString(w, sb.String()); err != nil {
			return err
		}
	}
	return nil
}

func writeHeader(sb *strings.Builder, p palette, d diag.Diagnostic, opts PrettyOpts) {
	if d.Range != nil {
		sb.WriteString(p.bold.Sprint(location(*d.Range, opts)) + ": ")
	}
	sb.WriteString(p.severity(d.Severity).Sprint(d.Severity.String()))
	sb.WriteString(" " + d.Code.ID() + ": " + d.Message + "\n")
}

func location(sec source.Section, opts PrettyOpts) string {
	id := "<nil>"
	if sec.Buffer != nil {
		id = displayPath(sec.Buffer.ID(), opts.PathMode, opts.BaseDir)
	}
	return id + ":" + sec.Start.String()
}

// writeExcerpt prints the first line of sec (plus context lines before it)
// with a gutter, and underlines the covered columns.
func writeExcerpt(sb *strings.Builder, p palette, mark *color.Color, sec source.Section, context int) {
	startLine, err := safecast.Conv[int](sec.Start.Line)
	if err != nil {
		return
	}
	first := max(1, startLine-context)
	lines := sec.Buffer.Lines(first, startLine-first+1)
	if len(lines) == 0 {
		return
	}
	gutter := len(strconv.Itoa(startLine))
	pad := strings.Repeat(" ", gutter)

	for i, line := range lines {
		num := fmt.Sprintf("%*d", gutter, first+i)
		sb.WriteString(p.accent.Sprint(num+" | ") + expandTabs(line) + "\n")
	}

	line := lines[len(lines)-1]
	startCol, _ := safecast.Conv[int](sec.Start.Column)
	endCol := -1
	if sec.End.Line == sec.Start.Line {
		endCol, _ = safecast.Conv[int](sec.End.Column)
	}
	offset, width := underline(line, startCol, endCol)
	marker := "^" + strings.Repeat("~", width-1)
	sb.WriteString(p.accent.Sprint(pad+" | ") + strings.Repeat(" ", offset) + mark.Sprint(marker) + "\n")
}

// underline returns the display offset and width (at least 1) of the rune
// columns [start, end) of line; end < 0 means to the end of the line.
func underline(line string, start, end int) (offset, width int) {
	runes := []rune(line)
	start = min(max(start, 0), len(runes))
	if end < 0 || end > len(runes) {
		end = len(runes)
	}
	end = max(end, start)
	offset = displayWidth(0, string(runes[:start]))
	width = displayWidth(offset, string(runes[start:end])) - offset
	return offset, max(width, 1)
}

// displayWidth is the terminal column reached after printing text at column,
// with graphemes measured by uniseg and tabs expanded to tabWidth stops.
func displayWidth(column int, text string) int {
	for text != "" {
		chunk, rest, tab := strings.Cut(text, "\t")
		column += uniseg.StringWidth(chunk)
		if tab {
			column += tabWidth - column%tabWidth
		}
		text = rest
	}
	return column
}

func expandTabs(line string) string {
	if !strings.Contains(line, "\t") {
		return line
	}
	var sb strings.Builder
	column := 0
	for line != "" {
		chunk, rest, tab := strings.Cut(line, "\t")
		sb.WriteString(chunk)
		column += uniseg.StringWidth(chunk)
		if tab {
			n := tabWidth - column%tabWidth
			sb.WriteString(strings.Repeat(" ", n))
			column += n
		}
		line = rest
	}
	return sb.String()
}
