package diagfmt

import (
	"fmt"
	"io"

	"lime/internal/diag"
)

// Short prints one line per diagnostic:
//
//	path:line:col: SEVERITY CODE: message
//
// Diagnostics without a range start with the severity.
func Short(w io.Writer, bag *diag.Bag, mode PathMode, base string) error {
	opts := PrettyOpts{PathMode: mode, BaseDir: base}
	for _, d := range bag.Items() {
		prefix := ""
		if d.Range != nil {
			prefix = location(*d.Range, opts) + ": "
		}
		if _, err := fmt.Fprintf(w, "%s%s %s: %s\n", prefix, d.Severity, d.Code.ID(), d.Message); err != nil {
			return err
		}
	}
	return nil
}
