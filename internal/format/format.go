// Package format renders the package/dependency model as a report.
package format

import (
	"fmt"
	"io"

	"github.com/observatory-platform/repodeps/internal/pkgdep"
)

// Supported output formats.
const (
	FormatText = "text"
	FormatCSV  = "csv"
	FormatWiki = "wiki"
	FormatJSON = "json"
)

// Options selects the output format and its variants.
type Options struct {
	// Format is one of text, csv, wiki or json.
	Format string
	// All includes external dependencies; otherwise only dependencies
	// provided by an internal package are listed.
	All bool
	// Pretty indents JSON output.
	Pretty bool
}

// Render writes the dependency report for the model to w.
func Render(w io.Writer, d *pkgdep.PkgDep, opts Options) error {
	switch opts.Format {
	case FormatText:
		return renderText(w, d, opts.All)
	case FormatCSV:
		return renderCSV(w, d, opts.All)
	case FormatWiki:
		return renderWiki(w, d, opts.All)
	case FormatJSON:
		return renderJSON(w, d, opts.All, opts.Pretty)
	default:
		return fmt.Errorf("unknown output format %q (expected %s|%s|%s|%s)",
			opts.Format, FormatText, FormatCSV, FormatWiki, FormatJSON)
	}
}
