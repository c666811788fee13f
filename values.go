package cmdline

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// PrintEntries writes the parsed options, one per line, together with
// their declared and captured arguments, to standard error.
func (p *Parser) PrintEntries() error {
	return p.WriteEntries(os.Stderr)
}

// WriteEntries writes the parsed options, one per line, together with
// their declared and captured arguments, to w. Columns are aligned:
// name, short name, declared argument count, captured arguments.
// Returns the first error encountered while writing.
func (p *Parser) WriteEntries(w io.Writer) error {
	// Find max length of names, short names, and counts
	mxName, mxShort, mxCount := 0, 0, 0
	for _, e := range p.entries {
		mxName = max(mxName, len(e.Option.RealName()))
		mxShort = max(mxShort, len(e.Option.RealShortName()))
		mxCount = max(mxCount, len(strconv.Itoa(e.Option.ArgCount)))
	}

	for _, e := range p.entries {
		_, err := fmt.Fprintf(w, "%-*s   %-*s   %*d   [%s]\n",
			mxName, e.Option.RealName(), mxShort, e.Option.RealShortName(),
			mxCount, e.Option.ArgCount, strings.Join(e.Args, " "))
		if err != nil {
			return err
		}
	}

	return nil
}
