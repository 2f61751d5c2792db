package report

import (
	"fmt"
	"io"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/chargefleet/chargefleet/internal/finance"
)

// RenderExpansion writes the rolling securitization schedule to w, one line
// per follow-on year.
func RenderExpansion(w io.Writer, plan []finance.ExpansionYear, opts Options) error {
	if len(plan) == 0 {
		_, err := fmt.Fprintln(w, "No follow-on securitization years in plan")
		return err
	}
	if opts.Precision <= 0 {
		opts.Precision = 1
	}

	p := message.NewPrinter(language.English)
	if _, err := fmt.Fprintln(w, "ROLLING SECURITIZATION"); err != nil {
		return err
	}
	for _, year := range plan {
		_, err := p.Fprintf(w, "  Year %d: +%d stations (%d total), %.*f 亿 securitized, %.1fx first package\n",
			year.Year, year.NewStations, year.CumulativeStations,
			opts.Precision, year.CumulativeValuation, year.ValuationMultiple)
		if err != nil {
			return err
		}
	}
	return nil
}
