package report

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/chargefleet/chargefleet/internal/engine"
)

// Markers delimiting the generated results block inside the planning
// document. Everything between them is owned by chargefleet and rewritten
// on every run; the rest of the document is left untouched.
const (
	resultsBeginMarker = "<!-- chargefleet:results -->"
	resultsEndMarker   = "<!-- /chargefleet:results -->"
)

// ResultsMarkdown renders the generated results block, markers included.
func ResultsMarkdown(r *engine.Results, now time.Time) string {
	var b strings.Builder

	b.WriteString(resultsBeginMarker)
	b.WriteString("\n\n## Computed Results\n\n")
	fmt.Fprintf(&b, "*Updated %s (run %s)*\n\n", now.Format("2006-01-02 15:04:05"), r.RunID)

	b.WriteString("### Core metrics\n\n")
	fmt.Fprintf(&b, "- Total investment: %.0f 亿\n", r.TotalInvestmentYi)
	fmt.Fprintf(&b, "- Station IRR: %s\n", percent(r.StationIRR, 1))
	fmt.Fprintf(&b, "- Project IRR: %s\n", irrLabel(r.IRR, r.IRRDefined))
	fmt.Fprintf(&b, "- NPV@%s: %.1f 亿\n", percent(r.DiscountRate, 0), r.NPV)
	fmt.Fprintf(&b, "- Payback period: %s\n", payback(r.Station.PaybackYears, 1))
	fmt.Fprintf(&b, "- REITs valuation: %.1f 亿\n", r.Valuation.AssetValue)
	fmt.Fprintf(&b, "- Distribution yield: %s\n\n", percent(r.Valuation.DistributionYield, 1))

	b.WriteString("### Single station\n\n")
	fmt.Fprintf(&b, "- Annual revenue: %.1f 万\n", r.Station.Revenue.Total/10_000)
	fmt.Fprintf(&b, "- EBITDA: %.1f 万\n", r.Station.EBITDA/10_000)
	fmt.Fprintf(&b, "- Net profit: %.1f 万\n", r.Station.NetProfit/10_000)
	fmt.Fprintf(&b, "- EBITDA margin: %s\n\n", percent(r.Station.EBITDAMargin, 1))

	s := r.Sensitivity
	b.WriteString("### Risk (Monte Carlo)\n\n")
	fmt.Fprintf(&b, "- IRR mean: %s\n", percent(s.MeanIRR, 1))
	fmt.Fprintf(&b, "- IRR std: %s\n", percent(s.StdIRR, 1))
	fmt.Fprintf(&b, "- IRR 5%%-95%%: %s - %s\n", percent(s.Percentiles.P5, 1), percent(s.Percentiles.P95, 1))
	fmt.Fprintf(&b, "- P(IRR > 10%%): %s\n\n", percent(s.ProbAbove10, 1))

	fmt.Fprintf(&b, "%s\n\n", plainVerdict(r))
	b.WriteString(resultsEndMarker)
	b.WriteString("\n")

	return b.String()
}

// InjectResults replaces the marked results block in document, or appends
// one when no markers exist yet. A begin marker without its end marker means
// the previous block was never terminated; everything from the begin marker
// on is stale results output and is replaced wholesale.
func InjectResults(document string, block string) string {
	begin := strings.Index(document, resultsBeginMarker)
	if begin == -1 {
		if document != "" && !strings.HasSuffix(document, "\n") {
			document += "\n"
		}
		return document + "\n" + block
	}

	end := strings.Index(document[begin:], resultsEndMarker)
	if end == -1 {
		return document[:begin] + block
	}

	afterEnd := begin + end + len(resultsEndMarker)
	// Swallow the newline the previous block ended with.
	if afterEnd < len(document) && document[afterEnd] == '\n' {
		afterEnd++
	}
	return document[:begin] + block + document[afterEnd:]
}

// UpdateDocument rewrites the results block of the planning document at
// path in place.
func UpdateDocument(path string, r *engine.Results, now time.Time) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading document %s: %w", path, err)
	}

	updated := InjectResults(string(data), ResultsMarkdown(r, now))
	if err := os.WriteFile(path, []byte(updated), 0600); err != nil {
		return fmt.Errorf("updating document %s: %w", path, err)
	}
	return nil
}
