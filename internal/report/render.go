// Package report renders a model run for people: a styled or plain console
// report, a CSV committee table, and a markdown results section that can be
// written back into the planning document.
package report

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/chargefleet/chargefleet/internal/engine"
)

// Rendering constants.
const (
	boxWidth         = 64
	titlePadding     = 4
	notAvailable     = "n/a"
	neverRecoversLbl = "never"
)

// Options controls rendering.
type Options struct {
	// Styled selects the lipgloss box rendering; plain text otherwise.
	// Callers typically set this from terminal detection on the writer.
	Styled bool
	// Precision is the number of decimals for monetary figures.
	Precision int
	// Sections limits the report to the named sections. Valid names are
	// SectionMarket, SectionStation, SectionProject, SectionSensitivity
	// and SectionReits. Empty means all. Partial reports omit the
	// verdict footer, which is only meaningful over the full run.
	Sections []string
}

// Section names accepted by Options.Sections.
const (
	SectionMarket      = "market"
	SectionStation     = "station"
	SectionProject     = "project"
	SectionSensitivity = "sensitivity"
	SectionReits       = "reits"
)

// Render writes the full run report to w.
func Render(w io.Writer, results *engine.Results, opts Options) error {
	if results == nil {
		return nil
	}
	if opts.Precision <= 0 {
		opts.Precision = 1
	}

	if opts.Styled {
		return renderStyled(w, results, opts)
	}
	return renderPlain(w, results, opts)
}

// renderStyled renders the boxed, colorized report.
func renderStyled(w io.Writer, r *engine.Results, opts Options) error {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	sectionStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("33"))
	borderStyle := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1).
		Width(boxWidth)

	var content strings.Builder
	content.WriteString(titleStyle.Render("CHARGING FLEET VIABILITY"))
	content.WriteString("\n")
	content.WriteString(strings.Repeat("═", boxWidth-titlePadding))
	content.WriteString("\n\n")

	for i, section := range sections(r, opts) {
		if i > 0 {
			content.WriteString("\n")
		}
		content.WriteString(sectionStyle.Render(section.title))
		content.WriteString("\n")
		for _, line := range section.lines {
			content.WriteString("  ")
			content.WriteString(line)
			content.WriteString("\n")
		}
	}

	if len(opts.Sections) == 0 {
		content.WriteString("\n")
		content.WriteString(renderVerdict(r))
		content.WriteString("\n")
	}

	_, err := fmt.Fprintln(w, borderStyle.Render(content.String()))
	return err
}

// renderPlain renders the report as unadorned text for pipes and files.
func renderPlain(w io.Writer, r *engine.Results, opts Options) error {
	if _, err := fmt.Fprintln(w, "CHARGING FLEET VIABILITY"); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, "========================"); err != nil {
		return err
	}

	for _, section := range sections(r, opts) {
		if _, err := fmt.Fprintf(w, "\n%s\n%s\n", section.title, strings.Repeat("-", len(section.title))); err != nil {
			return err
		}
		for _, line := range section.lines {
			if _, err := fmt.Fprintf(w, "  %s\n", line); err != nil {
				return err
			}
		}
	}

	if len(opts.Sections) > 0 {
		return nil
	}
	_, err := fmt.Fprintf(w, "\n%s\n", plainVerdict(r))
	return err
}

// section is one titled block of report lines.
type section struct {
	name  string
	title string
	lines []string
}

// sections builds the report body shared by both render paths.
func sections(r *engine.Results, opts Options) []section {
	p := message.NewPrinter(language.English)
	prec := opts.Precision

	market := section{
		name:  SectionMarket,
		title: "MARKET",
		lines: []string{
			p.Sprintf("EV stock forecast %d: %.0f 万 vehicles", r.Market.Year, r.Market.EVStock),
			p.Sprintf("Charger demand %d: %.0f 万 points", r.Market.Year, r.Market.ChargerDemand),
			p.Sprintf("Assumed CAGR: %s", percent(r.Parameters.AnnualGrowthRate, 0)),
		},
	}

	station := section{
		name:  SectionStation,
		title: "SINGLE STATION",
		lines: []string{
			p.Sprintf("Annual energy: %.0f kWh", r.Station.Revenue.AnnualChargingKWh),
			p.Sprintf("Revenue: %.*f 万", prec, r.Station.Revenue.Total/10_000),
			p.Sprintf("EBITDA: %.*f 万 (%s margin)", prec, r.Station.EBITDA/10_000,
				percent(r.Station.EBITDAMargin, 1)),
			p.Sprintf("Net profit: %.*f 万 (%s margin)", prec, r.Station.NetProfit/10_000,
				percent(r.Station.NetMargin, 1)),
			p.Sprintf("Payback: %s", payback(r.Station.PaybackYears, prec)),
		},
	}

	project := section{
		name:  SectionProject,
		title: "PROJECT",
		lines: []string{
			p.Sprintf("Fleet size: %d stations", r.Parameters.TotalStations),
			p.Sprintf("Total investment: %.0f 亿", r.TotalInvestmentYi),
			p.Sprintf("IRR: %s", irrLabel(r.IRR, r.IRRDefined)),
			p.Sprintf("NPV@%s: %.*f 亿", percent(r.DiscountRate, 0), prec, r.NPV),
		},
	}

	s := r.Sensitivity
	sensitivity := section{
		name:  SectionSensitivity,
		title: "RISK (MONTE CARLO)",
		lines: []string{
			p.Sprintf("Trials accepted: %d of %d", s.Accepted, s.Trials),
			p.Sprintf("IRR mean: %s  std: %s", percent(s.MeanIRR, 1), percent(s.StdIRR, 1)),
			p.Sprintf("IRR 5%%-95%%: %s - %s", percent(s.Percentiles.P5, 1), percent(s.Percentiles.P95, 1)),
			p.Sprintf("P(IRR > 10%%): %s", percent(s.ProbAbove10, 1)),
			p.Sprintf("P(IRR > 15%%): %s", percent(s.ProbAbove15, 1)),
		},
	}

	v := r.Valuation
	reits := section{
		name:  SectionReits,
		title: "SECURITIZATION",
		lines: []string{
			p.Sprintf("First package: %d stations", v.PackageStations),
			p.Sprintf("Package NOI: %.*f 亿", prec, v.PackageNOI),
			p.Sprintf("Asset value: %.*f 亿", prec, v.AssetValue),
			p.Sprintf("Distribution yield: %s (requirement met: %s)",
				percent(v.DistributionYield, 1), yesNo(v.MeetsRequirement)),
			p.Sprintf("Public proceeds: %.*f 亿", prec, v.PublicProceeds),
		},
	}

	all := []section{market, station, project, sensitivity, reits}
	if len(opts.Sections) == 0 {
		return all
	}

	wanted := make(map[string]bool, len(opts.Sections))
	for _, name := range opts.Sections {
		wanted[name] = true
	}
	filtered := make([]section, 0, len(all))
	for _, s := range all {
		if wanted[s.name] {
			filtered = append(filtered, s)
		}
	}
	return filtered
}

// renderVerdict produces the styled one-line recommendation footer.
func renderVerdict(r *engine.Results) string {
	ok := r.IRRDefined && r.IRR > r.DiscountRate && r.Valuation.MeetsRequirement
	style := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203"))
	if ok {
		style = style.Foreground(lipgloss.Color("42"))
	}
	return style.Render(plainVerdict(r))
}

// plainVerdict states whether the project clears its hurdle rate and the
// distribution requirement.
func plainVerdict(r *engine.Results) string {
	if !r.IRRDefined {
		return "VERDICT: IRR not computable for this cash-flow profile"
	}
	if r.IRR > r.DiscountRate && r.Valuation.MeetsRequirement {
		return fmt.Sprintf("VERDICT: IRR %s clears the %s hurdle; distribution requirement met",
			percent(r.IRR, 1), percent(r.DiscountRate, 0))
	}
	return fmt.Sprintf("VERDICT: below hurdle or distribution shortfall (IRR %s, hurdle %s)",
		percent(r.IRR, 1), percent(r.DiscountRate, 0))
}

// percent formats a ratio as a percentage with the given decimals.
func percent(v float64, decimals int) string {
	return fmt.Sprintf("%.*f%%", decimals, v*100)
}

// irrLabel formats an IRR that may be undefined. Undefined never renders as
// zero.
func irrLabel(irr float64, defined bool) string {
	if !defined {
		return notAvailable
	}
	return percent(irr, 1)
}

// payback formats a payback period, with +Inf rendered as "never".
func payback(years float64, prec int) string {
	if math.IsInf(years, 1) {
		return neverRecoversLbl
	}
	return fmt.Sprintf("%.*f years", prec, years)
}

// yesNo renders a boolean for report output.
func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}
