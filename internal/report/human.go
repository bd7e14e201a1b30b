package report

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jmylchreest/albedo/internal/audit"
	"github.com/jmylchreest/albedo/internal/colour"
	"github.com/jmylchreest/albedo/internal/scan"
	"github.com/jmylchreest/albedo/internal/scan/tailwind"
)

const (
	heavyRule  = "━"
	doubleRule = "═"
	lightRule  = "─"
)

// Check renders one block per analyzed pair, in input order.
func (p *Printer) Check(records []Record) {
	for i, rec := range records {
		p.checkBlock(i+1, rec)
	}
	fmt.Fprintln(p.w)
}

func (p *Printer) checkBlock(n int, rec Record) {
	rule := strings.Repeat(heavyRule, 50)
	fmt.Fprintf(p.w, "\n%s\n", rule)
	fmt.Fprintf(p.w, "%s\n", p.styled(p.heading, fmt.Sprintf("  PAIR %d", n)))
	fmt.Fprintln(p.w, rule)

	if rec.Err != nil {
		fmt.Fprintf(p.w, "  %s %v\n", p.styled(p.fail, "Error:"), rec.Err)
		fmt.Fprintf(p.w, "  Inputs: text=%q background=%q\n", rec.TextInput, rec.BgInput)
		return
	}

	r := rec.Result
	fmt.Fprintf(p.w, "  Text:       %s\n", p.Swatch(r.TextColour))
	fmt.Fprintf(p.w, "  Background: %s\n", p.Swatch(r.BackgroundColour))
	if s := p.Sample(r.TextColour, r.BackgroundColour); s != "" {
		fmt.Fprintf(p.w, "  Sample:     %s\n", s)
	}
	fmt.Fprintf(p.w, "  Contrast:   %.2f:1\n", r.Ratio)

	fmt.Fprintln(p.w)
	fmt.Fprintln(p.w, "  WCAG compliance:")
	fmt.Fprintf(p.w, "    AA  body text  (4.5:1): %s\n", p.passFail(r.AABody))
	fmt.Fprintf(p.w, "    AA  large text (3.0:1): %s\n", p.passFail(r.AALarge))
	fmt.Fprintf(p.w, "    AAA body text  (7.0:1): %s\n", p.passFail(r.AAABody))
	fmt.Fprintf(p.w, "    AAA large text (4.5:1): %s\n", p.passFail(r.AAALarge))
	if r.RequiredRatio > 0 && r.PassesRequired != nil {
		fmt.Fprintf(p.w, "    Required      (%.2g:1): %s\n", r.RequiredRatio, p.passFail(*r.PassesRequired))
	}

	if r.FixAA != "" || r.FixAAA != "" {
		fmt.Fprintln(p.w)
		fmt.Fprintln(p.w, "  Suggested fixes (text colour, hue preserved):")
		if r.FixAA != "" {
			fmt.Fprintf(p.w, "    for AA:  %s (%.2f:1)\n", p.Swatch(r.FixAA), r.FixAARatio)
		}
		if r.FixAAA != "" {
			fmt.Fprintf(p.w, "    for AAA: %s (%.2f:1)\n", p.Swatch(r.FixAAA), r.FixAAARatio)
		}
	}

	if len(r.CVD) > 0 {
		fmt.Fprintln(p.w)
		fmt.Fprintln(p.w, "  Colour vision impact:")
		for _, c := range r.CVD {
			line := fmt.Sprintf("    %-13s %5.2f:1  dE %5.1f  %s", c.Type, c.SimulatedRatio, c.DeltaE, p.riskBadge(c.Risk))
			if note := riskNote(c.Risk); note != "" {
				line += "  " + note
			}
			fmt.Fprintln(p.w, line)
		}
	}

	for _, wmsg := range r.HueWarnings {
		fmt.Fprintf(p.w, "  %s %s\n", p.styled(p.warning, "Hue warning:"), wmsg)
	}
}

// Audit renders the full scan report: header, summary counts, grouped
// findings, the summary table and the closing verdict.
func (p *Printer) Audit(res *audit.Result, root string) {
	rule := strings.Repeat(doubleRule, 60)

	fmt.Fprintf(p.w, "\n%s\n", rule)
	fmt.Fprintf(p.w, "%s\n", p.styled(p.heading, "  COLOUR CONTRAST SCAN REPORT"))
	fmt.Fprintln(p.w, rule)
	if root != "" {
		fmt.Fprintf(p.w, "  Root:  %s\n", root)
	}
	fmt.Fprintf(p.w, "  Found %d colour pair(s) in %d file(s), analysed in %dms\n",
		res.Summary.Total, countFiles(res.Items), res.ElapsedMS)
	fmt.Fprintln(p.w)
	fmt.Fprintf(p.w, "  Fail AA:   %s\n", p.count(res.Summary.FailAA, p.fail))
	fmt.Fprintf(p.w, "  AA only:   %s\n", p.count(res.Summary.AAOnly, p.warning))
	fmt.Fprintf(p.w, "  Pass AAA:  %s\n", p.count(res.Summary.PassAAA, p.pass))
	if res.Summary.Errors > 0 {
		fmt.Fprintf(p.w, "  Errors:    %s\n", p.count(res.Summary.Errors, p.fail))
	}
	if n := res.Summary.CVDCritical + res.Summary.CVDHigh; n > 0 {
		fmt.Fprintf(p.w, "  CVD risk:  %s critical, %d high\n",
			p.count(res.Summary.CVDCritical, p.critical), res.Summary.CVDHigh)
	}

	failing, aaOnly, passing, errored := groupItems(res.Items)

	if len(failing) > 0 {
		p.section("FAILING PAIRS (below AA 4.5:1)")
		for _, it := range failing {
			p.auditEntry(it, true)
		}
	}
	if len(aaOnly) > 0 {
		p.section("AA ONLY (below AAA 7.0:1)")
		for _, it := range aaOnly {
			p.auditEntry(it, true)
		}
	}
	if len(passing) > 0 {
		p.section("PASSING (AAA)")
		for _, it := range passing {
			p.passingEntry(it)
		}
	}
	if len(errored) > 0 {
		p.section("ERRORS")
		for _, it := range errored {
			fmt.Fprintf(p.w, "  %s\n", p.itemHead(it))
			fmt.Fprintf(p.w, "      %s (text=%q bg=%q)\n", it.Error, it.TextInput, it.BgInput)
		}
	}

	if tbl := summaryTable(res.Items); tbl.Len() > 0 {
		p.section("SUMMARY")
		for _, line := range strings.Split(strings.TrimRight(tbl.Render(), "\n"), "\n") {
			fmt.Fprintf(p.w, "  %s\n", line)
		}
	}

	fmt.Fprintf(p.w, "\n%s\n", rule)
	actionable := res.Summary.FailAA + res.Summary.Errors
	if actionable == 0 {
		fmt.Fprintf(p.w, "  %s\n", p.styled(p.pass, "✓ All analysed pairs pass WCAG AA."))
	} else {
		fmt.Fprintf(p.w, "  %s\n", p.styled(p.fail,
			fmt.Sprintf("✗ %d of %d pair(s) need attention to meet WCAG AA.", actionable, res.Summary.Total)))
	}
	fmt.Fprintln(p.w, rule)
}

func (p *Printer) section(title string) {
	rule := strings.Repeat(lightRule, 60)
	fmt.Fprintf(p.w, "\n%s\n", rule)
	fmt.Fprintf(p.w, "%s\n", p.styled(p.heading, "  "+title))
	fmt.Fprintln(p.w, rule)
}

func (p *Printer) count(n int, st lipgloss.Style) string {
	s := fmt.Sprintf("%d", n)
	if n == 0 {
		return s
	}
	return p.styled(st, s)
}

func (p *Printer) itemHead(it audit.Item) string {
	head := location(it)
	if it.Context != "" {
		head += "  " + it.Context
	}
	return fmt.Sprintf("%s  [%s]", head, it.Scanner)
}

func (p *Printer) auditEntry(it audit.Item, showFixes bool) {
	fmt.Fprintf(p.w, "  %s\n", p.itemHead(it))

	r := it.Result
	line := fmt.Sprintf("      %s on %s  %.2f:1", p.Swatch(r.TextColour), p.Swatch(r.BackgroundColour), r.Ratio)
	if it.Role != "" && it.Role != scan.RoleText {
		line += fmt.Sprintf("  (%s, needs %.2g:1)", it.Role, colour.AALargeRatio)
	}
	fmt.Fprintln(p.w, line)

	if showFixes {
		if r.FixAA != "" {
			fmt.Fprintf(p.w, "      fix AA:  %s (%.2f:1)\n", p.Swatch(r.FixAA), r.FixAARatio)
		}
		if r.FixAAA != "" {
			fmt.Fprintf(p.w, "      fix AAA: %s (%.2f:1)\n", p.Swatch(r.FixAAA), r.FixAAARatio)
		}
		if hint := tailwindHint(it); hint != "" {
			fmt.Fprintf(p.w, "      nearest utility: %s\n", hint)
		}
	}

	if c, ok := worstCVD(r.CVD); ok {
		fmt.Fprintf(p.w, "      cvd: %s %.2f:1 %s\n", c.Type, c.SimulatedRatio, p.riskBadge(c.Risk))
	}
}

func (p *Printer) passingEntry(it audit.Item) {
	fmt.Fprintf(p.w, "  %s  %.2f:1\n", p.itemHead(it), it.Result.Ratio)
}

func location(it audit.Item) string {
	if it.Line > 0 {
		return fmt.Sprintf("%s:%d", it.File, it.Line)
	}
	return it.File
}

func countFiles(items []audit.Item) int {
	files := make(map[string]bool, len(items))
	for _, it := range items {
		files[it.File] = true
	}
	return len(files)
}

func groupItems(items []audit.Item) (failing, aaOnly, passing, errored []audit.Item) {
	for _, it := range items {
		switch {
		case it.Result == nil:
			errored = append(errored, it)
		case !it.Result.AABody:
			failing = append(failing, it)
		case !it.Result.AAABody:
			aaOnly = append(aaOnly, it)
		default:
			passing = append(passing, it)
		}
	}
	return failing, aaOnly, passing, errored
}

// summaryTable lists every pair that is not a clean AAA pass.
func summaryTable(items []audit.Item) *Table {
	tbl := NewTable("SCANNER", "LOCATION", "CONTEXT", "COLOURS", "RATIO", "STATUS")
	tbl.SetColumnMaxWidth(2, 32)
	for _, it := range items {
		if it.Result != nil && it.Result.AAABody {
			continue
		}
		if it.Result == nil {
			tbl.AddRow(it.Scanner, location(it), it.Context, fmt.Sprintf("%s / %s", it.TextInput, it.BgInput), "-", "error")
			continue
		}
		status := "AA only"
		if !it.Result.AABody {
			status = "fail AA"
		}
		tbl.AddRow(it.Scanner, location(it), it.Context,
			fmt.Sprintf("%s on %s", it.Result.TextColour, it.Result.BackgroundColour),
			fmt.Sprintf("%.2f:1", it.Result.Ratio), status)
	}
	return tbl
}

var riskOrder = map[string]int{
	colour.RiskCritical: 3,
	colour.RiskHigh:     2,
	colour.RiskWarning:  1,
	colour.RiskOK:       0,
}

// worstCVD picks the most severe simulated deficiency; ok is false
// when there is nothing worse than RiskOK to report.
func worstCVD(cvds []colour.CVDAnalysis) (colour.CVDAnalysis, bool) {
	var worst colour.CVDAnalysis
	rank := 0
	for _, c := range cvds {
		if r := riskOrder[c.Risk]; r > rank {
			rank = r
			worst = c
		}
	}
	return worst, rank > 0
}

// tailwindHint names the palette class closest to the suggested fix
// for pairs found by the tailwind scanner.
func tailwindHint(it audit.Item) string {
	if it.Scanner != "tailwind" || it.Result == nil {
		return ""
	}
	fix := it.Result.FixAA
	if fix == "" {
		fix = it.Result.FixAAA
	}
	if fix == "" {
		return ""
	}
	prefix := "text"
	switch it.Role {
	case scan.RoleBorder:
		prefix = "border"
	case scan.RoleStroke:
		prefix = "stroke"
	case scan.RoleGraphic:
		prefix = "fill"
	}
	return tailwind.NearestClass(fix, prefix, "")
}
