package export

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/aas-risk-engine/internal/domain"
)

const reportDisclaimer = "Disclaimer: This is a prototype heuristic model for educational purposes " +
	"only. Risk calculations are not clinically validated. Always consult healthcare " +
	"professionals for medical decisions."

// Report renders the scenario as a plain-text risk analysis report: a
// header, the scenario summary, a per-domain risk table grouped by system
// and the intervention list.
func (e *Exporter) Report(sc *domain.Scenario) []byte {
	var buf bytes.Buffer

	title := ToolName + " - Risk Analysis Report"
	buf.WriteString(title + "\n")
	buf.WriteString(strings.Repeat("=", len(title)) + "\n\n")

	fmt.Fprintf(&buf, "Scenario Name: %s\n", sc.Name)
	fmt.Fprintf(&buf, "Category:      %s\n", strings.ToUpper(string(sc.Category)))
	fmt.Fprintf(&buf, "Risk Preset:   %s\n", string(sc.Preset))
	fmt.Fprintf(&buf, "Export Date:   %s\n\n", e.now().UTC().Format("2006-01-02 15:04"))

	buf.WriteString("Risk Summary\n")
	buf.WriteString("------------\n")
	fmt.Fprintf(&buf, "%-22s %18s %18s %18s\n",
		"Domain", "Absolute Risk (%)", "RR vs Population", "Event-Free Years")
	for _, d := range reportedDomains(sc.Risks) {
		risk := sc.Risks[d]
		fmt.Fprintf(&buf, "%-22s %17.1f%% %17.2fx %18.1f\n",
			d.DisplayName(), risk.AbsoluteRiskPct, risk.RRvsPopulation, risk.EventFreeYears)
	}
	buf.WriteString("\n")

	if len(sc.Interventions) > 0 {
		buf.WriteString("Active Interventions\n")
		buf.WriteString("--------------------\n")
		for _, intervention := range sc.Interventions {
			fmt.Fprintf(&buf, "  - %s\n", intervention)
		}
		buf.WriteString("\n")
	}

	buf.WriteString(reportDisclaimer + "\n")
	return buf.Bytes()
}
