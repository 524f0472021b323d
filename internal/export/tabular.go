package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/aas-risk-engine/internal/domain"
)

// Tabular renders the scenario as CSV: one row per domain in display order,
// followed by commented metadata and intervention sections.
func (e *Exporter) Tabular(sc *domain.Scenario) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	header := []string{
		"Domain",
		"Display_Name",
		"Absolute_Risk_Percent",
		"RR_vs_Population",
		"RR_vs_Physio",
		"Event_Free_Years",
		"Active_Multipliers_Count",
	}
	if err := writer.Write(header); err != nil {
		return nil, fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, d := range reportedDomains(sc.Risks) {
		risk := sc.Risks[d]
		row := []string{
			d.String(),
			d.DisplayName(),
			fmt.Sprintf("%.2f", risk.AbsoluteRiskPct),
			fmt.Sprintf("%.3f", risk.RRvsPopulation),
			fmt.Sprintf("%.3f", risk.RRvsPhysiologic),
			fmt.Sprintf("%.1f", risk.EventFreeYears),
			strconv.Itoa(len(risk.ActiveMultipliers)),
		}
		if err := writer.Write(row); err != nil {
			return nil, fmt.Errorf("failed to write CSV row: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush CSV: %w", err)
	}

	buf.WriteString("\n# Scenario Metadata\n")
	writer = csv.NewWriter(&buf)
	metadata := [][]string{
		{"Scenario_Name", sc.Name},
		{"Category", string(sc.Category)},
		{"Preset", string(sc.Preset)},
		{"Export_Date", e.now().UTC().Format(time.RFC3339)},
	}
	if err := writer.WriteAll(metadata); err != nil {
		return nil, fmt.Errorf("failed to write metadata: %w", err)
	}

	buf.WriteString("\n# Active Interventions\n")
	writer = csv.NewWriter(&buf)
	for _, intervention := range sc.Interventions {
		if err := writer.Write([]string{"Intervention", intervention}); err != nil {
			return nil, fmt.Errorf("failed to write intervention: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush CSV: %w", err)
	}

	return buf.Bytes(), nil
}

// reportedDomains orders the report's domains: tracked ones in display
// order, contributor-introduced ones after.
func reportedDomains(risks domain.RiskReport) []domain.Domain {
	domains := make([]domain.Domain, 0, len(risks))
	for _, d := range domain.AllDomains {
		if _, ok := risks[d]; ok {
			domains = append(domains, d)
		}
	}
	for d := range risks {
		if !d.IsValid() {
			domains = append(domains, d)
		}
	}
	return domains
}
