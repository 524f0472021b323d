package export

import (
	"archive/zip"
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/aas-risk-engine/internal/domain"
)

// ExportAll bundles every scenario into one ZIP: a JSON record, a CSV and a
// text report per scenario, plus a cross-scenario summary CSV.
func (e *Exporter) ExportAll() (*File, error) {
	var buf bytes.Buffer
	archive := zip.NewWriter(&buf)

	for _, summary := range e.store.List() {
		sc, err := e.store.Get(summary.ID)
		if err != nil {
			return nil, err
		}
		name := sanitizeFilename(sc.Name)

		record, err := e.Record(sc)
		if err != nil {
			return nil, err
		}
		if err := writeZipEntry(archive, name+".json", record); err != nil {
			return nil, err
		}

		tabular, err := e.Tabular(sc)
		if err != nil {
			return nil, err
		}
		if err := writeZipEntry(archive, name+".csv", tabular); err != nil {
			return nil, err
		}

		if err := writeZipEntry(archive, name+".txt", e.Report(sc)); err != nil {
			return nil, err
		}
	}

	summary, err := e.SummaryCSV()
	if err != nil {
		return nil, err
	}
	if err := writeZipEntry(archive, "scenarios_summary.csv", summary); err != nil {
		return nil, err
	}

	if err := archive.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize ZIP: %w", err)
	}

	return &File{
		Name:     fmt.Sprintf("aas_risk_scenarios_%s.zip", e.now().UTC().Format("20060102_1504")),
		MIMEType: "application/zip",
		Content:  buf.Bytes(),
	}, nil
}

func writeZipEntry(archive *zip.Writer, name string, content []byte) error {
	entry, err := archive.Create(name)
	if err != nil {
		return fmt.Errorf("failed to create ZIP entry %s: %w", name, err)
	}
	if _, err := entry.Write(content); err != nil {
		return fmt.Errorf("failed to write ZIP entry %s: %w", name, err)
	}
	return nil
}

// SummaryCSV renders one row per scenario with the headline risks.
func (e *Exporter) SummaryCSV() ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	header := []string{
		"Scenario_Name",
		"Category",
		"Preset",
		"ASCVD_Risk_Percent",
		"HF_Risk_Percent",
		"Thrombosis_Risk_Percent",
		"Diabetes_Risk_Percent",
		"Intervention_Count",
		"Created_Date",
	}
	if err := writer.Write(header); err != nil {
		return nil, fmt.Errorf("failed to write summary header: %w", err)
	}

	for _, summary := range e.store.List() {
		sc, err := e.store.Get(summary.ID)
		if err != nil {
			return nil, err
		}
		row := []string{
			sc.Name,
			string(sc.Category),
			string(sc.Preset),
			fmt.Sprintf("%.1f", sc.Risks[domain.DomainASCVD].AbsoluteRiskPct),
			fmt.Sprintf("%.1f", sc.Risks[domain.DomainHeartFailure].AbsoluteRiskPct),
			fmt.Sprintf("%.1f", sc.Risks[domain.DomainThrombosis].AbsoluteRiskPct),
			fmt.Sprintf("%.1f", sc.Risks[domain.DomainDiabetes].AbsoluteRiskPct),
			strconv.Itoa(len(sc.Interventions)),
			sc.CreatedAt.UTC().Format(time.RFC3339),
		}
		if err := writer.Write(row); err != nil {
			return nil, fmt.Errorf("failed to write summary row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush summary CSV: %w", err)
	}
	return buf.Bytes(), nil
}
