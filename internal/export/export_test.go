package export

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aas-risk-engine/internal/coeff"
	"github.com/aas-risk-engine/internal/domain"
	"github.com/aas-risk-engine/internal/engine"
	"github.com/aas-risk-engine/internal/scenario"
)

func newTestStore(t *testing.T) *scenario.Store {
	t.Helper()
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	coeffs, err := coeff.NewStore("", 0, logger)
	require.NoError(t, err)
	return scenario.NewStore(engine.NewEngine(coeffs, nil, logger), nil, logger)
}

func seedScenario(t *testing.T, store *scenario.Store, name string) *domain.Scenario {
	t.Helper()
	boolTrue := true
	raw := domain.RawInput{
		Regimen: []domain.DoseEntry{
			{Compound: "testosterone", WeeklyMG: 400, StartWeek: 1, DurationWeeks: 16},
		},
		Interventions: domain.RawInterventions{Metformin: &boolTrue},
	}
	sc, err := store.Create(context.Background(), name, raw, "")
	require.NoError(t, err)
	return sc
}

func TestParseFormat(t *testing.T) {
	for _, valid := range []string{"json", "CSV", " report ", "zip"} {
		_, err := ParseFormat(valid)
		assert.NoError(t, err, valid)
	}

	_, err := ParseFormat("pdf")
	assert.ErrorIs(t, err, domain.ErrUnsupportedFormat)
	_, err = ParseFormat("")
	assert.ErrorIs(t, err, domain.ErrUnsupportedFormat)
}

func TestExport_UnknownScenario(t *testing.T) {
	exporter := NewExporter(newTestStore(t))

	_, err := exporter.Export("missing", FormatJSON)
	assert.ErrorIs(t, err, domain.ErrScenarioNotFound)
}

func TestExport_RecordRoundTrips(t *testing.T) {
	store := newTestStore(t)
	sc := seedScenario(t, store, "Cruise 400")
	exporter := NewExporter(store)

	file, err := exporter.Export(sc.ID, FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, "Cruise_400.json", file.Name)
	assert.Equal(t, "application/json", file.MIMEType)

	var record Record
	require.NoError(t, json.Unmarshal(file.Content, &record))
	assert.Equal(t, ToolName, record.Metadata.ToolName)
	assert.Equal(t, domain.ModelVersion, record.Metadata.ModelVersion)
	assert.Equal(t, sc.Name, record.Scenario.Name)
	assert.Len(t, record.Risks, len(domain.AllDomains))

	// The record's user data recreates an identical scenario.
	name, preset, raw, err := ImportRecord(file.Content)
	require.NoError(t, err)
	assert.Equal(t, "Cruise 400", name)

	imported, err := store.Create(context.Background(), name, raw, preset)
	require.NoError(t, err)
	assert.Equal(t, sc.Risks, imported.Risks)
	assert.Equal(t, sc.Category, imported.Category)
}

func TestImportRecord_RejectsGarbage(t *testing.T) {
	_, _, _, err := ImportRecord([]byte("{not json"))
	assert.Error(t, err)
}

func TestExport_Tabular(t *testing.T) {
	store := newTestStore(t)
	sc := seedScenario(t, store, "Cruise 400")
	exporter := NewExporter(store)

	file, err := exporter.Export(sc.ID, FormatCSV)
	require.NoError(t, err)
	assert.Equal(t, "text/csv", file.MIMEType)

	content := string(file.Content)
	lines := strings.Split(strings.TrimSpace(content), "\n")
	assert.True(t, strings.HasPrefix(lines[0], "Domain,Display_Name,"))

	// One row per domain in display order, ASCVD first.
	assert.True(t, strings.HasPrefix(lines[1], "ascvd,ASCVD,"))
	assert.Contains(t, content, "# Scenario Metadata")
	assert.Contains(t, content, "Scenario_Name,Cruise 400")
	assert.Contains(t, content, "# Active Interventions")
	assert.Contains(t, content, "Intervention,Metformin")
}

func TestExport_Report(t *testing.T) {
	store := newTestStore(t)
	sc := seedScenario(t, store, "Cruise 400")
	exporter := NewExporter(store)

	file, err := exporter.Export(sc.ID, FormatReport)
	require.NoError(t, err)
	assert.Equal(t, "text/plain", file.MIMEType)

	content := string(file.Content)
	assert.Contains(t, content, ToolName)
	assert.Contains(t, content, "Scenario Name: Cruise 400")
	assert.Contains(t, content, "Risk Summary")
	assert.Contains(t, content, "ASCVD")
	assert.Contains(t, content, "- Metformin")
	assert.Contains(t, content, "Disclaimer:")
}

func TestExportAll_Bundle(t *testing.T) {
	store := newTestStore(t)
	seedScenario(t, store, "Scenario A")
	seedScenario(t, store, "Scenario B")
	exporter := NewExporter(store)

	file, err := exporter.Export("", FormatZip)
	require.NoError(t, err)
	assert.Equal(t, "application/zip", file.MIMEType)

	reader, err := zip.NewReader(bytes.NewReader(file.Content), int64(len(file.Content)))
	require.NoError(t, err)

	names := make(map[string]bool, len(reader.File))
	for _, f := range reader.File {
		names[f.Name] = true
	}
	for _, expected := range []string{
		"Scenario_A.json", "Scenario_A.csv", "Scenario_A.txt",
		"Scenario_B.json", "Scenario_B.csv", "Scenario_B.txt",
		"scenarios_summary.csv",
	} {
		assert.True(t, names[expected], expected)
	}
	assert.Len(t, reader.File, 7)
}

func TestSummaryCSV(t *testing.T) {
	store := newTestStore(t)
	seedScenario(t, store, "Only One")
	exporter := NewExporter(store)

	content, err := exporter.SummaryCSV()
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(content)), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "Scenario_Name,Category,Preset,ASCVD_Risk_Percent"))
	assert.True(t, strings.HasPrefix(lines[1], "Only One,"))
}
