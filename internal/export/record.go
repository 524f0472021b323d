package export

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/aas-risk-engine/internal/domain"
)

// RecordMetadata attributes an exported record.
type RecordMetadata struct {
	ExportDate   time.Time `json:"export_date"`
	ToolName     string    `json:"tool_name"`
	ModelVersion string    `json:"model_version"`
}

// RecordScenario carries the scenario identity inside a record.
type RecordScenario struct {
	Name      string              `json:"name"`
	ID        string              `json:"id"`
	CreatedAt time.Time           `json:"created_at"`
	Category  domain.RiskCategory `json:"category"`
	Preset    domain.PresetName   `json:"preset"`
}

// Record is the JSON export document. UserData round-trips: an exported
// record can be imported back as scenario input.
type Record struct {
	Metadata      RecordMetadata         `json:"metadata"`
	Scenario      RecordScenario         `json:"scenario"`
	UserData      domain.Input           `json:"user_data"`
	Exposure      domain.ExposureMetrics `json:"exposure_metrics"`
	Risks         domain.RiskReport      `json:"risks"`
	Interventions []string               `json:"interventions"`
}

// Record renders the scenario as an indented JSON document.
func (e *Exporter) Record(sc *domain.Scenario) ([]byte, error) {
	record := Record{
		Metadata: RecordMetadata{
			ExportDate:   e.now().UTC(),
			ToolName:     ToolName,
			ModelVersion: domain.ModelVersion,
		},
		Scenario: RecordScenario{
			Name:      sc.Name,
			ID:        sc.ID,
			CreatedAt: sc.CreatedAt,
			Category:  sc.Category,
			Preset:    sc.Preset,
		},
		UserData:      sc.Input,
		Exposure:      sc.Exposure,
		Risks:         sc.Risks,
		Interventions: sc.Interventions,
	}

	content, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal record: %w", err)
	}
	return content, nil
}

// ImportRecord parses an exported JSON record back into scenario input.
// Derived sections (risks, exposure) are ignored; the input is recomputed on
// creation.
func ImportRecord(data []byte) (name string, preset domain.PresetName, raw domain.RawInput, err error) {
	var record struct {
		Scenario RecordScenario  `json:"scenario"`
		UserData domain.RawInput `json:"user_data"`
	}
	if err := json.Unmarshal(data, &record); err != nil {
		return "", "", domain.RawInput{}, fmt.Errorf("failed to parse record: %w", err)
	}
	return record.Scenario.Name, record.Scenario.Preset, record.UserData, nil
}
