// Package scenario manages named what-if scenarios: an in-memory
// authoritative store with full recomputation on every write and an optional
// durable archive behind it.
package scenario

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/aas-risk-engine/internal/domain"
	"github.com/aas-risk-engine/internal/engine"
	"github.com/aas-risk-engine/internal/exposure"
)

// Store holds all scenarios in memory. The archive, when present, is a
// write-behind copy; archive failures are logged and never fail the
// operation.
type Store struct {
	mu        sync.RWMutex
	scenarios map[string]*domain.Scenario
	engine    *engine.Engine
	archive   domain.Archive
	logger    *logrus.Logger
}

// NewStore creates a scenario store. archive may be nil for memory-only
// operation.
func NewStore(eng *engine.Engine, archive domain.Archive, logger *logrus.Logger) *Store {
	return &Store{
		scenarios: make(map[string]*domain.Scenario),
		engine:    eng,
		archive:   archive,
		logger:    logger,
	}
}

// Restore loads every archived scenario into memory. Called once at startup,
// before the store serves requests.
func (s *Store) Restore(ctx context.Context) error {
	if s.archive == nil {
		return nil
	}
	scenarios, err := s.archive.LoadAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to restore scenarios: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, sc := range scenarios {
		s.scenarios[sc.ID] = sc
	}
	s.logger.WithField("count", len(scenarios)).Info("Restored scenarios from archive")
	return nil
}

// compute runs the full pipeline for one input and fills every derived field.
func (s *Store) compute(sc *domain.Scenario, raw domain.RawInput, preset domain.PresetName) error {
	if preset == "" {
		preset = domain.PresetModerate
	}
	if !preset.IsValid() {
		return fmt.Errorf("%w: %q", domain.ErrUnknownPreset, preset)
	}

	in, err := raw.Normalize()
	if err != nil {
		return err
	}

	risks, err := s.engine.Compute(in, preset)
	if err != nil {
		return err
	}

	metrics := exposure.Aggregate(in.Regimen)
	sc.Preset = preset
	sc.Input = in
	sc.Exposure = metrics
	sc.Risks = risks
	sc.Category = exposure.Categorize(metrics, in)
	sc.Interventions = in.ActiveInterventionLabels()
	return nil
}

// Create computes and stores a new scenario.
func (s *Store) Create(ctx context.Context, name string, raw domain.RawInput, preset domain.PresetName) (*domain.Scenario, error) {
	now := time.Now().UTC()
	sc := &domain.Scenario{
		ID:        uuid.New().String(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.compute(sc, raw, preset); err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.scenarios[sc.ID] = sc
	s.mu.Unlock()

	s.persist(ctx, sc)
	s.logger.WithFields(logrus.Fields{
		"scenario_id": sc.ID,
		"name":        sc.Name,
		"category":    string(sc.Category),
	}).Info("Created scenario")
	return sc, nil
}

// Get returns a scenario by ID.
func (s *Store) Get(id string) (*domain.Scenario, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sc, ok := s.scenarios[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrScenarioNotFound, id)
	}
	return sc, nil
}

// Update replaces a scenario's input and recomputes every derived field.
// Partial updates are not supported; the stored record is always internally
// consistent with its input.
func (s *Store) Update(ctx context.Context, id, name string, raw domain.RawInput, preset domain.PresetName) (*domain.Scenario, error) {
	s.mu.Lock()
	existing, ok := s.scenarios[id]
	if !ok {
		s.mu.Unlock()
		return nil, fmt.Errorf("%w: %s", domain.ErrScenarioNotFound, id)
	}

	updated := &domain.Scenario{
		ID:        existing.ID,
		Name:      existing.Name,
		CreatedAt: existing.CreatedAt,
		UpdatedAt: time.Now().UTC(),
	}
	if name != "" {
		updated.Name = name
	}
	if err := s.compute(updated, raw, preset); err != nil {
		s.mu.Unlock()
		return nil, err
	}
	s.scenarios[id] = updated
	s.mu.Unlock()

	s.persist(ctx, updated)
	return updated, nil
}

// Delete removes a scenario.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	_, ok := s.scenarios[id]
	if ok {
		delete(s.scenarios, id)
	}
	s.mu.Unlock()

	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrScenarioNotFound, id)
	}

	if s.archive != nil {
		if err := s.archive.Delete(ctx, id); err != nil {
			s.logger.WithFields(logrus.Fields{
				"scenario_id": id,
				"error":       err.Error(),
			}).Warn("Failed to delete scenario from archive")
		}
	}
	return nil
}

// Clone copies a scenario under a new identity. The copy is recomputed from
// the source's input so it also picks up coefficient changes.
func (s *Store) Clone(ctx context.Context, id, name string) (*domain.Scenario, error) {
	s.mu.RLock()
	source, ok := s.scenarios[id]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrScenarioNotFound, id)
	}

	if name == "" {
		name = source.Name + " (copy)"
	}
	return s.Create(ctx, name, rawFromInput(source.Input), source.Preset)
}

// List returns summaries of every scenario, newest first.
func (s *Store) List() []domain.ScenarioSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	summaries := make([]domain.ScenarioSummary, 0, len(s.scenarios))
	for _, sc := range s.scenarios {
		summary := domain.ScenarioSummary{
			ID:                sc.ID,
			Name:              sc.Name,
			CreatedAt:         sc.CreatedAt,
			Category:          sc.Category,
			Preset:            sc.Preset,
			InterventionCount: len(sc.Interventions),
		}
		if ascvd, ok := sc.Risks[domain.DomainASCVD]; ok {
			summary.ASCVDRiskPct = ascvd.AbsoluteRiskPct
		}
		summaries = append(summaries, summary)
	}

	// Newest first; ties broken by name for a stable order.
	sort.Slice(summaries, func(i, j int) bool {
		if !summaries[i].CreatedAt.Equal(summaries[j].CreatedAt) {
			return summaries[i].CreatedAt.After(summaries[j].CreatedAt)
		}
		return summaries[i].Name < summaries[j].Name
	})
	return summaries
}

// Compare lays the requested scenarios side by side over the union of their
// reported domains.
func (s *Store) Compare(ids []string) (*domain.ScenarioComparison, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	comparison := &domain.ScenarioComparison{}
	seen := make(map[domain.Domain]bool)

	for _, id := range ids {
		sc, ok := s.scenarios[id]
		if !ok {
			return nil, fmt.Errorf("%w: %s", domain.ErrScenarioNotFound, id)
		}

		risks := make(map[domain.Domain]domain.ComparisonRisk, len(sc.Risks))
		for d, risk := range sc.Risks {
			seen[d] = true
			risks[d] = domain.ComparisonRisk{
				AbsoluteRiskPct: risk.AbsoluteRiskPct,
				RRvsPopulation:  risk.RRvsPopulation,
				EventFreeYears:  risk.EventFreeYears,
			}
		}
		comparison.Scenarios = append(comparison.Scenarios, domain.ComparisonEntry{
			ID:            sc.ID,
			Name:          sc.Name,
			Category:      sc.Category,
			Preset:        sc.Preset,
			Risks:         risks,
			Interventions: sc.Interventions,
		})
	}

	for _, d := range domain.AllDomains {
		if seen[d] {
			comparison.Domains = append(comparison.Domains, d)
			delete(seen, d)
		}
	}
	// Contributor-introduced domains trail the tracked ones, sorted so the
	// comparison layout is identical between calls.
	extras := make([]domain.Domain, 0, len(seen))
	for d := range seen {
		extras = append(extras, d)
	}
	sort.Slice(extras, func(i, j int) bool { return extras[i] < extras[j] })
	comparison.Domains = append(comparison.Domains, extras...)
	return comparison, nil
}

func (s *Store) persist(ctx context.Context, sc *domain.Scenario) {
	if s.archive == nil {
		return
	}
	if err := s.archive.Save(ctx, sc); err != nil {
		s.logger.WithFields(logrus.Fields{
			"scenario_id": sc.ID,
			"error":       err.Error(),
		}).Warn("Failed to archive scenario")
	}
}

// rawFromInput lifts a normalized input back to its wire form so a clone
// goes through the same create path as user input.
func rawFromInput(in domain.Input) domain.RawInput {
	return domain.RawInput{
		Demographics: domain.RawDemographics{
			Age: &in.Demographics.Age,
			Sex: &in.Demographics.Sex,
		},
		Anthropometrics: domain.RawAnthropometrics{
			BodyFatPct: &in.Anthropometrics.BodyFatPct,
			WeightKG:   &in.Anthropometrics.WeightKG,
		},
		Vitals: domain.RawVitals{
			SystolicBP: &in.Vitals.SystolicBP,
			RestingHR:  &in.Vitals.RestingHR,
		},
		Performance: domain.RawPerformance{VO2Max: &in.Performance.VO2Max},
		Labs: domain.RawLabs{
			HDL:        &in.Labs.HDL,
			LDL:        &in.Labs.LDL,
			Hematocrit: &in.Labs.Hematocrit,
		},
		Genetics: domain.RawGenetics{
			FamilyHistoryCAD: &in.Genetics.FamilyHistoryCAD,
			APOE4Carrier:     &in.Genetics.APOE4Carrier,
		},
		Regimen: append([]domain.DoseEntry(nil), in.Regimen...),
		Lifestyle: domain.RawLifestyle{
			MediterraneanAdherence: &in.Lifestyle.MediterraneanAdherence,
			Smoking:                &in.Lifestyle.Smoking,
			OSAStatus:              &in.Lifestyle.OSAStatus,
			AlcoholOccasionsMonth:  &in.Lifestyle.AlcoholOccasionsMonth,
			SleepHours:             &in.Lifestyle.SleepHours,
		},
		Interventions: domain.RawInterventions{
			StatinIntensity:   &in.Interventions.StatinIntensity,
			Ezetimibe:         &in.Interventions.Ezetimibe,
			PCSK9:             &in.Interventions.PCSK9,
			Omega3:            &in.Interventions.Omega3,
			GLP1Agonist:       &in.Interventions.GLP1Agonist,
			Metformin:         &in.Interventions.Metformin,
			PDE5Daily:         &in.Interventions.PDE5Daily,
			Finasteride:       &in.Interventions.Finasteride,
			AIExcess:          &in.Interventions.AIExcess,
			SERMPostCycle:     &in.Interventions.SERMPostCycle,
			HCG:               &in.Interventions.HCG,
			DoseReductionHct:  &in.Interventions.DoseReductionHct,
			BloodDonationOnly: &in.Interventions.BloodDonationOnly,
			EliminateOrals:    &in.Interventions.EliminateOrals,
			ReplaceHeavyMild:  &in.Interventions.ReplaceHeavyMild,
			VO2MaxImprovement: &in.Interventions.VO2MaxImprovement,
			BodyFatReduction:  &in.Interventions.BodyFatReduction,
		},
		PluginData: in.PluginData,
	}
}
