package api

import (
	"fmt"
	"io"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/aas-risk-engine/internal/domain"
	"github.com/aas-risk-engine/internal/engine"
	"github.com/aas-risk-engine/internal/export"
	"github.com/aas-risk-engine/internal/exposure"
)

// scenarioRequest is the create/update body.
type scenarioRequest struct {
	Name     string            `json:"name"`
	Preset   domain.PresetName `json:"preset"`
	UserData domain.RawInput   `json:"user_data"`
}

// computeRequest is the one-shot computation body; nothing is stored.
type computeRequest struct {
	Preset   domain.PresetName `json:"preset"`
	UserData domain.RawInput   `json:"user_data"`
}

var statusForCode = map[string]int{
	domain.CodeNotFound:          http.StatusNotFound,
	domain.CodeInvalidInput:      http.StatusBadRequest,
	domain.CodeUnsupportedFormat: http.StatusBadRequest,
	domain.CodeUnsupportedMethod: http.StatusBadRequest,
	domain.CodeUnknownPreset:     http.StatusBadRequest,
	domain.CodeInternal:          http.StatusInternalServerError,
}

func (s *Server) respondError(c *gin.Context, err error) {
	code := domain.CodeForError(err)
	status, ok := statusForCode[code]
	if !ok {
		status = http.StatusInternalServerError
	}
	apiErr := domain.NewAPIError(code, err.Error(), "", c.GetString("correlation_id"))
	if status == http.StatusInternalServerError {
		s.logger.WithFields(map[string]interface{}{
			"correlation_id": apiErr.CorrelationID,
			"error":          err.Error(),
		}).Error("Request failed")
	}
	c.JSON(status, apiErr)
}

func (s *Server) handleListScenarios(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"scenarios": s.store.List()})
}

func (s *Server) handleCreateScenario(c *gin.Context) {
	var req scenarioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, fmt.Errorf("%w: %v", domain.ErrValidation, err))
		return
	}
	if req.Name == "" {
		s.respondError(c, fmt.Errorf("%w: scenario name is required", domain.ErrValidation))
		return
	}

	sc, err := s.store.Create(c.Request.Context(), req.Name, req.UserData, req.Preset)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, sc)
}

func (s *Server) handleImportScenario(c *gin.Context) {
	data, err := io.ReadAll(c.Request.Body)
	if err != nil {
		s.respondError(c, fmt.Errorf("%w: %v", domain.ErrValidation, err))
		return
	}

	name, preset, raw, err := export.ImportRecord(data)
	if err != nil {
		s.respondError(c, fmt.Errorf("%w: %v", domain.ErrValidation, err))
		return
	}
	if name == "" {
		name = "Imported scenario"
	}

	sc, err := s.store.Create(c.Request.Context(), name, raw, preset)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, sc)
}

func (s *Server) handleGetScenario(c *gin.Context) {
	sc, err := s.store.Get(c.Param("id"))
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sc)
}

func (s *Server) handleUpdateScenario(c *gin.Context) {
	var req scenarioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, fmt.Errorf("%w: %v", domain.ErrValidation, err))
		return
	}

	sc, err := s.store.Update(c.Request.Context(), c.Param("id"), req.Name, req.UserData, req.Preset)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sc)
}

func (s *Server) handleDeleteScenario(c *gin.Context) {
	if err := s.store.Delete(c.Request.Context(), c.Param("id")); err != nil {
		s.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) handleCloneScenario(c *gin.Context) {
	var req struct {
		Name string `json:"name"`
	}
	// An empty body clones under a derived name.
	_ = c.ShouldBindJSON(&req)

	sc, err := s.store.Clone(c.Request.Context(), c.Param("id"), req.Name)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, sc)
}

func (s *Server) handleCompareScenarios(c *gin.Context) {
	ids := strings.Split(c.Query("ids"), ",")
	cleaned := ids[:0]
	for _, id := range ids {
		if id = strings.TrimSpace(id); id != "" {
			cleaned = append(cleaned, id)
		}
	}
	if len(cleaned) < 2 {
		s.respondError(c, fmt.Errorf("%w: at least two scenario ids are required", domain.ErrValidation))
		return
	}

	comparison, err := s.store.Compare(cleaned)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, comparison)
}

func (s *Server) handleExportScenario(c *gin.Context) {
	format, err := export.ParseFormat(c.DefaultQuery("format", "json"))
	if err != nil {
		s.respondError(c, err)
		return
	}

	file, err := s.exporter.Export(c.Param("id"), format)
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Name))
	c.Data(http.StatusOK, file.MIMEType, file.Content)
}

func (s *Server) handleTrajectory(c *gin.Context) {
	sc, err := s.store.Get(c.Param("id"))
	if err != nil {
		s.respondError(c, err)
		return
	}

	d := domain.Domain(c.DefaultQuery("domain", string(domain.DomainASCVD)))
	risk, ok := sc.Risks[d]
	if !ok {
		s.respondError(c, fmt.Errorf("%w: no risk record for domain %q", domain.ErrValidation, d))
		return
	}

	method := domain.TrajectoryMethod(c.DefaultQuery("method", string(domain.TrajectoryLinear)))
	horizon := domain.DefaultHorizonAge
	if raw := c.Query("horizon_age"); raw != "" {
		horizon, err = strconv.Atoi(raw)
		if err != nil {
			s.respondError(c, fmt.Errorf("%w: invalid horizon age %q", domain.ErrValidation, raw))
			return
		}
	}

	age := sc.Input.Demographics.Age
	trajectory, err := engine.Trajectory(d, age, risk.AbsoluteRisk, horizon, method)
	if err != nil {
		s.respondError(c, err)
		return
	}

	resp := gin.H{
		"scenario_id":   sc.ID,
		"domain":        d,
		"method":        method,
		"trajectory":    trajectory,
		"ten_year_risk": engine.ProjectedCumulativeRisk(risk.AbsoluteRisk, age, 10),
	}
	// Omitted when the risk never accumulates to the threshold.
	if years := engine.YearsToEventProbability(risk.AbsoluteRisk, age, d, 0.10); !math.IsInf(years, 1) {
		resp["years_to_10pct_risk"] = years
	}
	c.JSON(http.StatusOK, resp)
}

// handleInterventionImpact compares a base scenario against one with an
// intervention applied: per-domain deltas, cost-tier efficiency and events
// avoided in a theoretical population of 1000.
func (s *Server) handleInterventionImpact(c *gin.Context) {
	baseID := c.Query("base")
	interventionID := c.Query("intervention")
	if baseID == "" || interventionID == "" {
		s.respondError(c, fmt.Errorf("%w: base and intervention scenario ids are required", domain.ErrValidation))
		return
	}

	base, err := s.store.Get(baseID)
	if err != nil {
		s.respondError(c, err)
		return
	}
	intervention, err := s.store.Get(interventionID)
	if err != nil {
		s.respondError(c, err)
		return
	}

	impact := engine.InterventionImpact(base.Risks, intervention.Risks)
	reductions := make(map[domain.Domain]float64, len(impact))
	for d, di := range impact {
		reductions[d] = di.AbsoluteRiskReduction
	}

	cost := engine.CostCategory(c.DefaultQuery("cost", string(engine.CostLow)))
	efficiency := engine.InterventionEfficiency(base.Risks, intervention.Risks, cost)

	// cost_per_efy is omitted when nothing is gained.
	efficiencyPayload := gin.H{
		"total_efy_gained":     efficiency.TotalEFYGained,
		"efficiency_score":     efficiency.EfficiencyScore,
		"domain_contributions": efficiency.DomainContributions,
	}
	if !math.IsInf(efficiency.CostPerEFY, 1) {
		efficiencyPayload["cost_per_efy"] = efficiency.CostPerEFY
	}

	c.JSON(http.StatusOK, gin.H{
		"base_id":                 base.ID,
		"intervention_id":         intervention.ID,
		"cost_category":           cost,
		"impact":                  impact,
		"efficiency":              efficiencyPayload,
		"events_avoided_per_1000": engine.EventsAvoided(reductions, 1000),
	})
}

func (s *Server) handleCompute(c *gin.Context) {
	var req computeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, fmt.Errorf("%w: %v", domain.ErrValidation, err))
		return
	}
	if req.Preset == "" {
		req.Preset = domain.PresetName(s.config.Presets.Active)
	}

	in, err := req.UserData.Normalize()
	if err != nil {
		s.respondError(c, err)
		return
	}

	risks, err := s.engine.Compute(in, req.Preset)
	if err != nil {
		s.respondError(c, err)
		return
	}

	uncertainty := make(map[domain.Domain]gin.H, len(risks))
	for d, risk := range risks {
		lower, upper := engine.UncertaintyBand(risk.AbsoluteRisk, 0)
		uncertainty[d] = gin.H{"lower": lower, "upper": upper}
	}

	metrics := exposure.Aggregate(in.Regimen)
	c.JSON(http.StatusOK, gin.H{
		"preset":           req.Preset,
		"risks":            risks,
		"uncertainty":      uncertainty,
		"exposure_metrics": metrics,
		"category":         exposure.Categorize(metrics, in),
		"composite_cv":     engine.CompositeCardiovascularBenefit(risks),
		"qalys":            engine.QualityAdjustedLifeYears(risks, in.Demographics.Age),
	})
}

func (s *Server) handleListPlugins(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"plugins": s.registry.List()})
}

func (s *Server) handleListPresets(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"presets": []domain.PresetName{
			domain.PresetConservative,
			domain.PresetModerate,
			domain.PresetAggressive,
		},
		"active": s.config.Presets.Active,
	})
}

func (s *Server) handleGetPreset(c *gin.Context) {
	name := domain.PresetName(c.Param("name"))
	set, err := s.coeffs.Load(name)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"preset":       name,
		"coefficients": set,
	})
}
