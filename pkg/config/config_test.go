package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSolverTimeLimitScalesWithProblemSize(t *testing.T) {
	cfg := SolverConfig{}
	assert.Equal(t, 5*time.Second, cfg.TimeLimitFor(100))
	assert.Equal(t, 30*time.Second, cfg.TimeLimitFor(1500))
	assert.Equal(t, 120*time.Second, cfg.TimeLimitFor(5000))
}

func TestSolverTimeLimitExplicitOverride(t *testing.T) {
	cfg := SolverConfig{TimeLimit: time.Minute}
	assert.Equal(t, time.Minute, cfg.TimeLimitFor(10))
}

func TestLoadRejectsInvertedPlannerWeights(t *testing.T) {
	t.Setenv("PLANNER_GRADE_WEIGHT", "1")
	t.Setenv("PLANNER_SPREAD_WEIGHT", "10")
	t.Setenv("PLANNER_PERIOD_WEIGHT", "100")

	_, err := Load()
	assert.Error(t, err, "weight magnitude ordering is a hard contract")
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Skipf("environment overrides defaults: %v", err)
	}
	assert.Equal(t, "glpk", cfg.Solver.Backend)
	assert.Equal(t, 100, cfg.Planner.GradeWeight)
	assert.Equal(t, 10, cfg.Planner.SpreadWeight)
	assert.Equal(t, 1, cfg.Planner.PeriodWeight)
	assert.Greater(t, cfg.Solver.Threads, 0)
}
