package scheduler

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/school-scheduler/internal/models"
	"github.com/noah-isme/school-scheduler/internal/solver"
	"github.com/noah-isme/school-scheduler/pkg/config"
	appErrors "github.com/noah-isme/school-scheduler/pkg/errors"
)

// Generator sequences the five scheduling phases and owns the state they
// hand to each other. Phases mutate only the section fields they are
// responsible for; the input snapshot is shared read-only.
type Generator struct {
	backend solver.Backend
	solver  config.SolverConfig
	planner config.PlannerConfig
	logger  *zap.Logger
}

// NewGenerator wires the pipeline dependencies.
func NewGenerator(backend solver.Backend, solverCfg config.SolverConfig, plannerCfg config.PlannerConfig, logger *zap.Logger) *Generator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Generator{backend: backend, solver: solverCfg, planner: plannerCfg, logger: logger}
}

// Generate runs phases 1-5 and produces the final schedule. Cancellation is
// checked between phases; during the solve it travels through the context.
func (g *Generator) Generate(ctx context.Context, input *models.Input) (*models.Schedule, error) {
	started := time.Now()

	sections, err := BuildSections(input)
	if err != nil {
		return nil, err
	}
	g.logger.Info("sections created", zap.Int("count", len(sections)))
	if err := cancelled(ctx); err != nil {
		return nil, err
	}

	if err := PlanTimeSlots(sections, input, g.planner); err != nil {
		return nil, err
	}
	g.logger.Info("time slots assigned")
	if err := cancelled(ctx); err != nil {
		return nil, err
	}

	if err := AssignRooms(sections, input, g.logger); err != nil {
		return nil, err
	}
	g.logger.Info("rooms assigned")
	if err := cancelled(ctx); err != nil {
		return nil, err
	}

	opts := solver.Options{
		TimeLimit: g.solver.TimeLimitFor(len(input.Students)),
		MIPGap:    g.solver.MIPGap,
		Threads:   g.solver.Threads,
	}
	solveCtx, cancel := context.WithTimeout(ctx, opts.TimeLimit)
	defer cancel()
	result, unassigned, err := AssignStudents(solveCtx, g.backend, opts, input, sections)
	if err != nil {
		return nil, err
	}
	g.logger.Info("students assigned",
		zap.Float64("objective", result.Objective),
		zap.Bool("optimal", result.Optimal),
		zap.Int("unassigned_required", len(unassigned)))
	if err := cancelled(ctx); err != nil {
		return nil, err
	}

	moves := Rebalance(input, sections)
	g.logger.Info("sections rebalanced", zap.Int("moves", moves))

	schedule := &models.Schedule{
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		Sections:    sections,
		Unassigned:  unassigned,
		Metadata: models.Metadata{
			RunID:          uuid.NewString(),
			SolverBackend:  g.backend.Name(),
			ObjectiveValue: result.Objective,
			Gap:            result.Gap,
			RebalanceMoves: moves,
			SolveTimeMS:    time.Since(started).Milliseconds(),
		},
	}
	schedule.RebuildAssignments()
	schedule.Metadata.RequiredFillRate, schedule.Metadata.ElectiveFillRate = fillRates(input, schedule)

	return schedule, nil
}

// fillRates computes the fraction of requested assignments actually made.
func fillRates(input *models.Input, schedule *models.Schedule) (float64, float64) {
	requiredTotal, requiredMet := 0, 0
	electiveTotal, electiveMet := 0, 0
	for _, student := range input.Students {
		enrolled := make(map[string]bool)
		for _, sec := range schedule.StudentSections(student.ID) {
			enrolled[sec.CourseID] = true
		}
		for _, courseID := range student.RequiredCourses {
			requiredTotal++
			if enrolled[courseID] {
				requiredMet++
			}
		}
		for _, courseID := range student.ElectivePreferences {
			electiveTotal++
			if enrolled[courseID] {
				electiveMet++
			}
		}
	}
	return ratio(requiredMet, requiredTotal), ratio(electiveMet, electiveTotal)
}

func ratio(met, total int) float64 {
	if total == 0 {
		return 1.0
	}
	return float64(met) / float64(total)
}

func cancelled(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return appErrors.Wrap(err, appErrors.ErrPartialResult.Code, appErrors.ExitDataError,
			"cancelled between phases; no schedule emitted")
	}
	return nil
}
