package config

import (
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Config carries everything the pipeline needs from the environment.
type Config struct {
	Env       string
	DataDir   string
	OutputDir string
	Format    string

	Log     LogConfig
	Solver  SolverConfig
	Planner PlannerConfig
}

type LogConfig struct {
	Level  string
	Format string
}

// SolverConfig selects and tunes the MIP backend.
type SolverConfig struct {
	Backend   string
	TimeLimit time.Duration
	MIPGap    float64
	Threads   int
}

// PlannerConfig holds the time-slot penalty weights. Grade separation must
// dominate section spreading, which must dominate the earlier-period tiebreak.
type PlannerConfig struct {
	GradeWeight  int
	SpreadWeight int
	PeriodWeight int
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	_ = v.ReadInConfig()

	setDefaults(v)

	cfg := &Config{
		Env:       v.GetString("ENV"),
		DataDir:   v.GetString("DATA_DIR"),
		OutputDir: v.GetString("OUTPUT_DIR"),
		Format:    v.GetString("OUTPUT_FORMAT"),
		Log: LogConfig{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
		},
		Solver: SolverConfig{
			Backend:   v.GetString("SOLVER_BACKEND"),
			TimeLimit: parseDuration(v.GetString("SOLVER_TIME_LIMIT"), 0),
			MIPGap:    v.GetFloat64("SOLVER_MIP_GAP"),
			Threads:   v.GetInt("SOLVER_THREADS"),
		},
		Planner: PlannerConfig{
			GradeWeight:  v.GetInt("PLANNER_GRADE_WEIGHT"),
			SpreadWeight: v.GetInt("PLANNER_SPREAD_WEIGHT"),
			PeriodWeight: v.GetInt("PLANNER_PERIOD_WEIGHT"),
		},
	}

	if cfg.Solver.Threads <= 0 {
		cfg.Solver.Threads = runtime.NumCPU()
	}

	p := cfg.Planner
	if p.PeriodWeight <= 0 || p.SpreadWeight <= p.PeriodWeight || p.GradeWeight <= p.SpreadWeight {
		return nil, fmt.Errorf("planner weights must satisfy grade > spread > period > 0, got %d/%d/%d",
			p.GradeWeight, p.SpreadWeight, p.PeriodWeight)
	}

	return cfg, nil
}

// TimeLimitFor scales the solver deadline with problem size unless an
// explicit limit was configured.
func (c SolverConfig) TimeLimitFor(studentCount int) time.Duration {
	if c.TimeLimit > 0 {
		return c.TimeLimit
	}
	switch {
	case studentCount < 500:
		return 5 * time.Second
	case studentCount < 2000:
		return 30 * time.Second
	default:
		return 120 * time.Second
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("DATA_DIR", "./data")
	v.SetDefault("OUTPUT_DIR", "./output")
	v.SetDefault("OUTPUT_FORMAT", "all")

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "console")

	v.SetDefault("SOLVER_BACKEND", "glpk")
	v.SetDefault("SOLVER_TIME_LIMIT", "")
	v.SetDefault("SOLVER_MIP_GAP", 0.0)
	v.SetDefault("SOLVER_THREADS", 0)

	v.SetDefault("PLANNER_GRADE_WEIGHT", 100)
	v.SetDefault("PLANNER_SPREAD_WEIGHT", 10)
	v.SetDefault("PLANNER_PERIOD_WEIGHT", 1)
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}
	return d
}
