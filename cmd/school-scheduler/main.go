package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/noah-isme/school-scheduler/internal/demo"
	"github.com/noah-isme/school-scheduler/internal/loader"
	"github.com/noah-isme/school-scheduler/internal/reporter"
	"github.com/noah-isme/school-scheduler/internal/scheduler"
	"github.com/noah-isme/school-scheduler/internal/solver"
	"github.com/noah-isme/school-scheduler/internal/validator"
	"github.com/noah-isme/school-scheduler/pkg/config"
	appErrors "github.com/noah-isme/school-scheduler/pkg/errors"
	"github.com/noah-isme/school-scheduler/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := newRootCmd(ctx, cfg, logr)
	if err := root.Execute(); err != nil {
		logr.Error("command failed", zap.Error(err))
		os.Exit(appErrors.ExitCode(err))
	}
}

func newRootCmd(ctx context.Context, cfg *config.Config, logr *zap.Logger) *cobra.Command {
	root := &cobra.Command{
		Use:           "school-scheduler",
		Short:         "Constraint-based school schedule generator",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newScheduleCmd(ctx, cfg, logr))
	root.AddCommand(newValidateCmd(cfg, logr))
	root.AddCommand(newReportCmd(cfg, logr))
	root.AddCommand(newDemoCmd(ctx, cfg, logr))
	return root
}

func newScheduleCmd(ctx context.Context, cfg *config.Config, logr *zap.Logger) *cobra.Command {
	var dataDir, outputDir, format string
	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Generate a schedule from input data",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSchedule(ctx, cfg, logr, dataDir, outputDir, format)
		},
	}
	cmd.Flags().StringVarP(&dataDir, "data", "d", cfg.DataDir, "directory containing input JSON files")
	cmd.Flags().StringVarP(&outputDir, "output", "o", cfg.OutputDir, "output directory for schedule files")
	cmd.Flags().StringVarP(&format, "format", "f", cfg.Format, "output format(s): json, md, txt, csv, pdf, or all")
	return cmd
}

func runSchedule(ctx context.Context, cfg *config.Config, logr *zap.Logger, dataDir, outputDir, format string) error {
	input, err := loader.New(logr).Load(dataDir)
	if err != nil {
		return err
	}
	logr.Info("input loaded",
		zap.Int("students", len(input.Students)),
		zap.Int("teachers", len(input.Teachers)),
		zap.Int("courses", len(input.Courses)),
		zap.Int("rooms", len(input.Rooms)))

	backend, err := solver.New(cfg.Solver.Backend)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrSolverFailed.Code, appErrors.ExitSolverFailure, "solver setup failed")
	}

	generator := scheduler.NewGenerator(backend, cfg.Solver, cfg.Planner, logr)
	schedule, err := generator.Generate(ctx, input)
	if err != nil {
		return err
	}

	report := validator.Validate(schedule, input)
	if err := reporter.WriteReports(schedule, input, report, outputDir, reporter.ParseFormats(format)); err != nil {
		return err
	}

	fmt.Println(reporter.RenderText(schedule, input, report))
	fmt.Printf("Reports written to: %s\n", outputDir)
	return nil
}

func newValidateCmd(cfg *config.Config, logr *zap.Logger) *cobra.Command {
	var schedulePath, dataDir string
	var verbose bool
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate an existing schedule against its input data",
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := loader.New(logr).Load(dataDir)
			if err != nil {
				return err
			}
			schedule, err := loader.LoadSchedule(schedulePath)
			if err != nil {
				return err
			}

			report := validator.Validate(schedule, input)
			if report.Passed {
				fmt.Println("Schedule is valid")
			} else {
				fmt.Printf("Schedule has %d violations:\n", len(report.Violations))
				for _, v := range report.Violations {
					fmt.Printf("  [%s] %s\n", v.Invariant, v.Message)
				}
			}
			if verbose {
				fmt.Println(reporter.RenderVerbose(report))
			}
			if !report.Passed {
				return appErrors.Clone(appErrors.ErrValidationFailed,
					fmt.Sprintf("%d hard constraint violations", len(report.Violations)))
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&schedulePath, "schedule", "s", "./output/schedule.json", "path to schedule.json")
	cmd.Flags().StringVarP(&dataDir, "data", "d", cfg.DataDir, "directory containing input data")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "show detailed metrics")
	return cmd
}

func newReportCmd(cfg *config.Config, logr *zap.Logger) *cobra.Command {
	var schedulePath, dataDir, studentID, teacherID string
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Render a single view of an existing schedule",
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := loader.New(logr).Load(dataDir)
			if err != nil {
				return err
			}
			schedule, err := loader.LoadSchedule(schedulePath)
			if err != nil {
				return err
			}

			switch {
			case studentID != "":
				view := reporter.StudentView(schedule, input, studentID)
				if view == "" {
					return appErrors.Clone(appErrors.ErrUnknownStudent,
						fmt.Sprintf("student '%s' not found", studentID))
				}
				fmt.Println(view)
			case teacherID != "":
				view := reporter.TeacherView(schedule, input, teacherID)
				if view == "" {
					return appErrors.Clone(appErrors.ErrUnknownTeacher,
						fmt.Sprintf("teacher '%s' not found", teacherID))
				}
				fmt.Println(view)
			default:
				report := validator.Validate(schedule, input)
				fmt.Println(reporter.RenderMarkdown(schedule, input, report))
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&schedulePath, "schedule", "s", "./output/schedule.json", "path to schedule.json")
	cmd.Flags().StringVarP(&dataDir, "data", "d", cfg.DataDir, "directory containing input data")
	cmd.Flags().StringVar(&studentID, "student", "", "render schedule for this student id")
	cmd.Flags().StringVar(&teacherID, "teacher", "", "render schedule for this teacher id")
	return cmd
}

func newDemoCmd(ctx context.Context, cfg *config.Config, logr *zap.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Generate a schedule from the embedded sample dataset",
		RunE: func(cmd *cobra.Command, args []string) error {
			demoDir := filepath.Join(cfg.DataDir, "demo")
			if _, err := os.Stat(filepath.Join(demoDir, "students.json")); err != nil {
				logr.Info("materializing demo data", zap.String("dir", demoDir))
				if err := demo.Materialize(demoDir); err != nil {
					return appErrors.Wrap(err, appErrors.ErrMalformedInput.Code, appErrors.ExitDataError,
						"failed to write demo data")
				}
			}
			return runSchedule(ctx, cfg, logr, demoDir, cfg.OutputDir, cfg.Format)
		},
	}
	return cmd
}
