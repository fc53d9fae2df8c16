package loader

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/school-scheduler/internal/models"
	appErrors "github.com/noah-isme/school-scheduler/pkg/errors"
)

// Loader reads the input snapshot from a data directory.
type Loader struct {
	validate *validator.Validate
	logger   *zap.Logger
}

// New wires a loader; a nil logger is replaced with a no-op one.
func New(logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{validate: validator.New(), logger: logger}
}

// Load reads students, teachers, courses, rooms, and the optional time grid
// from dir, then cross-validates references before handing the snapshot back.
func (l *Loader) Load(dir string) (*models.Input, error) {
	students, err := loadJSONFile[[]*models.Student](filepath.Join(dir, "students.json"))
	if err != nil {
		return nil, err
	}
	teachers, err := loadJSONFile[[]*models.Teacher](filepath.Join(dir, "teachers.json"))
	if err != nil {
		return nil, err
	}
	courses, err := loadJSONFile[[]*models.Course](filepath.Join(dir, "courses.json"))
	if err != nil {
		return nil, err
	}
	rooms, err := loadJSONFile[[]*models.Room](filepath.Join(dir, "rooms.json"))
	if err != nil {
		return nil, err
	}

	grid := models.DefaultTimeGrid()
	gridPath := filepath.Join(dir, "timegrid.json")
	if _, statErr := os.Stat(gridPath); statErr == nil {
		grid, err = loadJSONFile[models.TimeGrid](gridPath)
		if err != nil {
			return nil, err
		}
	}

	input := &models.Input{
		Students: students,
		Teachers: teachers,
		Courses:  courses,
		Rooms:    rooms,
		Grid:     grid,
	}

	if err := l.validateStructs(input); err != nil {
		return nil, err
	}
	if err := l.validateReferences(input); err != nil {
		return nil, err
	}

	input.Index()
	return input, nil
}

// LoadSchedule reads a previously generated schedule.json.
func LoadSchedule(path string) (*models.Schedule, error) {
	return loadJSONFile[*models.Schedule](path)
}

func loadJSONFile[T any](path string) (T, error) {
	var out T
	data, err := os.ReadFile(path)
	if err != nil {
		return out, appErrors.Wrap(err, appErrors.ErrMalformedInput.Code, appErrors.ExitDataError,
			fmt.Sprintf("failed to read %s", path))
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return out, appErrors.Wrap(err, appErrors.ErrMalformedInput.Code, appErrors.ExitDataError,
			fmt.Sprintf("failed to parse %s", path))
	}
	return out, nil
}

func (l *Loader) validateStructs(input *models.Input) error {
	check := func(entity interface{}, kind, id string) error {
		if err := l.validate.Struct(entity); err != nil {
			return appErrors.Wrap(err, appErrors.ErrMalformedInput.Code, appErrors.ExitDataError,
				fmt.Sprintf("%s '%s' failed validation", kind, id))
		}
		return nil
	}
	for _, s := range input.Students {
		if err := check(s, "student", s.ID); err != nil {
			return err
		}
	}
	for _, t := range input.Teachers {
		if err := check(t, "teacher", t.ID); err != nil {
			return err
		}
	}
	for _, c := range input.Courses {
		if err := check(c, "course", c.ID); err != nil {
			return err
		}
	}
	for _, r := range input.Rooms {
		if err := check(r, "room", r.ID); err != nil {
			return err
		}
	}
	if err := l.validate.Struct(input.Grid); err != nil {
		return appErrors.Wrap(err, appErrors.ErrMalformedInput.Code, appErrors.ExitDataError,
			"time grid failed validation")
	}
	return nil
}
