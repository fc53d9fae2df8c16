package loader

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/noah-isme/school-scheduler/internal/models"
	appErrors "github.com/noah-isme/school-scheduler/pkg/errors"
)

// validateReferences cross-checks ids between files. Broken references that
// would corrupt the pipeline are errors; suspicious-but-harmless data is
// logged as warnings and kept.
func (l *Loader) validateReferences(input *models.Input) error {
	courseIDs := make(map[string]bool, len(input.Courses))

	if err := checkDuplicates("course", func(yield func(string)) {
		for _, c := range input.Courses {
			yield(c.ID)
			courseIDs[c.ID] = true
		}
	}); err != nil {
		return err
	}
	if err := checkDuplicates("student", func(yield func(string)) {
		for _, s := range input.Students {
			yield(s.ID)
		}
	}); err != nil {
		return err
	}
	if err := checkDuplicates("teacher", func(yield func(string)) {
		for _, t := range input.Teachers {
			yield(t.ID)
		}
	}); err != nil {
		return err
	}
	if err := checkDuplicates("room", func(yield func(string)) {
		for _, r := range input.Rooms {
			yield(r.ID)
		}
	}); err != nil {
		return err
	}

	for _, s := range input.Students {
		seen := make(map[string]bool, len(s.RequiredCourses))
		for _, courseID := range s.RequiredCourses {
			if seen[courseID] {
				return appErrors.Clone(appErrors.ErrMalformedInput,
					fmt.Sprintf("student '%s' lists required course '%s' twice", s.ID, courseID))
			}
			seen[courseID] = true
		}
		for _, courseID := range append(append([]string{}, s.RequiredCourses...), s.ElectivePreferences...) {
			if !courseIDs[courseID] {
				return appErrors.Clone(appErrors.ErrUnknownCourse,
					fmt.Sprintf("student '%s' references unknown course '%s'", s.ID, courseID))
			}
		}
	}

	for _, t := range input.Teachers {
		for _, courseID := range t.Subjects {
			if !courseIDs[courseID] {
				l.logger.Warn("teacher lists unknown course in subjects",
					zap.String("teacher", t.ID), zap.String("course", courseID))
			}
		}
		if err := checkSlots(input.Grid, t.Unavailable, "teacher", t.ID); err != nil {
			return err
		}
	}

	for _, r := range input.Rooms {
		if err := checkSlots(input.Grid, r.Unavailable, "room", r.ID); err != nil {
			return err
		}
	}

	maxCapacity := 0
	for _, r := range input.Rooms {
		if r.Capacity > maxCapacity {
			maxCapacity = r.Capacity
		}
	}
	for _, c := range input.Courses {
		if c.MaxStudents > maxCapacity {
			l.logger.Warn("course max_students exceeds largest room capacity",
				zap.String("course", c.ID), zap.Int("max_students", c.MaxStudents),
				zap.Int("largest_room", maxCapacity))
		}
	}

	return nil
}

func checkDuplicates(kind string, each func(yield func(string))) error {
	seen := make(map[string]bool)
	var dup string
	each(func(id string) {
		if seen[id] && dup == "" {
			dup = id
		}
		seen[id] = true
	})
	if dup != "" {
		return appErrors.Clone(appErrors.ErrDuplicateID,
			fmt.Sprintf("duplicate %s id '%s'", kind, dup))
	}
	return nil
}

// checkSlots rejects unavailability entries off the grid. External data is
// 0-indexed; an out-of-range period usually means a 1-indexed export.
func checkSlots(grid models.TimeGrid, slots []models.Slot, kind, id string) error {
	for _, s := range slots {
		if !grid.Contains(s) {
			return appErrors.Clone(appErrors.ErrMalformedInput,
				fmt.Sprintf("%s '%s' has unavailable slot %s outside the %dx%d grid (day and period are 0-indexed)",
					kind, id, s, grid.Days, grid.PeriodsPerDay))
		}
	}
	return nil
}
