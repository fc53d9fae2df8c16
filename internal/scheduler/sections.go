package scheduler

import (
	"fmt"

	"github.com/noah-isme/school-scheduler/internal/models"
	appErrors "github.com/noah-isme/school-scheduler/pkg/errors"
)

// BuildSections materializes every declared section and assigns a qualified
// teacher to each. Teachers rotate round-robin within each course's
// qualified pool; a teacher already at max_sections is skipped. Course and
// teacher input order is the only tie-breaker.
func BuildSections(input *models.Input) ([]*models.Section, error) {
	assigned := make(map[string]int, len(input.Teachers))
	var sections []*models.Section

	for _, course := range input.Courses {
		var pool []*models.Teacher
		for _, t := range input.Teachers {
			if t.CanTeach(course.ID) && t.MaxSections > 0 {
				pool = append(pool, t)
			}
		}
		if len(pool) == 0 {
			return nil, appErrors.Clone(appErrors.ErrUnqualifiedTeacher,
				fmt.Sprintf("course '%s' has no qualified teacher with capacity", course.ID))
		}

		cursor := 0
		for k := 0; k < course.Sections; k++ {
			teacher := nextTeacher(pool, assigned, &cursor)
			if teacher == nil {
				return nil, appErrors.Clone(appErrors.ErrTeacherOverload,
					fmt.Sprintf("course '%s': all %d qualified teachers are at max_sections", course.ID, len(pool)))
			}
			assigned[teacher.ID]++
			sections = append(sections, &models.Section{
				ID:        fmt.Sprintf("%s-%d", course.ID, k),
				CourseID:  course.ID,
				TeacherID: teacher.ID,
				Roster:    []string{},
			})
		}
	}

	return sections, nil
}

// nextTeacher advances the course cursor past teachers that are already at
// their section limit. Returns nil when the whole pool is exhausted.
func nextTeacher(pool []*models.Teacher, assigned map[string]int, cursor *int) *models.Teacher {
	for tries := 0; tries < len(pool); tries++ {
		t := pool[(*cursor+tries)%len(pool)]
		if assigned[t.ID] < t.MaxSections {
			*cursor = (*cursor + tries + 1) % len(pool)
			return t
		}
	}
	return nil
}
