package scheduler

import (
	"fmt"
	"sort"
	"strings"

	"github.com/noah-isme/school-scheduler/internal/models"
	"github.com/noah-isme/school-scheduler/pkg/config"
	appErrors "github.com/noah-isme/school-scheduler/pkg/errors"
)

type gradeSlot struct {
	grade int
	slot  models.Slot
}

// PlanTimeSlots assigns a (day, period) to every section. Placing two
// courses restricted to the same grade into the same slot makes the
// downstream assignment infeasible for those students, so grade separation
// dominates the penalty, followed by spreading a course's own sections,
// followed by a preference for earlier periods.
func PlanTimeSlots(sections []*models.Section, input *models.Input, weights config.PlannerConfig) error {
	gradesInUse := make(map[int]bool, 4)
	for _, s := range input.Students {
		gradesInUse[s.Grade] = true
	}

	// Restricted courses have fewer eligible grades and therefore fewer
	// escape hatches; place them first. Popular courses follow.
	order := make([]*models.Section, len(sections))
	copy(order, sections)
	sectionIndex := make(map[string]int, len(sections))
	for i, sec := range sections {
		sectionIndex[sec.ID] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		ca, cb := input.Course(order[a].CourseID), input.Course(order[b].CourseID)
		ra, rb := eligibleGrades(ca, gradesInUse), eligibleGrades(cb, gradesInUse)
		if ra != rb {
			return ra < rb
		}
		if ca.Sections != cb.Sections {
			return ca.Sections > cb.Sections
		}
		if ca.ID != cb.ID {
			return ca.ID < cb.ID
		}
		return sectionIndex[order[a].ID] < sectionIndex[order[b].ID]
	})

	teacherBusy := make(map[string]map[models.Slot]bool, len(input.Teachers))
	gradeLoad := make(map[gradeSlot]int)
	courseSlots := make(map[string]map[models.Slot]int, len(input.Courses))

	for _, sec := range order {
		course := input.Course(sec.CourseID)
		teacher := input.Teacher(sec.TeacherID)

		best := models.Slot{Day: -1}
		bestPenalty := 0
		found := false
		for _, sl := range input.Grid.Slots() {
			if !teacher.IsAvailable(sl) || teacherBusy[teacher.ID][sl] {
				continue
			}
			penalty := 0
			for _, g := range course.GradeRestrictions {
				penalty += gradeLoad[gradeSlot{g, sl}] * weights.GradeWeight
			}
			if courseSlots[course.ID][sl] > 0 {
				penalty += weights.SpreadWeight
			}
			penalty += sl.Period * weights.PeriodWeight
			// Grid order is (day, period) lexicographic, so strict
			// improvement keeps the required tie-break.
			if !found || penalty < bestPenalty {
				best, bestPenalty, found = sl, penalty, true
			}
		}

		if !found {
			return appErrors.Clone(appErrors.ErrNoFeasibleSlot, noSlotDiagnostic(sec, teacher, input.Grid, teacherBusy[teacher.ID]))
		}

		sec.Slot = best
		if teacherBusy[teacher.ID] == nil {
			teacherBusy[teacher.ID] = make(map[models.Slot]bool)
		}
		teacherBusy[teacher.ID][best] = true
		for _, g := range course.GradeRestrictions {
			gradeLoad[gradeSlot{g, best}]++
		}
		if courseSlots[course.ID] == nil {
			courseSlots[course.ID] = make(map[models.Slot]int)
		}
		courseSlots[course.ID][best]++
	}

	return nil
}

// eligibleGrades counts the grades that may actually enroll; an empty
// restriction set means every grade in use.
func eligibleGrades(c *models.Course, inUse map[int]bool) int {
	if len(c.GradeRestrictions) == 0 {
		return len(inUse)
	}
	n := 0
	for _, g := range c.GradeRestrictions {
		if inUse[g] {
			n++
		}
	}
	return n
}

func noSlotDiagnostic(sec *models.Section, teacher *models.Teacher, grid models.TimeGrid, busy map[models.Slot]bool) string {
	unavailable := 0
	for _, sl := range grid.Slots() {
		if !teacher.IsAvailable(sl) {
			unavailable++
		}
	}
	var b strings.Builder
	fmt.Fprintf(&b, "no feasible slot for section '%s': teacher '%s' is unavailable at %d of %d slots and already teaching at %d",
		sec.ID, teacher.ID, unavailable, grid.Days*grid.PeriodsPerDay, len(busy))
	return b.String()
}
