package scheduler

import (
	"context"
	"fmt"
	"sort"

	"github.com/noah-isme/school-scheduler/internal/models"
	"github.com/noah-isme/school-scheduler/internal/solver"
)

const (
	requiredWeight    = 1000.0
	electiveBaseRank  = 10
	minElectiveWeight = 1.0
)

// BuildAssignmentModel prunes ineligible (student, section) pairs and emits
// the 0/1 MIP in canonical order: students in input order, each student's
// eligible sections in section-id order. Constraint order is capacity, then
// one-section-per-course, then one-section-per-slot.
func BuildAssignmentModel(input *models.Input, sections []*models.Section) *solver.Model {
	m := &solver.Model{}

	// var lookup: student id -> section id -> variable index
	varIndex := make(map[string]map[string]int, len(input.Students))
	bySection := make(map[string][]int, len(sections))

	for _, student := range input.Students {
		var eligible []*models.Section
		for _, sec := range sections {
			course := input.Course(sec.CourseID)
			if !course.AllowsGrade(student.Grade) {
				continue
			}
			if !student.Wants(course.ID) {
				continue
			}
			eligible = append(eligible, sec)
		}
		sort.Slice(eligible, func(a, b int) bool { return eligible[a].ID < eligible[b].ID })

		varIndex[student.ID] = make(map[string]int, len(eligible))
		for _, sec := range eligible {
			weight := minElectiveWeight
			if student.Requires(sec.CourseID) {
				weight = requiredWeight
			} else if rank := student.ElectiveRank(sec.CourseID); rank >= 0 {
				weight = float64(electiveBaseRank - rank)
				if weight < minElectiveWeight {
					weight = minElectiveWeight
				}
			}
			vi := len(m.Vars)
			m.Vars = append(m.Vars, solver.Var{Student: student.ID, Section: sec.ID, Weight: weight})
			varIndex[student.ID][sec.ID] = vi
			bySection[sec.ID] = append(bySection[sec.ID], vi)
		}
	}

	// C1: section capacity.
	for _, sec := range sections {
		vars := bySection[sec.ID]
		if len(vars) == 0 {
			continue
		}
		m.Cons = append(m.Cons, solver.Con{
			Name:  fmt.Sprintf("cap_%s", sec.ID),
			Vars:  vars,
			Bound: sec.Capacity,
		})
	}

	// C2: at most one section of a course per student.
	for _, student := range input.Students {
		byCourse := make(map[string][]int)
		var courseIDs []string
		for _, sec := range sections {
			if vi, ok := varIndex[student.ID][sec.ID]; ok {
				if _, seen := byCourse[sec.CourseID]; !seen {
					courseIDs = append(courseIDs, sec.CourseID)
				}
				byCourse[sec.CourseID] = append(byCourse[sec.CourseID], vi)
			}
		}
		sort.Strings(courseIDs)
		for _, courseID := range courseIDs {
			if vars := byCourse[courseID]; len(vars) > 1 {
				m.Cons = append(m.Cons, solver.Con{
					Name:  fmt.Sprintf("course_%s_%s", student.ID, courseID),
					Vars:  vars,
					Bound: 1,
				})
			}
		}
	}

	// C3: at most one section per slot per student.
	for _, student := range input.Students {
		bySlot := make(map[models.Slot][]int)
		var slots []models.Slot
		for _, sec := range sections {
			if vi, ok := varIndex[student.ID][sec.ID]; ok {
				if _, seen := bySlot[sec.Slot]; !seen {
					slots = append(slots, sec.Slot)
				}
				bySlot[sec.Slot] = append(bySlot[sec.Slot], vi)
			}
		}
		sort.Slice(slots, func(a, b int) bool { return slots[a].Before(slots[b]) })
		for _, slot := range slots {
			if vars := bySlot[slot]; len(vars) > 1 {
				m.Cons = append(m.Cons, solver.Con{
					Name:  fmt.Sprintf("slot_%s_d%dp%d", student.ID, slot.Day, slot.Period),
					Vars:  vars,
					Bound: 1,
				})
			}
		}
	}

	return m
}

// AssignStudents solves the assignment model and applies the selection to
// the section rosters. A required course left unassigned is a soft failure
// recorded with a reason, not an error.
func AssignStudents(ctx context.Context, backend solver.Backend, opts solver.Options,
	input *models.Input, sections []*models.Section) (*solver.Result, []models.UnassignedCourse, error) {

	model := BuildAssignmentModel(input, sections)
	result, err := backend.Solve(ctx, model, opts)
	if err != nil {
		return nil, nil, err
	}

	sectionByID := make(map[string]*models.Section, len(sections))
	for _, sec := range sections {
		sectionByID[sec.ID] = sec
	}
	for i, v := range model.Vars {
		if result.Selected[i] {
			sectionByID[v.Section].Enroll(v.Student)
		}
	}

	var unassigned []models.UnassignedCourse
	for _, student := range input.Students {
		for _, courseID := range student.RequiredCourses {
			if hasCourse(sections, student.ID, courseID) {
				continue
			}
			unassigned = append(unassigned, models.UnassignedCourse{
				StudentID: student.ID,
				CourseID:  courseID,
				Reason:    unassignedReason(input, sections, student, courseID),
			})
		}
	}

	return result, unassigned, nil
}

func hasCourse(sections []*models.Section, studentID, courseID string) bool {
	for _, sec := range sections {
		if sec.CourseID == courseID && sec.HasStudent(studentID) {
			return true
		}
	}
	return false
}

// unassignedReason explains why a required course was missed, mirroring the
// order a guidance counselor would check: eligibility, existence, capacity,
// then timetable conflicts.
func unassignedReason(input *models.Input, sections []*models.Section, student *models.Student, courseID string) string {
	course := input.Course(courseID)
	if course != nil && !course.AllowsGrade(student.Grade) {
		return fmt.Sprintf("grade %d not allowed (restricted to %v)", student.Grade, course.GradeRestrictions)
	}

	var courseSections []*models.Section
	for _, sec := range sections {
		if sec.CourseID == courseID {
			courseSections = append(courseSections, sec)
		}
	}
	if len(courseSections) == 0 {
		return "no sections available"
	}

	allFull := true
	for _, sec := range courseSections {
		if !sec.IsFull() {
			allFull = false
			break
		}
	}
	if allFull {
		return "all sections at capacity"
	}

	taken := make(map[models.Slot]bool)
	for _, sec := range sections {
		if sec.HasStudent(student.ID) {
			taken[sec.Slot] = true
		}
	}
	for _, sec := range courseSections {
		if !sec.IsFull() && !taken[sec.Slot] {
			return "not selected by the optimizer"
		}
	}
	return "time conflict with other courses"
}
