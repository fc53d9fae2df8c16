// Package validator checks a produced schedule against every hard
// constraint, independently of how the pipeline built it. Checks are a flat
// list, each producing typed violations, so the report schema stays stable.
package validator

import (
	"fmt"

	"github.com/noah-isme/school-scheduler/internal/models"
)

// Invariant identifies the hard constraint a violation belongs to.
type Invariant string

const (
	UnknownReference  Invariant = "UNKNOWN_REFERENCE"
	TeacherQualified  Invariant = "TEACHER_NOT_QUALIFIED"
	TeacherConflict   Invariant = "TEACHER_CONFLICT"
	RoomConflict      Invariant = "ROOM_CONFLICT"
	UnavailableSlot   Invariant = "UNAVAILABLE_SLOT"
	OverCapacity      Invariant = "OVER_CAPACITY"
	StudentConflict   Invariant = "STUDENT_CONFLICT"
	DuplicateCourse   Invariant = "DUPLICATE_COURSE_ENROLLMENT"
	GradeRestriction  Invariant = "GRADE_RESTRICTION"
	TeacherOverloaded Invariant = "TEACHER_OVERLOADED"
)

// Violation reports one broken invariant with the offending entity ids.
type Violation struct {
	Invariant Invariant `json:"invariant"`
	Message   string    `json:"message"`
	Entities  []string  `json:"entities"`
}

// Report is the validator's verdict plus schedule quality metrics.
type Report struct {
	Passed     bool        `json:"passed"`
	Violations []Violation `json:"violations"`
	Metrics    Metrics     `json:"metrics"`
}

// Metrics summarizes schedule quality for the verbose view.
type Metrics struct {
	TotalSections            int                `json:"total_sections"`
	TotalAssignments         int                `json:"total_assignments"`
	RequiredSatisfactionRate float64            `json:"required_satisfaction_rate"`
	CourseFillRates          map[string]float64 `json:"course_fill_rates"`
	TeacherLoad              map[string]int     `json:"teacher_load"`
	RoomUtilization          map[string]int     `json:"room_utilization"`
	ElectiveRankDistribution map[int]int        `json:"elective_rank_distribution"`
}

type check func(*models.Schedule, *models.Input) []Violation

// Validate runs every invariant check against the schedule. It never fails
// as an operation: broken schedules produce a report with Passed=false.
func Validate(schedule *models.Schedule, input *models.Input) Report {
	checks := []check{
		checkReferences,
		checkTeacherQualified,
		checkTeacherConflicts,
		checkRoomConflicts,
		checkUnavailableSlots,
		checkCapacity,
		checkStudentConflicts,
		checkDuplicateCourses,
		checkGradeRestrictions,
		checkTeacherLoad,
	}

	var violations []Violation
	for _, c := range checks {
		violations = append(violations, c(schedule, input)...)
	}

	return Report{
		Passed:     len(violations) == 0,
		Violations: violations,
		Metrics:    computeMetrics(schedule, input),
	}
}

// Every section must reference an existing course, teacher, and room.
func checkReferences(s *models.Schedule, in *models.Input) []Violation {
	var out []Violation
	for _, sec := range s.Sections {
		if in.Course(sec.CourseID) == nil {
			out = append(out, violation(UnknownReference,
				fmt.Sprintf("section '%s' references unknown course '%s'", sec.ID, sec.CourseID), sec.ID, sec.CourseID))
		}
		if in.Teacher(sec.TeacherID) == nil {
			out = append(out, violation(UnknownReference,
				fmt.Sprintf("section '%s' references unknown teacher '%s'", sec.ID, sec.TeacherID), sec.ID, sec.TeacherID))
		}
		if in.Room(sec.RoomID) == nil {
			out = append(out, violation(UnknownReference,
				fmt.Sprintf("section '%s' references unknown room '%s'", sec.ID, sec.RoomID), sec.ID, sec.RoomID))
		}
		for _, studentID := range sec.Roster {
			if in.Student(studentID) == nil {
				out = append(out, violation(UnknownReference,
					fmt.Sprintf("section '%s' enrolls unknown student '%s'", sec.ID, studentID), sec.ID, studentID))
			}
		}
	}
	return out
}

// The teacher must be qualified for the section's course.
func checkTeacherQualified(s *models.Schedule, in *models.Input) []Violation {
	var out []Violation
	for _, sec := range s.Sections {
		t := in.Teacher(sec.TeacherID)
		if t != nil && !t.CanTeach(sec.CourseID) {
			out = append(out, violation(TeacherQualified,
				fmt.Sprintf("teacher '%s' is not qualified for course '%s' (section '%s')", t.ID, sec.CourseID, sec.ID),
				t.ID, sec.ID))
		}
	}
	return out
}

// Two sections sharing a teacher must have distinct slots.
func checkTeacherConflicts(s *models.Schedule, _ *models.Input) []Violation {
	var out []Violation
	seen := make(map[string]map[models.Slot]string)
	for _, sec := range s.Sections {
		if seen[sec.TeacherID] == nil {
			seen[sec.TeacherID] = make(map[models.Slot]string)
		}
		if other, dup := seen[sec.TeacherID][sec.Slot]; dup {
			out = append(out, violation(TeacherConflict,
				fmt.Sprintf("teacher '%s' double-booked at %s by sections '%s' and '%s'", sec.TeacherID, sec.Slot, other, sec.ID),
				sec.TeacherID, other, sec.ID))
		} else {
			seen[sec.TeacherID][sec.Slot] = sec.ID
		}
	}
	return out
}

// Two sections sharing a room must have distinct slots.
func checkRoomConflicts(s *models.Schedule, _ *models.Input) []Violation {
	var out []Violation
	seen := make(map[string]map[models.Slot]string)
	for _, sec := range s.Sections {
		if seen[sec.RoomID] == nil {
			seen[sec.RoomID] = make(map[models.Slot]string)
		}
		if other, dup := seen[sec.RoomID][sec.Slot]; dup {
			out = append(out, violation(RoomConflict,
				fmt.Sprintf("room '%s' double-booked at %s by sections '%s' and '%s'", sec.RoomID, sec.Slot, other, sec.ID),
				sec.RoomID, other, sec.ID))
		} else {
			seen[sec.RoomID][sec.Slot] = sec.ID
		}
	}
	return out
}

// A section's slot must not fall in its teacher's or room's unavailable set.
func checkUnavailableSlots(s *models.Schedule, in *models.Input) []Violation {
	var out []Violation
	for _, sec := range s.Sections {
		if t := in.Teacher(sec.TeacherID); t != nil && !t.IsAvailable(sec.Slot) {
			out = append(out, violation(UnavailableSlot,
				fmt.Sprintf("section '%s' is at %s but teacher '%s' is unavailable then", sec.ID, sec.Slot, t.ID),
				sec.ID, t.ID))
		}
		if r := in.Room(sec.RoomID); r != nil && !r.IsAvailable(sec.Slot) {
			out = append(out, violation(UnavailableSlot,
				fmt.Sprintf("section '%s' is at %s but room '%s' is unavailable then", sec.ID, sec.Slot, r.ID),
				sec.ID, r.ID))
		}
	}
	return out
}

// Roster size must stay within min(course.max_students, room.capacity).
func checkCapacity(s *models.Schedule, in *models.Input) []Violation {
	var out []Violation
	for _, sec := range s.Sections {
		course := in.Course(sec.CourseID)
		room := in.Room(sec.RoomID)
		if course == nil || room == nil {
			continue
		}
		limit := course.MaxStudents
		if room.Capacity < limit {
			limit = room.Capacity
		}
		if sec.Enrollment() > limit {
			out = append(out, violation(OverCapacity,
				fmt.Sprintf("section '%s' has %d students but capacity %d", sec.ID, sec.Enrollment(), limit),
				sec.ID))
		}
	}
	return out
}

// A student sits in at most one section per slot.
func checkStudentConflicts(s *models.Schedule, _ *models.Input) []Violation {
	var out []Violation
	seen := make(map[string]map[models.Slot]string)
	for _, sec := range s.Sections {
		for _, studentID := range sec.Roster {
			if seen[studentID] == nil {
				seen[studentID] = make(map[models.Slot]string)
			}
			if other, dup := seen[studentID][sec.Slot]; dup {
				out = append(out, violation(StudentConflict,
					fmt.Sprintf("student '%s' double-booked at %s by sections '%s' and '%s'", studentID, sec.Slot, other, sec.ID),
					studentID, other, sec.ID))
			} else {
				seen[studentID][sec.Slot] = sec.ID
			}
		}
	}
	return out
}

// A student takes at most one section of a course.
func checkDuplicateCourses(s *models.Schedule, _ *models.Input) []Violation {
	var out []Violation
	seen := make(map[string]map[string]string)
	for _, sec := range s.Sections {
		for _, studentID := range sec.Roster {
			if seen[studentID] == nil {
				seen[studentID] = make(map[string]string)
			}
			if other, dup := seen[studentID][sec.CourseID]; dup {
				out = append(out, violation(DuplicateCourse,
					fmt.Sprintf("student '%s' enrolled twice in course '%s' (sections '%s' and '%s')", studentID, sec.CourseID, other, sec.ID),
					studentID, other, sec.ID))
			} else {
				seen[studentID][sec.CourseID] = sec.ID
			}
		}
	}
	return out
}

// Every enrolled student must satisfy the course's grade restrictions.
func checkGradeRestrictions(s *models.Schedule, in *models.Input) []Violation {
	var out []Violation
	for _, sec := range s.Sections {
		course := in.Course(sec.CourseID)
		if course == nil || len(course.GradeRestrictions) == 0 {
			continue
		}
		for _, studentID := range sec.Roster {
			student := in.Student(studentID)
			if student != nil && !course.AllowsGrade(student.Grade) {
				out = append(out, violation(GradeRestriction,
					fmt.Sprintf("student '%s' (grade %d) enrolled in grade-restricted course '%s'", studentID, student.Grade, course.ID),
					studentID, sec.ID))
			}
		}
	}
	return out
}

// No teacher may exceed max_sections.
func checkTeacherLoad(s *models.Schedule, in *models.Input) []Violation {
	var out []Violation
	load := make(map[string]int)
	for _, sec := range s.Sections {
		load[sec.TeacherID]++
	}
	for _, t := range in.Teachers {
		if load[t.ID] > t.MaxSections {
			out = append(out, violation(TeacherOverloaded,
				fmt.Sprintf("teacher '%s' has %d sections but max_sections is %d", t.ID, load[t.ID], t.MaxSections),
				t.ID))
		}
	}
	return out
}

func violation(inv Invariant, msg string, entities ...string) Violation {
	return Violation{Invariant: inv, Message: msg, Entities: entities}
}
