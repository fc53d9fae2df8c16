package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/school-scheduler/internal/models"
)

func fixtureInput() *models.Input {
	in := &models.Input{
		Students: []*models.Student{
			{ID: "s1", Grade: 10, RequiredCourses: []string{"math"}, ElectivePreferences: []string{"art"}},
			{ID: "s2", Grade: 11, RequiredCourses: []string{"math"}},
		},
		Teachers: []*models.Teacher{
			{ID: "t1", Subjects: []string{"math"}, MaxSections: 2, Unavailable: []models.Slot{{Day: 1, Period: 0}}},
			{ID: "t2", Subjects: []string{"art"}, MaxSections: 1},
		},
		Courses: []*models.Course{
			{ID: "math", MaxStudents: 2, Sections: 2},
			{ID: "art", MaxStudents: 1, GradeRestrictions: []int{10}, Sections: 1},
		},
		Rooms: []*models.Room{
			{ID: "r1", Capacity: 5},
			{ID: "r2", Capacity: 1, Unavailable: []models.Slot{{Day: 0, Period: 1}}},
		},
		Grid: models.DefaultTimeGrid(),
	}
	in.Index()
	return in
}

func validSchedule() *models.Schedule {
	s := &models.Schedule{
		Sections: []*models.Section{
			{ID: "math-0", CourseID: "math", TeacherID: "t1", Slot: models.Slot{Day: 0, Period: 0}, RoomID: "r1", Roster: []string{"s1", "s2"}, Capacity: 2},
			{ID: "art-0", CourseID: "art", TeacherID: "t2", Slot: models.Slot{Day: 0, Period: 1}, RoomID: "r1", Roster: []string{"s1"}, Capacity: 1},
		},
	}
	s.RebuildAssignments()
	return s
}

func TestValidatePassesCleanSchedule(t *testing.T) {
	report := Validate(validSchedule(), fixtureInput())
	assert.True(t, report.Passed, "violations: %v", report.Violations)
	assert.Empty(t, report.Violations)
}

func TestValidateIsIdempotent(t *testing.T) {
	schedule, input := validSchedule(), fixtureInput()
	first := Validate(schedule, input)
	second := Validate(schedule, input)
	assert.Equal(t, first, second)
}

func TestValidateDetectsUnknownReferences(t *testing.T) {
	schedule := validSchedule()
	schedule.Sections[0].RoomID = "ghost"
	report := Validate(schedule, fixtureInput())
	require.False(t, report.Passed)
	assert.Equal(t, UnknownReference, report.Violations[0].Invariant)
}

func TestValidateDetectsUnqualifiedTeacher(t *testing.T) {
	schedule := validSchedule()
	schedule.Sections[1].TeacherID = "t1"
	report := Validate(schedule, fixtureInput())
	require.False(t, report.Passed)
	assertHas(t, report, TeacherQualified)
}

func TestValidateDetectsTeacherDoubleBooking(t *testing.T) {
	schedule := validSchedule()
	schedule.Sections = append(schedule.Sections, &models.Section{
		ID: "math-1", CourseID: "math", TeacherID: "t1",
		Slot: models.Slot{Day: 0, Period: 0}, RoomID: "r2", Roster: []string{}, Capacity: 1,
	})
	report := Validate(schedule, fixtureInput())
	assertHas(t, report, TeacherConflict)
}

func TestValidateDetectsRoomDoubleBooking(t *testing.T) {
	schedule := validSchedule()
	schedule.Sections[1].Slot = schedule.Sections[0].Slot
	schedule.Sections[1].TeacherID = "t2"
	report := Validate(schedule, fixtureInput())
	assertHas(t, report, RoomConflict)
}

func TestValidateDetectsUnavailableTeacherSlot(t *testing.T) {
	schedule := validSchedule()
	schedule.Sections[0].Slot = models.Slot{Day: 1, Period: 0}
	report := Validate(schedule, fixtureInput())
	assertHas(t, report, UnavailableSlot)
}

func TestValidateDetectsUnavailableRoomSlot(t *testing.T) {
	schedule := validSchedule()
	schedule.Sections[1].RoomID = "r2"
	report := Validate(schedule, fixtureInput())
	assertHas(t, report, UnavailableSlot)
}

func TestValidateDetectsOverCapacity(t *testing.T) {
	schedule := validSchedule()
	schedule.Sections[1].Roster = []string{"s1", "s2"}
	report := Validate(schedule, fixtureInput())
	assertHas(t, report, OverCapacity)
}

func TestValidateDetectsStudentDoubleBooking(t *testing.T) {
	schedule := validSchedule()
	schedule.Sections[1].Slot = schedule.Sections[0].Slot
	schedule.Sections[1].RoomID = "r2"
	report := Validate(schedule, fixtureInput())
	assertHas(t, report, StudentConflict)
}

func TestValidateDetectsDuplicateCourseEnrollment(t *testing.T) {
	schedule := validSchedule()
	schedule.Sections = append(schedule.Sections, &models.Section{
		ID: "math-1", CourseID: "math", TeacherID: "t1",
		Slot: models.Slot{Day: 2, Period: 0}, RoomID: "r1", Roster: []string{"s1"}, Capacity: 2,
	})
	report := Validate(schedule, fixtureInput())
	assertHas(t, report, DuplicateCourse)
}

func TestValidateDetectsGradeViolation(t *testing.T) {
	schedule := validSchedule()
	schedule.Sections[1].Roster = []string{"s2"} // grade 11 in a grade-10 course
	report := Validate(schedule, fixtureInput())
	assertHas(t, report, GradeRestriction)
}

func TestValidateDetectsTeacherOverload(t *testing.T) {
	schedule := validSchedule()
	schedule.Sections = append(schedule.Sections,
		&models.Section{ID: "art-1", CourseID: "art", TeacherID: "t2", Slot: models.Slot{Day: 3, Period: 0}, RoomID: "r1", Roster: []string{}, Capacity: 1},
	)
	report := Validate(schedule, fixtureInput())
	assertHas(t, report, TeacherOverloaded)
}

func TestValidateMetrics(t *testing.T) {
	report := Validate(validSchedule(), fixtureInput())
	m := report.Metrics

	assert.Equal(t, 2, m.TotalSections)
	assert.Equal(t, 3, m.TotalAssignments)
	assert.Equal(t, 1.0, m.RequiredSatisfactionRate)
	assert.Equal(t, 2, m.TeacherLoad["t1"]+m.TeacherLoad["t2"])
	assert.Equal(t, 1, m.ElectiveRankDistribution[0], "s1 got their first elective choice")
	assert.InDelta(t, 1.0, m.CourseFillRates["math"], 0.01)
}

func assertHas(t *testing.T, report Report, inv Invariant) {
	t.Helper()
	require.False(t, report.Passed)
	for _, v := range report.Violations {
		if v.Invariant == inv {
			return
		}
	}
	t.Fatalf("expected a %s violation, got %v", inv, report.Violations)
}
