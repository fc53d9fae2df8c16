package scheduler

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/school-scheduler/internal/models"
	"github.com/noah-isme/school-scheduler/internal/solver"
	"github.com/noah-isme/school-scheduler/internal/validator"
	"github.com/noah-isme/school-scheduler/pkg/config"
	appErrors "github.com/noah-isme/school-scheduler/pkg/errors"
)

func newTestGenerator() *Generator {
	return NewGenerator(&solver.HeuristicBackend{}, config.SolverConfig{Threads: 1}, testWeights, nil)
}

func TestGenerateSingleStudentSingleCourse(t *testing.T) {
	input := newInput(
		[]*models.Student{{ID: "s1", Grade: 10, RequiredCourses: []string{"m10"}}},
		[]*models.Teacher{{ID: "t1", Subjects: []string{"m10"}, MaxSections: 1}},
		[]*models.Course{{ID: "m10", MaxStudents: 1, GradeRestrictions: []int{10}, Sections: 1}},
		[]*models.Room{{ID: "r1", Capacity: 1}},
		models.TimeGrid{Days: 1, PeriodsPerDay: 1})

	schedule, err := newTestGenerator().Generate(context.Background(), input)
	require.NoError(t, err)

	require.Len(t, schedule.Sections, 1)
	sec := schedule.Sections[0]
	assert.Equal(t, "m10-0", sec.ID)
	assert.Equal(t, "t1", sec.TeacherID)
	assert.Equal(t, models.Slot{Day: 0, Period: 0}, sec.Slot)
	assert.Equal(t, "r1", sec.RoomID)
	assert.Equal(t, []string{"s1"}, sec.Roster)
	assert.Equal(t, 1.0, schedule.Metadata.RequiredFillRate)
	assert.Equal(t, []string{"m10-0"}, schedule.StudentAssignments["s1"])
}

func TestGenerateGradeSeparationScenario(t *testing.T) {
	input := newInput(
		[]*models.Student{{ID: "s1", Grade: 12, RequiredCourses: []string{"gov", "eng12"}}},
		[]*models.Teacher{
			{ID: "t1", Subjects: []string{"gov"}, MaxSections: 1},
			{ID: "t2", Subjects: []string{"eng12"}, MaxSections: 1},
		},
		[]*models.Course{
			{ID: "gov", MaxStudents: 25, GradeRestrictions: []int{12}, Sections: 1},
			{ID: "eng12", MaxStudents: 25, GradeRestrictions: []int{12}, Sections: 1},
		},
		[]*models.Room{{ID: "r1", Capacity: 30}, {ID: "r2", Capacity: 30}},
		models.TimeGrid{Days: 1, PeriodsPerDay: 2})

	schedule, err := newTestGenerator().Generate(context.Background(), input)
	require.NoError(t, err)

	require.Len(t, schedule.Sections, 2)
	assert.NotEqual(t, schedule.Sections[0].Slot, schedule.Sections[1].Slot)
	assert.Len(t, schedule.StudentAssignments["s1"], 2, "student takes both courses")
	assert.Equal(t, 1.0, schedule.Metadata.RequiredFillRate)
}

func TestGenerateBalancedCapacityScenario(t *testing.T) {
	students := make([]*models.Student, 0, 30)
	for i := 0; i < 30; i++ {
		students = append(students, &models.Student{
			ID: string(rune('a'+i/10)) + string(rune('0'+i%10)), Grade: 10,
			RequiredCourses: []string{"c"},
		})
	}
	input := newInput(students,
		[]*models.Teacher{{ID: "t1", Subjects: []string{"c"}, MaxSections: 3}},
		[]*models.Course{{ID: "c", MaxStudents: 10, Sections: 3}},
		[]*models.Room{{ID: "r1", Capacity: 12}, {ID: "r2", Capacity: 12}, {ID: "r3", Capacity: 12}},
		models.DefaultTimeGrid())

	schedule, err := newTestGenerator().Generate(context.Background(), input)
	require.NoError(t, err)

	require.Len(t, schedule.Sections, 3)
	for _, sec := range schedule.Sections {
		assert.Equal(t, 10, sec.Enrollment(), "rebalanced fills should be exact")
	}
	assert.Equal(t, 1.0, schedule.Metadata.RequiredFillRate)
}

func TestGenerateProducesValidSchedule(t *testing.T) {
	input := newInput(
		[]*models.Student{
			{ID: "s1", Grade: 10, RequiredCourses: []string{"math", "eng"}, ElectivePreferences: []string{"art"}},
			{ID: "s2", Grade: 10, RequiredCourses: []string{"math"}, ElectivePreferences: []string{"art"}},
			{ID: "s3", Grade: 11, RequiredCourses: []string{"eng"}},
		},
		[]*models.Teacher{
			{ID: "t1", Subjects: []string{"math", "eng"}, MaxSections: 4},
			{ID: "t2", Subjects: []string{"art"}, MaxSections: 2},
		},
		[]*models.Course{
			{ID: "math", MaxStudents: 10, GradeRestrictions: []int{10}, Sections: 1},
			{ID: "eng", MaxStudents: 10, Sections: 2},
			{ID: "art", MaxStudents: 10, Sections: 1},
		},
		[]*models.Room{{ID: "r1", Capacity: 15}, {ID: "r2", Capacity: 15}},
		models.DefaultTimeGrid())

	schedule, err := newTestGenerator().Generate(context.Background(), input)
	require.NoError(t, err)

	report := validator.Validate(schedule, input)
	assert.True(t, report.Passed, "violations: %v", report.Violations)
}

func TestGenerateAbortsWhenCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	input := newInput(
		[]*models.Student{{ID: "s1", Grade: 10, RequiredCourses: []string{"m10"}}},
		[]*models.Teacher{{ID: "t1", Subjects: []string{"m10"}, MaxSections: 1}},
		[]*models.Course{{ID: "m10", MaxStudents: 1, Sections: 1}},
		[]*models.Room{{ID: "r1", Capacity: 1}},
		models.TimeGrid{Days: 1, PeriodsPerDay: 1})

	schedule, err := newTestGenerator().Generate(ctx, input)
	require.Error(t, err)
	assert.Nil(t, schedule, "no partial schedule is emitted")
	assert.True(t, appErrors.Is(err, appErrors.ErrPartialResult))
}

func TestGenerateOverlongRequiredListIsAccepted(t *testing.T) {
	// More required courses than grid slots: accepted, fill rate < 1.
	input := newInput(
		[]*models.Student{{ID: "s1", Grade: 10, RequiredCourses: []string{"a", "b", "c"}}},
		[]*models.Teacher{{ID: "t1", Subjects: []string{"a", "b", "c"}, MaxSections: 2},
			{ID: "t2", Subjects: []string{"a", "b", "c"}, MaxSections: 1}},
		[]*models.Course{
			{ID: "a", MaxStudents: 5, Sections: 1},
			{ID: "b", MaxStudents: 5, Sections: 1},
			{ID: "c", MaxStudents: 5, Sections: 1},
		},
		[]*models.Room{{ID: "r1", Capacity: 5}, {ID: "r2", Capacity: 5}},
		models.TimeGrid{Days: 1, PeriodsPerDay: 2})

	schedule, err := newTestGenerator().Generate(context.Background(), input)
	require.NoError(t, err)

	assert.Less(t, schedule.Metadata.RequiredFillRate, 1.0)
	assert.NotEmpty(t, schedule.Unassigned)
}
