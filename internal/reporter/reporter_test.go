package reporter

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/school-scheduler/internal/loader"
	"github.com/noah-isme/school-scheduler/internal/models"
	"github.com/noah-isme/school-scheduler/internal/scheduler"
	"github.com/noah-isme/school-scheduler/internal/solver"
	"github.com/noah-isme/school-scheduler/internal/validator"
	"github.com/noah-isme/school-scheduler/pkg/config"
)

func fixtureInput() *models.Input {
	in := &models.Input{
		Students: []*models.Student{
			{ID: "s1", Name: "Alice", Grade: 10, RequiredCourses: []string{"math"}, ElectivePreferences: []string{"art"}},
		},
		Teachers: []*models.Teacher{
			{ID: "t1", Name: "Ms. A", Subjects: []string{"math", "art"}, MaxSections: 4},
		},
		Courses: []*models.Course{
			{ID: "math", Name: "Math", MaxStudents: 25, Sections: 1},
			{ID: "art", Name: "Art", MaxStudents: 20, Sections: 1},
		},
		Rooms: []*models.Room{{ID: "r1", Name: "Room 1", Capacity: 30}},
		Grid:  models.DefaultTimeGrid(),
	}
	in.Index()
	return in
}

func fixtureSchedule(t *testing.T, input *models.Input) *models.Schedule {
	t.Helper()
	gen := scheduler.NewGenerator(&solver.HeuristicBackend{}, config.SolverConfig{Threads: 1},
		config.PlannerConfig{GradeWeight: 100, SpreadWeight: 10, PeriodWeight: 1}, nil)
	schedule, err := gen.Generate(context.Background(), input)
	require.NoError(t, err)
	return schedule
}

func TestParseFormats(t *testing.T) {
	assert.Len(t, ParseFormats("all"), 5)
	assert.Equal(t, []Format{FormatJSON, FormatMarkdown}, ParseFormats("json,md"))
	assert.Equal(t, []Format{FormatMarkdown}, ParseFormats("markdown"))
	assert.Empty(t, ParseFormats("xlsx"))
}

func TestScheduleJSONRoundTrip(t *testing.T) {
	input := fixtureInput()
	schedule := fixtureSchedule(t, input)
	report := validator.Validate(schedule, input)
	require.True(t, report.Passed)

	dir := t.TempDir()
	require.NoError(t, WriteReports(schedule, input, report, dir, []Format{FormatJSON}))

	loaded, err := loader.LoadSchedule(filepath.Join(dir, "schedule.json"))
	require.NoError(t, err)

	reloaded := validator.Validate(loaded, input)
	assert.True(t, reloaded.Passed, "a written schedule must validate on reload")
	assert.Equal(t, schedule.StudentAssignments, loaded.StudentAssignments)
	assert.Equal(t, schedule.Metadata.RequiredFillRate, loaded.Metadata.RequiredFillRate)
}

func TestWriteReportsProducesRequestedFiles(t *testing.T) {
	input := fixtureInput()
	schedule := fixtureSchedule(t, input)
	report := validator.Validate(schedule, input)

	dir := t.TempDir()
	require.NoError(t, WriteReports(schedule, input, report, dir,
		[]Format{FormatJSON, FormatMarkdown, FormatText, FormatCSV, FormatPDF}))

	for _, name := range []string{"schedule.json", "schedule.md", "schedule.txt", "schedule.csv", "schedule.pdf"} {
		info, err := os.Stat(filepath.Join(dir, name))
		require.NoError(t, err, name)
		assert.Greater(t, info.Size(), int64(0), name)
	}
}

func TestStudentView(t *testing.T) {
	input := fixtureInput()
	schedule := fixtureSchedule(t, input)

	view := StudentView(schedule, input, "s1")
	assert.Contains(t, view, "Alice")
	assert.Contains(t, view, "Math")

	assert.Empty(t, StudentView(schedule, input, "ghost"))
}

func TestTeacherView(t *testing.T) {
	input := fixtureInput()
	schedule := fixtureSchedule(t, input)

	view := TeacherView(schedule, input, "t1")
	assert.Contains(t, view, "Ms. A")
	assert.Contains(t, view, "sections")

	assert.Empty(t, TeacherView(schedule, input, "ghost"))
}
