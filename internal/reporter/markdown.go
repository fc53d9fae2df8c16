package reporter

import (
	"fmt"
	"strings"

	"github.com/noah-isme/school-scheduler/internal/models"
	"github.com/noah-isme/school-scheduler/internal/validator"
)

// RenderMarkdown produces the overview report with the master table and
// quality metrics.
func RenderMarkdown(schedule *models.Schedule, input *models.Input, report validator.Report) string {
	var b strings.Builder

	b.WriteString("# Generated Schedule\n\n")
	fmt.Fprintf(&b, "Generated at %s (run %s, backend %s)\n\n",
		schedule.GeneratedAt, schedule.Metadata.RunID, schedule.Metadata.SolverBackend)

	fmt.Fprintf(&b, "- Objective: %.1f\n", schedule.Metadata.ObjectiveValue)
	fmt.Fprintf(&b, "- Required fill rate: %.1f%%\n", schedule.Metadata.RequiredFillRate*100)
	fmt.Fprintf(&b, "- Elective fill rate: %.1f%%\n", schedule.Metadata.ElectiveFillRate*100)
	fmt.Fprintf(&b, "- Rebalance moves: %d\n\n", schedule.Metadata.RebalanceMoves)

	if report.Passed {
		b.WriteString("All hard constraints hold.\n\n")
	} else {
		fmt.Fprintf(&b, "**%d constraint violations:**\n\n", len(report.Violations))
		for _, v := range report.Violations {
			fmt.Fprintf(&b, "- `%s`: %s\n", v.Invariant, v.Message)
		}
		b.WriteString("\n")
	}

	b.WriteString("## Sections\n\n")
	b.WriteString("| Section | Course | Teacher | Time | Room | Enrolled |\n")
	b.WriteString("|---------|--------|---------|------|------|----------|\n")
	for _, r := range *buildRows(schedule, input) {
		fmt.Fprintf(&b, "| %s | %s | %s | %s P%d | %s | %d |\n",
			r.SectionID, r.Course, r.Teacher, dayName(r.Day), r.Period+1, r.Room, r.Enrolled)
	}
	b.WriteString("\n")

	if len(schedule.Unassigned) > 0 {
		b.WriteString("## Unassigned Required Courses\n\n")
		for _, u := range schedule.Unassigned {
			fmt.Fprintf(&b, "- %s / %s: %s\n", u.StudentID, u.CourseID, u.Reason)
		}
		b.WriteString("\n")
	}

	return b.String()
}

// StudentView renders one student's weekly schedule, or "" when the student
// is unknown.
func StudentView(schedule *models.Schedule, input *models.Input, studentID string) string {
	student := input.Student(studentID)
	if student == nil {
		return ""
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# Schedule for %s (%s)\n", student.Name, student.ID)
	fmt.Fprintf(&b, "Grade: %d\n\n", student.Grade)

	enrolled := schedule.StudentSections(studentID)
	if len(enrolled) == 0 {
		b.WriteString("No courses enrolled.\n")
	} else {
		b.WriteString("## Weekly Schedule\n\n")
		for _, sec := range enrolled {
			courseName := sec.CourseID
			if c := input.Course(sec.CourseID); c != nil && c.Name != "" {
				courseName = c.Name
			}
			teacherName := sec.TeacherID
			if t := input.Teacher(sec.TeacherID); t != nil && t.Name != "" {
				teacherName = t.Name
			}
			fmt.Fprintf(&b, "**%s** Period %d: %s (%s) - Room %s\n",
				dayName(sec.Slot.Day), sec.Slot.Period+1, courseName, teacherName, sec.RoomID)
		}
	}

	var missed []models.UnassignedCourse
	for _, u := range schedule.Unassigned {
		if u.StudentID == studentID {
			missed = append(missed, u)
		}
	}
	if len(missed) > 0 {
		b.WriteString("\n## Unassigned Courses\n\n")
		for _, u := range missed {
			fmt.Fprintf(&b, "- %s: %s\n", u.CourseID, u.Reason)
		}
	}

	return b.String()
}

// TeacherView renders one teacher's assigned sections, or "" when the
// teacher is unknown.
func TeacherView(schedule *models.Schedule, input *models.Input, teacherID string) string {
	teacher := input.Teacher(teacherID)
	if teacher == nil {
		return ""
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# Schedule for %s (%s)\n\n", teacher.Name, teacher.ID)

	var sections []*models.Section
	for _, sec := range schedule.Sections {
		if sec.TeacherID == teacherID {
			sections = append(sections, sec)
		}
	}
	if len(sections) == 0 {
		b.WriteString("No sections assigned.\n")
		return b.String()
	}

	fmt.Fprintf(&b, "## Teaching %d sections\n\n", len(sections))
	for _, sec := range sections {
		courseName := sec.CourseID
		if c := input.Course(sec.CourseID); c != nil && c.Name != "" {
			courseName = c.Name
		}
		fmt.Fprintf(&b, "- **%s** (%s): %s Period %d - Room %s (%d students)\n",
			courseName, sec.ID, dayName(sec.Slot.Day), sec.Slot.Period+1, sec.RoomID, sec.Enrollment())
	}

	return b.String()
}
