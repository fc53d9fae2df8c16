package reporter

import (
	"sort"
	"strconv"

	"github.com/noah-isme/school-scheduler/internal/models"
	"github.com/noah-isme/school-scheduler/pkg/export"
)

// ScheduleRow is one section in the tabular exports.
type ScheduleRow struct {
	SectionID string `csv:"section_id"`
	Course    string `csv:"course"`
	Teacher   string `csv:"teacher"`
	Day       int    `csv:"day"`
	Period    int    `csv:"period"`
	Room      string `csv:"room"`
	Enrolled  int    `csv:"enrolled"`
}

func buildRows(schedule *models.Schedule, input *models.Input) *[]*ScheduleRow {
	rows := make([]*ScheduleRow, 0, len(schedule.Sections))
	for _, sec := range schedule.Sections {
		courseName := sec.CourseID
		if c := input.Course(sec.CourseID); c != nil && c.Name != "" {
			courseName = c.Name
		}
		teacherName := sec.TeacherID
		if t := input.Teacher(sec.TeacherID); t != nil && t.Name != "" {
			teacherName = t.Name
		}
		rows = append(rows, &ScheduleRow{
			SectionID: sec.ID,
			Course:    courseName,
			Teacher:   teacherName,
			Day:       sec.Slot.Day,
			Period:    sec.Slot.Period,
			Room:      sec.RoomID,
			Enrolled:  sec.Enrollment(),
		})
	}
	sort.Slice(rows, func(a, b int) bool {
		if rows[a].Day != rows[b].Day {
			return rows[a].Day < rows[b].Day
		}
		if rows[a].Period != rows[b].Period {
			return rows[a].Period < rows[b].Period
		}
		return rows[a].SectionID < rows[b].SectionID
	})
	return &rows
}

func buildDataset(schedule *models.Schedule, input *models.Input) export.Dataset {
	rows := *buildRows(schedule, input)
	data := export.Dataset{
		Headers: []string{"Section", "Course", "Teacher", "Day", "Period", "Room", "Enrolled"},
	}
	for _, r := range rows {
		data.Rows = append(data.Rows, map[string]string{
			"Section":  r.SectionID,
			"Course":   r.Course,
			"Teacher":  r.Teacher,
			"Day":      dayName(r.Day),
			"Period":   strconv.Itoa(r.Period + 1),
			"Room":     r.Room,
			"Enrolled": strconv.Itoa(r.Enrolled),
		})
	}
	return data
}

