package validator

import "github.com/noah-isme/school-scheduler/internal/models"

func computeMetrics(s *models.Schedule, in *models.Input) Metrics {
	m := Metrics{
		TotalSections:            len(s.Sections),
		CourseFillRates:          make(map[string]float64),
		TeacherLoad:              make(map[string]int),
		RoomUtilization:          make(map[string]int),
		ElectiveRankDistribution: make(map[int]int),
	}

	courseSeats := make(map[string]int)
	courseFilled := make(map[string]int)
	for _, sec := range s.Sections {
		m.TotalAssignments += sec.Enrollment()
		m.TeacherLoad[sec.TeacherID]++
		m.RoomUtilization[sec.RoomID]++
		capacity := sec.Capacity
		if capacity == 0 {
			if course := in.Course(sec.CourseID); course != nil {
				capacity = course.MaxStudents
				if room := in.Room(sec.RoomID); room != nil && room.Capacity < capacity {
					capacity = room.Capacity
				}
			}
		}
		courseSeats[sec.CourseID] += capacity
		courseFilled[sec.CourseID] += sec.Enrollment()
	}
	for courseID, seats := range courseSeats {
		if seats > 0 {
			m.CourseFillRates[courseID] = float64(courseFilled[courseID]) / float64(seats)
		}
	}

	requiredTotal, requiredMet := 0, 0
	for _, student := range in.Students {
		enrolled := make(map[string]bool)
		for _, sec := range s.StudentSections(student.ID) {
			enrolled[sec.CourseID] = true
		}
		for _, courseID := range student.RequiredCourses {
			requiredTotal++
			if enrolled[courseID] {
				requiredMet++
			}
		}
		for rank, courseID := range student.ElectivePreferences {
			if enrolled[courseID] {
				m.ElectiveRankDistribution[rank]++
			}
		}
	}
	if requiredTotal > 0 {
		m.RequiredSatisfactionRate = float64(requiredMet) / float64(requiredTotal)
	} else {
		m.RequiredSatisfactionRate = 1.0
	}

	return m
}
