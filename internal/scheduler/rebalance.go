package scheduler

import (
	"sort"

	"github.com/noah-isme/school-scheduler/internal/models"
)

// Rebalance evens out enrollment across sections of the same course. The
// optimizer maximizes total weighted assignments but is indifferent to how
// they distribute, so one section can end up at capacity while a sibling
// sits half empty. Moves preserve every hard constraint and each student's
// assignment count; only moves that strictly reduce the fill variance are
// applied. Returns the number of moves performed.
func Rebalance(input *models.Input, sections []*models.Section) int {
	byCourse := make(map[string][]*models.Section)
	var courseIDs []string
	for _, sec := range sections {
		if _, seen := byCourse[sec.CourseID]; !seen {
			courseIDs = append(courseIDs, sec.CourseID)
		}
		byCourse[sec.CourseID] = append(byCourse[sec.CourseID], sec)
	}
	sort.Strings(courseIDs)

	studentSlots := make(map[string]map[models.Slot]int)
	for _, sec := range sections {
		for _, studentID := range sec.Roster {
			if studentSlots[studentID] == nil {
				studentSlots[studentID] = make(map[models.Slot]int)
			}
			studentSlots[studentID][sec.Slot]++
		}
	}

	moves := 0
	moveCap := 10 * len(sections)
	for moves < moveCap {
		improved := false
		for _, courseID := range courseIDs {
			group := byCourse[courseID]
			if len(group) < 2 {
				continue
			}
			if moveOnce(group, studentSlots) {
				moves++
				improved = true
				if moves >= moveCap {
					break
				}
			}
		}
		if !improved {
			break
		}
	}
	return moves
}

// moveOnce attempts a single variance-reducing move within one course's
// sections. Moving a student from the fullest to the emptiest section
// strictly reduces variance exactly when their fills differ by two or more.
func moveOnce(group []*models.Section, studentSlots map[string]map[models.Slot]int) bool {
	ordered := make([]*models.Section, len(group))
	copy(ordered, group)
	sort.SliceStable(ordered, func(a, b int) bool {
		if ordered[a].Enrollment() != ordered[b].Enrollment() {
			return ordered[a].Enrollment() > ordered[b].Enrollment()
		}
		return ordered[a].ID < ordered[b].ID
	})

	for _, from := range ordered {
		for i := len(ordered) - 1; i >= 0; i-- {
			to := ordered[i]
			if to == from || to.IsFull() {
				continue
			}
			if from.Enrollment()-to.Enrollment() < 2 {
				continue
			}
			for _, studentID := range append([]string{}, from.Roster...) {
				if conflictsAt(studentSlots[studentID], from.Slot, to.Slot) {
					continue
				}
				from.Unenroll(studentID)
				to.Enroll(studentID)
				studentSlots[studentID][from.Slot]--
				if studentSlots[studentID][from.Slot] == 0 {
					delete(studentSlots[studentID], from.Slot)
				}
				studentSlots[studentID][to.Slot]++
				return true
			}
		}
	}
	return false
}

// conflictsAt reports whether the student, having left fromSlot, would still
// be booked at toSlot.
func conflictsAt(slots map[models.Slot]int, fromSlot, toSlot models.Slot) bool {
	count := slots[toSlot]
	if toSlot == fromSlot {
		count--
	}
	return count > 0
}
