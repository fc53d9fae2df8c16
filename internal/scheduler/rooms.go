package scheduler

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/noah-isme/school-scheduler/internal/models"
	appErrors "github.com/noah-isme/school-scheduler/pkg/errors"
)

// AssignRooms gives every section a room that carries the course's required
// features and is free at the section's slot. Best fit is the smallest
// sufficient room; when nothing is big enough the largest candidate is taken
// and a warning is emitted. Section order is the phase-1 creation order.
func AssignRooms(sections []*models.Section, input *models.Input, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	roomBusy := make(map[string]map[models.Slot]bool, len(input.Rooms))

	for _, sec := range sections {
		course := input.Course(sec.CourseID)

		var candidates []*models.Room
		for _, r := range input.Rooms {
			if !r.HasFeatures(course.RequiredFeatures) {
				continue
			}
			if !r.IsAvailable(sec.Slot) || roomBusy[r.ID][sec.Slot] {
				continue
			}
			candidates = append(candidates, r)
		}
		if len(candidates) == 0 {
			return appErrors.Clone(appErrors.ErrNoFeasibleRoom, noRoomDiagnostic(sec, course))
		}

		room := pickRoom(candidates, course.MaxStudents)
		if room.Capacity < course.MaxStudents {
			logger.Warn("room capacity below requested section size",
				zap.String("section", sec.ID),
				zap.String("room", room.ID),
				zap.Int("capacity", room.Capacity),
				zap.Int("requested", course.MaxStudents))
		}

		sec.RoomID = room.ID
		sec.Capacity = min(course.MaxStudents, room.Capacity)
		if roomBusy[room.ID] == nil {
			roomBusy[room.ID] = make(map[models.Slot]bool)
		}
		roomBusy[room.ID][sec.Slot] = true
	}

	return nil
}

// pickRoom prefers the smallest room that fits the whole section, breaking
// capacity ties by room id. With no sufficient room it falls back to the
// largest candidate.
func pickRoom(candidates []*models.Room, wanted int) *models.Room {
	var sufficient, largest *models.Room
	for _, r := range candidates {
		if r.Capacity >= wanted {
			if sufficient == nil || r.Capacity < sufficient.Capacity ||
				(r.Capacity == sufficient.Capacity && r.ID < sufficient.ID) {
				sufficient = r
			}
		}
		if largest == nil || r.Capacity > largest.Capacity ||
			(r.Capacity == largest.Capacity && r.ID < largest.ID) {
			largest = r
		}
	}
	if sufficient != nil {
		return sufficient
	}
	return largest
}

func noRoomDiagnostic(sec *models.Section, course *models.Course) string {
	if len(course.RequiredFeatures) > 0 {
		return fmt.Sprintf("course '%s' requires feature '%s' but no available room has it at slot %s",
			course.ID, strings.Join(course.RequiredFeatures, "','"), sec.Slot)
	}
	return fmt.Sprintf("no room available for section '%s' at slot %s", sec.ID, sec.Slot)
}
