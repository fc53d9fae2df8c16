package models

// Teacher lists qualifications and availability limits.
type Teacher struct {
	ID          string   `json:"id" validate:"required"`
	Name        string   `json:"name"`
	Subjects    []string `json:"subjects"`
	MaxSections int      `json:"max_sections" validate:"gte=0"`
	Unavailable []Slot   `json:"unavailable"`
}

// CanTeach reports whether the teacher is qualified for the course.
func (t *Teacher) CanTeach(courseID string) bool {
	for _, id := range t.Subjects {
		if id == courseID {
			return true
		}
	}
	return false
}

// IsAvailable reports whether the teacher can be scheduled at the slot.
func (t *Teacher) IsAvailable(s Slot) bool {
	return !ContainsSlot(t.Unavailable, s)
}
