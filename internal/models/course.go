package models

// Course declares how many sections to materialize and who may enroll.
type Course struct {
	ID                string   `json:"id" validate:"required"`
	Name              string   `json:"name"`
	MaxStudents       int      `json:"max_students" validate:"gt=0"`
	GradeRestrictions []int    `json:"grade_restrictions"`
	RequiredFeatures  []string `json:"required_features"`
	Sections          int      `json:"sections" validate:"gt=0"`
}

// AllowsGrade reports whether a student of the given grade may enroll.
// An empty restriction set means the course is open to all grades.
func (c *Course) AllowsGrade(grade int) bool {
	if len(c.GradeRestrictions) == 0 {
		return true
	}
	for _, g := range c.GradeRestrictions {
		if g == grade {
			return true
		}
	}
	return false
}
