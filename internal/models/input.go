package models

// Input bundles the immutable entity snapshot the pipeline runs against.
// Lookup tables are owned here so that sections can refer to entities by id.
type Input struct {
	Students []*Student
	Teachers []*Teacher
	Courses  []*Course
	Rooms    []*Room
	Grid     TimeGrid

	courseByID  map[string]*Course
	teacherByID map[string]*Teacher
	roomByID    map[string]*Room
	studentByID map[string]*Student
}

// Index builds the id lookup tables. Call once after loading.
func (in *Input) Index() {
	in.courseByID = make(map[string]*Course, len(in.Courses))
	for _, c := range in.Courses {
		in.courseByID[c.ID] = c
	}
	in.teacherByID = make(map[string]*Teacher, len(in.Teachers))
	for _, t := range in.Teachers {
		in.teacherByID[t.ID] = t
	}
	in.roomByID = make(map[string]*Room, len(in.Rooms))
	for _, r := range in.Rooms {
		in.roomByID[r.ID] = r
	}
	in.studentByID = make(map[string]*Student, len(in.Students))
	for _, s := range in.Students {
		in.studentByID[s.ID] = s
	}
}

// Course resolves a course id, or nil.
func (in *Input) Course(id string) *Course { return in.courseByID[id] }

// Teacher resolves a teacher id, or nil.
func (in *Input) Teacher(id string) *Teacher { return in.teacherByID[id] }

// Room resolves a room id, or nil.
func (in *Input) Room(id string) *Room { return in.roomByID[id] }

// Student resolves a student id, or nil.
func (in *Input) Student(id string) *Student { return in.studentByID[id] }
