package models

// Program defines an academic program based on the 'programs' table.
// A program owns its subjects; deleting a program cascades to them.
type Program struct {
	ID          int64   `json:"id" db:"id" example:"1"`
	Code        string  `json:"code" db:"code" example:"BSCS"`
	Name        string  `json:"name" db:"name" example:"BS Computer Science"`
	Department  *string `json:"department,omitempty" db:"department"`
	Description *string `json:"description,omitempty" db:"description"`
}

// Subject defines a course offered under exactly one program.
// Teachers may be associated through the subject_teachers join table.
type Subject struct {
	ID          int64   `json:"id" db:"id" example:"1"`
	ProgramID   int64   `json:"program_id" db:"program_id" example:"1"`
	CourseCode  string  `json:"course_code" db:"course_code" example:"CS101"`
	Title       string  `json:"title" db:"title" example:"Introduction to Computing"`
	Description *string `json:"description,omitempty" db:"description"`
	Credits     int     `json:"credits" db:"credits" example:"3"`

	// Relations (populated when needed)
	Program    *Program `json:"program,omitempty"`
	TeacherIDs []int64  `json:"teacher_ids,omitempty"`
}

// Schedule defines a recurring time slot for a subject.
// Times are wall-clock values in "HH:MM" form; end is strictly after start.
type Schedule struct {
	ID        int64   `json:"id" db:"id" example:"1"`
	SubjectID int64   `json:"subject_id" db:"subject_id" example:"1"`
	Day       Weekday `json:"day" db:"day" example:"Monday"`
	StartTime string  `json:"start_time" db:"start_time" example:"09:00"`
	EndTime   string  `json:"end_time" db:"end_time" example:"10:30"`
	Room      string  `json:"room" db:"room" example:"101"`
}
