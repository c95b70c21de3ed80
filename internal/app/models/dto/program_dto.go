package dto

import "github.com/gesapp/ges-backend/internal/app/models"

// CreateProgramRequest represents program create/update data
type CreateProgramRequest struct {
	Code        string  `json:"code" binding:"required,max=100"`
	Name        string  `json:"name" binding:"required,max=100"`
	Department  *string `json:"department" binding:"omitempty,max=100"`
	Description *string `json:"description"`
}

// ToModel builds a program model from the request
func (r *CreateProgramRequest) ToModel() *models.Program {
	return &models.Program{
		Code:        r.Code,
		Name:        r.Name,
		Department:  r.Department,
		Description: r.Description,
	}
}

// CreateSubjectRequest represents subject create/update data. The program is
// referenced by id on write; reads embed the full program.
type CreateSubjectRequest struct {
	ProgramID   int64   `json:"program_id" binding:"required,min=1"`
	CourseCode  string  `json:"course_code" binding:"required,max=100"`
	Title       string  `json:"title" binding:"required,max=100"`
	Description *string `json:"description"`
	Credits     int     `json:"credits" binding:"required"`
}

// ToModel builds a subject model from the request
func (r *CreateSubjectRequest) ToModel() *models.Subject {
	return &models.Subject{
		ProgramID:   r.ProgramID,
		CourseCode:  r.CourseCode,
		Title:       r.Title,
		Description: r.Description,
		Credits:     r.Credits,
	}
}

// AssignTeachersRequest replaces the teacher set associated with a subject
type AssignTeachersRequest struct {
	TeacherIDs []int64 `json:"teacher_ids" binding:"required"`
}

// CreateScheduleRequest represents schedule create/update data.
// Times are "HH:MM" wall-clock strings.
type CreateScheduleRequest struct {
	SubjectID int64  `json:"subject_id" binding:"required,min=1"`
	Day       string `json:"day" binding:"required"`
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time" binding:"required"`
	Room      string `json:"room" binding:"required,max=100"`
}

// ToModel builds a schedule model from the request
func (r *CreateScheduleRequest) ToModel() *models.Schedule {
	return &models.Schedule{
		SubjectID: r.SubjectID,
		Day:       models.Weekday(r.Day),
		StartTime: r.StartTime,
		EndTime:   r.EndTime,
		Room:      r.Room,
	}
}
