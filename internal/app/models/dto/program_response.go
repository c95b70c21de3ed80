package dto

import "github.com/gesapp/ges-backend/internal/app/models"

// ProgramResponse is the public representation of a program
type ProgramResponse struct {
	ID          int64   `json:"id"`
	Code        string  `json:"code"`
	Name        string  `json:"name"`
	Department  *string `json:"department"`
	Description *string `json:"description"`
}

func NewProgramResponse(p *models.Program) *ProgramResponse {
	return &ProgramResponse{
		ID:          p.ID,
		Code:        p.Code,
		Name:        p.Name,
		Department:  p.Department,
		Description: p.Description,
	}
}

func NewProgramResponseList(programs []*models.Program) []*ProgramResponse {
	out := make([]*ProgramResponse, 0, len(programs))
	for _, p := range programs {
		out = append(out, NewProgramResponse(p))
	}
	return out
}

// SubjectResponse embeds the full program on reads while writes only
// carry program_id.
type SubjectResponse struct {
	ID          int64            `json:"id"`
	Program     *ProgramResponse `json:"program"`
	CourseCode  string           `json:"course_code"`
	Title       string           `json:"title"`
	Description *string          `json:"description"`
	Credits     int              `json:"credits"`
	TeacherIDs  []int64          `json:"teachers"`
}

func NewSubjectResponse(s *models.Subject) *SubjectResponse {
	resp := &SubjectResponse{
		ID:          s.ID,
		CourseCode:  s.CourseCode,
		Title:       s.Title,
		Description: s.Description,
		Credits:     s.Credits,
		TeacherIDs:  s.TeacherIDs,
	}
	if resp.TeacherIDs == nil {
		resp.TeacherIDs = []int64{}
	}
	if s.Program != nil {
		resp.Program = NewProgramResponse(s.Program)
	}
	return resp
}

func NewSubjectResponseList(subjects []*models.Subject) []*SubjectResponse {
	out := make([]*SubjectResponse, 0, len(subjects))
	for _, s := range subjects {
		out = append(out, NewSubjectResponse(s))
	}
	return out
}

// ScheduleResponse is the public representation of a schedule slot
type ScheduleResponse struct {
	ID        int64  `json:"id"`
	SubjectID int64  `json:"subject_id"`
	Day       string `json:"day"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Room      string `json:"room"`
}

func NewScheduleResponse(s *models.Schedule) *ScheduleResponse {
	return &ScheduleResponse{
		ID:        s.ID,
		SubjectID: s.SubjectID,
		Day:       string(s.Day),
		StartTime: s.StartTime,
		EndTime:   s.EndTime,
		Room:      s.Room,
	}
}

func NewScheduleResponseList(schedules []*models.Schedule) []*ScheduleResponse {
	out := make([]*ScheduleResponse, 0, len(schedules))
	for _, s := range schedules {
		out = append(out, NewScheduleResponse(s))
	}
	return out
}
