// Package validation holds cross-field business rules that run after
// request binding. Each entity gets a free function returning field
// errors keyed by the offending attribute.
package validation

import (
	"fmt"
	"time"

	"github.com/gesapp/ges-backend/internal/app/models"
	"github.com/gesapp/ges-backend/internal/app/models/dto"
)

const timeLayout = "15:04"

// MaxAvatarSize is the upload limit for profile pictures.
const MaxAvatarSize = 2 << 20

// ValidateSchedule checks the weekday value, the time format and that
// the slot ends after it starts.
func ValidateSchedule(s *models.Schedule) dto.FieldErrors {
	errs := dto.FieldErrors{}

	if !s.Day.IsValid() {
		errs.Add("day", fmt.Sprintf("%q is not a valid choice.", string(s.Day)))
	}

	start, startErr := time.Parse(timeLayout, s.StartTime)
	if startErr != nil {
		errs.Add("start_time", "Time has wrong format. Use HH:MM instead.")
	}
	end, endErr := time.Parse(timeLayout, s.EndTime)
	if endErr != nil {
		errs.Add("end_time", "Time has wrong format. Use HH:MM instead.")
	}
	if startErr == nil && endErr == nil && !end.After(start) {
		errs.Add("end_time", "End time must be after start time.")
	}
	return errs
}

// ValidateSubject checks value constraints not expressible as binding tags.
func ValidateSubject(s *models.Subject) dto.FieldErrors {
	errs := dto.FieldErrors{}
	if s.Credits <= 0 {
		errs.Add("credits", "Credits must be a positive number.")
	}
	return errs
}

// ValidateUserProfile enforces the coupling between the student role and
// the student ID field: students must carry one, nobody else may.
func ValidateUserProfile(u *models.User) dto.FieldErrors {
	errs := dto.FieldErrors{}
	hasStudentID := u.StudentID != nil && *u.StudentID != ""

	switch {
	case u.Role == models.RoleStudent && !hasStudentID:
		errs.Add("student_id", "Student ID is required for students.")
	case u.Role != models.RoleStudent && hasStudentID:
		errs.Add("student_id", "Only students can have a student ID.")
	}
	return errs
}

// ValidateAvatar rejects oversized uploads before they hit storage.
func ValidateAvatar(size int64) dto.FieldErrors {
	errs := dto.FieldErrors{}
	if size > MaxAvatarSize {
		errs.Add("avatar", "Image size should not exceed 2 MB.")
	}
	return errs
}
