package validation

import (
	"testing"

	"github.com/gesapp/ges-backend/internal/app/models"
)

func validSchedule() *models.Schedule {
	return &models.Schedule{
		SubjectID: 1,
		Day:       models.Monday,
		StartTime: "09:00",
		EndTime:   "10:30",
		Room:      "B-204",
	}
}

func TestValidateSchedule_Valid(t *testing.T) {
	if errs := ValidateSchedule(validSchedule()); errs.HasErrors() {
		t.Fatalf("expected no errors, got %v", errs)
	}
}

func TestValidateSchedule_EndBeforeStart(t *testing.T) {
	s := validSchedule()
	s.StartTime = "14:00"
	s.EndTime = "13:00"

	errs := ValidateSchedule(s)
	if !errs.HasErrors() {
		t.Fatalf("expected errors")
	}
	msgs := errs["end_time"]
	if len(msgs) != 1 || msgs[0] != "End time must be after start time." {
		t.Fatalf("unexpected end_time errors: %v", msgs)
	}
}

func TestValidateSchedule_EndEqualsStart(t *testing.T) {
	s := validSchedule()
	s.StartTime = "14:00"
	s.EndTime = "14:00"

	if errs := ValidateSchedule(s); !errs.HasErrors() {
		t.Fatalf("expected zero-length slot to be rejected")
	}
}

func TestValidateSchedule_BadDay(t *testing.T) {
	s := validSchedule()
	s.Day = models.Weekday("Saturday")

	errs := ValidateSchedule(s)
	if len(errs["day"]) != 1 {
		t.Fatalf("expected one day error, got %v", errs["day"])
	}
}

func TestValidateSchedule_BadTimeFormat(t *testing.T) {
	s := validSchedule()
	s.StartTime = "9am"

	errs := ValidateSchedule(s)
	if len(errs["start_time"]) != 1 {
		t.Fatalf("expected one start_time error, got %v", errs["start_time"])
	}
}

func TestValidateSubject_Credits(t *testing.T) {
	subject := &models.Subject{ProgramID: 1, CourseCode: "CS101", Title: "Intro", Credits: 3}
	if errs := ValidateSubject(subject); errs.HasErrors() {
		t.Fatalf("expected no errors, got %v", errs)
	}

	subject.Credits = 0
	if errs := ValidateSubject(subject); len(errs["credits"]) != 1 {
		t.Fatalf("expected credits error, got %v", errs)
	}

	subject.Credits = -2
	if errs := ValidateSubject(subject); len(errs["credits"]) != 1 {
		t.Fatalf("expected credits error, got %v", errs)
	}
}

func TestValidateUserProfile_StudentNeedsStudentID(t *testing.T) {
	user := &models.User{Role: models.RoleStudent}
	errs := ValidateUserProfile(user)
	if len(errs["student_id"]) != 1 || errs["student_id"][0] != "Student ID is required for students." {
		t.Fatalf("unexpected errors: %v", errs)
	}

	id := "S-2024-001"
	user.StudentID = &id
	if errs := ValidateUserProfile(user); errs.HasErrors() {
		t.Fatalf("expected no errors, got %v", errs)
	}
}

func TestValidateUserProfile_OnlyStudentsHaveStudentID(t *testing.T) {
	id := "S-2024-001"
	user := &models.User{Role: models.RoleTeacher, StudentID: &id}

	errs := ValidateUserProfile(user)
	if len(errs["student_id"]) != 1 || errs["student_id"][0] != "Only students can have a student ID." {
		t.Fatalf("unexpected errors: %v", errs)
	}

	user.StudentID = nil
	if errs := ValidateUserProfile(user); errs.HasErrors() {
		t.Fatalf("expected no errors, got %v", errs)
	}
}

func TestValidateAvatar_SizeLimit(t *testing.T) {
	if errs := ValidateAvatar(MaxAvatarSize); errs.HasErrors() {
		t.Fatalf("expected size at limit to pass, got %v", errs)
	}
	if errs := ValidateAvatar(MaxAvatarSize + 1); len(errs["avatar"]) != 1 {
		t.Fatalf("expected avatar error, got %v", errs)
	}
}
