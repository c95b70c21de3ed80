package services

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/gesapp/ges-backend/internal/app/models"
	"github.com/gesapp/ges-backend/internal/app/models/dto"
	"github.com/gesapp/ges-backend/internal/pkg/apperrors"
)

func newProgramFixture() (*ProgramService, *stubProgramRepo, *stubUserRepo) {
	programs := newStubProgramRepo()
	users := newStubUserRepo()
	svc := NewProgramService(programs, users, zerolog.Nop())
	return svc, programs, users
}

func TestCreateProgram_Success(t *testing.T) {
	svc, _, _ := newProgramFixture()

	dept := "Engineering"
	resp, err := svc.CreateProgram(context.Background(), &dto.CreateProgramRequest{
		Code:       "BSCS",
		Name:       "Computer Science",
		Department: &dept,
	})
	if err != nil {
		t.Fatalf("CreateProgram returned error: %v", err)
	}
	if resp.ID == 0 || resp.Code != "BSCS" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestCreateProgram_DuplicateCode(t *testing.T) {
	svc, _, _ := newProgramFixture()

	req := &dto.CreateProgramRequest{Code: "BSCS", Name: "Computer Science"}
	if _, err := svc.CreateProgram(context.Background(), req); err != nil {
		t.Fatalf("first create: %v", err)
	}

	_, err := svc.CreateProgram(context.Background(), &dto.CreateProgramRequest{Code: "BSCS", Name: "Other"})
	if !errors.Is(err, apperrors.ErrValidationFailed) {
		t.Fatalf("expected ErrValidationFailed, got %v", err)
	}
	fields := apperrors.FieldsOf(err)
	if len(fields["code"]) != 1 {
		t.Fatalf("expected code field error, got %v", fields)
	}
}

func TestUpdateProgram_KeepOwnCode(t *testing.T) {
	svc, _, _ := newProgramFixture()

	created, err := svc.CreateProgram(context.Background(), &dto.CreateProgramRequest{Code: "BSCS", Name: "Computer Science"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// Re-submitting the same code for the same program is not a conflict
	updated, err := svc.UpdateProgram(context.Background(), created.ID, &dto.CreateProgramRequest{
		Code: "BSCS",
		Name: "Computing",
	})
	if err != nil {
		t.Fatalf("UpdateProgram returned error: %v", err)
	}
	if updated.Name != "Computing" {
		t.Fatalf("expected updated name, got %s", updated.Name)
	}
}

func TestUpdateProgram_CodeCollision(t *testing.T) {
	svc, _, _ := newProgramFixture()

	if _, err := svc.CreateProgram(context.Background(), &dto.CreateProgramRequest{Code: "BSCS", Name: "CS"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	second, err := svc.CreateProgram(context.Background(), &dto.CreateProgramRequest{Code: "BSIT", Name: "IT"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	_, err = svc.UpdateProgram(context.Background(), second.ID, &dto.CreateProgramRequest{Code: "BSCS", Name: "IT"})
	if !errors.Is(err, apperrors.ErrValidationFailed) {
		t.Fatalf("expected ErrValidationFailed, got %v", err)
	}
}

func TestUpdateProgram_NotFound(t *testing.T) {
	svc, _, _ := newProgramFixture()

	_, err := svc.UpdateProgram(context.Background(), 99, &dto.CreateProgramRequest{Code: "X", Name: "Y"})
	if !errors.Is(err, apperrors.ErrResourceNotFound) {
		t.Fatalf("expected not-found error, got %v", err)
	}
}

func TestDeleteProgram_NotFound(t *testing.T) {
	svc, _, _ := newProgramFixture()

	if err := svc.DeleteProgram(context.Background(), 99); !errors.Is(err, apperrors.ErrResourceNotFound) {
		t.Fatalf("expected not-found error, got %v", err)
	}
}

func TestListStudents_ProgramMustExist(t *testing.T) {
	svc, _, _ := newProgramFixture()

	_, err := svc.ListStudents(context.Background(), 99)
	if !errors.Is(err, apperrors.ErrResourceNotFound) {
		t.Fatalf("expected not-found error, got %v", err)
	}
}

func TestListStudents_FiltersByRoleAndProgram(t *testing.T) {
	svc, _, users := newProgramFixture()

	created, err := svc.CreateProgram(context.Background(), &dto.CreateProgramRequest{Code: "BSCS", Name: "CS"})
	if err != nil {
		t.Fatalf("create program: %v", err)
	}

	sid := "S-1"
	users.add(&models.User{
		FirstName: "Ana", LastName: "Reyes", Email: "ana@example.com", Username: "ana",
		Role: models.RoleStudent, StudentID: &sid, ProgramID: &created.ID, IsActive: true,
	})
	users.add(&models.User{
		FirstName: "Luis", LastName: "Ortega", Email: "luis@example.com", Username: "luis",
		Role: models.RoleTeacher, ProgramID: &created.ID, IsActive: true,
	})
	users.add(&models.User{
		FirstName: "Eva", LastName: "Lund", Email: "eva@example.com", Username: "eva",
		Role: models.RoleStudent, IsActive: true,
	})

	students, err := svc.ListStudents(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("ListStudents returned error: %v", err)
	}
	if len(students) != 1 {
		t.Fatalf("expected 1 student, got %d", len(students))
	}
	if students[0].Username != "ana" {
		t.Fatalf("unexpected student: %+v", students[0])
	}
}

func TestEnrollStudent_Success(t *testing.T) {
	svc, _, users := newProgramFixture()

	created, err := svc.CreateProgram(context.Background(), &dto.CreateProgramRequest{Code: "BSCS", Name: "CS"})
	if err != nil {
		t.Fatalf("create program: %v", err)
	}

	resp, err := svc.EnrollStudent(context.Background(), created.ID, &dto.RegisterStudentRequest{
		FirstName: "Ana",
		LastName:  "Reyes",
		Email:     "ana@example.com",
		Username:  "ana",
		Password:  "p@ss1234",
		StudentID: "S-1",
	})
	if err != nil {
		t.Fatalf("EnrollStudent returned error: %v", err)
	}
	if resp.ID == 0 || resp.Role != string(models.RoleStudent) {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if resp.ProgramID == nil || *resp.ProgramID != created.ID {
		t.Fatalf("expected program %d, got %+v", created.ID, resp.ProgramID)
	}

	stored, err := users.GetByID(context.Background(), resp.ID)
	if err != nil {
		t.Fatalf("stored student lookup: %v", err)
	}
	if stored.Password == "p@ss1234" || stored.Password == "" {
		t.Fatalf("password stored unhashed")
	}
}

func TestEnrollStudent_ProgramMustExist(t *testing.T) {
	svc, _, _ := newProgramFixture()

	_, err := svc.EnrollStudent(context.Background(), 99, &dto.RegisterStudentRequest{
		FirstName: "Ana", LastName: "Reyes", Email: "ana@example.com",
		Username: "ana", Password: "p@ss1234", StudentID: "S-1",
	})
	if !errors.Is(err, apperrors.ErrResourceNotFound) {
		t.Fatalf("expected not-found error, got %v", err)
	}
}

func TestEnrollStudent_RequiresStudentID(t *testing.T) {
	svc, _, _ := newProgramFixture()

	created, err := svc.CreateProgram(context.Background(), &dto.CreateProgramRequest{Code: "BSCS", Name: "CS"})
	if err != nil {
		t.Fatalf("create program: %v", err)
	}

	_, err = svc.EnrollStudent(context.Background(), created.ID, &dto.RegisterStudentRequest{
		FirstName: "Ana", LastName: "Reyes", Email: "ana@example.com",
		Username: "ana", Password: "p@ss1234",
	})
	if !errors.Is(err, apperrors.ErrValidationFailed) {
		t.Fatalf("expected ErrValidationFailed, got %v", err)
	}
	if fields := apperrors.FieldsOf(err); len(fields["student_id"]) != 1 {
		t.Fatalf("expected student_id field error, got %v", fields)
	}
}
