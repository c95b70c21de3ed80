package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/gesapp/ges-backend/internal/app/models"
	"github.com/gesapp/ges-backend/internal/app/models/dto"
	"github.com/gesapp/ges-backend/internal/pkg/apperrors"
	"github.com/gesapp/ges-backend/internal/pkg/auth"
)

func testJWTService() *auth.JWTService {
	return auth.NewJWTService(auth.JWTConfig{
		SecretKey:       "test-secret",
		AccessTokenExp:  time.Hour,
		RefreshTokenExp: 24 * time.Hour,
		TokenIssuer:     "test",
	})
}

func newAuthFixture() (*AuthService, *stubUserRepo) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, testJWTService(), zerolog.Nop())
	return svc, repo
}

func seedStudent(t *testing.T, repo *stubUserRepo, studentID, password string) *models.User {
	t.Helper()
	hash, err := auth.HashPassword(password)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	user := &models.User{
		FirstName: "Ana",
		LastName:  "Reyes",
		Email:     studentID + "@example.com",
		Username:  "user-" + studentID,
		Password:  hash,
		Gender:    models.GenderFemale,
		Role:      models.RoleStudent,
		StudentID: &studentID,
		IsActive:  true,
	}
	repo.add(user)
	return user
}

func seedTeacher(t *testing.T, repo *stubUserRepo, email, password string) *models.User {
	t.Helper()
	hash, err := auth.HashPassword(password)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	user := &models.User{
		FirstName: "Luis",
		LastName:  "Ortega",
		Email:     email,
		Username:  "teacher-" + email,
		Password:  hash,
		Gender:    models.GenderMale,
		Role:      models.RoleTeacher,
		IsActive:  true,
	}
	repo.add(user)
	return user
}

func TestLoginStudent_Success(t *testing.T) {
	svc, repo := newAuthFixture()
	seedStudent(t, repo, "S-2024-001", "pass-1234")

	resp, err := svc.LoginStudent(context.Background(), &dto.StudentLoginRequest{
		StudentID: "S-2024-001",
		Password:  "pass-1234",
	})
	if err != nil {
		t.Fatalf("LoginStudent returned error: %v", err)
	}
	if resp.Access == "" || resp.Refresh == "" {
		t.Fatalf("expected token pair")
	}
	if resp.User == nil || resp.User.StudentID == nil || *resp.User.StudentID != "S-2024-001" {
		t.Fatalf("unexpected user payload: %+v", resp.User)
	}
}

func TestLoginStudent_MissingCredentials(t *testing.T) {
	svc, _ := newAuthFixture()

	_, err := svc.LoginStudent(context.Background(), &dto.StudentLoginRequest{StudentID: "", Password: "x"})
	if !errors.Is(err, apperrors.ErrMissingCredentials) {
		t.Fatalf("expected ErrMissingCredentials, got %v", err)
	}
	if msg := apperrors.MessageOf(err); msg != "Student ID and password are required" {
		t.Fatalf("unexpected message: %q", msg)
	}

	_, err = svc.LoginStudent(context.Background(), &dto.StudentLoginRequest{StudentID: "S-1", Password: ""})
	if !errors.Is(err, apperrors.ErrMissingCredentials) {
		t.Fatalf("expected ErrMissingCredentials, got %v", err)
	}
}

func TestLoginStudent_UnknownStudentID(t *testing.T) {
	svc, _ := newAuthFixture()

	_, err := svc.LoginStudent(context.Background(), &dto.StudentLoginRequest{
		StudentID: "missing",
		Password:  "whatever",
	})
	if !errors.Is(err, apperrors.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if msg := apperrors.MessageOf(err); msg != "Invalid student ID or user not found" {
		t.Fatalf("unexpected message: %q", msg)
	}
}

func TestLoginStudent_WrongPassword(t *testing.T) {
	svc, repo := newAuthFixture()
	seedStudent(t, repo, "S-2024-001", "correct")

	_, err := svc.LoginStudent(context.Background(), &dto.StudentLoginRequest{
		StudentID: "S-2024-001",
		Password:  "incorrect",
	})
	if !errors.Is(err, apperrors.ErrIncorrectPassword) {
		t.Fatalf("expected ErrIncorrectPassword, got %v", err)
	}
	if msg := apperrors.MessageOf(err); msg != "Incorrect password" {
		t.Fatalf("unexpected message: %q", msg)
	}
}

func TestLoginStudent_InactiveAccount(t *testing.T) {
	svc, repo := newAuthFixture()
	user := seedStudent(t, repo, "S-2024-001", "pass-1234")
	user.IsActive = false
	repo.users[user.ID] = user

	_, err := svc.LoginStudent(context.Background(), &dto.StudentLoginRequest{
		StudentID: "S-2024-001",
		Password:  "pass-1234",
	})
	if !errors.Is(err, apperrors.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for inactive account, got %v", err)
	}
}

func TestLoginTeacher_Success(t *testing.T) {
	svc, repo := newAuthFixture()
	seedTeacher(t, repo, "prof@example.com", "pass-1234")

	resp, err := svc.LoginTeacher(context.Background(), &dto.TeacherLoginRequest{
		Email:    "prof@example.com",
		Password: "pass-1234",
	})
	if err != nil {
		t.Fatalf("LoginTeacher returned error: %v", err)
	}
	if resp.User.Role != string(models.RoleTeacher) {
		t.Fatalf("unexpected role: %s", resp.User.Role)
	}
}

func TestLoginTeacher_StudentEmailRejected(t *testing.T) {
	svc, repo := newAuthFixture()
	student := seedStudent(t, repo, "S-2024-001", "pass-1234")

	_, err := svc.LoginTeacher(context.Background(), &dto.TeacherLoginRequest{
		Email:    student.Email,
		Password: "pass-1234",
	})
	if !errors.Is(err, apperrors.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for non-teacher email, got %v", err)
	}
	if msg := apperrors.MessageOf(err); msg != "Invalid email or user not found" {
		t.Fatalf("unexpected message: %q", msg)
	}
}

func TestLoginTeacher_MissingCredentials(t *testing.T) {
	svc, _ := newAuthFixture()

	_, err := svc.LoginTeacher(context.Background(), &dto.TeacherLoginRequest{})
	if !errors.Is(err, apperrors.ErrMissingCredentials) {
		t.Fatalf("expected ErrMissingCredentials, got %v", err)
	}
	if msg := apperrors.MessageOf(err); msg != "Email and password are required" {
		t.Fatalf("unexpected message: %q", msg)
	}
}

func TestRefresh_RotatesPair(t *testing.T) {
	svc, repo := newAuthFixture()
	seedStudent(t, repo, "S-2024-001", "pass-1234")

	login, err := svc.LoginStudent(context.Background(), &dto.StudentLoginRequest{
		StudentID: "S-2024-001",
		Password:  "pass-1234",
	})
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	pair, err := svc.Refresh(context.Background(), login.Refresh)
	if err != nil {
		t.Fatalf("Refresh returned error: %v", err)
	}
	if pair.Access == "" || pair.Refresh == "" {
		t.Fatalf("expected new token pair")
	}
}

func TestRefresh_RejectsAccessToken(t *testing.T) {
	svc, repo := newAuthFixture()
	seedStudent(t, repo, "S-2024-001", "pass-1234")

	login, err := svc.LoginStudent(context.Background(), &dto.StudentLoginRequest{
		StudentID: "S-2024-001",
		Password:  "pass-1234",
	})
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	if _, err := svc.Refresh(context.Background(), login.Access); !errors.Is(err, apperrors.ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid for access token, got %v", err)
	}
}

func TestRefresh_Garbage(t *testing.T) {
	svc, _ := newAuthFixture()

	if _, err := svc.Refresh(context.Background(), "not-a-token"); !errors.Is(err, apperrors.ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestRegisterStudent_ForcesStudentRole(t *testing.T) {
	svc, repo := newAuthFixture()

	user, err := svc.RegisterStudent(context.Background(), &dto.RegisterStudentRequest{
		FirstName: "Ana",
		LastName:  "Reyes",
		Email:     "ana@example.com",
		Username:  "ana",
		Password:  "longenough",
		Role:      "admin",
	})
	if err != nil {
		t.Fatalf("RegisterStudent returned error: %v", err)
	}
	if user.Role != string(models.RoleStudent) {
		t.Fatalf("expected student role, got %s", user.Role)
	}

	stored := repo.users[user.ID]
	if stored.Password == "longenough" {
		t.Fatalf("password stored in clear")
	}
	if !stored.IsActive {
		t.Fatalf("expected account active")
	}
}

func TestRegisterStudent_WithoutStudentID(t *testing.T) {
	svc, _ := newAuthFixture()

	user, err := svc.RegisterStudent(context.Background(), &dto.RegisterStudentRequest{
		FirstName: "Ana",
		LastName:  "Reyes",
		Email:     "ana@example.com",
		Username:  "ana",
		Password:  "longenough",
	})
	if err != nil {
		t.Fatalf("RegisterStudent returned error: %v", err)
	}
	if user.StudentID != nil {
		t.Fatalf("expected nil student id, got %v", *user.StudentID)
	}
}

func TestRegisterStudent_DuplicateEmail(t *testing.T) {
	svc, repo := newAuthFixture()
	seedStudent(t, repo, "S-2024-001", "pass-1234")

	_, err := svc.RegisterStudent(context.Background(), &dto.RegisterStudentRequest{
		FirstName: "Ana",
		LastName:  "Reyes",
		Email:     "S-2024-001@example.com",
		Username:  "another",
		Password:  "longenough",
	})
	if !errors.Is(err, apperrors.ErrValidationFailed) {
		t.Fatalf("expected ErrValidationFailed, got %v", err)
	}
	fields := apperrors.FieldsOf(err)
	if len(fields["email"]) != 1 {
		t.Fatalf("expected email field error, got %v", fields)
	}
}

func TestRegisterStudent_DuplicateStudentID(t *testing.T) {
	svc, repo := newAuthFixture()
	seedStudent(t, repo, "S-2024-001", "pass-1234")

	_, err := svc.RegisterStudent(context.Background(), &dto.RegisterStudentRequest{
		FirstName: "Eva",
		LastName:  "Lund",
		Email:     "eva@example.com",
		Username:  "eva",
		Password:  "longenough",
		StudentID: "S-2024-001",
	})
	if !errors.Is(err, apperrors.ErrValidationFailed) {
		t.Fatalf("expected ErrValidationFailed, got %v", err)
	}
	fields := apperrors.FieldsOf(err)
	if len(fields["student_id"]) != 1 {
		t.Fatalf("expected student_id field error, got %v", fields)
	}
}

func TestRegisterStudent_NormalizesHandles(t *testing.T) {
	svc, repo := newAuthFixture()

	user, err := svc.RegisterStudent(context.Background(), &dto.RegisterStudentRequest{
		FirstName: "Ana",
		LastName:  "Reyes",
		Email:     "Ana.Reyes@Example.COM",
		Username:  "AnaR",
		Password:  "longenough",
	})
	if err != nil {
		t.Fatalf("RegisterStudent returned error: %v", err)
	}
	if user.Email != "ana.reyes@example.com" {
		t.Fatalf("expected lowercased email, got %s", user.Email)
	}
	if user.Username != "anar" {
		t.Fatalf("expected lowercased username, got %s", user.Username)
	}

	stored := repo.users[user.ID]
	if stored.Email != "ana.reyes@example.com" {
		t.Fatalf("expected normalized email persisted, got %s", stored.Email)
	}
}

func TestLoginTeacher_EmailCaseInsensitive(t *testing.T) {
	svc, repo := newAuthFixture()
	seedTeacher(t, repo, "luis@example.com", "pass-1234")

	resp, err := svc.LoginTeacher(context.Background(), &dto.TeacherLoginRequest{
		Email:    "Luis@Example.com",
		Password: "pass-1234",
	})
	if err != nil {
		t.Fatalf("LoginTeacher returned error: %v", err)
	}
	if resp.User.Email != "luis@example.com" {
		t.Fatalf("unexpected user: %+v", resp.User)
	}
}
