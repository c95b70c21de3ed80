package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"sort"

	"github.com/gesapp/ges-backend/internal/app/models"
	"github.com/gesapp/ges-backend/internal/pkg/apperrors"
)

// In-memory repository stubs backing the service tests.

type stubUserRepo struct {
	users  map[int64]*models.User
	nextID int64
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[int64]*models.User)}
}

func cloneUser(u *models.User) *models.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) add(u *models.User) *models.User {
	r.nextID++
	u.ID = r.nextID
	r.users[u.ID] = cloneUser(u)
	return u
}

func (r *stubUserRepo) Create(_ context.Context, user *models.User) (int64, error) {
	r.add(user)
	return user.ID, nil
}

func (r *stubUserRepo) GetByID(_ context.Context, id int64) (*models.User, error) {
	if u, ok := r.users[id]; ok {
		return cloneUser(u), nil
	}
	return nil, apperrors.ErrUserNotFound
}

func (r *stubUserRepo) GetByStudentID(_ context.Context, studentID string) (*models.User, error) {
	for _, u := range r.users {
		if u.Role == models.RoleStudent && u.StudentID != nil && *u.StudentID == studentID {
			return cloneUser(u), nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (r *stubUserRepo) GetByEmailAndRole(_ context.Context, email string, role models.Role) (*models.User, error) {
	for _, u := range r.users {
		if u.Email == email && u.Role == role {
			return cloneUser(u), nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (r *stubUserRepo) Update(_ context.Context, user *models.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return apperrors.ErrUserNotFound
	}
	r.users[user.ID] = cloneUser(user)
	return nil
}

func (r *stubUserRepo) UpdateAvatar(_ context.Context, userID int64, avatar *string) error {
	u, ok := r.users[userID]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	u.Avatar = avatar
	return nil
}

func (r *stubUserRepo) ListByProgram(_ context.Context, programID int64, role models.Role) ([]*models.User, error) {
	out := []*models.User{}
	for _, u := range r.users {
		if u.Role == role && u.ProgramID != nil && *u.ProgramID == programID {
			out = append(out, cloneUser(u))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubUserRepo) EmailExists(_ context.Context, email string, excludeID int64) (bool, error) {
	for _, u := range r.users {
		if u.Email == email && u.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubUserRepo) UsernameExists(_ context.Context, username string, excludeID int64) (bool, error) {
	for _, u := range r.users {
		if u.Username == username && u.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubUserRepo) StudentIDExists(_ context.Context, studentID string, excludeID int64) (bool, error) {
	for _, u := range r.users {
		if u.StudentID != nil && *u.StudentID == studentID && u.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

type stubProgramRepo struct {
	programs map[int64]*models.Program
	nextID   int64
}

func newStubProgramRepo() *stubProgramRepo {
	return &stubProgramRepo{programs: make(map[int64]*models.Program)}
}

func cloneProgram(p *models.Program) *models.Program {
	clone := *p
	return &clone
}

func (r *stubProgramRepo) Create(_ context.Context, program *models.Program) (int64, error) {
	r.nextID++
	program.ID = r.nextID
	r.programs[program.ID] = cloneProgram(program)
	return program.ID, nil
}

func (r *stubProgramRepo) GetByID(_ context.Context, id int64) (*models.Program, error) {
	if p, ok := r.programs[id]; ok {
		return cloneProgram(p), nil
	}
	return nil, apperrors.ErrProgramNotFound
}

func (r *stubProgramRepo) GetAll(_ context.Context) ([]*models.Program, error) {
	out := []*models.Program{}
	for _, p := range r.programs {
		out = append(out, cloneProgram(p))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

func (r *stubProgramRepo) Update(_ context.Context, program *models.Program) error {
	if _, ok := r.programs[program.ID]; !ok {
		return apperrors.ErrProgramNotFound
	}
	r.programs[program.ID] = cloneProgram(program)
	return nil
}

func (r *stubProgramRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.programs[id]; !ok {
		return apperrors.ErrProgramNotFound
	}
	delete(r.programs, id)
	return nil
}

func (r *stubProgramRepo) CodeExists(_ context.Context, code string, excludeID int64) (bool, error) {
	for _, p := range r.programs {
		if p.Code == code && p.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

type stubSubjectRepo struct {
	subjects map[int64]*models.Subject
	teachers map[int64][]int64
	programs *stubProgramRepo
	nextID   int64
}

func newStubSubjectRepo(programs *stubProgramRepo) *stubSubjectRepo {
	return &stubSubjectRepo{
		subjects: make(map[int64]*models.Subject),
		teachers: make(map[int64][]int64),
		programs: programs,
	}
}

func (r *stubSubjectRepo) cloneSubject(s *models.Subject) *models.Subject {
	clone := *s
	if p, ok := r.programs.programs[s.ProgramID]; ok {
		clone.Program = cloneProgram(p)
	}
	ids := r.teachers[s.ID]
	clone.TeacherIDs = append([]int64{}, ids...)
	return &clone
}

func (r *stubSubjectRepo) Create(_ context.Context, subject *models.Subject) (int64, error) {
	r.nextID++
	subject.ID = r.nextID
	clone := *subject
	r.subjects[subject.ID] = &clone
	return subject.ID, nil
}

func (r *stubSubjectRepo) GetByID(_ context.Context, id int64) (*models.Subject, error) {
	if s, ok := r.subjects[id]; ok {
		return r.cloneSubject(s), nil
	}
	return nil, apperrors.ErrSubjectNotFound
}

func (r *stubSubjectRepo) GetAll(_ context.Context) ([]*models.Subject, error) {
	out := []*models.Subject{}
	for _, s := range r.subjects {
		out = append(out, r.cloneSubject(s))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CourseCode < out[j].CourseCode })
	return out, nil
}

func (r *stubSubjectRepo) Update(_ context.Context, subject *models.Subject) error {
	if _, ok := r.subjects[subject.ID]; !ok {
		return apperrors.ErrSubjectNotFound
	}
	clone := *subject
	r.subjects[subject.ID] = &clone
	return nil
}

func (r *stubSubjectRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.subjects[id]; !ok {
		return apperrors.ErrSubjectNotFound
	}
	delete(r.subjects, id)
	delete(r.teachers, id)
	return nil
}

func (r *stubSubjectRepo) CourseCodeExists(_ context.Context, courseCode string, excludeID int64) (bool, error) {
	for _, s := range r.subjects {
		if s.CourseCode == courseCode && s.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubSubjectRepo) GetTeacherIDs(_ context.Context, subjectID int64) ([]int64, error) {
	return append([]int64{}, r.teachers[subjectID]...), nil
}

func (r *stubSubjectRepo) ReplaceTeachers(_ context.Context, subjectID int64, teacherIDs []int64) error {
	r.teachers[subjectID] = append([]int64{}, teacherIDs...)
	return nil
}

type stubScheduleRepo struct {
	schedules map[int64]*models.Schedule
	nextID    int64
}

func newStubScheduleRepo() *stubScheduleRepo {
	return &stubScheduleRepo{schedules: make(map[int64]*models.Schedule)}
}

func cloneSchedule(s *models.Schedule) *models.Schedule {
	clone := *s
	return &clone
}

func (r *stubScheduleRepo) Create(_ context.Context, schedule *models.Schedule) (int64, error) {
	r.nextID++
	schedule.ID = r.nextID
	r.schedules[schedule.ID] = cloneSchedule(schedule)
	return schedule.ID, nil
}

func (r *stubScheduleRepo) GetByID(_ context.Context, id int64) (*models.Schedule, error) {
	if s, ok := r.schedules[id]; ok {
		return cloneSchedule(s), nil
	}
	return nil, apperrors.ErrScheduleNotFound
}

func (r *stubScheduleRepo) GetAll(_ context.Context) ([]*models.Schedule, error) {
	out := []*models.Schedule{}
	for _, s := range r.schedules {
		out = append(out, cloneSchedule(s))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubScheduleRepo) ListBySubject(_ context.Context, subjectID int64) ([]*models.Schedule, error) {
	out := []*models.Schedule{}
	for _, s := range r.schedules {
		if s.SubjectID == subjectID {
			out = append(out, cloneSchedule(s))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubScheduleRepo) Update(_ context.Context, schedule *models.Schedule) error {
	if _, ok := r.schedules[schedule.ID]; !ok {
		return apperrors.ErrScheduleNotFound
	}
	r.schedules[schedule.ID] = cloneSchedule(schedule)
	return nil
}

func (r *stubScheduleRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.schedules[id]; !ok {
		return apperrors.ErrScheduleNotFound
	}
	delete(r.schedules, id)
	return nil
}

// stubStorage records saves and deletes without touching disk.
type stubStorage struct {
	saves   int
	deleted []string
}

func (s *stubStorage) SaveFile(_ *multipart.FileHeader) (string, error) {
	s.saves++
	return fmt.Sprintf("file-%d", s.saves), nil
}

func (s *stubStorage) SaveFileWithPath(_ *multipart.FileHeader, subPath string) (string, error) {
	s.saves++
	return fmt.Sprintf("%s/file-%d", subPath, s.saves), nil
}

func (s *stubStorage) DeleteFile(path string) error {
	s.deleted = append(s.deleted, path)
	return nil
}
