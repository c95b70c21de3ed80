package repositories

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gesapp/ges-backend/internal/app/models"
)

// IUserRepository defines database operations for user accounts
type IUserRepository interface {
	Create(ctx context.Context, user *models.User) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByStudentID(ctx context.Context, studentID string) (*models.User, error)
	GetByEmailAndRole(ctx context.Context, email string, role models.Role) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	UpdateAvatar(ctx context.Context, userID int64, avatar *string) error
	ListByProgram(ctx context.Context, programID int64, role models.Role) ([]*models.User, error)
	EmailExists(ctx context.Context, email string, excludeID int64) (bool, error)
	UsernameExists(ctx context.Context, username string, excludeID int64) (bool, error)
	StudentIDExists(ctx context.Context, studentID string, excludeID int64) (bool, error)
}

// IProgramRepository defines database operations for academic programs
type IProgramRepository interface {
	Create(ctx context.Context, program *models.Program) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Program, error)
	GetAll(ctx context.Context) ([]*models.Program, error)
	Update(ctx context.Context, program *models.Program) error
	Delete(ctx context.Context, id int64) error
	CodeExists(ctx context.Context, code string, excludeID int64) (bool, error)
}

// ISubjectRepository defines database operations for subjects
type ISubjectRepository interface {
	Create(ctx context.Context, subject *models.Subject) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Subject, error)
	GetAll(ctx context.Context) ([]*models.Subject, error)
	Update(ctx context.Context, subject *models.Subject) error
	Delete(ctx context.Context, id int64) error
	CourseCodeExists(ctx context.Context, courseCode string, excludeID int64) (bool, error)
	GetTeacherIDs(ctx context.Context, subjectID int64) ([]int64, error)
	ReplaceTeachers(ctx context.Context, subjectID int64, teacherIDs []int64) error
}

// IScheduleRepository defines database operations for class schedules
type IScheduleRepository interface {
	Create(ctx context.Context, schedule *models.Schedule) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Schedule, error)
	GetAll(ctx context.Context) ([]*models.Schedule, error)
	ListBySubject(ctx context.Context, subjectID int64) ([]*models.Schedule, error)
	Update(ctx context.Context, schedule *models.Schedule) error
	Delete(ctx context.Context, id int64) error
}

// Repositories holds all repository instances
type Repositories struct {
	User     *UserRepository
	Program  *ProgramRepository
	Subject  *SubjectRepository
	Schedule *ScheduleRepository
}

// NewRepositories creates all repositories sharing one connection pool
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		User:     NewUserRepository(db),
		Program:  NewProgramRepository(db),
		Subject:  NewSubjectRepository(db),
		Schedule: NewScheduleRepository(db),
	}
}
