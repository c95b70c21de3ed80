package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gesapp/ges-backend/internal/app/models"
	"github.com/gesapp/ges-backend/internal/pkg/apperrors"
	"github.com/gesapp/ges-backend/internal/pkg/dberrors"
	"github.com/gesapp/ges-backend/internal/pkg/logger"
)

var userColumns = []string{
	"id", "first_name", "middle_name", "last_name", "email", "username",
	"password", "gender", "role", "student_id", "address", "contact_number",
	"avatar", "program_id", "is_active", "is_staff", "is_superuser",
	"created_at", "updated_at",
}

// UserRepository handles user database operations
type UserRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func scanUser(row pgx.Row) (*models.User, error) {
	user := &models.User{}
	err := row.Scan(
		&user.ID, &user.FirstName, &user.MiddleName, &user.LastName,
		&user.Email, &user.Username, &user.Password, &user.Gender,
		&user.Role, &user.StudentID, &user.Address, &user.ContactNumber,
		&user.Avatar, &user.ProgramID, &user.IsActive, &user.IsStaff,
		&user.IsSuperuser, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// Create inserts a new user and returns its id
func (r *UserRepository) Create(ctx context.Context, user *models.User) (int64, error) {
	sql, args, err := r.sb.Insert("users").
		Columns("first_name", "middle_name", "last_name", "email", "username",
			"password", "gender", "role", "student_id", "address",
			"contact_number", "avatar", "program_id", "is_active",
			"is_staff", "is_superuser").
		Values(user.FirstName, user.MiddleName, user.LastName, user.Email,
			user.Username, user.Password, user.Gender, user.Role,
			user.StudentID, user.Address, user.ContactNumber, user.Avatar,
			user.ProgramID, user.IsActive, user.IsStaff, user.IsSuperuser).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create user query: %w", err)
	}

	var id int64
	err = r.db.QueryRow(ctx, sql, args...).Scan(&id)
	if err != nil {
		switch {
		case dberrors.IsDuplicateConstraintError(err, "users_email_key"):
			return 0, apperrors.ErrEmailAlreadyExists
		case dberrors.IsDuplicateConstraintError(err, "users_username_key"):
			return 0, apperrors.ErrUsernameAlreadyExists
		case dberrors.IsDuplicateConstraintError(err, "users_student_id_key"):
			return 0, apperrors.ErrStudentIDAlreadyExists
		}
		logger.Error().Err(err).Msg("Error executing create user query")
		return 0, fmt.Errorf("error creating user: %w", err)
	}

	user.ID = id
	return id, nil
}

// GetByID retrieves a user by primary key
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	sql, args, err := r.sb.Select(userColumns...).
		From("users").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get user query: %w", err)
	}

	user, err := scanUser(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		logger.Error().Err(err).Int64("userID", id).Msg("Error scanning user row")
		return nil, fmt.Errorf("error getting user by ID: %w", err)
	}
	return user, nil
}

// GetByStudentID retrieves a student account by its student number.
// Only rows with the student role match.
func (r *UserRepository) GetByStudentID(ctx context.Context, studentID string) (*models.User, error) {
	sql, args, err := r.sb.Select(userColumns...).
		From("users").
		Where(squirrel.Eq{"student_id": studentID, "role": models.RoleStudent}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get user by student ID query: %w", err)
	}

	user, err := scanUser(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		logger.Error().Err(err).Str("studentID", studentID).Msg("Error scanning user row")
		return nil, fmt.Errorf("error getting user by student ID: %w", err)
	}
	return user, nil
}

// GetByEmailAndRole retrieves a user by email scoped to a role
func (r *UserRepository) GetByEmailAndRole(ctx context.Context, email string, role models.Role) (*models.User, error) {
	sql, args, err := r.sb.Select(userColumns...).
		From("users").
		Where(squirrel.Eq{"email": email, "role": role}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get user by email query: %w", err)
	}

	user, err := scanUser(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		logger.Error().Err(err).Str("email", email).Msg("Error scanning user row")
		return nil, fmt.Errorf("error getting user by email: %w", err)
	}
	return user, nil
}

// Update persists all mutable profile fields of an existing user
func (r *UserRepository) Update(ctx context.Context, user *models.User) error {
	sql, args, err := r.sb.Update("users").
		SetMap(map[string]interface{}{
			"first_name":     user.FirstName,
			"middle_name":    user.MiddleName,
			"last_name":      user.LastName,
			"username":       user.Username,
			"gender":         user.Gender,
			"role":           user.Role,
			"student_id":     user.StudentID,
			"address":        user.Address,
			"contact_number": user.ContactNumber,
			"program_id":     user.ProgramID,
			"is_active":      user.IsActive,
			"is_staff":       user.IsStaff,
			"updated_at":     squirrel.Expr("NOW()"),
		}).
		Where(squirrel.Eq{"id": user.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update user query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		switch {
		case dberrors.IsDuplicateConstraintError(err, "users_username_key"):
			return apperrors.ErrUsernameAlreadyExists
		case dberrors.IsDuplicateConstraintError(err, "users_student_id_key"):
			return apperrors.ErrStudentIDAlreadyExists
		}
		logger.Error().Err(err).Int64("userID", user.ID).Msg("Error executing update user query")
		return fmt.Errorf("error updating user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

// UpdateAvatar sets or clears the avatar path of a user
func (r *UserRepository) UpdateAvatar(ctx context.Context, userID int64, avatar *string) error {
	sql, args, err := r.sb.Update("users").
		Set("avatar", avatar).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update avatar query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("userID", userID).Msg("Error executing update avatar query")
		return fmt.Errorf("error updating avatar: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

// ListByProgram retrieves users of a role enrolled in a program
func (r *UserRepository) ListByProgram(ctx context.Context, programID int64, role models.Role) ([]*models.User, error) {
	sql, args, err := r.sb.Select(userColumns...).
		From("users").
		Where(squirrel.Eq{"program_id": programID, "role": role}).
		OrderBy("last_name ASC", "first_name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list users query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("programID", programID).Msg("Error executing list users query")
		return nil, fmt.Errorf("error querying users: %w", err)
	}
	defer rows.Close()

	users := []*models.User{}
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning user row: %w", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating user rows: %w", err)
	}
	return users, nil
}

func (r *UserRepository) columnExists(ctx context.Context, column, value string, excludeID int64) (bool, error) {
	pred := squirrel.And{squirrel.Eq{column: value}}
	if excludeID > 0 {
		pred = append(pred, squirrel.NotEq{"id": excludeID})
	}

	sql, args, err := r.sb.Select("1").
		From("users").
		Where(pred).
		Prefix("SELECT EXISTS (").
		Suffix(")").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build exists query: %w", err)
	}

	var exists bool
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("error checking %s existence: %w", column, err)
	}
	return exists, nil
}

// EmailExists checks whether another user already claims the email
func (r *UserRepository) EmailExists(ctx context.Context, email string, excludeID int64) (bool, error) {
	return r.columnExists(ctx, "email", email, excludeID)
}

// UsernameExists checks whether another user already claims the username
func (r *UserRepository) UsernameExists(ctx context.Context, username string, excludeID int64) (bool, error) {
	return r.columnExists(ctx, "username", username, excludeID)
}

// StudentIDExists checks whether another user already claims the student number
func (r *UserRepository) StudentIDExists(ctx context.Context, studentID string, excludeID int64) (bool, error) {
	return r.columnExists(ctx, "student_id", studentID, excludeID)
}
