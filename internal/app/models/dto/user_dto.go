package dto

import "github.com/gesapp/ges-backend/internal/app/models"

// UserResponse represents the public fields of a user. The password hash is
// never part of any response.
type UserResponse struct {
	ID            int64   `json:"id"`
	FirstName     string  `json:"first_name"`
	MiddleName    *string `json:"middle_name,omitempty"`
	LastName      string  `json:"last_name"`
	Email         string  `json:"email"`
	Username      string  `json:"username"`
	Gender        string  `json:"gender"`
	Role          string  `json:"role"`
	StudentID     *string `json:"student_id,omitempty"`
	Address       *string `json:"address,omitempty"`
	ContactNumber *string `json:"contact_number,omitempty"`
	Avatar        *string `json:"avatar,omitempty"`
	ProgramID     *int64  `json:"program_id,omitempty"`
}

// NewUserResponse maps a user model onto its public representation
func NewUserResponse(user *models.User) *UserResponse {
	if user == nil {
		return nil
	}
	return &UserResponse{
		ID:            user.ID,
		FirstName:     user.FirstName,
		MiddleName:    user.MiddleName,
		LastName:      user.LastName,
		Email:         user.Email,
		Username:      user.Username,
		Gender:        string(user.Gender),
		Role:          string(user.Role),
		StudentID:     user.StudentID,
		Address:       user.Address,
		ContactNumber: user.ContactNumber,
		Avatar:        user.Avatar,
		ProgramID:     user.ProgramID,
	}
}

// NewUserResponseList maps a slice of users onto public representations
func NewUserResponseList(users []*models.User) []*UserResponse {
	out := make([]*UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, NewUserResponse(u))
	}
	return out
}

// UpdateProfileRequest represents a partial self-service profile update.
// Nil fields are left untouched. Email, role and password are not editable
// through this request.
type UpdateProfileRequest struct {
	FirstName     *string `json:"first_name" binding:"omitempty,max=50"`
	MiddleName    *string `json:"middle_name" binding:"omitempty,max=50"`
	LastName      *string `json:"last_name" binding:"omitempty,max=50"`
	Username      *string `json:"username" binding:"omitempty,max=150"`
	Gender        *string `json:"gender" binding:"omitempty,oneof=male female other"`
	StudentID     *string `json:"student_id" binding:"omitempty,max=20"`
	Address       *string `json:"address"`
	ContactNumber *string `json:"contact_number" binding:"omitempty,max=15"`
	ProgramID     *int64  `json:"program_id" binding:"omitempty,min=1"`
}

// CreateUserRequest represents an admin-provisioned account. Unlike student
// self-registration the role is chosen by the caller.
type CreateUserRequest struct {
	FirstName     string `json:"first_name" binding:"required,max=50"`
	MiddleName    string `json:"middle_name" binding:"max=50"`
	LastName      string `json:"last_name" binding:"required,max=50"`
	Email         string `json:"email" binding:"required,email"`
	Username      string `json:"username" binding:"required,max=150"`
	Password      string `json:"password" binding:"required,min=8"`
	Gender        string `json:"gender" binding:"omitempty,oneof=male female other"`
	Role          string `json:"role" binding:"required,oneof=student teacher admin"`
	StudentID     string `json:"student_id" binding:"max=20"`
	Address       string `json:"address"`
	ContactNumber string `json:"contact_number" binding:"max=15"`
	IsStaff       bool   `json:"is_staff"`
}
