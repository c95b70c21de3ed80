package dto

// StudentLoginRequest represents student login credentials. Students sign in
// with their student identifier, not their email.
type StudentLoginRequest struct {
	StudentID string `json:"student_id"`
	Password  string `json:"password"`
}

// TeacherLoginRequest represents teacher login credentials
type TeacherLoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RefreshTokenRequest represents a refresh token exchange request
type RefreshTokenRequest struct {
	Refresh string `json:"refresh" binding:"required"`
}

// LoginResponse is the successful authentication payload.
type LoginResponse struct {
	Refresh string        `json:"refresh"`
	Access  string        `json:"access"`
	User    *UserResponse `json:"user"`
}

// TokenPairResponse is the refresh exchange payload.
type TokenPairResponse struct {
	Refresh string `json:"refresh"`
	Access  string `json:"access"`
}

// RegisterStudentRequest represents student self-registration fields.
// Any client-supplied role is ignored; registration always creates a student.
type RegisterStudentRequest struct {
	FirstName     string `json:"first_name" binding:"required,max=50"`
	MiddleName    string `json:"middle_name" binding:"max=50"`
	LastName      string `json:"last_name" binding:"required,max=50"`
	Email         string `json:"email" binding:"required,email"`
	Username      string `json:"username" binding:"required,max=150"`
	Password      string `json:"password" binding:"required,min=8"`
	Gender        string `json:"gender" binding:"omitempty,oneof=male female other"`
	Role          string `json:"role"`
	StudentID     string `json:"student_id" binding:"max=20"`
	Address       string `json:"address"`
	ContactNumber string `json:"contact_number" binding:"max=15"`
}
