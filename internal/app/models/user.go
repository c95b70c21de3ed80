package models

import (
	"time"
)

// User defines the user model based on the 'users' table.
// The password hash is excluded from every JSON rendering.
type User struct {
	ID            int64     `json:"id" db:"id" example:"1"`
	FirstName     string    `json:"first_name" db:"first_name" example:"John"`
	MiddleName    *string   `json:"middle_name,omitempty" db:"middle_name"`
	LastName      string    `json:"last_name" db:"last_name" example:"Doe"`
	Email         string    `json:"email" db:"email" example:"john.doe@school.edu"`
	Username      string    `json:"username" db:"username" example:"jdoe"`
	Password      string    `json:"-" db:"password"`
	Gender        Gender    `json:"gender" db:"gender" example:"other"`
	Role          Role      `json:"role" db:"role" example:"student"`
	StudentID     *string   `json:"student_id,omitempty" db:"student_id" example:"2023-00117"`
	Address       *string   `json:"address,omitempty" db:"address"`
	ContactNumber *string   `json:"contact_number,omitempty" db:"contact_number"`
	Avatar        *string   `json:"avatar,omitempty" db:"avatar"`
	ProgramID     *int64    `json:"program_id,omitempty" db:"program_id"`
	IsActive      bool      `json:"is_active" db:"is_active" example:"true"`
	IsStaff       bool      `json:"is_staff" db:"is_staff"`
	IsSuperuser   bool      `json:"is_superuser" db:"is_superuser"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}

// StudentIDValue returns the student identifier or "" when unset.
func (u *User) StudentIDValue() string {
	if u.StudentID == nil {
		return ""
	}
	return *u.StudentID
}
