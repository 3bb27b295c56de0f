package entity

import "time"

type Role string

const (
	RoleAdmin   Role = "admin"
	RoleTeacher Role = "teacher"
	RoleStudent Role = "student"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleTeacher, RoleStudent:
		return true
	}
	return false
}

// Title is the capitalized role, as used in user facing messages.
func (r Role) Title() string {
	switch r {
	case RoleAdmin:
		return "Admin"
	case RoleTeacher:
		return "Teacher"
	case RoleStudent:
		return "Student"
	}
	return string(r)
}

// User is the profile document. Its ID is the identity ID.
type User struct {
	ID              string    `bson:"_id" json:"id"`
	Email           string    `bson:"email" json:"email"`
	Name            string    `bson:"name" json:"name"`
	Role            Role      `bson:"role" json:"role"`
	ProfilePicture  string    `bson:"profile_picture,omitempty" json:"profilePicture,omitempty"`
	CreatedBy       string    `bson:"created_by,omitempty" json:"createdBy,omitempty"`
	AssignedTeacher string    `bson:"assigned_teacher,omitempty" json:"assignedTeacher,omitempty"`
	CreatedAt       time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt       time.Time `bson:"updated_at" json:"updatedAt"`
}
