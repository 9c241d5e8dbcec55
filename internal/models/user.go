package models

import "time"

// User represents an authenticated learner, reviewer, or admin.
type User struct {
	Base
	Email       string     `gorm:"uniqueIndex;not null" json:"email"`
	Password    string     `gorm:"not null" json:"-"`
	Name        string     `gorm:"not null;default:''" json:"name"`
	Role        Role       `gorm:"type:varchar(16);not null;default:'learner'" json:"role"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
}

// Profile is the public identity embedded in auth records.
type Profile struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
	Name  string `json:"name"`
}

// Profile returns the public view of the user.
func (u *User) Profile() Profile {
	return Profile{ID: u.ID, Email: u.Email, Role: u.Role, Name: u.Name}
}

// AuthRecord is what signup and login hand back to the client.
type AuthRecord struct {
	Token string  `json:"token"`
	User  Profile `json:"user"`
}
