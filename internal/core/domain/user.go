package domain

import (
	"strings"
	"time"
)

type UserRole string

const (
	UserRoleAdmin UserRole = "admin"
	UserRoleUser  UserRole = "user"
)

func (r UserRole) IsValid() bool {
	return r == UserRoleAdmin || r == UserRoleUser
}

type UserStatus string

const (
	UserStatusActive  UserStatus = "active"
	UserStatusPending UserStatus = "pending"
)

func (s UserStatus) IsValid() bool {
	return s == UserStatusActive || s == UserStatusPending
}

type User struct {
	ID       ID
	Name     string
	Email    string
	Role     UserRole
	Status   UserStatus
	JoinedAt time.Time
}

// NewInvitedUser creates a pending user named after the email's local part.
func NewInvitedUser(email string, role UserRole) *User {
	name, _, _ := strings.Cut(email, "@")
	return &User{
		Name:     name,
		Email:    email,
		Role:     role,
		Status:   UserStatusPending,
		JoinedAt: time.Now(),
	}
}
