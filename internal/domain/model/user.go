package model

import (
	"fmt"
	"time"
)

// Role describes the capability level of a portal account.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
)

// Valid reports whether the role is one of the known values.
func (r Role) Valid() bool {
	return r == RoleCustomer || r == RoleAdmin
}

// User represents a registered portal account.
type User struct {
	ID           int64
	Login        string
	PasswordHash string
	FullName     string
	Role         Role
	CreatedAt    time.Time
}

// Actor identifies who performs an operation, recorded for audit purposes.
type Actor struct {
	UserID int64
	Role   Role
}

// Admin reports whether the actor holds back-office privileges.
func (a Actor) Admin() bool {
	return a.Role == RoleAdmin
}

// String renders the audit label stored in status history entries.
func (a Actor) String() string {
	return fmt.Sprintf("%s#%d", a.Role, a.UserID)
}
