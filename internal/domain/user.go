package domain

import "time"

// Role governs which operations a user may perform.
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleCaretaker Role = "caretaker"
	RoleCustomer  Role = "customer"
)

// Valid reports whether the role is one of the known values.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleCaretaker, RoleCustomer:
		return true
	}
	return false
}

// User is the authoritative account record. Username and email are each
// globally unique.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
	Email        string
	Role         Role
	FirstName    string
	LastName     string
	Phone        *string
	CreatedAt    time.Time
}

// Identity is the denormalized projection of User held in session state and
// bound to authenticated requests. It is a read-mostly cache; User stays the
// source of truth.
type Identity struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Role      Role   `json:"role"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// IdentityOf projects a user into its session form.
func IdentityOf(u *User) Identity {
	return Identity{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Role:      u.Role,
		FirstName: u.FirstName,
		LastName:  u.LastName,
	}
}
