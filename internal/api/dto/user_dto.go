package dto

import (
	"time"

	"github.com/greenhaven/nursery-service/internal/domain"
)

// UserResponse is the password-free user projection returned by the REST
// surface.
type UserResponse struct {
	ID        int64       `json:"id"`
	Username  string      `json:"username"`
	Email     string      `json:"email"`
	Role      domain.Role `json:"role"`
	FirstName string      `json:"first_name"`
	LastName  string      `json:"last_name"`
	Phone     *string     `json:"phone"`
	CreatedAt time.Time   `json:"created_at"`
}

// NewUserResponse projects a user.
func NewUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Role:      u.Role,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Phone:     u.Phone,
		CreatedAt: u.CreatedAt,
	}
}

// NewUserResponses projects a slice of users.
func NewUserResponses(users []domain.User) []UserResponse {
	result := make([]UserResponse, 0, len(users))
	for i := range users {
		result = append(result, NewUserResponse(&users[i]))
	}
	return result
}

// CreateUserRequest is the admin user-creation payload.
type CreateUserRequest struct {
	Username  string `form:"username" json:"username"`
	Password  string `form:"password" json:"password"`
	Email     string `form:"email" json:"email"`
	Role      string `form:"role" json:"role"`
	FirstName string `form:"first_name" json:"first_name"`
	LastName  string `form:"last_name" json:"last_name"`
	Phone     string `form:"phone" json:"phone"`
}

// UpdateUserRequest is the admin user-update payload.
type UpdateUserRequest struct {
	Email     string `form:"email" json:"email"`
	Role      string `form:"role" json:"role"`
	FirstName string `form:"first_name" json:"first_name"`
	LastName  string `form:"last_name" json:"last_name"`
	Phone     string `form:"phone" json:"phone"`
}
