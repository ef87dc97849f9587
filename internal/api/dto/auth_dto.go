package dto

// RegisterRequest carries the registration form fields.
type RegisterRequest struct {
	Username  string `form:"username" json:"username"`
	Password  string `form:"password" json:"password"`
	Email     string `form:"email" json:"email"`
	Role      string `form:"role" json:"role"`
	FirstName string `form:"first_name" json:"first_name"`
	LastName  string `form:"last_name" json:"last_name"`
	Phone     string `form:"phone" json:"phone"`
}

// LoginRequest carries the login form fields.
type LoginRequest struct {
	Username string `form:"username" json:"username"`
	Password string `form:"password" json:"password"`
}
