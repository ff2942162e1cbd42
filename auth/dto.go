package auth

// LoginRequest represents the login request payload.
type LoginRequest struct {
	Username string `json:"username" validate:"required" example:"alice"`
	Password string `json:"password" validate:"required" example:"hunter22"`
}

// RegisterRequest represents the registration request payload. bcrypt only
// reads the first 72 bytes of a password, so longer ones are rejected.
type RegisterRequest struct {
	Username  string `json:"username" validate:"required,max=64" example:"alice"`
	Password  string `json:"password" validate:"required,max=72" example:"hunter22"`
	FirstName string `json:"first_name" validate:"required,max=100" example:"Alice"`
	LastName  string `json:"last_name" validate:"required,max=100" example:"Liddell"`
	Phone     string `json:"phone" validate:"required,max=32" example:"+14155550000"`
}

func (r RegisterRequest) registration() Registration {
	return Registration{
		Username:  r.Username,
		Password:  r.Password,
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Phone:     r.Phone,
	}
}

// TokenResponse is returned by login and register.
type TokenResponse struct {
	Token string `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
}
