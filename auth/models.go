package auth

import "time"

// User is a stored account as returned by reads. The password hash is never
// part of it.
type User struct {
	Username    string     `json:"username" example:"alice"`
	FirstName   string     `json:"first_name" example:"Alice"`
	LastName    string     `json:"last_name" example:"Liddell"`
	Phone       string     `json:"phone" example:"+14155550000"`
	JoinAt      time.Time  `json:"join_at"`
	LastLoginAt *time.Time `json:"last_login_at"`
}

// UserSummary is the listing projection of a User.
type UserSummary struct {
	Username  string `json:"username" example:"alice"`
	FirstName string `json:"first_name" example:"Alice"`
	LastName  string `json:"last_name" example:"Liddell"`
}

// Registration carries a new account's fields. Password is the raw password;
// it is hashed before it reaches storage.
type Registration struct {
	Username  string
	Password  string
	FirstName string
	LastName  string
	Phone     string
}

// Identity is the caller resolved from a verified session token.
type Identity struct {
	Username string
	IssuedAt time.Time
}
