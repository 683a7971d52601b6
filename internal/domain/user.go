package domain

import "time"

// User is the authenticated shopper profile returned by the backend API.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// AuthSession pairs a user with the token the backend issued for them.
type AuthSession struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}
