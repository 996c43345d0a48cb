package models

import "time"

// User is an application account. Password holds a bcrypt hash and is
// never serialized over the API or into storage dumps handed to clients.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	Password  string    `json:"password,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Public returns a copy safe to hand to API consumers.
func (u User) Public() User {
	u.Password = ""
	return u
}
