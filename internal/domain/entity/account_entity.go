package entity

import "time"

// Account is a registered resident, keyed by email.
//
// Password holds whatever the configured password policy stores: the raw
// secret in plaintext mode, a bcrypt hash otherwise.
type Account struct {
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Password  string    `json:"password"`
	Phone     string    `json:"phone,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// PublicAccount is the only account view that leaves the server.
type PublicAccount struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (a *Account) Public() PublicAccount {
	return PublicAccount{Name: a.Name, Email: a.Email}
}
