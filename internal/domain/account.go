package domain

import "time"

// Account represents a registered donor identity.
type Account struct {
	ID           string
	FullName     string
	Email        string
	PasswordHash string
	DateOfBirth  time.Time
	Phone        string
	State        string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Identity is the authenticated view of an account. It never carries the
// credential hash.
type Identity struct {
	ID       string
	Email    string
	FullName string
}

// Identity strips the account down to the fields safe to hand back after a
// successful login.
func (a *Account) Identity() Identity {
	return Identity{ID: a.ID, Email: a.Email, FullName: a.FullName}
}
