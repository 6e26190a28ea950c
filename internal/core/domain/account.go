package domain

import (
	"errors"
	"time"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

var ErrAccountNotFound = errors.New("account not found")
var ErrEmailTaken = errors.New("email already registered")
var ErrInvalidCredentials = errors.New("invalid credentials")

// Account models a registered person. PasswordHash carries the bcrypt hash
// only; the plaintext secret never lives on this struct.
type Account struct {
	ID           string    `json:"id"`
	Name         string    `json:"nombre"`
	Surname      string    `json:"apellidos"`
	Email        string    `json:"email"`
	Role         string    `json:"role"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}
