package account

import (
	"errors"
	"net/mail"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidEmail = errors.New("invalid email address")
	ErrInvalidRole  = errors.New("invalid role")
)

type Email struct {
	value string
}

func NewEmail(value string) (Email, error) {
	if value == "" {
		return Email{}, ErrInvalidEmail
	}
	if _, err := mail.ParseAddress(value); err != nil {
		return Email{}, ErrInvalidEmail
	}
	return Email{value: value}, nil
}

func (e Email) String() string {
	return e.value
}

// Account is the authenticated principal. The booking core only ever sees its
// id and role; credential checks stop at the auth handler.
type Account struct {
	id           uuid.UUID
	email        Email
	displayName  string
	passwordHash string
	role         Role
	isActive     bool
	createdAt    time.Time
}

func NewAccount(email Email, displayName, passwordHash string, role Role) (*Account, error) {
	if !role.IsValid() {
		return nil, ErrInvalidRole
	}
	return &Account{
		id:           uuid.New(),
		email:        email,
		displayName:  displayName,
		passwordHash: passwordHash,
		role:         role,
		isActive:     true,
	}, nil
}

func Reconstruct(id uuid.UUID, email Email, displayName, passwordHash string, role Role, isActive bool, createdAt time.Time) *Account {
	return &Account{
		id:           id,
		email:        email,
		displayName:  displayName,
		passwordHash: passwordHash,
		role:         role,
		isActive:     isActive,
		createdAt:    createdAt,
	}
}

func (a *Account) ID() uuid.UUID        { return a.id }
func (a *Account) Email() Email         { return a.email }
func (a *Account) DisplayName() string  { return a.displayName }
func (a *Account) PasswordHash() string { return a.passwordHash }
func (a *Account) Role() Role           { return a.role }
func (a *Account) IsActive() bool       { return a.isActive }
func (a *Account) CreatedAt() time.Time { return a.createdAt }

func (a *Account) IsAdmin() bool {
	return a.role == RoleAdmin
}
