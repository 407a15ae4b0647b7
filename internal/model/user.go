package model

import (
	"time"

	"github.com/templui/devcamper/internal/validation"
)

const (
	RoleUser      = "user"
	RolePublisher = "publisher"
	RoleAdmin     = "admin"
)

type User struct {
	ID           string    `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	Email        string    `db:"email" json:"email"`
	Role         string    `db:"role" json:"role"`
	PasswordHash string    `db:"password_hash" json:"-"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// ValidRole reports whether role is one of the known roles.
func ValidRole(role string) bool {
	switch role {
	case RoleUser, RolePublisher, RoleAdmin:
		return true
	}
	return false
}

func (u *User) Validate() error {
	var errs validation.Errors
	errs.Add("name", validation.ValidateName(u.Name))
	errs.Add("email", validation.ValidateEmail(u.Email))
	if !ValidRole(u.Role) {
		errs.Add("role", errInvalidRole)
	}
	return errs.Err()
}
