package model

import (
	"time"

	"github.com/templui/devcamper/internal/validation"
)

// DefaultPhoto is the photo name a bootcamp has until one is uploaded.
const DefaultPhoto = "no-photo.jpg"

type Bootcamp struct {
	ID          string    `db:"id" json:"id"`
	UserID      string    `db:"user_id" json:"user_id"`
	Name        string    `db:"name" json:"name"`
	Description string    `db:"description" json:"description"`
	Website     string    `db:"website" json:"website,omitempty"`
	Phone       string    `db:"phone" json:"phone,omitempty"`
	Email       string    `db:"email" json:"email,omitempty"`
	Address     string    `db:"address" json:"address"`
	Photo       string    `db:"photo" json:"photo"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`

	// Computed fields (not in database)
	PhotoURL string `db:"-" json:"photo_url,omitempty"`
}

func (b *Bootcamp) Validate() error {
	var errs validation.Errors
	errs.Add("name", validation.ValidateName(b.Name))
	errs.Add("description", validation.ValidateText("description", b.Description, 500))
	errs.Add("address", validation.ValidateText("address", b.Address, 200))
	if b.Email != "" {
		errs.Add("email", validation.ValidateEmail(b.Email))
	}
	return errs.Err()
}
