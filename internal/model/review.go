package model

import (
	"time"

	"github.com/templui/devcamper/internal/validation"
)

type Review struct {
	ID         string    `db:"id" json:"id"`
	BootcampID string    `db:"bootcamp_id" json:"bootcamp_id"`
	UserID     string    `db:"user_id" json:"user_id"`
	Title      string    `db:"title" json:"title"`
	Text       string    `db:"text" json:"text"`
	Rating     int       `db:"rating" json:"rating"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

func (r *Review) Validate() error {
	var errs validation.Errors
	if r.BootcampID == "" {
		errs.Add("bootcamp_id", errNoBootcamp)
	}
	errs.Add("title", validation.ValidateText("title for the review", r.Title, 100))
	errs.Add("text", validation.ValidateText("text", r.Text, 1000))
	if r.Rating < 1 || r.Rating > 10 {
		errs.Add("rating", errInvalidRating)
	}
	return errs.Err()
}
