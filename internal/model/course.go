package model

import (
	"time"

	"github.com/templui/devcamper/internal/validation"
)

const (
	SkillBeginner     = "beginner"
	SkillIntermediate = "intermediate"
	SkillAdvanced     = "advanced"
)

type Course struct {
	ID                   string    `db:"id" json:"id"`
	BootcampID           string    `db:"bootcamp_id" json:"bootcamp_id"`
	UserID               string    `db:"user_id" json:"user_id"`
	Title                string    `db:"title" json:"title"`
	Description          string    `db:"description" json:"description"`
	Weeks                int       `db:"weeks" json:"weeks"`
	Tuition              int       `db:"tuition" json:"tuition"`
	MinimumSkill         string    `db:"minimum_skill" json:"minimum_skill"`
	ScholarshipAvailable bool      `db:"scholarship_available" json:"scholarship_available"`
	CreatedAt            time.Time `db:"created_at" json:"created_at"`
}

func (c *Course) Validate() error {
	var errs validation.Errors
	if c.BootcampID == "" {
		errs.Add("bootcamp_id", errNoBootcamp)
	}
	errs.Add("title", validation.ValidateText("course title", c.Title, 100))
	errs.Add("description", validation.ValidateText("description", c.Description, 500))
	if c.Weeks <= 0 {
		errs.Add("weeks", errInvalidWeeks)
	}
	switch c.MinimumSkill {
	case SkillBeginner, SkillIntermediate, SkillAdvanced:
	default:
		errs.Add("minimum_skill", errInvalidSkill)
	}
	return errs.Err()
}
