package model

import "errors"

var (
	errInvalidRole   = errors.New("role must be one of user, publisher, admin")
	errInvalidSkill  = errors.New("minimum skill must be one of beginner, intermediate, advanced")
	errInvalidRating = errors.New("please add a rating between 1 and 10")
	errInvalidWeeks  = errors.New("please add number of weeks")
	errNoBootcamp    = errors.New("bootcamp is required")
)
