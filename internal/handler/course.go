package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/templui/devcamper/internal/ctxkeys"
	"github.com/templui/devcamper/internal/httperr"
	"github.com/templui/devcamper/internal/model"
	"github.com/templui/devcamper/internal/repository"
)

type CourseHandler struct {
	courses   repository.CourseRepository
	bootcamps repository.BootcampRepository
}

func NewCourseHandler(courses repository.CourseRepository, bootcamps repository.BootcampRepository) *CourseHandler {
	return &CourseHandler{
		courses:   courses,
		bootcamps: bootcamps,
	}
}

type courseInput struct {
	BootcampID           *string `json:"bootcamp_id"`
	Title                *string `json:"title"`
	Description          *string `json:"description"`
	Weeks                *int    `json:"weeks"`
	Tuition              *int    `json:"tuition"`
	MinimumSkill         *string `json:"minimum_skill"`
	ScholarshipAvailable *bool   `json:"scholarship_available"`
}

func (in courseInput) apply(c *model.Course) {
	set(&c.Title, in.Title)
	set(&c.Description, in.Description)
	set(&c.Weeks, in.Weeks)
	set(&c.Tuition, in.Tuition)
	set(&c.MinimumSkill, in.MinimumSkill)
	set(&c.ScholarshipAvailable, in.ScholarshipAvailable)
}

// List returns all courses, or only those of the bootcampId parameter when routed under a bootcamp.
func (h *CourseHandler) List(w http.ResponseWriter, r *http.Request) error {
	bootcampID := chi.URLParam(r, "bootcampId")
	if bootcampID != "" {
		_, err := h.bootcamps.ByID(r.Context(), bootcampID)
		if err != nil {
			return err
		}
	}

	courses, err := h.courses.List(r.Context(), bootcampID)
	if err != nil {
		return err
	}

	respondList(w, courses)
	return nil
}

func (h *CourseHandler) Get(w http.ResponseWriter, r *http.Request) error {
	course, err := h.courses.ByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		return err
	}

	respond(w, http.StatusOK, course)
	return nil
}

// Create adds a course to a bootcamp the caller owns.
func (h *CourseHandler) Create(w http.ResponseWriter, r *http.Request) error {
	user := ctxkeys.User(r.Context())

	var in courseInput
	err := decode(r, &in)
	if err != nil {
		return err
	}

	course := &model.Course{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		CreatedAt: time.Now().UTC(),
	}
	set(&course.BootcampID, in.BootcampID)
	in.apply(course)

	err = course.Validate()
	if err != nil {
		return err
	}

	bootcamp, err := h.bootcamps.ByID(r.Context(), course.BootcampID)
	if err != nil {
		return err
	}
	if !canModify(user, bootcamp.UserID) {
		return httperr.New(http.StatusForbidden,
			fmt.Sprintf("User %s is not authorized to add a course to bootcamp %s", user.ID, bootcamp.ID))
	}

	err = h.courses.Create(r.Context(), course)
	if err != nil {
		return err
	}

	respond(w, http.StatusCreated, course)
	return nil
}

func (h *CourseHandler) owned(r *http.Request, action string) (*model.Course, error) {
	user := ctxkeys.User(r.Context())

	course, err := h.courses.ByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		return nil, err
	}

	if !canModify(user, course.UserID) {
		return nil, httperr.New(http.StatusForbidden,
			fmt.Sprintf("User %s is not authorized to %s course %s", user.ID, action, course.ID))
	}
	return course, nil
}

func (h *CourseHandler) Update(w http.ResponseWriter, r *http.Request) error {
	course, err := h.owned(r, "update")
	if err != nil {
		return err
	}

	var in courseInput
	err = decode(r, &in)
	if err != nil {
		return err
	}
	in.apply(course)

	err = course.Validate()
	if err != nil {
		return err
	}

	err = h.courses.Update(r.Context(), course)
	if err != nil {
		return err
	}

	respond(w, http.StatusOK, course)
	return nil
}

func (h *CourseHandler) Delete(w http.ResponseWriter, r *http.Request) error {
	course, err := h.owned(r, "delete")
	if err != nil {
		return err
	}

	err = h.courses.Delete(r.Context(), course.ID)
	if err != nil {
		return err
	}

	respond(w, http.StatusOK, struct{}{})
	return nil
}
