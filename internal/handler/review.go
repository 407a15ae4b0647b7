package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/templui/devcamper/internal/ctxkeys"
	"github.com/templui/devcamper/internal/httperr"
	"github.com/templui/devcamper/internal/model"
	"github.com/templui/devcamper/internal/repository"
)

var errNotReviewOwner = httperr.New(http.StatusUnauthorized, "Not authorized to update review")

type ReviewHandler struct {
	reviews   repository.ReviewRepository
	bootcamps repository.BootcampRepository
}

func NewReviewHandler(reviews repository.ReviewRepository, bootcamps repository.BootcampRepository) *ReviewHandler {
	return &ReviewHandler{
		reviews:   reviews,
		bootcamps: bootcamps,
	}
}

type reviewInput struct {
	BootcampID *string `json:"bootcamp_id"`
	Title      *string `json:"title"`
	Text       *string `json:"text"`
	Rating     *int    `json:"rating"`
}

func (in reviewInput) apply(rv *model.Review) {
	set(&rv.Title, in.Title)
	set(&rv.Text, in.Text)
	set(&rv.Rating, in.Rating)
}

func (h *ReviewHandler) List(w http.ResponseWriter, r *http.Request) error {
	bootcampID := chi.URLParam(r, "bootcampId")
	if bootcampID != "" {
		_, err := h.bootcamps.ByID(r.Context(), bootcampID)
		if err != nil {
			return err
		}
	}

	reviews, err := h.reviews.List(r.Context(), bootcampID)
	if err != nil {
		return err
	}

	respondList(w, reviews)
	return nil
}

func (h *ReviewHandler) Get(w http.ResponseWriter, r *http.Request) error {
	review, err := h.reviews.ByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		return err
	}

	respond(w, http.StatusOK, review)
	return nil
}

// Create adds the caller's review of a bootcamp. A second review of the same
// bootcamp by the same user is rejected as a duplicate.
func (h *ReviewHandler) Create(w http.ResponseWriter, r *http.Request) error {
	user := ctxkeys.User(r.Context())

	var in reviewInput
	err := decode(r, &in)
	if err != nil {
		return err
	}

	review := &model.Review{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		CreatedAt: time.Now().UTC(),
	}
	set(&review.BootcampID, in.BootcampID)
	in.apply(review)

	err = review.Validate()
	if err != nil {
		return err
	}

	_, err = h.bootcamps.ByID(r.Context(), review.BootcampID)
	if err != nil {
		return err
	}

	err = h.reviews.Create(r.Context(), review)
	if err != nil {
		return err
	}

	respond(w, http.StatusCreated, review)
	return nil
}

func (h *ReviewHandler) owned(r *http.Request) (*model.Review, error) {
	review, err := h.reviews.ByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		return nil, err
	}

	if !canModify(ctxkeys.User(r.Context()), review.UserID) {
		return nil, errNotReviewOwner
	}
	return review, nil
}

func (h *ReviewHandler) Update(w http.ResponseWriter, r *http.Request) error {
	review, err := h.owned(r)
	if err != nil {
		return err
	}

	var in reviewInput
	err = decode(r, &in)
	if err != nil {
		return err
	}
	in.apply(review)

	err = review.Validate()
	if err != nil {
		return err
	}

	err = h.reviews.Update(r.Context(), review)
	if err != nil {
		return err
	}

	respond(w, http.StatusOK, review)
	return nil
}

func (h *ReviewHandler) Delete(w http.ResponseWriter, r *http.Request) error {
	review, err := h.owned(r)
	if err != nil {
		return err
	}

	err = h.reviews.Delete(r.Context(), review.ID)
	if err != nil {
		return err
	}

	respond(w, http.StatusOK, struct{}{})
	return nil
}
