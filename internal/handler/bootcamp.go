package handler

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/templui/devcamper/internal/ctxkeys"
	"github.com/templui/devcamper/internal/httperr"
	"github.com/templui/devcamper/internal/model"
	"github.com/templui/devcamper/internal/repository"
	"github.com/templui/devcamper/internal/service"
)

type BootcampHandler struct {
	bootcamps    repository.BootcampRepository
	photoService *service.PhotoService
}

func NewBootcampHandler(bootcamps repository.BootcampRepository, photoService *service.PhotoService) *BootcampHandler {
	return &BootcampHandler{
		bootcamps:    bootcamps,
		photoService: photoService,
	}
}

type bootcampInput struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Website     *string `json:"website"`
	Phone       *string `json:"phone"`
	Email       *string `json:"email"`
	Address     *string `json:"address"`
}

func (in bootcampInput) apply(b *model.Bootcamp) {
	set(&b.Name, in.Name)
	set(&b.Description, in.Description)
	set(&b.Website, in.Website)
	set(&b.Phone, in.Phone)
	set(&b.Email, in.Email)
	set(&b.Address, in.Address)
	b.Name = strings.TrimSpace(b.Name)
}

func (h *BootcampHandler) withPhotoURL(b *model.Bootcamp) *model.Bootcamp {
	b.PhotoURL = h.photoService.URL(b)
	return b
}

func (h *BootcampHandler) List(w http.ResponseWriter, r *http.Request) error {
	bootcamps, err := h.bootcamps.List(r.Context())
	if err != nil {
		return err
	}

	for _, b := range bootcamps {
		h.withPhotoURL(b)
	}

	respondList(w, bootcamps)
	return nil
}

func (h *BootcampHandler) Get(w http.ResponseWriter, r *http.Request) error {
	bootcamp, err := h.bootcamps.ByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		return err
	}

	respond(w, http.StatusOK, h.withPhotoURL(bootcamp))
	return nil
}

// Create adds a bootcamp owned by the caller. Publishers may own one bootcamp.
func (h *BootcampHandler) Create(w http.ResponseWriter, r *http.Request) error {
	user := ctxkeys.User(r.Context())

	var in bootcampInput
	err := decode(r, &in)
	if err != nil {
		return err
	}

	if user.Role != model.RoleAdmin {
		count, err := h.bootcamps.CountByUser(r.Context(), user.ID)
		if err != nil {
			return err
		}
		if count > 0 {
			return httperr.New(http.StatusBadRequest,
				fmt.Sprintf("The user with ID %s has already published a bootcamp", user.ID))
		}
	}

	bootcamp := &model.Bootcamp{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		Photo:     model.DefaultPhoto,
		CreatedAt: time.Now().UTC(),
	}
	in.apply(bootcamp)

	err = bootcamp.Validate()
	if err != nil {
		return err
	}

	err = h.bootcamps.Create(r.Context(), bootcamp)
	if err != nil {
		return err
	}

	respond(w, http.StatusCreated, bootcamp)
	return nil
}

// owned loads the bootcamp named by the id parameter and checks the caller may change it.
func (h *BootcampHandler) owned(r *http.Request, action string) (*model.Bootcamp, error) {
	user := ctxkeys.User(r.Context())

	bootcamp, err := h.bootcamps.ByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		return nil, err
	}

	if !canModify(user, bootcamp.UserID) {
		return nil, httperr.New(http.StatusForbidden,
			fmt.Sprintf("User %s is not authorized to %s this bootcamp", user.ID, action))
	}
	return bootcamp, nil
}

func (h *BootcampHandler) Update(w http.ResponseWriter, r *http.Request) error {
	bootcamp, err := h.owned(r, "update")
	if err != nil {
		return err
	}

	var in bootcampInput
	err = decode(r, &in)
	if err != nil {
		return err
	}
	in.apply(bootcamp)

	err = bootcamp.Validate()
	if err != nil {
		return err
	}

	err = h.bootcamps.Update(r.Context(), bootcamp)
	if err != nil {
		return err
	}

	respond(w, http.StatusOK, h.withPhotoURL(bootcamp))
	return nil
}

func (h *BootcampHandler) Delete(w http.ResponseWriter, r *http.Request) error {
	bootcamp, err := h.owned(r, "delete")
	if err != nil {
		return err
	}

	err = h.bootcamps.Delete(r.Context(), bootcamp.ID)
	if err != nil {
		return err
	}
	h.photoService.Remove(r.Context(), bootcamp)

	respond(w, http.StatusOK, struct{}{})
	return nil
}

// UploadPhoto stores the multipart "file" field as the bootcamp photo.
func (h *BootcampHandler) UploadPhoto(w http.ResponseWriter, r *http.Request) error {
	bootcamp, err := h.owned(r, "update")
	if err != nil {
		return err
	}

	files := ctxkeys.Files(r.Context())["file"]
	if len(files) == 0 {
		return httperr.New(http.StatusBadRequest, "Please upload a file")
	}

	name, err := h.photoService.Upload(r.Context(), bootcamp, files[0])
	if err != nil {
		return err
	}

	respond(w, http.StatusOK, map[string]string{
		"photo":     name,
		"photo_url": h.photoService.URL(bootcamp),
	})
	return nil
}
