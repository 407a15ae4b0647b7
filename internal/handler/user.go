package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/templui/devcamper/internal/service"
)

// UserHandler is the admin user management API.
type UserHandler struct {
	userService *service.UserService
}

func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

type userInput struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Role     *string `json:"role"`
	Password *string `json:"password"`
}

func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) error {
	users, err := h.userService.List(r.Context())
	if err != nil {
		return err
	}

	respondList(w, users)
	return nil
}

func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) error {
	user, err := h.userService.ByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		return err
	}

	respond(w, http.StatusOK, user)
	return nil
}

func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) error {
	var in userInput
	err := decode(r, &in)
	if err != nil {
		return err
	}

	var name, email, password, role string
	set(&name, in.Name)
	set(&email, in.Email)
	set(&password, in.Password)
	set(&role, in.Role)

	user, err := h.userService.Create(r.Context(), name, email, password, role)
	if err != nil {
		return err
	}

	respond(w, http.StatusCreated, user)
	return nil
}

func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) error {
	var in userInput
	err := decode(r, &in)
	if err != nil {
		return err
	}

	user, err := h.userService.Update(r.Context(), chi.URLParam(r, "id"), service.UserChanges{
		Name:     in.Name,
		Email:    in.Email,
		Role:     in.Role,
		Password: in.Password,
	})
	if err != nil {
		return err
	}

	respond(w, http.StatusOK, user)
	return nil
}

func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) error {
	err := h.userService.Delete(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		return err
	}

	respond(w, http.StatusOK, struct{}{})
	return nil
}
