package handler

import (
	"errors"
	"net/http"

	"github.com/templui/devcamper/internal/ctxkeys"
	"github.com/templui/devcamper/internal/httperr"
	"github.com/templui/devcamper/internal/model"
	"github.com/templui/devcamper/internal/service"
)

var (
	errMissingCredentials = httperr.New(http.StatusBadRequest, "Please provide an email and password")
	errInvalidCredentials = httperr.New(http.StatusUnauthorized, "Invalid credentials")
	errWrongPassword      = httperr.New(http.StatusUnauthorized, "Password is incorrect")
	errAdminRegistration  = httperr.New(http.StatusBadRequest, "The admin role can not be self-assigned")
)

type AuthHandler struct {
	authService *service.AuthService
	userService *service.UserService
}

func NewAuthHandler(authService *service.AuthService, userService *service.UserService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		userService: userService,
	}
}

type tokenResponse struct {
	Success bool   `json:"success"`
	Token   string `json:"token"`
}

// sendToken issues a JWT for user as both the token cookie and the response body.
func (h *AuthHandler) sendToken(w http.ResponseWriter, user *model.User, status int) error {
	token, err := h.authService.GenerateJWT(user)
	if err != nil {
		return err
	}

	h.authService.SetTokenCookie(w, token)
	httperr.WriteJSON(w, status, tokenResponse{Success: true, Token: token})
	return nil
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) error {
	var in struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
		Role     string `json:"role"`
	}
	err := decode(r, &in)
	if err != nil {
		return err
	}

	user, err := h.authService.Register(r.Context(), in.Name, in.Email, in.Password, in.Role)
	if err != nil {
		if errors.Is(err, service.ErrRoleNotAllowed) {
			return errAdminRegistration
		}
		return err
	}

	return h.sendToken(w, user, http.StatusOK)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) error {
	var in struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	err := decode(r, &in)
	if err != nil {
		return err
	}

	if in.Email == "" || in.Password == "" {
		return errMissingCredentials
	}

	user, err := h.authService.Login(r.Context(), in.Email, in.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			return errInvalidCredentials
		}
		return err
	}

	return h.sendToken(w, user, http.StatusOK)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) error {
	h.authService.ClearTokenCookie(w)
	respond(w, http.StatusOK, struct{}{})
	return nil
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) error {
	respond(w, http.StatusOK, ctxkeys.User(r.Context()))
	return nil
}

func (h *AuthHandler) UpdateDetails(w http.ResponseWriter, r *http.Request) error {
	var in struct {
		Name  *string `json:"name"`
		Email *string `json:"email"`
	}
	err := decode(r, &in)
	if err != nil {
		return err
	}

	user, err := h.userService.UpdateDetails(r.Context(), ctxkeys.User(r.Context()).ID, in.Name, in.Email)
	if err != nil {
		return err
	}

	respond(w, http.StatusOK, user)
	return nil
}

func (h *AuthHandler) UpdatePassword(w http.ResponseWriter, r *http.Request) error {
	var in struct {
		CurrentPassword string `json:"current_password"`
		NewPassword     string `json:"new_password"`
	}
	err := decode(r, &in)
	if err != nil {
		return err
	}

	user, err := h.userService.UpdatePassword(r.Context(), ctxkeys.User(r.Context()).ID, in.CurrentPassword, in.NewPassword)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCurrentPassword) {
			return errWrongPassword
		}
		return err
	}

	return h.sendToken(w, user, http.StatusOK)
}
