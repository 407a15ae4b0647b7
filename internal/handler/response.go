package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/templui/devcamper/internal/httperr"
	"github.com/templui/devcamper/internal/model"
)

type dataResponse struct {
	Success bool `json:"success"`
	Count   *int `json:"count,omitempty"`
	Data    any  `json:"data"`
}

// respond writes a success envelope around data.
func respond(w http.ResponseWriter, status int, data any) {
	httperr.WriteJSON(w, status, dataResponse{Success: true, Data: data})
}

// respondList writes a success envelope with the element count.
func respondList[T any](w http.ResponseWriter, items []T) {
	count := len(items)
	httperr.WriteJSON(w, http.StatusOK, dataResponse{Success: true, Count: &count, Data: items})
}

// decode reads the JSON request body into v. An empty body leaves v untouched.
func decode(r *http.Request, v any) error {
	err := json.NewDecoder(r.Body).Decode(v)
	if err == nil || errors.Is(err, io.EOF) {
		return nil
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return httperr.Wrap(http.StatusBadRequest, "Invalid value for field "+typeErr.Field, err)
	}
	return httperr.Wrap(http.StatusBadRequest, "Malformed JSON body", err)
}

// canModify reports whether user owns a resource created by ownerID or is an admin.
func canModify(user *model.User, ownerID string) bool {
	return user != nil && (user.Role == model.RoleAdmin || user.ID == ownerID)
}

func set[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
