package handler

import (
	"net/http"

	"github.com/msomdec/users-api/internal/domain"
	"github.com/msomdec/users-api/internal/mapper"
	"github.com/msomdec/users-api/internal/service"
	"github.com/msomdec/users-api/internal/validation"
)

// userRequest is the JSON body accepted by the save and update endpoints.
type userRequest struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

// UserHandler serves the /users resource.
type UserHandler struct {
	users *service.UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(users *service.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// HandleSave creates a user and responds 201 with no body.
func (h *UserHandler) HandleSave(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeUserRequest(w, r)
	if !ok {
		return
	}

	if _, err := h.users.Save(r.Context(), req); err != nil {
		handleServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (h *UserHandler) HandleFind(w http.ResponseWriter, r *http.Request) {
	user, err := h.users.FindByID(r.Context(), r.PathValue("id"))
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mapper.ToResponse(user))
}

func (h *UserHandler) HandleFindAll(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.FindAll(r.Context())
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mapper.ToResponses(users))
}

// HandleUpdate applies the request body to an existing user and responds
// with the updated record.
func (h *UserHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeUserRequest(w, r)
	if !ok {
		return
	}

	user, err := h.users.Update(r.Context(), r.PathValue("id"), req)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mapper.ToResponse(user))
}

func (h *UserHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if _, err := h.users.Delete(r.Context(), r.PathValue("id")); err != nil {
		handleServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// decodeUserRequest reads and validates the body. On failure it writes the
// error response and returns false, so the service is never reached.
func decodeUserRequest(w http.ResponseWriter, r *http.Request) (domain.UserRequest, bool) {
	var body userRequest
	if err := readJSON(r, &body); err != nil {
		writeError(w, r, http.StatusBadRequest, msgInvalidBody)
		return domain.UserRequest{}, false
	}

	req := domain.UserRequest{Name: body.Name, Email: body.Email, Password: body.Password}
	if violations := validation.ValidateUser(req); len(violations) > 0 {
		writeValidationError(w, r, violations)
		return domain.UserRequest{}, false
	}
	return req, true
}
