package handler

import (
	"net/http"

	"github.com/msomdec/users-api/internal/service"
)

// RegisterRoutes sets up all HTTP routes on the given mux.
func RegisterRoutes(mux *http.ServeMux, users *service.UserService) {
	h := NewUserHandler(users)

	mux.HandleFunc("GET /healthz", HandleHealthz)

	mux.HandleFunc("POST /users", h.HandleSave)
	mux.HandleFunc("GET /users", h.HandleFindAll)
	mux.HandleFunc("GET /users/{id}", h.HandleFind)
	mux.HandleFunc("PATCH /users/{id}", h.HandleUpdate)
	mux.HandleFunc("DELETE /users/{id}", h.HandleDelete)
}
