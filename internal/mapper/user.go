// Package mapper converts between request/response shapes and the persisted
// user record.
package mapper

import "github.com/msomdec/users-api/internal/domain"

// UserResponse is the JSON representation of a user.
type UserResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ToEntity builds a new user from the non-nil request fields. ID is left
// empty for the store to assign.
func ToEntity(req domain.UserRequest) *domain.User {
	return MergeInto(req, &domain.User{})
}

// MergeInto overwrites the fields of user for which req carries a value and
// returns the same user.
func MergeInto(req domain.UserRequest, user *domain.User) *domain.User {
	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.Password != nil {
		user.Password = *req.Password
	}
	return user
}

func ToResponse(u *domain.User) *UserResponse {
	if u == nil {
		return nil
	}
	return &UserResponse{
		ID:       u.ID,
		Name:     u.Name,
		Email:    u.Email,
		Password: u.Password,
	}
}

func ToResponses(users []domain.User) []UserResponse {
	resp := make([]UserResponse, len(users))
	for i := range users {
		resp[i] = *ToResponse(&users[i])
	}
	return resp
}
