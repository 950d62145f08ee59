package dto

import (
	"github.com/dailydiet/dailydiet/internal/model"
	"github.com/dailydiet/dailydiet/internal/service"
)

// RegisterRequest is the body of POST /users.
type RegisterRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ToInput converts the request to a service input carrying the caller's token.
func (r RegisterRequest) ToInput(token string) service.RegisterInput {
	return service.RegisterInput{
		Name:         r.Name,
		Email:        r.Email,
		SessionToken: token,
	}
}

// UserEnvelope wraps a single user.
type UserEnvelope struct {
	User *model.User `json:"user"`
}

// UserListEnvelope wraps a list of users.
type UserListEnvelope struct {
	Users []*model.User `json:"users"`
}

// ToUserListEnvelope never returns a null list.
func ToUserListEnvelope(users []*model.User) UserListEnvelope {
	if users == nil {
		users = []*model.User{}
	}
	return UserListEnvelope{Users: users}
}
