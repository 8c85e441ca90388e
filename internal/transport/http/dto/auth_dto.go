package dto

import (
	"strings"

	"github.com/G381N/bug-besty/internal/domain"
)

type SignupRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Name     string `json:"name"`
}

func (r *SignupRequest) Validate() []string {
	var errors []string

	if r.Email == "" || !strings.Contains(r.Email, "@") {
		errors = append(errors, "a valid email is required")
	}
	if len(r.Password) < 8 {
		errors = append(errors, "password must be at least 8 characters")
	}

	return errors
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

type UserResponse struct {
	ID    uint   `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

func UserToResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:    user.ID,
		Email: user.Email,
		Name:  user.Name,
	}
}
