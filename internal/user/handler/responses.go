package handler

import (
	"time"

	"consentd/internal/user/models"
	id "consentd/pkg/domain"
)

// UserResponse is the wire shape of a user.
type UserResponse struct {
	ID        id.UserID `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ListResponse is one page of users.
type ListResponse struct {
	TotalUsers int             `json:"totalUsers"`
	TotalPages int             `json:"totalPages"`
	Page       int             `json:"page"`
	Limit      int             `json:"limit"`
	Users      []*UserResponse `json:"users"`
}

func toUserResponse(user *models.User) *UserResponse {
	return &UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

func toListResponse(result *models.ListResult) *ListResponse {
	users := make([]*UserResponse, 0, len(result.Users))
	for _, user := range result.Users {
		users = append(users, toUserResponse(user))
	}
	return &ListResponse{
		TotalUsers: result.TotalUsers,
		TotalPages: result.TotalPages,
		Page:       result.Page,
		Limit:      result.Limit,
		Users:      users,
	}
}
