package service

import (
	"context"
	"errors"

	"spmtutor/internal/model"
	"spmtutor/internal/repository"
	"spmtutor/internal/util"

	"gorm.io/gorm"
)

// Profile GET /api/me 的响应体
type Profile struct {
	ID            uint           `json:"id"`
	Email         string         `json:"email"`
	Name          string         `json:"name"`
	Role          model.UserRole `json:"role"`
	Form          int            `json:"form"`
	EstimatedBand float64        `json:"estimated_band"`
	Weaknesses    []string       `json:"weaknesses"`
	Strengths     []string       `json:"strengths"`
}

type ProfileService struct {
	UserRepo *repository.UserRepository
}

func NewProfileService(userRepo *repository.UserRepository) *ProfileService {
	return &ProfileService{UserRepo: userRepo}
}

func (s *ProfileService) Me(ctx context.Context, userID uint) (*Profile, error) {
	user, err := s.UserRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrUserNotFound
		}
		return nil, err
	}
	p := profileOf(user)
	return &Profile{
		ID:            user.ID,
		Email:         user.Email,
		Name:          user.Name,
		Role:          user.Role,
		Form:          p.Form,
		EstimatedBand: p.EstimatedBand,
		Weaknesses:    p.Weaknesses,
		Strengths:     p.Strengths,
	}, nil
}
