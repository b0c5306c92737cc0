package app

import (
	"context"

	"artifai/internal/repository"
)

type DatabaseStatus struct {
	Status       string `json:"status"`
	DatabaseType string `json:"database_type"`
	UserCount    int64  `json:"user_count"`
	ImageCount   int64  `json:"image_count"`
}

type StatusService struct {
	userRepo  *repository.UserRepository
	imageRepo *repository.ImageRepository
	backend   string
}

// NewStatusService reports counts for the database named backend
// (MySQL, SQLite, PostgreSQL or Unknown).
func NewStatusService(userRepo *repository.UserRepository, imageRepo *repository.ImageRepository, backend string) *StatusService {
	return &StatusService{
		userRepo:  userRepo,
		imageRepo: imageRepo,
		backend:   backend,
	}
}

func (s *StatusService) DatabaseStatus(ctx context.Context) (*DatabaseStatus, error) {
	users, err := s.userRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	images, err := s.imageRepo.CountAll(ctx)
	if err != nil {
		return nil, err
	}
	return &DatabaseStatus{
		Status:       "connected",
		DatabaseType: s.backend,
		UserCount:    users,
		ImageCount:   images,
	}, nil
}
