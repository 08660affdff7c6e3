package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/Brian-Masheti/rentowl-sub001/internal/dtos"
	"github.com/Brian-Masheti/rentowl-sub001/internal/models"
	"github.com/Brian-Masheti/rentowl-sub001/internal/repositories"
	"github.com/Brian-Masheti/rentowl-sub001/internal/utils"
)

type CaretakerService interface {
	Create(ctx context.Context, in dtos.CreateCaretakerRequest) (*models.Caretaker, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Caretaker, error)
	List(ctx context.Context) ([]*models.Caretaker, error)
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
}

type caretakerService struct {
	repo repositories.CaretakerRepository
}

func NewCaretakerService(repo repositories.CaretakerRepository) CaretakerService {
	return &caretakerService{repo: repo}
}

func (s *caretakerService) Create(ctx context.Context, in dtos.CreateCaretakerRequest) (*models.Caretaker, error) {
	c := &models.Caretaker{
		ID:        uuid.New(),
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     in.Email,
		Phone:     in.Phone,
		IsActive:  true,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *caretakerService) Get(ctx context.Context, id uuid.UUID) (*models.Caretaker, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, utils.ErrCaretakerNotFound
	}
	return c, nil
}

func (s *caretakerService) List(ctx context.Context) ([]*models.Caretaker, error) {
	caretakers, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	if caretakers == nil {
		caretakers = []*models.Caretaker{}
	}
	return caretakers, nil
}

func (s *caretakerService) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return s.repo.SetActive(ctx, id, active)
}
