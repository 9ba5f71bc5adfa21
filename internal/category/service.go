package category

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/sdpjss/community-registry-backend/internal/apperror"
)

type Service interface {
	Create(ctx context.Context, input CreateInput) (*Category, error)
	Update(ctx context.Context, id uint, input UpdateInput) (*Category, error)
	Get(ctx context.Context, id uint) (*Category, error)
	List(ctx context.Context, activeOnly bool) ([]Category, error)
	Delete(ctx context.Context, id uint) error
}

type CreateInput struct {
	Name   string
	Rate   float64
	Weight float64
	Packet bool
}

type UpdateInput struct {
	Name     *string
	Rate     *float64
	Weight   *float64
	Packet   *bool
	IsActive *bool
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, in CreateInput) (*Category, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, apperror.Validation("category name is required")
	}
	if in.Rate <= 0 {
		return nil, apperror.Validation("category rate must be greater than zero")
	}
	if in.Weight < 0 {
		return nil, apperror.Validation("category weight cannot be negative")
	}

	if _, err := s.repo.GetByName(ctx, name); err == nil {
		return nil, apperror.StateConflict("a category with this name already exists")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	cat := &Category{
		Name:     name,
		Rate:     in.Rate,
		Weight:   in.Weight,
		Packet:   in.Packet,
		IsActive: true,
	}
	if err := s.repo.Create(ctx, cat); err != nil {
		return nil, err
	}
	return cat, nil
}

func (s *service) Update(ctx context.Context, id uint, in UpdateInput) (*Category, error) {
	cat, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("category not found")
		}
		return nil, err
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, apperror.Validation("category name is required")
		}
		cat.Name = name
	}
	if in.Rate != nil {
		if *in.Rate <= 0 {
			return nil, apperror.Validation("category rate must be greater than zero")
		}
		cat.Rate = *in.Rate
	}
	if in.Weight != nil {
		if *in.Weight < 0 {
			return nil, apperror.Validation("category weight cannot be negative")
		}
		cat.Weight = *in.Weight
	}
	if in.Packet != nil {
		cat.Packet = *in.Packet
	}
	if in.IsActive != nil {
		cat.IsActive = *in.IsActive
	}

	if err := s.repo.Update(ctx, cat); err != nil {
		return nil, err
	}
	return cat, nil
}

func (s *service) Get(ctx context.Context, id uint) (*Category, error) {
	cat, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("category not found")
		}
		return nil, err
	}
	return cat, nil
}

func (s *service) List(ctx context.Context, activeOnly bool) ([]Category, error) {
	return s.repo.List(ctx, activeOnly)
}

// Delete soft-deletes: the category disappears from the selectable catalog
// but stays referenced by historical orders.
func (s *service) Delete(ctx context.Context, id uint) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.NotFound("category not found")
		}
		return err
	}
	return s.repo.SoftDelete(ctx, id)
}
