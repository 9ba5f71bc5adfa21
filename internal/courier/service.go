package courier

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/sdpjss/community-registry-backend/internal/apperror"
)

type Service interface {
	CreateRule(ctx context.Context, region Region, amount float64) (*ChargeRule, error)
	UpdateRule(ctx context.Context, id uint, amount float64) (*ChargeRule, error)
	DeleteRule(ctx context.Context, id uint) error
	ListRules(ctx context.Context) ([]ChargeRule, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) CreateRule(ctx context.Context, region Region, amount float64) (*ChargeRule, error) {
	if !region.Chargeable() {
		return nil, apperror.Validation("invalid courier region")
	}
	if amount < 0 {
		return nil, apperror.Validation("courier charge cannot be negative")
	}

	if _, err := s.repo.GetByRegion(ctx, region); err == nil {
		return nil, apperror.StateConflict("a charge rule already exists for this region")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	rule := &ChargeRule{Region: region, Amount: amount}
	if err := s.repo.Create(ctx, rule); err != nil {
		return nil, err
	}
	return rule, nil
}

func (s *service) UpdateRule(ctx context.Context, id uint, amount float64) (*ChargeRule, error) {
	if amount < 0 {
		return nil, apperror.Validation("courier charge cannot be negative")
	}

	rule, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("courier charge rule not found")
		}
		return nil, err
	}

	rule.Amount = amount
	if err := s.repo.Update(ctx, rule); err != nil {
		return nil, err
	}
	return rule, nil
}

func (s *service) DeleteRule(ctx context.Context, id uint) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.NotFound("courier charge rule not found")
		}
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *service) ListRules(ctx context.Context) ([]ChargeRule, error) {
	return s.repo.List(ctx)
}
