package courier

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, rule *ChargeRule) error
	Update(ctx context.Context, rule *ChargeRule) error
	Delete(ctx context.Context, id uint) error
	GetByID(ctx context.Context, id uint) (*ChargeRule, error)
	GetByRegion(ctx context.Context, region Region) (*ChargeRule, error)
	List(ctx context.Context) ([]ChargeRule, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, rule *ChargeRule) error {
	return r.db.WithContext(ctx).Create(rule).Error
}

func (r *repository) Update(ctx context.Context, rule *ChargeRule) error {
	return r.db.WithContext(ctx).Save(rule).Error
}

func (r *repository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&ChargeRule{}, id).Error
}

func (r *repository) GetByID(ctx context.Context, id uint) (*ChargeRule, error) {
	var rule ChargeRule
	if err := r.db.WithContext(ctx).First(&rule, id).Error; err != nil {
		return nil, err
	}
	return &rule, nil
}

func (r *repository) GetByRegion(ctx context.Context, region Region) (*ChargeRule, error) {
	var rule ChargeRule
	err := r.db.WithContext(ctx).Where("region = ?", region).First(&rule).Error
	if err != nil {
		return nil, err
	}
	return &rule, nil
}

func (r *repository) List(ctx context.Context) ([]ChargeRule, error) {
	var rules []ChargeRule
	err := r.db.WithContext(ctx).Order("region ASC").Find(&rules).Error
	return rules, err
}
