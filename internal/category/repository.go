package category

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, cat *Category) error
	Update(ctx context.Context, cat *Category) error
	GetByID(ctx context.Context, id uint) (*Category, error)
	GetByName(ctx context.Context, name string) (*Category, error)
	List(ctx context.Context, activeOnly bool) ([]Category, error)
	SoftDelete(ctx context.Context, id uint) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, cat *Category) error {
	return r.db.WithContext(ctx).Create(cat).Error
}

func (r *repository) Update(ctx context.Context, cat *Category) error {
	return r.db.WithContext(ctx).Save(cat).Error
}

func (r *repository) GetByID(ctx context.Context, id uint) (*Category, error) {
	var cat Category
	if err := r.db.WithContext(ctx).First(&cat, id).Error; err != nil {
		return nil, err
	}
	return &cat, nil
}

func (r *repository) GetByName(ctx context.Context, name string) (*Category, error) {
	var cat Category
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&cat).Error
	if err != nil {
		return nil, err
	}
	return &cat, nil
}

func (r *repository) List(ctx context.Context, activeOnly bool) ([]Category, error) {
	var cats []Category
	q := r.db.WithContext(ctx).Order("name ASC")
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	err := q.Find(&cats).Error
	return cats, err
}

func (r *repository) SoftDelete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).
		Model(&Category{}).
		Where("id = ?", id).
		Update("is_active", false).Error
}
