package khandan

import (
	"context"
	"time"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, k *Khandan) error
	Update(ctx context.Context, k *Khandan) error
	Delete(ctx context.Context, id uint) error
	GetByID(ctx context.Context, id uint) (*Khandan, error)
	GetByName(ctx context.Context, name string) (*Khandan, error)
	List(ctx context.Context) ([]Khandan, error)
	Count(ctx context.Context) (int64, error)
	CreatedInRange(ctx context.Context, from, to time.Time) ([]time.Time, error)
	AvailableYears(ctx context.Context) ([]int, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, k *Khandan) error {
	return r.db.WithContext(ctx).Create(k).Error
}

func (r *repository) Update(ctx context.Context, k *Khandan) error {
	return r.db.WithContext(ctx).Save(k).Error
}

func (r *repository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&Khandan{}, id).Error
}

func (r *repository) GetByID(ctx context.Context, id uint) (*Khandan, error) {
	var k Khandan
	if err := r.db.WithContext(ctx).First(&k, id).Error; err != nil {
		return nil, err
	}
	return &k, nil
}

func (r *repository) GetByName(ctx context.Context, name string) (*Khandan, error) {
	var k Khandan
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&k).Error
	if err != nil {
		return nil, err
	}
	return &k, nil
}

func (r *repository) List(ctx context.Context) ([]Khandan, error) {
	var ks []Khandan
	err := r.db.WithContext(ctx).Order("name ASC").Find(&ks).Error
	return ks, err
}

func (r *repository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Khandan{}).Count(&count).Error
	return count, err
}

// CreatedInRange returns raw creation timestamps; the service buckets them
// per month so the query stays portable across postgres and the sqlite
// test database.
func (r *repository) CreatedInRange(ctx context.Context, from, to time.Time) ([]time.Time, error) {
	var stamps []time.Time
	err := r.db.WithContext(ctx).
		Model(&Khandan{}).
		Where("created_at >= ? AND created_at < ?", from, to).
		Pluck("created_at", &stamps).Error
	return stamps, err
}

func (r *repository) AvailableYears(ctx context.Context) ([]int, error) {
	var stamps []time.Time
	if err := r.db.WithContext(ctx).Model(&Khandan{}).Pluck("created_at", &stamps).Error; err != nil {
		return nil, err
	}

	seen := map[int]bool{}
	var years []int
	for _, ts := range stamps {
		y := ts.Year()
		if !seen[y] {
			seen[y] = true
			years = append(years, y)
		}
	}
	return years, nil
}
