package board

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	CreateJob(ctx context.Context, row *JobOpening) error
	UpdateJob(ctx context.Context, row *JobOpening) error
	DeleteJob(ctx context.Context, id uint) error
	GetJob(ctx context.Context, id uint) (*JobOpening, error)
	ListJobs(ctx context.Context, activeOnly bool) ([]JobOpening, error)

	CreateStaff(ctx context.Context, row *StaffRequirement) error
	UpdateStaff(ctx context.Context, row *StaffRequirement) error
	DeleteStaff(ctx context.Context, id uint) error
	GetStaff(ctx context.Context, id uint) (*StaffRequirement, error)
	ListStaffs(ctx context.Context, activeOnly bool) ([]StaffRequirement, error)

	CreateAd(ctx context.Context, row *Advertisement) error
	UpdateAd(ctx context.Context, row *Advertisement) error
	DeleteAd(ctx context.Context, id uint) error
	GetAd(ctx context.Context, id uint) (*Advertisement, error)
	ListAds(ctx context.Context, activeOnly bool) ([]Advertisement, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func create[T any](ctx context.Context, db *gorm.DB, row *T) error {
	return db.WithContext(ctx).Create(row).Error
}

func save[T any](ctx context.Context, db *gorm.DB, row *T) error {
	return db.WithContext(ctx).Save(row).Error
}

func remove[T any](ctx context.Context, db *gorm.DB, id uint) error {
	var zero T
	return db.WithContext(ctx).Delete(&zero, id).Error
}

func get[T any](ctx context.Context, db *gorm.DB, id uint) (*T, error) {
	var row T
	if err := db.WithContext(ctx).First(&row, id).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func list[T any](ctx context.Context, db *gorm.DB, activeOnly bool) ([]T, error) {
	var rows []T
	q := db.WithContext(ctx)
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	err := q.Order("created_at DESC").Find(&rows).Error
	return rows, err
}

func (r *repository) CreateJob(ctx context.Context, row *JobOpening) error { return create(ctx, r.db, row) }
func (r *repository) UpdateJob(ctx context.Context, row *JobOpening) error { return save(ctx, r.db, row) }
func (r *repository) DeleteJob(ctx context.Context, id uint) error         { return remove[JobOpening](ctx, r.db, id) }
func (r *repository) GetJob(ctx context.Context, id uint) (*JobOpening, error) {
	return get[JobOpening](ctx, r.db, id)
}
func (r *repository) ListJobs(ctx context.Context, activeOnly bool) ([]JobOpening, error) {
	return list[JobOpening](ctx, r.db, activeOnly)
}

func (r *repository) CreateStaff(ctx context.Context, row *StaffRequirement) error {
	return create(ctx, r.db, row)
}
func (r *repository) UpdateStaff(ctx context.Context, row *StaffRequirement) error {
	return save(ctx, r.db, row)
}
func (r *repository) DeleteStaff(ctx context.Context, id uint) error {
	return remove[StaffRequirement](ctx, r.db, id)
}
func (r *repository) GetStaff(ctx context.Context, id uint) (*StaffRequirement, error) {
	return get[StaffRequirement](ctx, r.db, id)
}
func (r *repository) ListStaffs(ctx context.Context, activeOnly bool) ([]StaffRequirement, error) {
	return list[StaffRequirement](ctx, r.db, activeOnly)
}

func (r *repository) CreateAd(ctx context.Context, row *Advertisement) error { return create(ctx, r.db, row) }
func (r *repository) UpdateAd(ctx context.Context, row *Advertisement) error { return save(ctx, r.db, row) }
func (r *repository) DeleteAd(ctx context.Context, id uint) error {
	return remove[Advertisement](ctx, r.db, id)
}
func (r *repository) GetAd(ctx context.Context, id uint) (*Advertisement, error) {
	return get[Advertisement](ctx, r.db, id)
}
func (r *repository) ListAds(ctx context.Context, activeOnly bool) ([]Advertisement, error) {
	return list[Advertisement](ctx, r.db, activeOnly)
}
