package auth

import (
	"context"
	"time"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, user *User) error
	Update(ctx context.Context, user *User) error
	FindByID(ctx context.Context, id uint) (*User, error)
	FindByUsername(ctx context.Context, username string) (*User, error)
	CountInKhandan(ctx context.Context, khandanID uint) (int64, error)
	MemberOfKhandan(ctx context.Context, memberID, khandanID uint) (bool, error)
	ListByKhandan(ctx context.Context, khandanID uint) ([]User, error)
	List(ctx context.Context, search string, page, limit int) ([]User, int64, error)
	UpdateApproval(ctx context.Context, userID uint, approved bool) error
	// ReplacePassword updates the hash and bumps the token version in one
	// write so old sessions die with the old credential.
	ReplacePassword(ctx context.Context, userID uint, hash string) error
	CreatedInRange(ctx context.Context, from, to time.Time) ([]time.Time, error)
	AvailableYears(ctx context.Context) ([]int, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, user *User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *repository) Update(ctx context.Context, user *User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

func (r *repository) FindByID(ctx context.Context, id uint) (*User, error) {
	var user User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *repository) FindByUsername(ctx context.Context, username string) (*User, error) {
	var user User
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *repository) CountInKhandan(ctx context.Context, khandanID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&User{}).
		Where("khandan_id = ?", khandanID).
		Count(&count).Error
	return count, err
}

func (r *repository) MemberOfKhandan(ctx context.Context, memberID, khandanID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&User{}).
		Where("id = ? AND khandan_id = ?", memberID, khandanID).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) ListByKhandan(ctx context.Context, khandanID uint) ([]User, error) {
	var users []User
	err := r.db.WithContext(ctx).
		Where("khandan_id = ?", khandanID).
		Order("full_name ASC").
		Find(&users).Error
	return users, err
}

func (r *repository) List(ctx context.Context, search string, page, limit int) ([]User, int64, error) {
	var users []User
	var total int64

	q := r.db.WithContext(ctx).Model(&User{})
	if search != "" {
		term := "%" + search + "%"
		q = q.Where("full_name LIKE ? OR username LIKE ? OR email LIKE ?", term, term, term)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if page > 0 && limit > 0 {
		q = q.Offset((page - 1) * limit).Limit(limit)
	}

	err := q.Order("created_at DESC").Find(&users).Error
	return users, total, err
}

func (r *repository) UpdateApproval(ctx context.Context, userID uint, approved bool) error {
	return r.db.WithContext(ctx).
		Model(&User{}).
		Where("id = ?", userID).
		Update("is_approved", approved).Error
}

func (r *repository) ReplacePassword(ctx context.Context, userID uint, hash string) error {
	return r.db.WithContext(ctx).
		Model(&User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"password_hash": hash,
			"token_version": gorm.Expr("token_version + 1"),
		}).Error
}

func (r *repository) CreatedInRange(ctx context.Context, from, to time.Time) ([]time.Time, error) {
	var stamps []time.Time
	err := r.db.WithContext(ctx).
		Model(&User{}).
		Where("created_at >= ? AND created_at < ?", from, to).
		Pluck("created_at", &stamps).Error
	return stamps, err
}

func (r *repository) AvailableYears(ctx context.Context) ([]int, error) {
	var stamps []time.Time
	if err := r.db.WithContext(ctx).Model(&User{}).Pluck("created_at", &stamps).Error; err != nil {
		return nil, err
	}

	seen := map[int]bool{}
	var years []int
	for _, ts := range stamps {
		if !seen[ts.Year()] {
			seen[ts.Year()] = true
			years = append(years, ts.Year())
		}
	}
	return years, nil
}
