package notice

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/sdpjss/community-registry-backend/internal/apperror"
)

// Notice is a community announcement published by the office.
type Notice struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"type:varchar(255);not null" json:"title"`
	Body      string    `gorm:"type:text;not null" json:"body"`
	IsActive  bool      `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Notice) TableName() string {
	return "notices"
}

type Repository interface {
	Create(ctx context.Context, n *Notice) error
	Update(ctx context.Context, n *Notice) error
	Delete(ctx context.Context, id uint) error
	GetByID(ctx context.Context, id uint) (*Notice, error)
	List(ctx context.Context, activeOnly bool) ([]Notice, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, n *Notice) error {
	return r.db.WithContext(ctx).Create(n).Error
}

func (r *repository) Update(ctx context.Context, n *Notice) error {
	return r.db.WithContext(ctx).Save(n).Error
}

func (r *repository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&Notice{}, id).Error
}

func (r *repository) GetByID(ctx context.Context, id uint) (*Notice, error) {
	var n Notice
	if err := r.db.WithContext(ctx).First(&n, id).Error; err != nil {
		return nil, err
	}
	return &n, nil
}

func (r *repository) List(ctx context.Context, activeOnly bool) ([]Notice, error) {
	var notices []Notice
	q := r.db.WithContext(ctx)
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	err := q.Order("created_at DESC").Find(&notices).Error
	return notices, err
}

type Service interface {
	Create(ctx context.Context, title, body string) (*Notice, error)
	Update(ctx context.Context, id uint, title, body string, active *bool) (*Notice, error)
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, activeOnly bool) ([]Notice, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, title, body string) (*Notice, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, apperror.Validation("notice title is required")
	}
	if strings.TrimSpace(body) == "" {
		return nil, apperror.Validation("notice body is required")
	}

	n := &Notice{Title: title, Body: body, IsActive: true}
	if err := s.repo.Create(ctx, n); err != nil {
		return nil, err
	}
	return n, nil
}

func (s *service) Update(ctx context.Context, id uint, title, body string, active *bool) (*Notice, error) {
	n, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("notice not found")
		}
		return nil, err
	}

	if title = strings.TrimSpace(title); title != "" {
		n.Title = title
	}
	if strings.TrimSpace(body) != "" {
		n.Body = body
	}
	if active != nil {
		n.IsActive = *active
	}

	if err := s.repo.Update(ctx, n); err != nil {
		return nil, err
	}
	return n, nil
}

func (s *service) Delete(ctx context.Context, id uint) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.NotFound("notice not found")
		}
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *service) List(ctx context.Context, activeOnly bool) ([]Notice, error) {
	return s.repo.List(ctx, activeOnly)
}
