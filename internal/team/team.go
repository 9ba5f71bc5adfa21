package team

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/sdpjss/community-registry-backend/internal/apperror"
)

// Member is an office bearer shown on the public team page.
type Member struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"type:varchar(255);not null" json:"name"`
	Designation string    `gorm:"type:varchar(255);not null" json:"designation"`
	Mobile      string    `gorm:"type:varchar(15)" json:"mobile"`
	Email       string    `gorm:"type:varchar(255)" json:"email"`
	Rank        int       `gorm:"default:0" json:"rank"`
	IsActive    bool      `gorm:"default:true" json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Member) TableName() string {
	return "team_members"
}

type Repository interface {
	Create(ctx context.Context, m *Member) error
	Update(ctx context.Context, m *Member) error
	Delete(ctx context.Context, id uint) error
	GetByID(ctx context.Context, id uint) (*Member, error)
	List(ctx context.Context, activeOnly bool) ([]Member, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, m *Member) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *repository) Update(ctx context.Context, m *Member) error {
	return r.db.WithContext(ctx).Save(m).Error
}

func (r *repository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&Member{}, id).Error
}

func (r *repository) GetByID(ctx context.Context, id uint) (*Member, error) {
	var m Member
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *repository) List(ctx context.Context, activeOnly bool) ([]Member, error) {
	var members []Member
	q := r.db.WithContext(ctx)
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	err := q.Order("rank ASC, name ASC").Find(&members).Error
	return members, err
}

type Input struct {
	Name        string
	Designation string
	Mobile      string
	Email       string
	Rank        *int
	IsActive    *bool
}

type Service interface {
	Create(ctx context.Context, in Input) (*Member, error)
	Update(ctx context.Context, id uint, in Input) (*Member, error)
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, activeOnly bool) ([]Member, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, in Input) (*Member, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, apperror.Validation("member name is required")
	}
	if strings.TrimSpace(in.Designation) == "" {
		return nil, apperror.Validation("designation is required")
	}

	m := &Member{
		Name:        name,
		Designation: strings.TrimSpace(in.Designation),
		Mobile:      in.Mobile,
		Email:       in.Email,
		IsActive:    true,
	}
	if in.Rank != nil {
		m.Rank = *in.Rank
	}
	if err := s.repo.Create(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *service) Update(ctx context.Context, id uint, in Input) (*Member, error) {
	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("team member not found")
		}
		return nil, err
	}

	if name := strings.TrimSpace(in.Name); name != "" {
		m.Name = name
	}
	if d := strings.TrimSpace(in.Designation); d != "" {
		m.Designation = d
	}
	if in.Mobile != "" {
		m.Mobile = in.Mobile
	}
	if in.Email != "" {
		m.Email = in.Email
	}
	if in.Rank != nil {
		m.Rank = *in.Rank
	}
	if in.IsActive != nil {
		m.IsActive = *in.IsActive
	}

	if err := s.repo.Update(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *service) Delete(ctx context.Context, id uint) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.NotFound("team member not found")
		}
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *service) List(ctx context.Context, activeOnly bool) ([]Member, error) {
	return s.repo.List(ctx, activeOnly)
}
