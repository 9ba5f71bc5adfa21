package board

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/sdpjss/community-registry-backend/internal/apperror"
)

type Service interface {
	CreateJob(ctx context.Context, ownerID uint, ownerName string, in JobInput) (*JobOpening, error)
	UpdateJob(ctx context.Context, id, requesterID uint, admin bool, in JobInput) (*JobOpening, error)
	DeleteJob(ctx context.Context, id, requesterID uint, admin bool) error
	ListJobs(ctx context.Context, activeOnly bool) ([]JobOpening, error)

	CreateStaff(ctx context.Context, ownerID uint, ownerName string, in StaffInput) (*StaffRequirement, error)
	UpdateStaff(ctx context.Context, id, requesterID uint, admin bool, in StaffInput) (*StaffRequirement, error)
	DeleteStaff(ctx context.Context, id, requesterID uint, admin bool) error
	ListStaffs(ctx context.Context, activeOnly bool) ([]StaffRequirement, error)

	CreateAd(ctx context.Context, ownerID uint, ownerName string, in AdInput) (*Advertisement, error)
	UpdateAd(ctx context.Context, id, requesterID uint, admin bool, in AdInput) (*Advertisement, error)
	DeleteAd(ctx context.Context, id, requesterID uint, admin bool) error
	ListAds(ctx context.Context, activeOnly bool) ([]Advertisement, error)
}

type JobInput struct {
	Title       string
	Description string
	Contact     string
	Company     string
	Location    string
	Salary      string
	IsActive    *bool
}

type StaffInput struct {
	Title       string
	Description string
	Contact     string
	Role        string
	Location    string
	IsActive    *bool
}

type AdInput struct {
	Title       string
	Description string
	Contact     string
	IsActive    *bool
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// canEdit gates posting edits to the owner or the back office.
func canEdit(base PostingBase, requesterID uint, admin bool) error {
	if admin || base.UserID == requesterID {
		return nil
	}
	return apperror.Security("you can only modify your own postings")
}

func notFoundOr(err error, what string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperror.NotFound(what + " not found")
	}
	return err
}

func validTitle(title string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", apperror.Validation("title is required")
	}
	return title, nil
}

func applyBase(base *PostingBase, title, description, contact string, active *bool) {
	if title != "" {
		base.Title = title
	}
	if strings.TrimSpace(description) != "" {
		base.Description = description
	}
	if strings.TrimSpace(contact) != "" {
		base.Contact = contact
	}
	if active != nil {
		base.IsActive = *active
	}
}

// =============================
// Job openings
// =============================

func (s *service) CreateJob(ctx context.Context, ownerID uint, ownerName string, in JobInput) (*JobOpening, error) {
	title, err := validTitle(in.Title)
	if err != nil {
		return nil, err
	}

	row := &JobOpening{
		PostingBase: PostingBase{
			UserID:      ownerID,
			PostedBy:    ownerName,
			Title:       title,
			Description: in.Description,
			Contact:     in.Contact,
			IsActive:    true,
		},
		Company:  in.Company,
		Location: in.Location,
		Salary:   in.Salary,
	}
	if err := s.repo.CreateJob(ctx, row); err != nil {
		return nil, err
	}
	return row, nil
}

func (s *service) UpdateJob(ctx context.Context, id, requesterID uint, admin bool, in JobInput) (*JobOpening, error) {
	row, err := s.repo.GetJob(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "job opening")
	}
	if err := canEdit(row.PostingBase, requesterID, admin); err != nil {
		return nil, err
	}

	applyBase(&row.PostingBase, strings.TrimSpace(in.Title), in.Description, in.Contact, in.IsActive)
	if in.Company != "" {
		row.Company = in.Company
	}
	if in.Location != "" {
		row.Location = in.Location
	}
	if in.Salary != "" {
		row.Salary = in.Salary
	}

	if err := s.repo.UpdateJob(ctx, row); err != nil {
		return nil, err
	}
	return row, nil
}

func (s *service) DeleteJob(ctx context.Context, id, requesterID uint, admin bool) error {
	row, err := s.repo.GetJob(ctx, id)
	if err != nil {
		return notFoundOr(err, "job opening")
	}
	if err := canEdit(row.PostingBase, requesterID, admin); err != nil {
		return err
	}
	return s.repo.DeleteJob(ctx, id)
}

func (s *service) ListJobs(ctx context.Context, activeOnly bool) ([]JobOpening, error) {
	return s.repo.ListJobs(ctx, activeOnly)
}

// =============================
// Staff requirements
// =============================

func (s *service) CreateStaff(ctx context.Context, ownerID uint, ownerName string, in StaffInput) (*StaffRequirement, error) {
	title, err := validTitle(in.Title)
	if err != nil {
		return nil, err
	}

	row := &StaffRequirement{
		PostingBase: PostingBase{
			UserID:      ownerID,
			PostedBy:    ownerName,
			Title:       title,
			Description: in.Description,
			Contact:     in.Contact,
			IsActive:    true,
		},
		Role:     in.Role,
		Location: in.Location,
	}
	if err := s.repo.CreateStaff(ctx, row); err != nil {
		return nil, err
	}
	return row, nil
}

func (s *service) UpdateStaff(ctx context.Context, id, requesterID uint, admin bool, in StaffInput) (*StaffRequirement, error) {
	row, err := s.repo.GetStaff(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "staff requirement")
	}
	if err := canEdit(row.PostingBase, requesterID, admin); err != nil {
		return nil, err
	}

	applyBase(&row.PostingBase, strings.TrimSpace(in.Title), in.Description, in.Contact, in.IsActive)
	if in.Role != "" {
		row.Role = in.Role
	}
	if in.Location != "" {
		row.Location = in.Location
	}

	if err := s.repo.UpdateStaff(ctx, row); err != nil {
		return nil, err
	}
	return row, nil
}

func (s *service) DeleteStaff(ctx context.Context, id, requesterID uint, admin bool) error {
	row, err := s.repo.GetStaff(ctx, id)
	if err != nil {
		return notFoundOr(err, "staff requirement")
	}
	if err := canEdit(row.PostingBase, requesterID, admin); err != nil {
		return err
	}
	return s.repo.DeleteStaff(ctx, id)
}

func (s *service) ListStaffs(ctx context.Context, activeOnly bool) ([]StaffRequirement, error) {
	return s.repo.ListStaffs(ctx, activeOnly)
}

// =============================
// Advertisements
// =============================

func (s *service) CreateAd(ctx context.Context, ownerID uint, ownerName string, in AdInput) (*Advertisement, error) {
	title, err := validTitle(in.Title)
	if err != nil {
		return nil, err
	}

	row := &Advertisement{
		PostingBase: PostingBase{
			UserID:      ownerID,
			PostedBy:    ownerName,
			Title:       title,
			Description: in.Description,
			Contact:     in.Contact,
			IsActive:    true,
		},
	}
	if err := s.repo.CreateAd(ctx, row); err != nil {
		return nil, err
	}
	return row, nil
}

func (s *service) UpdateAd(ctx context.Context, id, requesterID uint, admin bool, in AdInput) (*Advertisement, error) {
	row, err := s.repo.GetAd(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "advertisement")
	}
	if err := canEdit(row.PostingBase, requesterID, admin); err != nil {
		return nil, err
	}

	applyBase(&row.PostingBase, strings.TrimSpace(in.Title), in.Description, in.Contact, in.IsActive)

	if err := s.repo.UpdateAd(ctx, row); err != nil {
		return nil, err
	}
	return row, nil
}

func (s *service) DeleteAd(ctx context.Context, id, requesterID uint, admin bool) error {
	row, err := s.repo.GetAd(ctx, id)
	if err != nil {
		return notFoundOr(err, "advertisement")
	}
	if err := canEdit(row.PostingBase, requesterID, admin); err != nil {
		return err
	}
	return s.repo.DeleteAd(ctx, id)
}

func (s *service) ListAds(ctx context.Context, activeOnly bool) ([]Advertisement, error) {
	return s.repo.ListAds(ctx, activeOnly)
}
