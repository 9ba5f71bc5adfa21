package khandan

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/sdpjss/community-registry-backend/internal/apperror"
)

var monthNames = []string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

type Service interface {
	Create(ctx context.Context, input Input) (*Khandan, error)
	Update(ctx context.Context, id uint, input Input) (*Khandan, error)
	Delete(ctx context.Context, id uint) error
	Get(ctx context.Context, id uint) (*Khandan, error)
	List(ctx context.Context) ([]Khandan, error)
	MonthlyCounts(ctx context.Context, year int) ([]MonthlyCount, int, error)
	AvailableYears(ctx context.Context) ([]int, error)
}

type Input struct {
	Name    string
	Gotra   string
	Address string
	Contact string
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, in Input) (*Khandan, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, apperror.Validation("khandan name is required")
	}

	if _, err := s.repo.GetByName(ctx, name); err == nil {
		return nil, apperror.StateConflict("a khandan with this name already exists")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	k := &Khandan{
		Name:     name,
		Gotra:    strings.TrimSpace(in.Gotra),
		Address:  strings.TrimSpace(in.Address),
		Contact:  strings.TrimSpace(in.Contact),
		IsActive: true,
	}
	if err := s.repo.Create(ctx, k); err != nil {
		return nil, err
	}
	return k, nil
}

func (s *service) Update(ctx context.Context, id uint, in Input) (*Khandan, error) {
	k, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("khandan not found")
		}
		return nil, err
	}

	if name := strings.TrimSpace(in.Name); name != "" {
		k.Name = name
	}
	if in.Gotra != "" {
		k.Gotra = strings.TrimSpace(in.Gotra)
	}
	if in.Address != "" {
		k.Address = strings.TrimSpace(in.Address)
	}
	if in.Contact != "" {
		k.Contact = strings.TrimSpace(in.Contact)
	}

	if err := s.repo.Update(ctx, k); err != nil {
		return nil, err
	}
	return k, nil
}

func (s *service) Delete(ctx context.Context, id uint) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.NotFound("khandan not found")
		}
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *service) Get(ctx context.Context, id uint) (*Khandan, error) {
	k, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("khandan not found")
		}
		return nil, err
	}
	return k, nil
}

func (s *service) List(ctx context.Context) ([]Khandan, error) {
	return s.repo.List(ctx)
}

// MonthlyCounts buckets registrations of the given year per calendar month
// for the admin dashboard chart.
func (s *service) MonthlyCounts(ctx context.Context, year int) ([]MonthlyCount, int, error) {
	if year == 0 {
		year = time.Now().Year()
	}
	from := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(1, 0, 0)

	stamps, err := s.repo.CreatedInRange(ctx, from, to)
	if err != nil {
		return nil, 0, err
	}

	perMonth := make([]int, 12)
	for _, ts := range stamps {
		perMonth[int(ts.Month())-1]++
	}

	counts := make([]MonthlyCount, 12)
	total := 0
	for i, name := range monthNames {
		counts[i] = MonthlyCount{Month: name, Count: perMonth[i]}
		total += perMonth[i]
	}
	return counts, total, nil
}

func (s *service) AvailableYears(ctx context.Context) ([]int, error) {
	return s.repo.AvailableYears(ctx)
}
