package auditlog

import (
	"context"
	"encoding/json"
	"log"
	"math"
)

type Service interface {
	LogAction(ctx context.Context, userID *uint, action string, details map[string]interface{}, ip, status string)
	GetLogs(ctx context.Context, filter Filter) (*PaginatedLogs, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// LogAction writes an audit entry. Audit failures are logged, never
// surfaced; they must not break the action they describe.
func (s *service) LogAction(ctx context.Context, userID *uint, action string, details map[string]interface{}, ip, status string) {
	if details == nil {
		details = map[string]interface{}{}
	}
	payload, err := json.Marshal(details)
	if err != nil {
		payload = []byte("{}")
	}

	entry := &AuditLog{
		UserID:    userID,
		Action:    action,
		Details:   payload,
		IPAddress: ip,
		Status:    status,
	}
	if err := s.repo.Create(ctx, entry); err != nil {
		log.Printf("⚠️ audit log write failed (%s): %v", action, err)
	}
}

func (s *service) GetLogs(ctx context.Context, filter Filter) (*PaginatedLogs, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.Limit <= 0 {
		filter.Limit = 20
	}

	logs, total, err := s.repo.GetByFilter(ctx, filter)
	if err != nil {
		return nil, err
	}

	return &PaginatedLogs{
		Data:       logs,
		Total:      total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: int(math.Ceil(float64(total) / float64(filter.Limit))),
	}, nil
}
