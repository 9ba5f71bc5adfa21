package donation

import (
	"context"
	"time"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, order *Order) error
	GetByID(ctx context.Context, id uint) (*Order, error)
	GetByGatewayOrderID(ctx context.Context, gatewayOrderID string) (*Order, error)
	ListByUser(ctx context.Context, userID uint) ([]Order, error)
	List(ctx context.Context, filter ListFilter) ([]Order, int64, error)
	// MarkCompleted flips a pending order to completed; it reports whether
	// a row actually transitioned so callers can distinguish a replayed
	// verification from a conflicting one.
	MarkCompleted(ctx context.Context, orderID uint, paymentID string) (bool, error)
	MarkFailed(ctx context.Context, orderID uint, reason string) (bool, error)
	CompletedInRange(ctx context.Context, from, to time.Time) ([]Order, error)
	AvailableYears(ctx context.Context) ([]int, error)
}

type ListFilter struct {
	Status string
	Method string
	Search string
	Page   int
	Limit  int
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, order *Order) error {
	return r.db.WithContext(ctx).Create(order).Error
}

func (r *repository) GetByID(ctx context.Context, id uint) (*Order, error) {
	var order Order
	err := r.db.WithContext(ctx).Preload("Items").First(&order, id).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *repository) GetByGatewayOrderID(ctx context.Context, gatewayOrderID string) (*Order, error) {
	var order Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("gateway_order_id = ?", gatewayOrderID).
		First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *repository) ListByUser(ctx context.Context, userID uint) ([]Order, error) {
	var orders []Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error
	return orders, err
}

func (r *repository) List(ctx context.Context, f ListFilter) ([]Order, int64, error) {
	var orders []Order
	var total int64

	q := r.db.WithContext(ctx).Model(&Order{})
	if f.Status != "" {
		q = q.Where("payment_status = ?", f.Status)
	}
	if f.Method != "" {
		q = q.Where("method = ?", f.Method)
	}
	if f.Search != "" {
		term := "%" + f.Search + "%"
		q = q.Where("donor_name LIKE ? OR receipt_no LIKE ?", term, term)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if f.Page > 0 && f.Limit > 0 {
		q = q.Offset((f.Page - 1) * f.Limit).Limit(f.Limit)
	}

	err := q.Preload("Items").Order("created_at DESC").Find(&orders).Error
	return orders, total, err
}

func (r *repository) MarkCompleted(ctx context.Context, orderID uint, paymentID string) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&Order{}).
		Where("id = ? AND payment_status = ?", orderID, StatusPending).
		Updates(map[string]interface{}{
			"payment_status":     StatusCompleted,
			"gateway_payment_id": paymentID,
		})
	return res.RowsAffected > 0, res.Error
}

func (r *repository) MarkFailed(ctx context.Context, orderID uint, reason string) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&Order{}).
		Where("id = ? AND payment_status = ?", orderID, StatusPending).
		Updates(map[string]interface{}{
			"payment_status": StatusFailed,
			"failure_reason": reason,
		})
	return res.RowsAffected > 0, res.Error
}

func (r *repository) CompletedInRange(ctx context.Context, from, to time.Time) ([]Order, error) {
	var orders []Order
	err := r.db.WithContext(ctx).
		Where("payment_status = ? AND created_at >= ? AND created_at < ?", StatusCompleted, from, to).
		Find(&orders).Error
	return orders, err
}

func (r *repository) AvailableYears(ctx context.Context) ([]int, error) {
	var stamps []time.Time
	err := r.db.WithContext(ctx).
		Model(&Order{}).
		Where("payment_status = ?", StatusCompleted).
		Pluck("created_at", &stamps).Error
	if err != nil {
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
