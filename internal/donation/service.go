package donation

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	razorpay "github.com/razorpay/razorpay-go"
	"gorm.io/gorm"

	"github.com/sdpjss/community-registry-backend/config"
	"github.com/sdpjss/community-registry-backend/internal/apperror"
	"github.com/sdpjss/community-registry-backend/internal/auditlog"
	"github.com/sdpjss/community-registry-backend/internal/category"
	"github.com/sdpjss/community-registry-backend/internal/courier"
	"github.com/sdpjss/community-registry-backend/utils"
)

type Service interface {
	CreateOrder(ctx context.Context, input CreateInput) (*Order, error)
	VerifyPayment(ctx context.Context, input VerifyInput) (*Order, error)
	ReportPaymentFailure(ctx context.Context, gatewayOrderID, reason, ip string) error
	GetOrder(ctx context.Context, id uint) (*Order, error)
	ListByUser(ctx context.Context, userID uint) ([]Order, error)
	List(ctx context.Context, filter ListFilter) ([]Order, int64, error)
	MonthlyTotals(ctx context.Context, year int) ([]MonthStat, float64, error)
	AvailableYears(ctx context.Context) ([]int, error)
}

// Gateway is the payment provider surface the service needs; the Razorpay
// client satisfies it in production, tests stub it.
type Gateway interface {
	CreateOrder(amountPaise int, receiptNo string) (string, error)
}

type razorpayGateway struct {
	client *razorpay.Client
}

func NewRazorpayGateway(key, secret string) Gateway {
	return &razorpayGateway{client: razorpay.NewClient(key, secret)}
}

func (g *razorpayGateway) CreateOrder(amountPaise int, receiptNo string) (string, error) {
	data := map[string]interface{}{
		"amount":          amountPaise,
		"currency":        "INR",
		"receipt":         receiptNo,
		"payment_capture": 1,
	}
	order, err := g.client.Order.Create(data, nil)
	if err != nil {
		return "", fmt.Errorf("razorpay order creation failed: %w", err)
	}
	orderID, ok := order["id"].(string)
	if !ok {
		return "", errors.New("unable to extract order_id from Razorpay response")
	}
	return orderID, nil
}

type service struct {
	repo     Repository
	cats     category.Repository
	rates    courier.Repository
	gateway  Gateway
	auditSvc auditlog.Service
	secret   string
}

func NewService(repo Repository, cats category.Repository, rates courier.Repository, gateway Gateway, auditSvc auditlog.Service, cfg *config.Config) Service {
	return &service{
		repo:     repo,
		cats:     cats,
		rates:    rates,
		gateway:  gateway,
		auditSvc: auditSvc,
		secret:   cfg.RazorpaySecret,
	}
}

type CreateInput struct {
	UserID          uint
	DonorName       string
	DonorEmail      string
	Method          string
	Delivery        string
	Region          courier.Region
	DeliveryAddress string
	Lines           []LineInput
	IPAddress       string
}

type MonthStat struct {
	Month  string  `json:"month"`
	Count  int     `json:"count"`
	Amount float64 `json:"amount"`
}

// CreateOrder prices the requested lines and persists the receipt. Cash
// orders complete immediately; online orders are created at the gateway
// first and persisted pending, so a gateway failure leaves nothing behind.
func (s *service) CreateOrder(ctx context.Context, in CreateInput) (*Order, error) {
	if in.Method != MethodCash && in.Method != MethodOnline {
		return nil, apperror.Validation("payment method must be cash or online")
	}
	if in.Delivery != DeliveryPickup && in.Delivery != DeliveryCourier {
		return nil, apperror.Validation("delivery must be pickup or courier")
	}
	if in.Delivery == DeliveryCourier {
		if !in.Region.Valid() {
			return nil, apperror.Validation("a valid region is required for courier delivery")
		}
		if strings.TrimSpace(in.DeliveryAddress) == "" {
			return nil, apperror.Validation("a delivery address is required for courier delivery")
		}
	}

	cats, err := s.cats.List(ctx, false)
	if err != nil {
		return nil, err
	}

	quote, err := Calculate(in.Lines, cats, in.Delivery, in.Region, s.courierRate(ctx))
	if err != nil {
		return nil, apperror.Wrap(apperror.KindValidation, err.Error(), err)
	}

	order := &Order{
		ReceiptNo:       newReceiptNo(),
		UserID:          in.UserID,
		DonorName:       in.DonorName,
		DonorEmail:      in.DonorEmail,
		Method:          in.Method,
		Delivery:        in.Delivery,
		Region:          in.Region,
		DeliveryAddress: strings.TrimSpace(in.DeliveryAddress),
		TotalAmount:     quote.TotalAmount,
		TotalWeight:     quote.TotalWeight,
		PacketCount:     quote.PacketCount,
		CourierCharge:   quote.CourierCharge,
		NetPayable:      quote.NetPayable,
		AmountInWords:   AmountInWords(quote.NetPayable),
		Items:           quote.Items,
	}

	switch in.Method {
	case MethodCash:
		order.PaymentStatus = StatusCompleted
	case MethodOnline:
		amountPaise := int(math.Round(order.NetPayable * 100))
		gatewayOrderID, err := s.gateway.CreateOrder(amountPaise, order.ReceiptNo)
		if err != nil {
			s.auditSvc.LogAction(ctx, &in.UserID, "DONATION_INITIATED", map[string]interface{}{
				"amount": order.NetPayable,
				"error":  err.Error(),
			}, in.IPAddress, "failure")
			return nil, apperror.Wrap(apperror.KindExternal, "payment gateway is unavailable", err)
		}
		order.GatewayOrderID = gatewayOrderID
		order.PaymentStatus = StatusPending
	}

	if err := s.repo.Create(ctx, order); err != nil {
		return nil, err
	}

	s.auditSvc.LogAction(ctx, &in.UserID, "DONATION_INITIATED", map[string]interface{}{
		"receipt_no": order.ReceiptNo,
		"method":     order.Method,
		"amount":     order.NetPayable,
	}, in.IPAddress, "success")

	if order.PaymentStatus == StatusCompleted {
		s.publishCompleted(order)
	}
	return order, nil
}

func (s *service) courierRate(ctx context.Context) CourierRate {
	return func(region courier.Region) (float64, bool) {
		rule, err := s.rates.GetByRegion(ctx, region)
		if err != nil {
			return 0, false
		}
		return rule.Amount, true
	}
}

type VerifyInput struct {
	GatewayOrderID string
	PaymentID      string
	Signature      string
	IPAddress      string
}

// VerifyPayment checks the gateway signature and flips the order to
// completed. Replaying the same verification is a no-op; any other
// transition out of a terminal state is rejected.
func (s *service) VerifyPayment(ctx context.Context, in VerifyInput) (*Order, error) {
	order, err := s.repo.GetByGatewayOrderID(ctx, in.GatewayOrderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("order not found")
		}
		return nil, err
	}

	mac := hmac.New(sha256.New, []byte(s.secret))
	mac.Write([]byte(in.GatewayOrderID + "|" + in.PaymentID))
	expected := hex.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(expected), []byte(in.Signature)) {
		s.auditSvc.LogAction(ctx, &order.UserID, "DONATION_VERIFICATION_FAILED", map[string]interface{}{
			"order_id":   in.GatewayOrderID,
			"payment_id": in.PaymentID,
			"reason":     "invalid payment signature",
		}, in.IPAddress, "failure")
		return nil, apperror.Security("invalid payment signature")
	}

	flipped, err := s.repo.MarkCompleted(ctx, order.ID, in.PaymentID)
	if err != nil {
		return nil, err
	}
	if !flipped {
		// Lost the race or order already terminal: decide from current state.
		current, err := s.repo.GetByID(ctx, order.ID)
		if err != nil {
			return nil, err
		}
		if current.PaymentStatus == StatusCompleted && current.GatewayPaymentID == in.PaymentID {
			return current, nil // replayed verification
		}
		return nil, apperror.StateConflict("order is no longer awaiting payment")
	}

	order, err = s.repo.GetByID(ctx, order.ID)
	if err != nil {
		return nil, err
	}

	s.auditSvc.LogAction(ctx, &order.UserID, "DONATION_COMPLETED", map[string]interface{}{
		"receipt_no": order.ReceiptNo,
		"payment_id": in.PaymentID,
		"amount":     order.NetPayable,
	}, in.IPAddress, "success")

	s.publishCompleted(order)
	return order, nil
}

// ReportPaymentFailure marks a pending order failed. A failed order is
// terminal; the donor retries with a fresh order.
func (s *service) ReportPaymentFailure(ctx context.Context, gatewayOrderID, reason, ip string) error {
	order, err := s.repo.GetByGatewayOrderID(ctx, gatewayOrderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.NotFound("order not found")
		}
		return err
	}

	flipped, err := s.repo.MarkFailed(ctx, order.ID, reason)
	if err != nil {
		return err
	}
	if !flipped {
		current, err := s.repo.GetByID(ctx, order.ID)
		if err != nil {
			return err
		}
		if current.PaymentStatus == StatusFailed {
			return nil // already reported
		}
		return apperror.StateConflict("order is no longer awaiting payment")
	}

	s.auditSvc.LogAction(ctx, &order.UserID, "DONATION_FAILED", map[string]interface{}{
		"receipt_no": order.ReceiptNo,
		"reason":     reason,
	}, ip, "success")
	return nil
}

func (s *service) GetOrder(ctx context.Context, id uint) (*Order, error) {
	order, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("order not found")
		}
		return nil, err
	}
	return order, nil
}

func (s *service) ListByUser(ctx context.Context, userID uint) ([]Order, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *service) List(ctx context.Context, filter ListFilter) ([]Order, int64, error) {
	return s.repo.List(ctx, filter)
}

var monthNames = []string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

// MonthlyTotals buckets completed donations of the given year per month
// for the admin dashboard.
func (s *service) MonthlyTotals(ctx context.Context, year int) ([]MonthStat, float64, error) {
	if year == 0 {
		year = time.Now().Year()
	}
	from := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(1, 0, 0)

	orders, err := s.repo.CompletedInRange(ctx, from, to)
	if err != nil {
		return nil, 0, err
	}

	stats := make([]MonthStat, 12)
	for i, name := range monthNames {
		stats[i].Month = name
	}
	var grand float64
	for _, o := range orders {
		m := int(o.CreatedAt.Month()) - 1
		stats[m].Count++
		stats[m].Amount += o.NetPayable
		grand += o.NetPayable
	}
	return stats, grand, nil
}

func (s *service) AvailableYears(ctx context.Context) ([]int, error) {
	return s.repo.AvailableYears(ctx)
}

func (s *service) publishCompleted(order *Order) {
	utils.PublishDonationEvent(utils.DonationEvent{
		OrderID:    order.ID,
		ReceiptNo:  order.ReceiptNo,
		DonorName:  order.DonorName,
		DonorEmail: order.DonorEmail,
		Amount:     order.NetPayable,
	})
}

func newReceiptNo() string {
	id := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	return fmt.Sprintf("RCPT-%d-%s", time.Now().Year(), id[:8])
}
