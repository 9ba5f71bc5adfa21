package donation

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/sdpjss/community-registry-backend/config"
	"github.com/sdpjss/community-registry-backend/internal/apperror"
	"github.com/sdpjss/community-registry-backend/internal/auditlog"
	"github.com/sdpjss/community-registry-backend/internal/category"
	"github.com/sdpjss/community-registry-backend/internal/courier"
)

const testSecret = "test-razorpay-secret"

type stubGateway struct {
	orderID   string
	err       error
	calls     int
	lastPaise int
}

func (g *stubGateway) CreateOrder(amountPaise int, receiptNo string) (string, error) {
	g.calls++
	g.lastPaise = amountPaise
	if g.err != nil {
		return "", g.err
	}
	return g.orderID, nil
}

func setupService(t *testing.T, gateway Gateway) (Service, Repository, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&category.Category{}, &courier.ChargeRule{},
		&Order{}, &OrderItem{}, &auditlog.AuditLog{},
	))

	seed := []category.Category{
		{Name: "Laddu", Rate: 50, Weight: 0.5, IsActive: true},
		{Name: "PrasadPacket", Rate: 20, Weight: 0.1, Packet: true, IsActive: true},
	}
	for i := range seed {
		require.NoError(t, db.Create(&seed[i]).Error)
	}
	require.NoError(t, db.Create(&courier.ChargeRule{Region: courier.RegionOutsideIndia, Amount: 300}).Error)

	repo := NewRepository(db)
	svc := NewService(
		repo,
		category.NewRepository(db),
		courier.NewRepository(db),
		gateway,
		auditlog.NewService(auditlog.NewRepository(db)),
		&config.Config{RazorpaySecret: testSecret},
	)
	return svc, repo, db
}

func cashInput() CreateInput {
	return CreateInput{
		UserID:    1,
		DonorName: "Ramesh Kumar",
		Method:    MethodCash,
		Delivery:  DeliveryPickup,
		Lines:     []LineInput{{CategoryID: 1, Quantity: 10}, {CategoryID: 2, Quantity: 1}},
	}
}

func signPayload(orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(testSecret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestCashOrderCompletesImmediately(t *testing.T) {
	svc, _, _ := setupService(t, &stubGateway{})

	order, err := svc.CreateOrder(context.Background(), cashInput())
	require.NoError(t, err)

	require.Equal(t, StatusCompleted, order.PaymentStatus)
	require.NotEmpty(t, order.ReceiptNo)
	require.Equal(t, 520.0, order.TotalAmount)
	require.Equal(t, 520.0, order.NetPayable)
	require.Equal(t, 1, order.PacketCount)
	require.Equal(t, "Five Hundred Twenty Rupees Only", order.AmountInWords)
	require.Len(t, order.Items, 2)
	require.True(t, order.Items[1].Packet)
}

func TestOnlineOrderStartsPendingWithGatewayOrder(t *testing.T) {
	gw := &stubGateway{orderID: "order_test123"}
	svc, _, _ := setupService(t, gw)

	in := cashInput()
	in.Method = MethodOnline
	in.Delivery = DeliveryCourier
	in.Region = courier.RegionOutsideIndia
	in.DeliveryAddress = "14 Marine Drive, Colombo"

	order, err := svc.CreateOrder(context.Background(), in)
	require.NoError(t, err)

	require.Equal(t, StatusPending, order.PaymentStatus)
	require.Equal(t, "order_test123", order.GatewayOrderID)
	require.Equal(t, 300.0, order.CourierCharge)
	require.Equal(t, 820.0, order.NetPayable)
	require.Equal(t, "14 Marine Drive, Colombo", order.DeliveryAddress)
	require.Equal(t, 1, gw.calls)
	require.Equal(t, 82000, gw.lastPaise)
}

func TestCourierOrderRequiresDeliveryAddress(t *testing.T) {
	svc, _, _ := setupService(t, &stubGateway{})

	in := cashInput()
	in.Delivery = DeliveryCourier
	in.Region = courier.RegionOutsideIndia
	in.DeliveryAddress = "   "

	_, err := svc.CreateOrder(context.Background(), in)
	require.True(t, apperror.IsKind(err, apperror.KindValidation))
}

func TestOnlinePaiseAmountIsRounded(t *testing.T) {
	gw := &stubGateway{orderID: "order_paise"}
	svc, _, db := setupService(t, gw)

	// 19.99 * 100 is 1998.9999... in float64; the gateway must see 1999.
	fractional := category.Category{Name: "Chandan", Rate: 19.99, IsActive: true}
	require.NoError(t, db.Create(&fractional).Error)

	in := CreateInput{
		UserID:    1,
		DonorName: "Ramesh Kumar",
		Method:    MethodOnline,
		Delivery:  DeliveryPickup,
		Lines:     []LineInput{{CategoryID: fractional.ID, Quantity: 1}},
	}
	_, err := svc.CreateOrder(context.Background(), in)
	require.NoError(t, err)
	require.Equal(t, 1999, gw.lastPaise)
}

func TestGatewayFailurePersistsNothing(t *testing.T) {
	gw := &stubGateway{err: errors.New("gateway down")}
	svc, _, db := setupService(t, gw)

	in := cashInput()
	in.Method = MethodOnline

	_, err := svc.CreateOrder(context.Background(), in)
	require.Error(t, err)
	require.True(t, apperror.IsKind(err, apperror.KindExternal))

	var count int64
	require.NoError(t, db.Model(&Order{}).Count(&count).Error)
	require.Zero(t, count)
}

func TestVerifyPaymentCompletesPendingOrder(t *testing.T) {
	gw := &stubGateway{orderID: "order_verify1"}
	svc, _, _ := setupService(t, gw)

	in := cashInput()
	in.Method = MethodOnline
	created, err := svc.CreateOrder(context.Background(), in)
	require.NoError(t, err)

	order, err := svc.VerifyPayment(context.Background(), VerifyInput{
		GatewayOrderID: "order_verify1",
		PaymentID:      "pay_1",
		Signature:      signPayload("order_verify1", "pay_1"),
	})
	require.NoError(t, err)
	require.Equal(t, StatusCompleted, order.PaymentStatus)
	require.Equal(t, "pay_1", order.GatewayPaymentID)
	require.Equal(t, created.ID, order.ID)
}

func TestVerifyPaymentRejectsBadSignature(t *testing.T) {
	gw := &stubGateway{orderID: "order_badsig"}
	svc, repo, _ := setupService(t, gw)

	in := cashInput()
	in.Method = MethodOnline
	_, err := svc.CreateOrder(context.Background(), in)
	require.NoError(t, err)

	_, err = svc.VerifyPayment(context.Background(), VerifyInput{
		GatewayOrderID: "order_badsig",
		PaymentID:      "pay_1",
		Signature:      "deadbeef",
	})
	require.True(t, apperror.IsKind(err, apperror.KindSecurity))

	// A rejected signature leaves the order payable.
	current, err := repo.GetByGatewayOrderID(context.Background(), "order_badsig")
	require.NoError(t, err)
	require.Equal(t, StatusPending, current.PaymentStatus)
}

func TestVerifyPaymentIsIdempotentForSamePayload(t *testing.T) {
	gw := &stubGateway{orderID: "order_replay"}
	svc, _, _ := setupService(t, gw)

	in := cashInput()
	in.Method = MethodOnline
	_, err := svc.CreateOrder(context.Background(), in)
	require.NoError(t, err)

	verify := VerifyInput{
		GatewayOrderID: "order_replay",
		PaymentID:      "pay_9",
		Signature:      signPayload("order_replay", "pay_9"),
	}

	_, err = svc.VerifyPayment(context.Background(), verify)
	require.NoError(t, err)

	order, err := svc.VerifyPayment(context.Background(), verify)
	require.NoError(t, err)
	require.Equal(t, StatusCompleted, order.PaymentStatus)
	require.Equal(t, "pay_9", order.GatewayPaymentID)
}

func TestVerifyPaymentConflictsForDifferentPayment(t *testing.T) {
	gw := &stubGateway{orderID: "order_conflict"}
	svc, _, _ := setupService(t, gw)

	in := cashInput()
	in.Method = MethodOnline
	_, err := svc.CreateOrder(context.Background(), in)
	require.NoError(t, err)

	_, err = svc.VerifyPayment(context.Background(), VerifyInput{
		GatewayOrderID: "order_conflict",
		PaymentID:      "pay_first",
		Signature:      signPayload("order_conflict", "pay_first"),
	})
	require.NoError(t, err)

	_, err = svc.VerifyPayment(context.Background(), VerifyInput{
		GatewayOrderID: "order_conflict",
		PaymentID:      "pay_second",
		Signature:      signPayload("order_conflict", "pay_second"),
	})
	require.True(t, apperror.IsKind(err, apperror.KindStateConflict))
}

func TestConcurrentVerifyCompletesExactlyOnce(t *testing.T) {
	gw := &stubGateway{orderID: "order_race"}
	svc, repo, db := setupService(t, gw)

	// Serialize sqlite access so both goroutines contend on the
	// conditional update rather than on the driver.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	in := cashInput()
	in.Method = MethodOnline
	_, err = svc.CreateOrder(context.Background(), in)
	require.NoError(t, err)

	payments := []string{"pay_a", "pay_b"}
	results := make([]error, len(payments))

	var wg sync.WaitGroup
	for i, paymentID := range payments {
		wg.Add(1)
		go func(i int, paymentID string) {
			defer wg.Done()
			_, results[i] = svc.VerifyPayment(context.Background(), VerifyInput{
				GatewayOrderID: "order_race",
				PaymentID:      paymentID,
				Signature:      signPayload("order_race", paymentID),
			})
		}(i, paymentID)
	}
	wg.Wait()

	var won, conflicted int
	winner := ""
	for i, err := range results {
		switch {
		case err == nil:
			won++
			winner = payments[i]
		case apperror.IsKind(err, apperror.KindStateConflict):
			conflicted++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	require.Equal(t, 1, won)
	require.Equal(t, 1, conflicted)

	current, err := repo.GetByGatewayOrderID(context.Background(), "order_race")
	require.NoError(t, err)
	require.Equal(t, StatusCompleted, current.PaymentStatus)
	require.Equal(t, winner, current.GatewayPaymentID)
}

func TestFailedOrderIsTerminal(t *testing.T) {
	gw := &stubGateway{orderID: "order_fail"}
	svc, repo, _ := setupService(t, gw)

	in := cashInput()
	in.Method = MethodOnline
	_, err := svc.CreateOrder(context.Background(), in)
	require.NoError(t, err)

	require.NoError(t, svc.ReportPaymentFailure(context.Background(), "order_fail", "card declined", ""))

	// Reporting again is a no-op.
	require.NoError(t, svc.ReportPaymentFailure(context.Background(), "order_fail", "card declined", ""))

	// A valid signature cannot revive a failed order.
	_, err = svc.VerifyPayment(context.Background(), VerifyInput{
		GatewayOrderID: "order_fail",
		PaymentID:      "pay_late",
		Signature:      signPayload("order_fail", "pay_late"),
	})
	require.True(t, apperror.IsKind(err, apperror.KindStateConflict))

	current, err := repo.GetByGatewayOrderID(context.Background(), "order_fail")
	require.NoError(t, err)
	require.Equal(t, StatusFailed, current.PaymentStatus)
	require.Equal(t, "card declined", current.FailureReason)
}
