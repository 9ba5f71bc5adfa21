package donation

import (
	"time"

	"github.com/sdpjss/community-registry-backend/internal/courier"
)

// Payment methods
const (
	MethodCash   = "cash"
	MethodOnline = "online"
)

// Payment statuses. An order starts pending (online) or completed (cash)
// and moves to exactly one terminal state.
const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// Delivery modes for prasad
const (
	DeliveryPickup  = "pickup"
	DeliveryCourier = "courier"
)

// Order is a donation receipt. Item rows snapshot the category rate and
// weight at purchase time so later rate changes never rewrite history.
type Order struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	ReceiptNo string `gorm:"type:varchar(40);uniqueIndex;not null" json:"receipt_no"`
	UserID    uint   `gorm:"not null;index" json:"user_id"`
	DonorName string `gorm:"type:varchar(255);not null" json:"donor_name"`
	DonorEmail string `gorm:"type:varchar(255)" json:"donor_email"`

	Method        string         `gorm:"type:varchar(10);not null" json:"method"`
	PaymentStatus string         `gorm:"type:varchar(15);not null;index" json:"payment_status"`
	Delivery      string         `gorm:"type:varchar(10);not null" json:"delivery"`
	Region        courier.Region `gorm:"type:varchar(40)" json:"region"`
	// DeliveryAddress is where the courier ships; empty for pickup.
	DeliveryAddress string `gorm:"type:varchar(500)" json:"delivery_address,omitempty"`

	TotalAmount   float64 `gorm:"not null" json:"total_amount"`
	TotalWeight   float64 `json:"total_weight"`
	PacketCount   int     `json:"packet_count"`
	CourierCharge float64 `json:"courier_charge"`
	NetPayable    float64 `gorm:"not null" json:"net_payable"`
	AmountInWords string  `gorm:"type:text" json:"amount_in_words"`

	GatewayOrderID   string `gorm:"type:varchar(64);index" json:"gateway_order_id,omitempty"`
	GatewayPaymentID string `gorm:"type:varchar(64)" json:"gateway_payment_id,omitempty"`
	FailureReason    string `gorm:"type:varchar(255)" json:"failure_reason,omitempty"`

	Items []OrderItem `gorm:"foreignKey:OrderID" json:"items"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Order) TableName() string {
	return "donation_orders"
}

type OrderItem struct {
	ID           uint    `gorm:"primaryKey" json:"id"`
	OrderID      uint    `gorm:"not null;index" json:"order_id"`
	CategoryID   uint    `gorm:"not null" json:"category_id"`
	CategoryName string  `gorm:"type:varchar(100);not null" json:"category_name"`
	Rate         float64 `gorm:"not null" json:"rate"`
	Weight       float64 `json:"weight"`
	Packet       bool    `gorm:"default:false" json:"packet"`
	Quantity     int     `gorm:"not null" json:"quantity"`
	Amount       float64 `gorm:"not null" json:"amount"`
	TotalWeight  float64 `json:"total_weight"`
}

func (OrderItem) TableName() string {
	return "donation_order_items"
}
