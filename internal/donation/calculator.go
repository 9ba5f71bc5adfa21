package donation

import (
	"errors"
	"fmt"
	"log"

	"github.com/sdpjss/community-registry-backend/internal/category"
	"github.com/sdpjss/community-registry-backend/internal/courier"
)

var (
	ErrCategoryNotFound       = errors.New("donation category not found")
	ErrCategoryInactive       = errors.New("donation category is inactive")
	ErrInvalidQuantity        = errors.New("quantity must be at least 1")
	ErrDuplicateCategory      = errors.New("duplicate donation category in order")
	ErrPacketQuantityMismatch = errors.New("packet categories accept a quantity of exactly 1")
	ErrEmptyOrder             = errors.New("order must contain at least one item")
)

// LineInput is one requested line of an order.
type LineInput struct {
	CategoryID uint
	Quantity   int
}

// Quote is the priced order before persistence.
type Quote struct {
	Items         []OrderItem
	TotalAmount   float64
	TotalWeight   float64
	PacketCount   int
	CourierCharge float64
	NetPayable    float64
}

// CourierRate resolves the surcharge for a chargeable region. The second
// return is false when no rule is configured.
type CourierRate func(region courier.Region) (float64, bool)

// Calculate prices an order against the category snapshot. Each line pays
// quantity x rate and weighs quantity x weight; packet categories are
// all-or-nothing and only accept quantity 1. The courier surcharge applies
// only to courier delivery outside Manpur; a missing rate rule charges
// nothing rather than blocking the donation.
func Calculate(lines []LineInput, cats []category.Category, delivery string, region courier.Region, rateFor CourierRate) (*Quote, error) {
	if len(lines) == 0 {
		return nil, ErrEmptyOrder
	}

	byID := make(map[uint]category.Category, len(cats))
	for _, c := range cats {
		byID[c.ID] = c
	}

	seen := make(map[uint]bool, len(lines))
	quote := &Quote{}

	for _, line := range lines {
		cat, ok := byID[line.CategoryID]
		if !ok {
			return nil, fmt.Errorf("%w: id %d", ErrCategoryNotFound, line.CategoryID)
		}
		if !cat.IsActive {
			return nil, fmt.Errorf("%w: %s", ErrCategoryInactive, cat.Name)
		}
		if seen[line.CategoryID] {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateCategory, cat.Name)
		}
		seen[line.CategoryID] = true

		if line.Quantity < 1 {
			return nil, fmt.Errorf("%w: %s", ErrInvalidQuantity, cat.Name)
		}
		if cat.Packet && line.Quantity != 1 {
			return nil, fmt.Errorf("%w: %s", ErrPacketQuantityMismatch, cat.Name)
		}

		qty := float64(line.Quantity)
		item := OrderItem{
			CategoryID:   cat.ID,
			CategoryName: cat.Name,
			Rate:         cat.Rate,
			Weight:       cat.Weight,
			Packet:       cat.Packet,
			Quantity:     line.Quantity,
			Amount:       qty * cat.Rate,
			TotalWeight:  qty * cat.Weight,
		}
		quote.Items = append(quote.Items, item)
		quote.TotalAmount += item.Amount
		quote.TotalWeight += item.TotalWeight
		if cat.Packet {
			quote.PacketCount += line.Quantity
		}
	}

	quote.CourierCharge = courierCharge(delivery, region, rateFor)
	quote.NetPayable = quote.TotalAmount + quote.CourierCharge
	return quote, nil
}

func courierCharge(delivery string, region courier.Region, rateFor CourierRate) float64 {
	if delivery != DeliveryCourier {
		return 0
	}
	if region == courier.RegionInManpur {
		return 0
	}
	amount, ok := rateFor(region)
	if !ok {
		log.Printf("⚠️ no courier rate configured for region %q, charging nothing", region)
		return 0
	}
	return amount
}
