package donation

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sdpjss/community-registry-backend/internal/category"
	"github.com/sdpjss/community-registry-backend/internal/courier"
)

func testCatalog() []category.Category {
	return []category.Category{
		{ID: 1, Name: "Laddu", Rate: 50, Weight: 0.5, IsActive: true},
		{ID: 2, Name: "PrasadPacket", Rate: 20, Weight: 0.1, Packet: true, IsActive: true},
		{ID: 3, Name: "Retired", Rate: 100, IsActive: false},
	}
}

func noRules(courier.Region) (float64, bool) { return 0, false }

func TestCalculateEndToEnd(t *testing.T) {
	rules := func(region courier.Region) (float64, bool) {
		if region == courier.RegionOutsideIndia {
			return 300, true
		}
		return 0, false
	}

	quote, err := Calculate(
		[]LineInput{{CategoryID: 1, Quantity: 10}, {CategoryID: 2, Quantity: 1}},
		testCatalog(), DeliveryCourier, courier.RegionOutsideIndia, rules,
	)
	require.NoError(t, err)

	require.Len(t, quote.Items, 2)
	require.Equal(t, 500.0, quote.Items[0].Amount)
	require.Equal(t, 5.0, quote.Items[0].TotalWeight)
	require.False(t, quote.Items[0].Packet)
	require.Equal(t, 20.0, quote.Items[1].Amount)
	require.True(t, quote.Items[1].Packet)
	require.Equal(t, 520.0, quote.TotalAmount)
	require.InDelta(t, 5.1, quote.TotalWeight, 1e-9)
	require.Equal(t, 1, quote.PacketCount)
	require.Equal(t, 300.0, quote.CourierCharge)
	require.Equal(t, 820.0, quote.NetPayable)
	require.Equal(t, "Eight Hundred Twenty Rupees Only", AmountInWords(quote.NetPayable))
}

func TestPacketCountOnlySumsPacketLines(t *testing.T) {
	quote, err := Calculate(
		[]LineInput{{CategoryID: 1, Quantity: 4}},
		testCatalog(), DeliveryPickup, "", noRules,
	)
	require.NoError(t, err)
	require.Zero(t, quote.PacketCount)
}

func TestCalculateRejectsPacketQuantityAboveOne(t *testing.T) {
	_, err := Calculate(
		[]LineInput{{CategoryID: 2, Quantity: 3}},
		testCatalog(), DeliveryPickup, "", noRules,
	)
	require.ErrorIs(t, err, ErrPacketQuantityMismatch)
}

func TestCalculateRejectsDuplicateCategory(t *testing.T) {
	_, err := Calculate(
		[]LineInput{{CategoryID: 1, Quantity: 2}, {CategoryID: 1, Quantity: 1}},
		testCatalog(), DeliveryPickup, "", noRules,
	)
	require.ErrorIs(t, err, ErrDuplicateCategory)
}

func TestCalculateRejectsInactiveCategory(t *testing.T) {
	_, err := Calculate(
		[]LineInput{{CategoryID: 3, Quantity: 1}},
		testCatalog(), DeliveryPickup, "", noRules,
	)
	require.ErrorIs(t, err, ErrCategoryInactive)
}

func TestCalculateRejectsUnknownCategory(t *testing.T) {
	_, err := Calculate(
		[]LineInput{{CategoryID: 99, Quantity: 1}},
		testCatalog(), DeliveryPickup, "", noRules,
	)
	require.ErrorIs(t, err, ErrCategoryNotFound)
}

func TestCalculateRejectsZeroQuantity(t *testing.T) {
	_, err := Calculate(
		[]LineInput{{CategoryID: 1, Quantity: 0}},
		testCatalog(), DeliveryPickup, "", noRules,
	)
	require.ErrorIs(t, err, ErrInvalidQuantity)
}

func TestCalculateRejectsEmptyOrder(t *testing.T) {
	_, err := Calculate(nil, testCatalog(), DeliveryPickup, "", noRules)
	require.ErrorIs(t, err, ErrEmptyOrder)
}

func TestCourierChargeIsZeroForPickup(t *testing.T) {
	rules := func(courier.Region) (float64, bool) { return 300, true }

	quote, err := Calculate(
		[]LineInput{{CategoryID: 1, Quantity: 1}},
		testCatalog(), DeliveryPickup, courier.RegionOutsideIndia, rules,
	)
	require.NoError(t, err)
	require.Equal(t, 0.0, quote.CourierCharge)
	require.Equal(t, 50.0, quote.NetPayable)
}

func TestCourierChargeIsZeroInManpur(t *testing.T) {
	rules := func(courier.Region) (float64, bool) { return 300, true }

	quote, err := Calculate(
		[]LineInput{{CategoryID: 1, Quantity: 1}},
		testCatalog(), DeliveryCourier, courier.RegionInManpur, rules,
	)
	require.NoError(t, err)
	require.Equal(t, 0.0, quote.CourierCharge)
}

func TestCourierChargeIsZeroWhenRuleMissing(t *testing.T) {
	quote, err := Calculate(
		[]LineInput{{CategoryID: 1, Quantity: 2}},
		testCatalog(), DeliveryCourier, courier.RegionInBiharOutsideGaya, noRules,
	)
	require.NoError(t, err)
	require.Equal(t, 0.0, quote.CourierCharge)
	require.Equal(t, 100.0, quote.NetPayable)
}
