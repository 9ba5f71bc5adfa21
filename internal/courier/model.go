package courier

import "time"

// Region is the coarse geographic bucket used to price delivery. It is a
// delivery-pricing tag, not a postal address.
type Region string

const (
	// RegionInManpur is the community's home area; courier delivery is
	// never charged there and no rule row exists for it.
	RegionInManpur Region = "in_manpur"

	RegionInGayaOutsideManpur Region = "in_gaya_outside_manpur"
	RegionInBiharOutsideGaya  Region = "in_bihar_outside_gaya"
	RegionInIndiaOutsideBihar Region = "in_india_outside_bihar"
	RegionOutsideIndia        Region = "outside_india"
)

// ChargeableRegions are the regions a ChargeRule may be defined for.
var ChargeableRegions = []Region{
	RegionInGayaOutsideManpur,
	RegionInBiharOutsideGaya,
	RegionInIndiaOutsideBihar,
	RegionOutsideIndia,
}

// Valid reports whether r is a known location tag (home area included).
func (r Region) Valid() bool {
	if r == RegionInManpur {
		return true
	}
	return r.Chargeable()
}

// Chargeable reports whether a courier rule may apply to r.
func (r Region) Chargeable() bool {
	for _, cr := range ChargeableRegions {
		if r == cr {
			return true
		}
	}
	return false
}

// ChargeRule is the flat courier surcharge for one region. Unique per
// region.
type ChargeRule struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Region    Region    `gorm:"type:varchar(40);uniqueIndex;not null" json:"region"`
	Amount    float64   `gorm:"type:decimal(10,2);not null" json:"amount"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (ChargeRule) TableName() string {
	return "courier_charges"
}
