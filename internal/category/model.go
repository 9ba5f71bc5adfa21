package category

import "time"

// Category is one entry of the donation catalog. Rate and Weight are per
// unit; Packet categories are sold only as fixed single units. Deleting a
// category only flips IsActive so historical orders keep resolving.
type Category struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"name"`
	Rate      float64   `gorm:"type:decimal(10,2);not null" json:"rate"`
	Weight    float64   `gorm:"type:decimal(10,3);default:0" json:"weight"`
	Packet    bool      `gorm:"default:false" json:"packet"`
	IsActive  bool      `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Category) TableName() string {
	return "donation_categories"
}
