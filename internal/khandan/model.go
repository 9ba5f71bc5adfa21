package khandan

import "time"

// Khandan is a named family/lineage unit. Members (auth.User) belong to
// exactly one khandan.
type Khandan struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"name"`
	Gotra     string    `gorm:"type:varchar(100)" json:"gotra"`
	Address   string    `gorm:"type:text" json:"address"`
	Contact   string    `gorm:"type:varchar(20)" json:"contact"`
	IsActive  bool      `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Khandan) TableName() string {
	return "khandans"
}

// MonthlyCount is one bucket of the admin registration chart.
type MonthlyCount struct {
	Month string `json:"month"`
	Count int    `json:"count"`
}
