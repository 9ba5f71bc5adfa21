package board

import "time"

// PostingBase carries the columns shared by every community board posting.
// Postings belong to the member who created them; only the owner (or the
// back office) may edit or retire one.
type PostingBase struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"not null;index" json:"user_id"`
	PostedBy    string    `gorm:"type:varchar(255)" json:"posted_by"`
	Title       string    `gorm:"type:varchar(255);not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	Contact     string    `gorm:"type:varchar(100)" json:"contact"`
	IsActive    bool      `gorm:"default:true" json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// JobOpening advertises a vacancy a member wants to fill.
type JobOpening struct {
	PostingBase
	Company  string `gorm:"type:varchar(255)" json:"company"`
	Location string `gorm:"type:varchar(255)" json:"location"`
	Salary   string `gorm:"type:varchar(100)" json:"salary"`
}

func (JobOpening) TableName() string {
	return "job_openings"
}

// StaffRequirement is a member looking to hire help (shop staff, household).
type StaffRequirement struct {
	PostingBase
	Role     string `gorm:"type:varchar(255)" json:"role"`
	Location string `gorm:"type:varchar(255)" json:"location"`
}

func (StaffRequirement) TableName() string {
	return "staff_requirements"
}

// Advertisement is a general classified posted by a member.
type Advertisement struct {
	PostingBase
}

func (Advertisement) TableName() string {
	return "advertisements"
}
