package auth

import (
	"time"

	"github.com/sdpjss/community-registry-backend/internal/courier"
)

// User is a registered member of the community. Every member belongs to
// exactly one khandan and records a father link inside it.
type User struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	Username     string `gorm:"type:varchar(100);uniqueIndex;not null" json:"username"`
	PasswordHash string `gorm:"not null" json:"-"`
	FullName     string `gorm:"type:varchar(255);not null" json:"full_name"`
	Gender       string `gorm:"type:varchar(10)" json:"gender"`
	DOB          string `gorm:"type:varchar(20)" json:"dob"`
	Email        string `gorm:"type:varchar(255);not null" json:"email"`
	Mobile       string `gorm:"type:varchar(15)" json:"mobile"`

	KhandanID uint `gorm:"not null;index" json:"khandan_id"`
	// FatherID stores the lineage link. For the eldest member of a khandan
	// it equals KhandanID (sentinel: root of the lineage); for everyone
	// else it references another member of the same khandan.
	FatherID uint `gorm:"not null" json:"father_id"`
	IsEldest bool `gorm:"default:false" json:"is_eldest"`

	Street       string         `gorm:"type:varchar(255)" json:"street"`
	City         string         `gorm:"type:varchar(100)" json:"city"`
	State        string         `gorm:"type:varchar(100)" json:"state"`
	Pincode      string         `gorm:"type:varchar(10)" json:"pincode"`
	CurrLocation courier.Region `gorm:"type:varchar(40);not null" json:"curr_location"`

	IsApproved bool `gorm:"default:false" json:"is_approved"`
	// TokenVersion is embedded in every JWT; bumping it invalidates all
	// outstanding sessions (credential recovery does this).
	TokenVersion uint `gorm:"default:0" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

// FatherRef is the tagged union behind the fatherId sentinel: a member is
// either the eldest of the khandan (no recorded father) or the child of a
// named member.
type FatherRef struct {
	Eldest   bool
	MemberID uint
}

// EldestFather marks the member as the lineage root.
func EldestFather() FatherRef { return FatherRef{Eldest: true} }

// ChildOf links the member to an existing member of the same khandan.
func ChildOf(memberID uint) FatherRef { return FatherRef{MemberID: memberID} }

// SentinelID resolves the value persisted in users.father_id.
func (f FatherRef) SentinelID(khandanID uint) uint {
	if f.Eldest {
		return khandanID
	}
	return f.MemberID
}

type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}
