package domain

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleStudent    Role = "student"
	RoleInstructor Role = "instructor"
	RoleAdmin      Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RoleInstructor, RoleAdmin:
		return true
	}
	return false
}

type User struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"_id"`
	Name        string    `gorm:"not null" json:"name"`
	Email       string    `gorm:"uniqueIndex;not null;size:100" json:"email"`
	Password    string    `gorm:"not null" json:"-"`
	Role        Role      `gorm:"type:varchar(20);index;not null;default:'student'" json:"role"`
	IsApproved  bool      `gorm:"default:false" json:"isApproved"`
	IsVerified  bool      `gorm:"default:false" json:"isVerified"`
	IdentityDoc string    `json:"identityDoc,omitempty"`
	Earnings    float64   `gorm:"default:0" json:"earnings"`
	Bio         string    `json:"bio,omitempty"`
	Avatar      string    `json:"avatar,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Principal builds the request-scoped identity for u.
func (u *User) Principal() *Principal {
	return &Principal{
		ID:         u.ID,
		Role:       u.Role,
		IsVerified: u.IsVerified,
		IsApproved: u.IsApproved,
	}
}

// VerificationPending reports an uploaded identity document that no admin has
// reviewed yet.
func (u *User) VerificationPending() bool {
	return u.IdentityDoc != "" && !u.IsVerified
}

// Principal is the authenticated caller passed explicitly into every core operation.
// A nil *Principal is an anonymous caller.
type Principal struct {
	ID         uuid.UUID
	Role       Role
	IsVerified bool
	IsApproved bool
}

func (p *Principal) Is(role Role) bool {
	return p != nil && p.Role == role
}
