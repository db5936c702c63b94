package domain

import (
	"time"

	"github.com/google/uuid"
)

type PayoutStatus string

const (
	PayoutStatusPending  PayoutStatus = "pending"
	PayoutStatusApproved PayoutStatus = "approved"
	PayoutStatusRejected PayoutStatus = "rejected"
)

func (s PayoutStatus) Valid() bool {
	switch s {
	case PayoutStatusPending, PayoutStatusApproved, PayoutStatusRejected:
		return true
	}
	return false
}

// Payout is a request log entry. Amount is whatever the instructor asked for; nothing
// here is reconciled against earnings.
type Payout struct {
	ID           uuid.UUID    `gorm:"type:uuid;primaryKey" json:"_id"`
	InstructorID uuid.UUID    `gorm:"type:uuid;index;not null" json:"instructorId"`
	Amount       float64      `gorm:"not null" json:"amount"`
	Status       PayoutStatus `gorm:"type:varchar(20);index;default:'pending'" json:"status"`

	Instructor *User `gorm:"foreignKey:InstructorID;constraint:OnDelete:CASCADE;" json:"instructor,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
