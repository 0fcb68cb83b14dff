package models

import "gorm.io/gorm"

const (
	PurchaseStatusPending   = "pending"
	PurchaseStatusCompleted = "completed"
	PurchaseStatusFailed    = "failed"
)

// CoursePurchase records a payment for a course. PaymentID is the external
// checkout-session id (or a locally generated id on the direct path) and is
// the correlation key for gateway webhooks. It never changes once set.
type CoursePurchase struct {
	gorm.Model
	UserID    uint    `json:"userId" gorm:"index;not null"`
	CourseID  uint    `json:"courseId" gorm:"index;not null"`
	Course    *Course `json:"course,omitempty" gorm:"foreignKey:CourseID"`
	Amount    float64 `json:"amount" gorm:"default:0"`
	PaymentID string  `json:"paymentId" gorm:"uniqueIndex;not null"`
	Status    string  `json:"status" gorm:"default:'pending'"` // pending, completed, failed
}
