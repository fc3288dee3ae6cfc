package models

import "time"

type Booking struct {
	ID uint `gorm:"primaryKey" json:"id"`

	// Public identifier handed to clients (never the numeric ID).
	Reference string `gorm:"size:36;uniqueIndex" json:"reference"`

	StudioID uint   `json:"studio_id"`
	Studio   Studio `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"studio"`

	ServiceID uint    `json:"service_id"`
	Service   Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"service"`

	ClientID uint   `json:"client_id"`
	Client   Client `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"client"`

	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`

	Status string `gorm:"size:20;default:'pending'" json:"status"`

	Notes string `gorm:"size:255" json:"notes"`

	// Collaborator references, filled asynchronously after creation.
	DepositPaymentID   string `gorm:"size:100" json:"deposit_payment_id"`
	ContractEnvelopeID string `gorm:"size:100" json:"contract_envelope_id"`

	ConfirmedAt *time.Time `json:"confirmed_at"`
	CancelledAt *time.Time `json:"cancelled_at"`
	CompletedAt *time.Time `json:"completed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
