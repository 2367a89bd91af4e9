package db

import (
	"time"

	"gorm.io/datatypes"
)

type Order struct {
	ID            uint
	MakerID       uint `validate:"required"`
	TakerID       *uint
	TradeDetails  datatypes.JSON
	AmountMsat    uint64 `gorm:"column:amount_msat"`
	Currency      string
	PaymentMethod string
	Status        string
	Direction     string
	Premium       float64
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type Invoice struct {
	ID             uint
	OrderID        uint  `validate:"required"`
	Order          Order `gorm:"constraint:OnDelete:CASCADE;"`
	PaymentRequest string
	AmountMsat     uint64 `gorm:"column:amount_msat"`
	Status         string
	Description    string
	PaymentHash    string `validate:"required" gorm:"unique;not null"`
	Kind           string
	Role           string
	CreatedAt      time.Time
	UpdatedAt      time.Time
	ExpiresAt      *time.Time
}

type Payout struct {
	ID             uint
	OrderID        uint  `validate:"required"`
	Order          Order `gorm:"constraint:OnDelete:CASCADE;"`
	PaymentRequest string
	AmountMsat     uint64 `gorm:"column:amount_msat"`
	Status         string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
