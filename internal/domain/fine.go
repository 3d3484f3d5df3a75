package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type FinePaymentStatus string

const (
	FineStatusPending FinePaymentStatus = "pending"
	FineStatusPaid    FinePaymentStatus = "paid"
	FineStatusWaived  FinePaymentStatus = "waived"
)

type Fine struct {
	ID            int32             `json:"id"`
	LoanID        int32             `json:"loan_id"`
	Amount        decimal.Decimal   `json:"fine_amount"`
	PaymentStatus FinePaymentStatus `json:"payment_status"`
	FineDate      time.Time         `json:"fine_date"`
	PaymentDate   *time.Time        `json:"payment_date,omitempty"`
}
