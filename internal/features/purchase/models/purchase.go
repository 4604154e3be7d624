package models

import "time"

// PaymentStatus is the purchase settlement state. The only defined
// transition is pending -> paid.
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"
)

// Purchase is an immutable record of one user acquiring a block of tickets in
// one raffle. Tickets are the allocated numbers, contiguous and unique within
// the raffle. TotalAmount snapshots the ticket price at purchase time;
// BonusBoxes is resolved once at creation.
type Purchase struct {
	ID            string        `json:"id"`
	UserID        string        `json:"user_id"`
	RaffleID      string        `json:"raffle_id"`
	Tickets       []int         `json:"tickets"`
	Quantity      int           `json:"quantity"`
	TotalAmount   float64       `json:"total_amount"`
	BonusBoxes    int           `json:"bonus_boxes"`
	PaymentStatus PaymentStatus `json:"payment_status"`
	CreatedAt     time.Time     `json:"created_at"`
}

func (p *Purchase) IsPaid() bool {
	return p.PaymentStatus == PaymentStatusPaid
}

// PurchaseCreate is the public input for buying tickets.
type PurchaseCreate struct {
	UserID   string `json:"user_id" binding:"required"`
	RaffleID string `json:"raffle_id" binding:"required"`
	Quantity int    `json:"quantity" binding:"required"`
}
