package models

import (
	"errors"
	"sort"
	"time"
)

var (
	ErrInvalidPrice        = errors.New("price per ticket must be positive")
	ErrInvalidTotalTickets = errors.New("total tickets must be positive")
	ErrInvalidBonusTier    = errors.New("bonus tier quantity must be positive and boxes non-negative")
	ErrTitleRequired       = errors.New("title is required")
)

// RaffleStatus represents the lifecycle state of a raffle.
type RaffleStatus string

const (
	RaffleStatusActive   RaffleStatus = "active"
	RaffleStatusInactive RaffleStatus = "inactive"
)

// PrizeType distinguishes cash prizes from physical products.
type PrizeType string

const (
	PrizeTypeMoney   PrizeType = "money"
	PrizeTypeProduct PrizeType = "product"
)

// Prize is one entry of a raffle's prize list.
type Prize struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Value       float64   `json:"value"`
	Type        PrizeType `json:"type"`
	ImageURL    string    `json:"image_url,omitempty"`
	IsAvailable bool      `json:"is_available"`
}

// BonusTier grants a fixed number of bonus boxes when a single purchase
// reaches the tier quantity.
type BonusTier struct {
	Quantity int `json:"quantity"`
	Boxes    int `json:"boxes"`
}

// BonusTiers is the bonus table of a raffle. It is normalized once at raffle
// creation time: descending by quantity threshold, ties resolved in favor of
// the larger box count, so the stored order is the evaluation order.
type BonusTiers []BonusTier

// Normalized returns a sorted copy of the tier table.
func (t BonusTiers) Normalized() BonusTiers {
	if len(t) == 0 {
		return nil
	}
	out := make(BonusTiers, len(t))
	copy(out, t)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Quantity != out[j].Quantity {
			return out[i].Quantity > out[j].Quantity
		}
		return out[i].Boxes > out[j].Boxes
	})
	return out
}

// Resolve returns the bonus boxes granted for a purchase of the given
// quantity: the boxes of the highest tier whose threshold the quantity
// reaches, zero when no tier qualifies. The result does not depend on the
// order of the receiver.
func (t BonusTiers) Resolve(quantity int) int {
	boxes := 0
	bestThreshold := -1
	for _, tier := range t {
		if quantity < tier.Quantity {
			continue
		}
		if tier.Quantity > bestThreshold || (tier.Quantity == bestThreshold && tier.Boxes > boxes) {
			bestThreshold = tier.Quantity
			boxes = tier.Boxes
		}
	}
	return boxes
}

// Validate checks tier invariants.
func (t BonusTiers) Validate() error {
	for _, tier := range t {
		if tier.Quantity <= 0 || tier.Boxes < 0 {
			return ErrInvalidBonusTier
		}
	}
	return nil
}

// Raffle is a single draw event with a fixed pool of numbered tickets sold at
// a fixed price. Ticket numbers live in [0, TotalTickets); SoldTickets is the
// allocation high-water mark and never decreases.
type Raffle struct {
	ID             string       `json:"id"`
	Title          string       `json:"title"`
	Description    string       `json:"description"`
	ImageURL       string       `json:"image_url,omitempty"`
	PricePerTicket float64      `json:"price_per_ticket"`
	TotalTickets   int          `json:"total_tickets"`
	SoldTickets    int          `json:"sold_tickets"`
	DrawDate       *time.Time   `json:"draw_date,omitempty"`
	Prizes         []Prize      `json:"prizes,omitempty"`
	BonusTiers     BonusTiers   `json:"bonus_tiers,omitempty"`
	Status         RaffleStatus `json:"status"`
	CreatedAt      time.Time    `json:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at"`
}

// Remaining reports how many tickets are still allocable.
func (r *Raffle) Remaining() int {
	return r.TotalTickets - r.SoldTickets
}

func (r *Raffle) IsActive() bool {
	return r.Status == RaffleStatusActive
}

// Clone returns a deep copy, so callers can hand the raffle out without
// exposing store-owned state.
func (r *Raffle) Clone() *Raffle {
	out := *r
	if r.DrawDate != nil {
		d := *r.DrawDate
		out.DrawDate = &d
	}
	out.Prizes = append([]Prize(nil), r.Prizes...)
	out.BonusTiers = append(BonusTiers(nil), r.BonusTiers...)
	return &out
}

// RaffleCreate is the admin input for creating a raffle.
type RaffleCreate struct {
	Title          string     `json:"title" binding:"required"`
	Description    string     `json:"description"`
	ImageURL       string     `json:"image_url"`
	PricePerTicket float64    `json:"price_per_ticket" binding:"required"`
	TotalTickets   int        `json:"total_tickets" binding:"required"`
	DrawDate       *time.Time `json:"draw_date"`
	Prizes         []Prize    `json:"prizes"`
	BonusTiers     BonusTiers `json:"bonus_tiers"`
}

func (in *RaffleCreate) Validate() error {
	if in.Title == "" {
		return ErrTitleRequired
	}
	if in.PricePerTicket <= 0 {
		return ErrInvalidPrice
	}
	if in.TotalTickets <= 0 {
		return ErrInvalidTotalTickets
	}
	return in.BonusTiers.Validate()
}

// RaffleUpdate is the admin input for editing a raffle. TotalTickets is
// deliberately absent: the ticket space is fixed at creation.
type RaffleUpdate struct {
	Title          *string       `json:"title"`
	Description    *string       `json:"description"`
	ImageURL       *string       `json:"image_url"`
	PricePerTicket *float64      `json:"price_per_ticket"`
	DrawDate       *time.Time    `json:"draw_date"`
	Prizes         []Prize       `json:"prizes"`
	BonusTiers     BonusTiers    `json:"bonus_tiers"`
	Status         *RaffleStatus `json:"status"`
}
