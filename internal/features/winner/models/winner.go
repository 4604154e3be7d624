package models

import "time"

// Winner is a published draw result: one user, one raffle, one prize, one
// winning ticket number.
type Winner struct {
	ID            string    `json:"id"`
	UserID        string    `json:"user_id"`
	UserPhone     string    `json:"user_phone"`
	RaffleID      string    `json:"raffle_id"`
	RaffleTitle   string    `json:"raffle_title"`
	PrizeName     string    `json:"prize_name"`
	WinningNumber int       `json:"winning_number"`
	Date          time.Time `json:"date"`
}

// WinnerCreate is the admin input for publishing a draw result. Phone and
// title are derived from the referenced user and raffle.
type WinnerCreate struct {
	UserID        string `json:"user_id" binding:"required"`
	RaffleID      string `json:"raffle_id" binding:"required"`
	PrizeName     string `json:"prize_name" binding:"required"`
	WinningNumber int    `json:"winning_number"`
}
