package models

// Window selects the aggregation range of a ranking.
type Window string

const (
	WindowAllTime Window = "all_time"
	WindowToday   Window = "today"
)

// BuyerSummary is one ranking row: the fold of a user's paid purchases
// within the window. Derived, never stored.
type BuyerSummary struct {
	UserID       string  `json:"user_id"`
	UserName     string  `json:"user_name,omitempty"`
	UserPhone    string  `json:"user_phone,omitempty"`
	TotalTickets int     `json:"total_tickets"`
	TotalSpent   float64 `json:"total_spent"`
}
