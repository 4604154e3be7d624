package models

// Stats is the platform-wide counters snapshot.
type Stats struct {
	TotalRaffles   int64 `json:"total_raffles"`
	ActiveRaffles  int64 `json:"active_raffles"`
	TotalUsers     int64 `json:"total_users"`
	TotalPurchases int64 `json:"total_purchases"`
}
