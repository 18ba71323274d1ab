package entities

import "time"

// OrderStats is the admin overview of all orders.
// Revenue only counts orders currently in the paid status.
type OrderStats struct {
	TotalOrders        int64                   `json:"total_orders"`
	ByStatus           map[PaymentStatus]int64 `json:"by_status"`
	TotalRevenueMinor  int64                   `json:"total_revenue_minor"`
	RecentRevenueMinor int64                   `json:"recent_revenue_minor"`
	Since              time.Time               `json:"since"`
	PeriodDays         int                     `json:"period_days"`
	Currency           string                  `json:"currency"`
}

func NewOrderStats(since time.Time) OrderStats {
	return OrderStats{ByStatus: map[PaymentStatus]int64{}, Since: since}
}

// Add folds one order into the totals. Orders created at or after Since
// count toward the recent revenue.
func (s *OrderStats) Add(o Order) {
	if s.ByStatus == nil {
		s.ByStatus = map[PaymentStatus]int64{}
	}
	s.TotalOrders++
	s.ByStatus[o.PaymentStatus]++
	if o.PaymentStatus != PaymentStatusPaid {
		return
	}
	s.TotalRevenueMinor += o.AmountMinor
	if !o.CreatedAt.Before(s.Since) {
		s.RecentRevenueMinor += o.AmountMinor
	}
}

func (s OrderStats) Count(status PaymentStatus) int64 {
	return s.ByStatus[status]
}
