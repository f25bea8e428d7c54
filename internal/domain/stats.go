package domain

// BookingStats aggregates bookings over a date range
type BookingStats struct {
	From         Date                  `json:"from"`
	To           Date                  `json:"to"`
	Total        int                   `json:"total"`
	ByStatus     map[BookingStatus]int `json:"by_status"`
	Revenue      float64               `json:"revenue"`
	Participants int                   `json:"participants"`
}

// NewBookingStats returns empty stats for a range
func NewBookingStats(from, to Date) *BookingStats {
	return &BookingStats{
		From:     from,
		To:       to,
		ByStatus: make(map[BookingStatus]int),
	}
}
