package model

import "time"

// FeedRecord is one publishable price update, fully rendered for feed
// serialization. Delta fields are nil when their baseline is unknown.
type FeedRecord struct {
	ID    string
	Time  time.Time
	Price float64

	ChangeVsPrevClose *float64
	PctVsPrevClose    *float64
	ChangeVs1h        *float64
	PctVs1h           *float64

	Title       string
	Summary     string
	ContentHTML string
	TimeLabel   string
}


