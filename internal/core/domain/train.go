package domain

import (
	"time"

	"github.com/google/uuid"
)

type Train struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"train_name"`
	Source        string    `json:"source"`
	Destination   string    `json:"destination"`
	DepartureTime string    `json:"departure_time"`
	ArrivalTime   string    `json:"arrival_time,omitempty"`
	TotalSeats    int       `json:"total_seats"`
	CreatedAt     time.Time `json:"created_at"`
}

type TimeFilter string

const (
	TimeFilterAll       TimeFilter = "all"
	TimeFilterMorning   TimeFilter = "morning"
	TimeFilterAfternoon TimeFilter = "afternoon"
	TimeFilterEvening   TimeFilter = "evening"
)

// Window returns the departure range [from, to) as HH:MM strings.
// ok is false for TimeFilterAll and unknown filters.
func (f TimeFilter) Window() (from, to string, ok bool) {
	switch f {
	case TimeFilterMorning:
		return "05:00", "12:00", true
	case TimeFilterAfternoon:
		return "12:00", "17:00", true
	case TimeFilterEvening:
		return "17:00", "24:00", true
	default:
		return "", "", false
	}
}

type TrainQuery struct {
	Source      string
	Destination string
	Filter      TimeFilter
}
