// Package model defines the core review data types.
package model

// Review represents one theater-visit log entry.
//
// Date is the visit date in epoch milliseconds; 0 means the visit is
// unscheduled. Rating runs 0..5 where 0 means unrated.
type Review struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Director string   `json:"director,omitempty"`
	Location string   `json:"location,omitempty"`
	Info     string   `json:"info,omitempty"`
	Body     string   `json:"body,omitempty"`
	Date     int64    `json:"date,omitempty"`
	Tags     []string `json:"tags,omitempty"`
	Rating   int      `json:"rating"`
}

// Status is the derived review/scheduling state of a Review.
type Status string

const (
	// StatusSeen means the user already logged an opinion (rating or notes).
	StatusSeen Status = "seen"
	// StatusFillToday means the visit is today and still needs filling in.
	StatusFillToday Status = "fill_today"
	// StatusPlanned means the visit is in the future.
	StatusPlanned Status = "planned"
	// StatusPendingPast means the visit is past (or unscheduled) without notes.
	StatusPendingPast Status = "pending_past"
)

// MaxRating is the upper bound of the rating scale.
const MaxRating = 5
