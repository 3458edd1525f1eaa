package entity

import (
	"encoding/json"
	"time"
)

// Report is a single civic issue submitted to the shared feed.
// Reports are created and deleted, never updated in place.
type Report struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    Category  `json:"category"`
	Location    string    `json:"location"`
	ImageURL    string    `json:"imageUrl"`
	VideoURL    string    `json:"videoUrl,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
	ReportedBy  string    `json:"reportedBy"`
}

// AnonymousReporter is used when a report arrives without a display name.
const AnonymousReporter = "Anonymous User"

// TimestampLayout is ISO-8601 in UTC with exactly three fractional digits.
const TimestampLayout = "2006-01-02T15:04:05.000Z"

func (r Report) MarshalJSON() ([]byte, error) {
	type alias Report
	return json.Marshal(struct {
		alias
		Timestamp string `json:"timestamp"`
	}{alias: alias(r), Timestamp: r.Timestamp.UTC().Format(TimestampLayout)})
}
