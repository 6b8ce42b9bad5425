package analytics

import "time"

// Topics the service publishes on.
const (
	TopicLinkCreated = "link.created"
	TopicLinkVisited = "link.visited"
)

// LinkCreatedEvent is emitted when a new short link is created. Repeated
// shortens of an already-stored URL do not emit one.
type LinkCreatedEvent struct {
	ID        string    `json:"id"`
	Code      string    `json:"code"`
	URL       string    `json:"url"`
	Custom    bool      `json:"custom"`
	CreatedAt time.Time `json:"createdAt"`
	ClientIP  string    `json:"clientIp"`
	UserAgent string    `json:"userAgent"`
}

// LinkVisitedEvent is emitted on every successful redirect.
type LinkVisitedEvent struct {
	Code      string    `json:"code"`
	URL       string    `json:"url"`
	VisitedAt time.Time `json:"visitedAt"`
	ClientIP  string    `json:"clientIp"`
	UserAgent string    `json:"userAgent"`
	Referrer  string    `json:"referrer"`
}
