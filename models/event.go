package models

import "time"

// BlogViewEvent is one page view of a blog post, stored in ClickHouse.
type BlogViewEvent struct {
	EventID   string    `json:"eventId"`
	BlogID    string    `json:"blogId"`
	Timestamp time.Time `json:"timestamp"`
	Referrer  string    `json:"referrer"`
	UserAgent string    `json:"userAgent"`
	IPAddress string    `json:"ipAddress"`
}

type TopBlogResult struct {
	BlogID string `json:"blogId"`
	Views  uint64 `json:"views"`
}
