package models

import "github.com/neoscope/neoscope/internal/asteroid"

// PagedAsteroids is a page of normalized asteroid records.
type PagedAsteroids struct {
	Items []asteroid.Asteroid `json:"items"`
	Meta  PagedResponseMeta   `json:"meta"`
}

// FeedResponse is the response for a date-windowed feed query.
type FeedResponse struct {
	StartDate string              `json:"startDate"`
	EndDate   string              `json:"endDate"`
	Count     int                 `json:"count"`
	Items     []asteroid.Asteroid `json:"items"`
}
