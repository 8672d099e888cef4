package store

import (
	"github.com/goccy/go-json"

	"github.com/rcliao/theaterlog/internal/model"
)

// ExportJSON serializes the collection as a pretty-printed JSON array of
// reviews, verbatim and without an envelope.
func (s *Store) ExportJSON() ([]byte, error) {
	reviews := s.reviews
	if reviews == nil {
		reviews = []model.Review{}
	}
	return json.MarshalIndent(reviews, "", "  ")
}
