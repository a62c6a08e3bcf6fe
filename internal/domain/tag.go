package domain

// Tag labels nodes for discovery. UsageCount is populated on the popular-tag
// listing and zero elsewhere.
type Tag struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	UsageCount int    `json:"usage_count,omitempty"`
}
