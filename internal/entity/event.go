package entity

import "time"

// PostComposedEvent is published after a post is composed, for downstream
// consumers (scheduling, analytics). Delivery is best-effort.
type PostComposedEvent struct {
	ID         string    `json:"id"`
	Brand      string    `json:"brand"`
	Product    string    `json:"product,omitempty"`
	Format     string    `json:"format"`
	FileName   string    `json:"file_name,omitempty"`
	ItemID     string    `json:"item_id,omitempty"`
	ComposedAt time.Time `json:"composed_at"`
}
