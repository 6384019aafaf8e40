package models

import "time"

// Video is an embedded YouTube lesson or promo clip.
type Video struct {
	ID          string    `db:"id" json:"id"`
	Title       string    `db:"title" json:"title"`
	Description string    `db:"description" json:"description"`
	YoutubeID   string    `db:"youtube_id" json:"youtubeId"`
	Category    string    `db:"category" json:"category"`
	Featured    bool      `db:"featured" json:"featured"`
	IsActive    bool      `db:"is_active" json:"isActive"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `db:"updated_at" json:"updatedAt"`
}

// VideoFilter allows listing videos.
type VideoFilter struct {
	ListOptions
	Featured *bool
	Category string
	IsActive *bool
}
