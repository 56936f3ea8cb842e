package models

import (
	"time"

	"gorm.io/gorm"
)

// Podcast is a locally stored podcast record: subscriptions plus feeds kept
// from earlier catalog fetches. It backs the in-memory search fallback when
// no remote catalog is configured.
type Podcast struct {
	gorm.Model
	FeedID        int64   `json:"feed_id" gorm:"uniqueIndex;not null"` // remote catalog identity
	Title         string  `json:"title" gorm:"not null"`
	Author        string  `json:"author"`
	Description   string  `json:"description" gorm:"type:text"`
	FeedURL       string  `json:"feed_url" gorm:"uniqueIndex;not null"`
	ImageURL      string  `json:"image_url"`
	Language      string  `json:"language"`
	Categories    string  `json:"categories"` // comma-separated labels
	EpisodeCount  int     `json:"episode_count"`
	Rating        float64 `json:"rating"`
	Explicit      bool    `json:"explicit"`
	ITunesID      int64   `json:"itunes_id"`
	HasValueBlock bool    `json:"has_value_block"`

	LastUpdated time.Time `json:"last_updated"`
	Subscribed  bool      `json:"subscribed" gorm:"default:false;index"`

	Episodes []Episode `json:"episodes,omitempty" gorm:"foreignKey:PodcastID"`
}

// Episode is a locally stored episode record.
type Episode struct {
	gorm.Model
	PodcastID   uint   `json:"podcast_id" gorm:"not null;index"`
	EpisodeID   int64  `json:"episode_id" gorm:"uniqueIndex"` // remote catalog identity
	Title       string `json:"title" gorm:"not null"`
	Description string `json:"description" gorm:"type:text"`
	AudioURL    string `json:"audio_url"`
	ImageURL    string `json:"image_url"`
	Duration    int    `json:"duration"` // seconds

	PublishedAt time.Time `json:"published_at"`
}
