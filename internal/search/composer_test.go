package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComposerLabel(t *testing.T) {
	c := NewComposer(nil)

	assert.Equal(t, "Technology", c.Label("108"))
	assert.Equal(t, "True Crime", c.Label("112"))
	assert.Equal(t, "9999", c.Label("9999"), "unknown identifiers pass through")

	custom := NewComposer(CategoryLabels{"1": "Kunst"})
	assert.Equal(t, "Kunst", custom.Label("1"))
}

func TestComposeEpisodes(t *testing.T) {
	c := NewComposer(nil)

	episodes := []Episode{
		{
			ID:         1,
			Title:      "With feed metadata",
			FeedTitle:  "Tech Talks",
			FeedAuthor: "Jane",
			FeedImage:  "https://example.com/cover.jpg",
		},
		{
			ID:    2,
			Title: "Bare episode",
		},
		{
			ID:        3,
			Title:     "Partial metadata",
			FeedTitle: "Tech Talks",
		},
	}

	got := c.ComposeEpisodes(episodes)
	require.Len(t, got, 3)

	require.NotNil(t, got[0].Podcast)
	assert.Equal(t, "Tech Talks", got[0].Podcast.Title)
	assert.Equal(t, "Jane", got[0].Podcast.Author)
	assert.Equal(t, "https://example.com/cover.jpg", got[0].Podcast.ImageURL)

	assert.Nil(t, got[1].Podcast, "episodes without feed metadata get no snapshot")

	require.NotNil(t, got[2].Podcast)
	assert.Equal(t, "Tech Talks", got[2].Podcast.Title)
	assert.Empty(t, got[2].Podcast.Author)
}

func TestComposeEpisodesEmpty(t *testing.T) {
	c := NewComposer(nil)
	got := c.ComposeEpisodes(nil)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}
