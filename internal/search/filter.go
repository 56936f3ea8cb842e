package search

import (
	"sort"
	"strings"
	"time"

	"github.com/podseek/search-api/internal/search/match"
	"github.com/podseek/search-api/internal/search/query"
)

// searchableText is the folded concatenation of a podcast's text fields used
// for required-term and phrase matching.
func searchableText(p Podcast) string {
	return match.Fold(p.Title + " " + p.Author + " " + p.Description)
}

// exclusionText widens the searchable text with category labels and language
// so excluded terms also reject results carrying the term only there.
func exclusionText(p Podcast) string {
	return searchableText(p) + " " + match.Fold(strings.Join(p.Categories, " ")+" "+p.Language)
}

func episodeSearchableText(e Episode) string {
	return match.Fold(e.Title + " " + e.Description + " " + e.FeedTitle + " " + e.FeedAuthor)
}

// matchesQuery applies the full parsed query to a pair of texts: terms and
// phrases scan text, exclusions scan excludeText (a superset of text).
func matchesQuery(q query.Query, text, excludeText string) bool {
	for _, term := range q.Exclude {
		if match.Contains(excludeText, match.Fold(term)) {
			return false
		}
	}
	for _, phrase := range q.ExactPhrases {
		if !match.Contains(text, match.Fold(phrase)) {
			return false
		}
	}
	for _, group := range q.OrGroups {
		any := false
		for _, term := range group {
			if match.HasPrefixWord(text, match.Fold(term)) {
				any = true
				break
			}
		}
		if !any {
			return false
		}
	}
	return match.AllPrefixWords(text, q.Required)
}

// filterPodcasts applies the parsed query plus every structured filter and
// returns a fresh slice preserving input order.
func filterPodcasts(podcasts []Podcast, q query.Query, f Filters) []Podcast {
	out := make([]Podcast, 0, len(podcasts))
	for _, p := range podcasts {
		if !matchesQuery(q, searchableText(p), exclusionText(p)) {
			continue
		}
		if !matchesCategories(p, f.Categories) {
			continue
		}
		if !matchesLanguages(p, f.Languages) {
			continue
		}
		if !matchesDateRange(p.LastUpdated, f.DateFrom, f.DateTo) {
			continue
		}
		if !matchesDiscovery(p, f.Discovery) {
			continue
		}
		if f.MinRating > 0 && p.Rating < f.MinRating {
			continue
		}
		if f.Explicit != nil && !*f.Explicit && p.Explicit {
			continue
		}
		out = append(out, p)
	}
	return out
}

func filterEpisodes(episodes []Episode, q query.Query, f Filters) []Episode {
	out := make([]Episode, 0, len(episodes))
	for _, e := range episodes {
		text := episodeSearchableText(e)
		if !matchesQuery(q, text, text) {
			continue
		}
		if !matchesDateRange(e.PublishedAt, f.DateFrom, f.DateTo) {
			continue
		}
		out = append(out, e)
	}
	return out
}

// matchesCategories accepts a podcast when any of its category labels
// contains any selected filter category, case-insensitively.
func matchesCategories(p Podcast, selected []string) bool {
	if len(selected) == 0 {
		return true
	}
	for _, want := range selected {
		folded := match.Fold(want)
		for _, label := range p.Categories {
			if match.Contains(match.Fold(label), folded) {
				return true
			}
		}
	}
	return false
}

func matchesLanguages(p Podcast, selected []string) bool {
	if len(selected) == 0 {
		return true
	}
	lang := match.Fold(p.Language)
	for _, want := range selected {
		if match.Contains(lang, match.Fold(want)) {
			return true
		}
	}
	return false
}

func matchesDateRange(t time.Time, from, to *time.Time) bool {
	if t.IsZero() {
		// A record without a timestamp cannot satisfy a lower bound.
		return from == nil
	}
	if from != nil && t.Before(*from) {
		return false
	}
	if to != nil && t.After(*to) {
		return false
	}
	return true
}

func matchesDiscovery(p Podcast, mode DiscoveryMode) bool {
	switch mode {
	case DiscoveryIndie:
		// Feeds absent from the Apple directory are treated as independent.
		return p.ITunesID == 0
	case DiscoveryValue4Value:
		return p.HasValueBlock
	default:
		return true
	}
}

// sortPodcasts orders podcasts in place. All orders use a stable sort so
// equal keys preserve their prior relative order; relevance preserves
// upstream order entirely.
func sortPodcasts(podcasts []Podcast, by SortBy) {
	switch by {
	case SortRating:
		sort.SliceStable(podcasts, func(i, j int) bool {
			return podcasts[i].Rating > podcasts[j].Rating
		})
	case SortNewest:
		sort.SliceStable(podcasts, func(i, j int) bool {
			return podcasts[i].LastUpdated.After(podcasts[j].LastUpdated)
		})
	case SortOldest:
		sort.SliceStable(podcasts, func(i, j int) bool {
			return podcasts[i].LastUpdated.Before(podcasts[j].LastUpdated)
		})
	case SortPopular:
		sort.SliceStable(podcasts, func(i, j int) bool {
			return podcasts[i].EpisodeCount > podcasts[j].EpisodeCount
		})
	}
}

func sortEpisodes(episodes []Episode, by SortBy) {
	switch by {
	case SortNewest:
		sort.SliceStable(episodes, func(i, j int) bool {
			return episodes[i].PublishedAt.After(episodes[j].PublishedAt)
		})
	case SortOldest:
		sort.SliceStable(episodes, func(i, j int) bool {
			return episodes[i].PublishedAt.Before(episodes[j].PublishedAt)
		})
	}
}
