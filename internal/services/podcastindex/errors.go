package podcastindex

import "errors"

var (
	// ErrRemoteUnavailable wraps any network or service failure talking to
	// the Podcast Index API.
	ErrRemoteUnavailable = errors.New("podcast index unavailable")

	// ErrInvalidFeedID is returned for malformed feed identifiers before
	// any request is made.
	ErrInvalidFeedID = errors.New("invalid feed id")

	// ErrNotConfigured signals the client has no credentials. Callers treat
	// this as a routing decision, not a failure.
	ErrNotConfigured = errors.New("podcast index client not configured")
)
