package social

import (
	"context"
	"errors"
	"time"

	"github.com/pdelacruz/newscred/internal/model"
)

// ErrNotConfigured indicates the social platform client has no access token
var ErrNotConfigured = errors.New("social platform access token not configured")

// Post is a single social platform post
type Post struct {
	ID          string    `json:"id"`
	Message     string    `json:"message"`
	CreatedTime time.Time `json:"created_time"`
	AuthorID    string    `json:"author_id"`
	AuthorName  string    `json:"author_name"`
	Permalink   string    `json:"permalink"`
}

// Account is a social platform account with the activity numbers needed
// for poser detection
type Account struct {
	ID       string                `json:"id"`
	Name     string                `json:"name"`
	Verified bool                  `json:"verified"`
	Metrics  model.ActivityMetrics `json:"metrics"`
}

// Provider defines the interface for social platform lookups
type Provider interface {
	// GetPost fetches a post by its platform id
	GetPost(ctx context.Context, postID string) (*Post, error)

	// GetAccount fetches an account and its recent activity by handle or id
	GetAccount(ctx context.Context, handle string) (*Account, error)
}
