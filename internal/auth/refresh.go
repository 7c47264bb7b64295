package auth

import (
	"context"
	"sync"
	"time"

	"golang.org/x/oauth2"
)

// refreshBuffer is how close to expiry a token is treated as stale
const refreshBuffer = 60 * time.Second

// TokenSource wraps oauth2.TokenSource with persistence.
// It refreshes stale tokens and calls onRefresh when a new token is obtained.
type TokenSource struct {
	config    *oauth2.Config
	token     *oauth2.Token
	onRefresh func(*oauth2.Token) error
	mu        sync.Mutex
}

// NewTokenSource creates a TokenSource that refreshes tokens as needed
// and calls onRefresh to persist new ones
func NewTokenSource(cfg *oauth2.Config, token *oauth2.Token, onRefresh func(*oauth2.Token) error) *TokenSource {
	return &TokenSource{
		config:    cfg,
		token:     token,
		onRefresh: onRefresh,
	}
}

// Token returns a valid token, refreshing if necessary
func (ts *TokenSource) Token() (*oauth2.Token, error) {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	if time.Until(ts.token.Expiry) > refreshBuffer {
		return ts.token, nil
	}

	src := ts.config.TokenSource(context.Background(), ts.token)
	newToken, err := src.Token()
	if err != nil {
		return nil, err
	}

	if ts.onRefresh != nil {
		if err := ts.onRefresh(newToken); err != nil {
			return nil, err
		}
	}

	ts.token = newToken
	return newToken, nil
}

// Invalidate marks the current token expired so the next Token call
// refreshes it. Used after the API rejects a token that still looked fresh.
func (ts *TokenSource) Invalidate() {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	ts.token.Expiry = time.Now().Add(-time.Second)
}

// IsExpired checks if the current token is expired or about to expire
func (ts *TokenSource) IsExpired() bool {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	return time.Until(ts.token.Expiry) <= refreshBuffer
}
