package strava

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/oauth2"
)

const BaseURL = "https://www.strava.com/api/v3"

// ErrAuthExpired is returned when the API rejects the access token.
// The caller should refresh the credential and retry once.
var ErrAuthExpired = errors.New("strava: access token rejected")

// ErrRateLimited is returned when the API reports rate limit exhaustion.
// The caller should back off before retrying.
var ErrRateLimited = errors.New("strava: rate limited")

// Client is a Strava API client
type Client struct {
	httpClient  *http.Client
	rateLimiter *RateLimiter
}

// NewClient creates a new Strava API client
func NewClient(tokenSource oauth2.TokenSource) *Client {
	return &Client{
		httpClient:  oauth2.NewClient(context.Background(), tokenSource),
		rateLimiter: NewRateLimiter(),
	}
}

// GetActivities fetches one page of activities after the given timestamp
func (c *Client) GetActivities(ctx context.Context, after time.Time, page, perPage int) ([]Activity, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, err
	}

	params := url.Values{}
	if !after.IsZero() {
		params.Set("after", strconv.FormatInt(after.Unix(), 10))
	}
	params.Set("page", strconv.Itoa(page))
	params.Set("per_page", strconv.Itoa(perPage))

	resp, err := c.get(ctx, "/athlete/activities", params)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var activities []Activity
	if err := json.NewDecoder(resp.Body).Decode(&activities); err != nil {
		return nil, fmt.Errorf("decoding activities: %w", err)
	}

	return activities, nil
}

// GetRecentRides fetches all cycling activities from the last windowDays days.
// It handles pagination automatically and respects rate limits.
func (c *Client) GetRecentRides(ctx context.Context, windowDays int) ([]Activity, error) {
	after := time.Now().AddDate(0, 0, -windowDays)

	var rides []Activity
	page := 1
	perPage := 100 // Max allowed by Strava

	for {
		activities, err := c.GetActivities(ctx, after, page, perPage)
		if err != nil {
			return rides, fmt.Errorf("fetching page %d: %w", page, err)
		}

		for _, a := range activities {
			if a.IsRide() {
				rides = append(rides, a)
			}
		}

		if len(activities) < perPage {
			break // Last page
		}

		page++
	}

	return rides, nil
}

// GetAthlete fetches the authenticated athlete's profile
func (c *Client) GetAthlete(ctx context.Context) (*Athlete, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, err
	}

	resp, err := c.get(ctx, "/athlete", nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var athlete Athlete
	if err := json.NewDecoder(resp.Body).Decode(&athlete); err != nil {
		return nil, fmt.Errorf("decoding athlete: %w", err)
	}

	return &athlete, nil
}

// RateLimitStatus returns the current rate limit status
func (c *Client) RateLimitStatus() (shortRemaining, dailyRemaining int) {
	return c.rateLimiter.Status()
}

func (c *Client) get(ctx context.Context, path string, params url.Values) (*http.Response, error) {
	reqURL := BaseURL + path
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}

	// Update rate limiter from response headers
	c.rateLimiter.UpdateFromHeaders(resp.Header)

	switch resp.StatusCode {
	case http.StatusOK:
		return resp, nil
	case http.StatusUnauthorized:
		resp.Body.Close()
		return nil, ErrAuthExpired
	case http.StatusTooManyRequests:
		resp.Body.Close()
		return nil, ErrRateLimited
	default:
		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		return nil, fmt.Errorf("API error %d: %s", resp.StatusCode, string(body))
	}
}
