package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"veloform/internal/analysis"
	"veloform/internal/auth"
	"veloform/internal/store"
	"veloform/internal/strava"
)

// SyncService pulls recent rides from Strava into the local store
type SyncService struct {
	client *strava.Client
	tokens *auth.TokenSource
	store  *store.DB
}

// NewSyncService creates a new sync service. tokens may be nil when the
// caller manages token refresh itself.
func NewSyncService(client *strava.Client, tokens *auth.TokenSource, db *store.DB) *SyncService {
	return &SyncService{
		client: client,
		tokens: tokens,
		store:  db,
	}
}

// SyncProgress reports progress during sync
type SyncProgress struct {
	Phase     string // "rides"
	Total     int
	Completed int
}

// SyncResult contains the results of a sync operation
type SyncResult struct {
	RidesFetched int
	RidesStored  int
	EstimatedFTP int // best-effort FTP estimate from the synced window
	Errors       []error
}

// Sync fetches the recent ride window and upserts each ride. If the API
// rejects a token that looked fresh locally, the token is invalidated and
// the fetch retried once.
func (s *SyncService) Sync(ctx context.Context, progress chan<- SyncProgress) (*SyncResult, error) {
	if progress != nil {
		defer close(progress)
	}

	result := &SyncResult{}

	rides, err := s.fetchRides(ctx)
	if err != nil {
		return result, fmt.Errorf("fetching rides: %w", err)
	}

	result.RidesFetched = len(rides)
	if progress != nil {
		progress <- SyncProgress{Phase: "rides", Total: len(rides)}
	}

	for i, a := range rides {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		if err := s.store.UpsertActivity(convertActivity(a)); err != nil {
			result.Errors = append(result.Errors, fmt.Errorf("storing ride %d: %w", a.ID, err))
			continue
		}
		result.RidesStored++

		if progress != nil {
			progress <- SyncProgress{Phase: "rides", Total: len(rides), Completed: i + 1}
		}
	}

	if err := s.store.SetSyncState(SyncStateLastActivitySync, time.Now().Format(time.RFC3339)); err != nil {
		result.Errors = append(result.Errors, fmt.Errorf("recording sync time: %w", err))
	}

	result.EstimatedFTP = s.estimateFTP(time.Now())

	return result, nil
}

// fetchRides gets the recent ride window, retrying once after a token
// invalidation if the API rejected our access token.
func (s *SyncService) fetchRides(ctx context.Context) ([]strava.Activity, error) {
	rides, err := s.client.GetRecentRides(ctx, FitnessLookbackDays)
	if err == nil || !errors.Is(err, strava.ErrAuthExpired) || s.tokens == nil {
		return rides, err
	}

	s.tokens.Invalidate()
	return s.client.GetRecentRides(ctx, FitnessLookbackDays)
}

// estimateFTP computes the current FTP estimate from the stored window
func (s *SyncService) estimateFTP(now time.Time) int {
	start := now.AddDate(0, 0, -FitnessLookbackDays)
	activities, err := s.store.ListActivitiesInRange(start, now.AddDate(0, 0, 1))
	if err != nil {
		return analysis.DefaultFTP
	}
	return analysis.EstimateFTP(activities)
}

// LastSyncTime returns when the store was last synced, zero if never
func (s *SyncService) LastSyncTime() time.Time {
	value, err := s.store.GetSyncState(SyncStateLastActivitySync)
	if err != nil || value == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}
	}
	return t
}

// RateLimitStatus returns the current rate limit status from the client
func (s *SyncService) RateLimitStatus() (shortRemaining, dailyRemaining int) {
	return s.client.RateLimitStatus()
}

// convertActivity converts a Strava API activity to a store activity
func convertActivity(a strava.Activity) *store.Activity {
	return &store.Activity{
		ID:                   a.ID,
		AthleteID:            a.Athlete.ID,
		Name:                 a.Name,
		Type:                 a.Type,
		SportType:            a.SportType,
		StartDate:            a.StartDate,
		StartDateLocal:       a.StartDateLocal,
		Distance:             a.Distance,
		MovingTime:           a.MovingTime,
		ElapsedTime:          a.ElapsedTime,
		TotalElevationGain:   a.TotalElevationGain,
		AverageHeartrate:     a.AverageHeartrate,
		MaxHeartrate:         a.MaxHeartrate,
		AverageWatts:         a.AverageWatts,
		WeightedAverageWatts: a.WeightedAverageWatts,
		Kilojoules:           a.Kilojoules,
		DeviceWatts:          a.DeviceWatts,
		HasHeartrate:         a.HasHeartrate,
	}
}
