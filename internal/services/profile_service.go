package services

import (
	"context"
	"errors"
	"time"

	"github.com/interviewxp/backend/internal/cache"
	"github.com/interviewxp/backend/internal/models"
	mongorepo "github.com/interviewxp/backend/internal/repositories/mongo"
	"github.com/interviewxp/backend/internal/utils"
)

const profileCacheTTL = 5 * time.Minute

func profileCacheKey(userID string) string { return "profile:" + userID }

// ProfileService owns server-side profile persistence. It satisfies
// interview.ProfileStore, so the chat controller writes topic and skill
// changes through here. Concurrent writers resolve last-writer-wins.
type ProfileService interface {
	Get(ctx context.Context, userID string) (*models.Profile, error)
	Ensure(ctx context.Context, userID string) (*models.Profile, error)
	SetLanguage(ctx context.Context, userID, language string) error
	SetSkillLevel(ctx context.Context, userID string, level int) error
	SetPreferences(ctx context.Context, userID string, prefs models.Preferences) error
	AppendSession(ctx context.Context, userID string, s models.InterviewSession) error
	Stats(ctx context.Context, userID string) (*models.ProfileStats, error)
	Clear(ctx context.Context, userID string) error
}

type profileService struct {
	profiles mongorepo.ProfileRepository
	cache    cache.Cache
}

func NewProfileService(profiles mongorepo.ProfileRepository, c cache.Cache) ProfileService {
	return &profileService{profiles: profiles, cache: c}
}

func (s *profileService) Get(ctx context.Context, userID string) (*models.Profile, error) {
	const op = "ProfileService.Get"

	if userID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "user_id is required", nil)
	}

	if s.cache != nil {
		var cached models.Profile
		if hit, err := s.cache.GetJSON(ctx, profileCacheKey(userID), &cached); err == nil && hit {
			return &cached, nil
		}
	}

	p, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "profile not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to get profile", err)
	}

	if s.cache != nil {
		_ = s.cache.SetJSON(ctx, profileCacheKey(userID), p, profileCacheTTL)
	}
	return p, nil
}

// Ensure returns the profile, creating a fresh one on first touch.
func (s *profileService) Ensure(ctx context.Context, userID string) (*models.Profile, error) {
	const op = "ProfileService.Ensure"

	p, err := s.Get(ctx, userID)
	if err == nil {
		return p, nil
	}
	if !utils.IsCode(err, utils.CodeNotFound) {
		return nil, err
	}

	p = models.NewProfile(userID)
	if err := s.profiles.Upsert(ctx, p); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to create profile", err)
	}
	s.invalidate(ctx, userID)
	return p, nil
}

func (s *profileService) SetLanguage(ctx context.Context, userID, language string) error {
	const op = "ProfileService.SetLanguage"

	if userID == "" || language == "" {
		return utils.E(utils.CodeInvalidArgument, op, "user_id and language are required", nil)
	}
	if err := s.profiles.SetLanguage(ctx, userID, language); err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return utils.E(utils.CodeNotFound, op, "profile not found", err)
		}
		return utils.E(utils.CodeInternal, op, "failed to set language", err)
	}
	s.invalidate(ctx, userID)
	return nil
}

func (s *profileService) SetSkillLevel(ctx context.Context, userID string, level int) error {
	const op = "ProfileService.SetSkillLevel"

	if userID == "" {
		return utils.E(utils.CodeInvalidArgument, op, "user_id is required", nil)
	}
	if level < 1 || level > 5 {
		return utils.E(utils.CodeInvalidArgument, op, "skill level must be between 1 and 5", nil)
	}
	if err := s.profiles.SetSkillLevel(ctx, userID, level); err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return utils.E(utils.CodeNotFound, op, "profile not found", err)
		}
		return utils.E(utils.CodeInternal, op, "failed to set skill level", err)
	}
	s.invalidate(ctx, userID)
	return nil
}

func (s *profileService) SetPreferences(ctx context.Context, userID string, prefs models.Preferences) error {
	const op = "ProfileService.SetPreferences"

	p, err := s.Ensure(ctx, userID)
	if err != nil {
		return err
	}
	p.Preferences = prefs
	p.UpdatedAt = time.Now().UTC()
	if err := s.profiles.Upsert(ctx, p); err != nil {
		return utils.E(utils.CodeInternal, op, "failed to save preferences", err)
	}
	s.invalidate(ctx, userID)
	return nil
}

func (s *profileService) AppendSession(ctx context.Context, userID string, sess models.InterviewSession) error {
	const op = "ProfileService.AppendSession"

	if userID == "" || sess.SessionID == "" {
		return utils.E(utils.CodeInvalidArgument, op, "user_id and session_id are required", nil)
	}
	if err := s.profiles.AppendSession(ctx, userID, sess); err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return utils.E(utils.CodeNotFound, op, "profile not found", err)
		}
		return utils.E(utils.CodeInternal, op, "failed to append session", err)
	}
	s.invalidate(ctx, userID)
	return nil
}

// Stats aggregates the profile's session history for the dashboard.
func (s *profileService) Stats(ctx context.Context, userID string) (*models.ProfileStats, error) {
	p, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	stats := &models.ProfileStats{TotalSessions: len(p.History)}

	seen := map[string]bool{}
	var completedSum float64
	for _, sess := range p.History {
		if sess.Status == models.SessionCompleted {
			stats.CompletedSessions++
			completedSum += sess.OverallScore
		}
		if sess.Language != "" && !seen[sess.Language] {
			seen[sess.Language] = true
			stats.Languages = append(stats.Languages, sess.Language)
		}
	}
	if stats.CompletedSessions > 0 {
		stats.AverageScore = completedSum / float64(stats.CompletedSessions)
	}

	recent := p.History
	if len(recent) > 5 {
		recent = recent[len(recent)-5:]
	}
	for _, sess := range recent {
		stats.RecentPerformance = append(stats.RecentPerformance, sess.OverallScore)
	}
	return stats, nil
}

func (s *profileService) Clear(ctx context.Context, userID string) error {
	const op = "ProfileService.Clear"

	if userID == "" {
		return utils.E(utils.CodeInvalidArgument, op, "user_id is required", nil)
	}
	if err := s.profiles.Delete(ctx, userID); err != nil {
		return utils.E(utils.CodeInternal, op, "failed to clear profile", err)
	}
	s.invalidate(ctx, userID)
	return nil
}

func (s *profileService) invalidate(ctx context.Context, userID string) {
	if s.cache != nil {
		_ = s.cache.Del(ctx, profileCacheKey(userID))
	}
}
