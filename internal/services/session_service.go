package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/interviewxp/backend/internal/models"
	mongorepo "github.com/interviewxp/backend/internal/repositories/mongo"
	"github.com/interviewxp/backend/internal/utils"
)

// CompletedSessionStream is the Redis stream the summary worker consumes.
const CompletedSessionStream = "sessions:completed"

type SessionService interface {
	Start(ctx context.Context, userID string) (*models.InterviewSession, error)
	Get(ctx context.Context, sessionID string) (*models.InterviewSession, error)
	ListByUser(ctx context.Context, userID string, limit int64) ([]models.InterviewSession, error)
	UpdateProgress(ctx context.Context, sessionID, language string, skillLevel int, questions []models.InterviewQuestion) error
	End(ctx context.Context, sessionID string) (*models.InterviewSession, error)
	Complete(ctx context.Context, sessionID string, endedAt time.Time, durationSeconds int64, overallScore float64, feedback string) error
	SetStatus(ctx context.Context, sessionID, status string) error
}

type sessionService struct {
	sessions mongorepo.SessionRepository
	profiles ProfileService
	redis    *redis.Client // optional; nil disables async summary hand-off
}

func NewSessionService(sessions mongorepo.SessionRepository, profiles ProfileService, rdb *redis.Client) SessionService {
	return &sessionService{sessions: sessions, profiles: profiles, redis: rdb}
}

// Start creates a fresh active session. It also touches the user's profile
// into existence so the interview controller has one to write to before the
// client ever fetches /profile/me.
func (s *sessionService) Start(ctx context.Context, userID string) (*models.InterviewSession, error) {
	const op = "SessionService.Start"

	if userID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "user_id is required", nil)
	}

	if s.profiles != nil {
		if _, err := s.profiles.Ensure(ctx, userID); err != nil {
			return nil, utils.E(utils.CodeInternal, op, "failed to ensure profile", err)
		}
	}

	now := time.Now().UTC()
	session := &models.InterviewSession{
		SessionID:  uuid.NewString(),
		UserID:     userID,
		SkillLevel: 1,
		Status:     models.SessionActive,
		Questions:  []models.InterviewQuestion{},
		StartTime:  now,
	}

	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to create session", err)
	}
	return session, nil
}

func (s *sessionService) Get(ctx context.Context, sessionID string) (*models.InterviewSession, error) {
	const op = "SessionService.Get"

	if sessionID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "session_id is required", nil)
	}

	out, err := s.sessions.GetBySessionID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "session not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to get session", err)
	}
	return out, nil
}

func (s *sessionService) ListByUser(ctx context.Context, userID string, limit int64) ([]models.InterviewSession, error) {
	const op = "SessionService.ListByUser"

	if userID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "user_id is required", nil)
	}
	out, err := s.sessions.ListByUser(ctx, userID, limit)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list sessions", err)
	}
	return out, nil
}

func (s *sessionService) UpdateProgress(ctx context.Context, sessionID, language string, skillLevel int, questions []models.InterviewQuestion) error {
	const op = "SessionService.UpdateProgress"

	if sessionID == "" {
		return utils.E(utils.CodeInvalidArgument, op, "session_id is required", nil)
	}
	if err := s.sessions.UpdateProgress(ctx, sessionID, language, skillLevel, questions); err != nil {
		return utils.E(utils.CodeInternal, op, "failed to update session progress", err)
	}
	return nil
}

// End stops a session and hands it to the summary worker via the Redis
// stream. With no Redis wired, the session just completes with whatever
// score snapshot exists; the worker normally fills score and feedback.
func (s *sessionService) End(ctx context.Context, sessionID string) (*models.InterviewSession, error) {
	const op = "SessionService.End"

	ss, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	dur := int64(now.Sub(ss.StartTime).Seconds())
	if dur < 0 {
		dur = 0
	}

	if s.redis != nil {
		err := s.redis.XAdd(ctx, &redis.XAddArgs{
			Stream: CompletedSessionStream,
			Values: map[string]any{
				"session_id": ss.SessionID,
				"user_id":    ss.UserID,
				"ended_at":   now.Format(time.RFC3339),
				"duration":   dur,
			},
		}).Err()
		if err == nil {
			ss.Status = models.SessionCompleted
			ss.EndTime = &now
			ss.DurationSeconds = dur
			return ss, nil
		}
		// fall through to synchronous completion on enqueue failure
	}

	if err := s.sessions.Complete(ctx, sessionID, now, dur, ss.OverallScore, ss.Feedback); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to end session", err)
	}

	ss.Status = models.SessionCompleted
	ss.EndTime = &now
	ss.DurationSeconds = dur
	return ss, nil
}

func (s *sessionService) Complete(ctx context.Context, sessionID string, endedAt time.Time, durationSeconds int64, overallScore float64, feedback string) error {
	const op = "SessionService.Complete"

	if sessionID == "" {
		return utils.E(utils.CodeInvalidArgument, op, "session_id is required", nil)
	}
	if err := s.sessions.Complete(ctx, sessionID, endedAt, durationSeconds, overallScore, feedback); err != nil {
		return utils.E(utils.CodeInternal, op, "failed to complete session", err)
	}
	return nil
}

func (s *sessionService) SetStatus(ctx context.Context, sessionID, status string) error {
	const op = "SessionService.SetStatus"

	if sessionID == "" || status == "" {
		return utils.E(utils.CodeInvalidArgument, op, "session_id and status are required", nil)
	}
	if err := s.sessions.SetStatus(ctx, sessionID, status); err != nil {
		return utils.E(utils.CodeInternal, op, "failed to set status", err)
	}
	return nil
}
