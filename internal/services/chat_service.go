package services

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"

	"github.com/interviewxp/backend/internal/interview"
	"github.com/interviewxp/backend/internal/models"
	pgrepo "github.com/interviewxp/backend/internal/repositories/postgres"
	"github.com/interviewxp/backend/internal/utils"
)

// ChatService glues the interview state machine to durable storage: every
// turn is mirrored to the Postgres transcript and the Mongo session
// snapshot. Transcript writes are best-effort; a storage hiccup never blocks
// the conversation.
type ChatService interface {
	StartChat(ctx context.Context, userID, sessionID string) (models.ChatMessage, error)
	Resume(ctx context.Context, userID, sessionID string) (models.ChatMessage, error)
	ProcessMessage(ctx context.Context, userID, sessionID, text string) (models.ChatMessage, error)
	Transcript(ctx context.Context, userID, sessionID string, limit int) ([]models.TranscriptEntry, error)
	RecentActivity(ctx context.Context, userID string, n int) ([]models.TranscriptEntry, error)
	Reset(ctx context.Context, userID, sessionID string) (models.ChatMessage, error)
	Status(ctx context.Context, userID, sessionID string) interview.Status
}

type chatService struct {
	manager     *interview.Manager
	transcripts pgrepo.TranscriptRepo
	sessions    SessionService
	log         *logrus.Logger
}

func NewChatService(manager *interview.Manager, transcripts pgrepo.TranscriptRepo, sessions SessionService, log *logrus.Logger) ChatService {
	if log == nil {
		log = logrus.New()
	}
	return &chatService{
		manager:     manager,
		transcripts: transcripts,
		sessions:    sessions,
		log:         log,
	}
}

func (s *chatService) StartChat(ctx context.Context, userID, sessionID string) (models.ChatMessage, error) {
	const op = "ChatService.StartChat"

	if userID == "" || sessionID == "" {
		return models.ChatMessage{}, utils.E(utils.CodeInvalidArgument, op, "user_id and session_id are required", nil)
	}

	welcome := s.manager.Initialize(userID, sessionID)
	s.persist(ctx, userID, sessionID, welcome)
	return welcome, nil
}

// Resume returns the latest assistant message without restarting the
// conversation. A session seen for the first time gets the welcome message;
// an in-flight interview keeps its transcript and state untouched.
func (s *chatService) Resume(ctx context.Context, userID, sessionID string) (models.ChatMessage, error) {
	const op = "ChatService.Resume"

	if userID == "" || sessionID == "" {
		return models.ChatMessage{}, utils.E(utils.CodeInvalidArgument, op, "user_id and session_id are required", nil)
	}

	msg, created := s.manager.Resume(userID, sessionID)
	if created {
		s.persist(ctx, userID, sessionID, msg)
	}
	return msg, nil
}

func (s *chatService) ProcessMessage(ctx context.Context, userID, sessionID, text string) (models.ChatMessage, error) {
	const op = "ChatService.ProcessMessage"

	if userID == "" || sessionID == "" {
		return models.ChatMessage{}, utils.E(utils.CodeInvalidArgument, op, "user_id and session_id are required", nil)
	}
	if text == "" {
		return models.ChatMessage{}, utils.E(utils.CodeInvalidArgument, op, "message text is required", nil)
	}

	c := s.manager.Controller(userID, sessionID)
	reply := c.ProcessMessage(ctx, text)

	msgs := c.Messages()
	if n := len(msgs); n >= 2 {
		s.persist(ctx, userID, sessionID, msgs[n-2]) // the user turn
	}
	s.persist(ctx, userID, sessionID, reply)

	st := s.manager.Status(ctx, userID, sessionID)
	if err := s.sessions.UpdateProgress(ctx, sessionID, st.Language, st.SkillLevel, c.AskedQuestions()); err != nil {
		s.log.WithError(err).WithField("session_id", sessionID).Warn("session progress sync failed")
	}

	return reply, nil
}

func (s *chatService) Transcript(ctx context.Context, userID, sessionID string, limit int) ([]models.TranscriptEntry, error) {
	const op = "ChatService.Transcript"

	if userID == "" || sessionID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "user_id and session_id are required", nil)
	}
	if s.transcripts == nil {
		return nil, nil
	}
	rows, err := s.transcripts.ListBySession(ctx, userID, sessionID, limit)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list transcript", err)
	}
	return rows, nil
}

// RecentActivity returns the user's latest transcript rows across all
// sessions, newest first.
func (s *chatService) RecentActivity(ctx context.Context, userID string, n int) ([]models.TranscriptEntry, error) {
	const op = "ChatService.RecentActivity"

	if userID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "user_id is required", nil)
	}
	if s.transcripts == nil {
		return nil, nil
	}
	rows, err := s.transcripts.LatestN(ctx, userID, n)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list recent activity", err)
	}
	return rows, nil
}

// Reset returns the conversation to language selection with an empty
// transcript and re-sends the welcome message.
func (s *chatService) Reset(ctx context.Context, userID, sessionID string) (models.ChatMessage, error) {
	const op = "ChatService.Reset"

	if userID == "" || sessionID == "" {
		return models.ChatMessage{}, utils.E(utils.CodeInvalidArgument, op, "user_id and session_id are required", nil)
	}

	s.manager.Reset(sessionID)
	if s.transcripts != nil {
		if err := s.transcripts.DeleteBySession(ctx, userID, sessionID); err != nil {
			s.log.WithError(err).WithField("session_id", sessionID).Warn("transcript reset failed")
		}
	}
	return s.StartChat(ctx, userID, sessionID)
}

func (s *chatService) Status(ctx context.Context, userID, sessionID string) interview.Status {
	return s.manager.Status(ctx, userID, sessionID)
}

func (s *chatService) persist(ctx context.Context, userID, sessionID string, msg models.ChatMessage) {
	if s.transcripts == nil {
		return
	}

	entry := &models.TranscriptEntry{
		ID:        uuid.NewString(),
		UserID:    userID,
		SessionID: sessionID,
		Role:      string(msg.Role),
		Content:   msg.Content,
		Timestamp: msg.Timestamp,
	}
	if msg.Metadata != nil {
		if b, err := json.Marshal(msg.Metadata); err == nil {
			entry.Metadata = datatypes.JSON(b)
		}
	}

	if err := s.transcripts.Insert(ctx, entry); err != nil {
		s.log.WithError(err).WithFields(logrus.Fields{
			"session_id": sessionID,
			"role":       entry.Role,
		}).Warn("transcript write failed")
	}
}
