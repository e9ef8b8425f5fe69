package services

import (
	"context"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/interviewxp/backend/internal/interview"
	"github.com/interviewxp/backend/internal/models"
)

type memProfiles struct {
	profile *models.Profile
}

func (m *memProfiles) Get(ctx context.Context, userID string) (*models.Profile, error) {
	return m.profile, nil
}

func (m *memProfiles) SetLanguage(ctx context.Context, userID, language string) error {
	m.profile.SelectedLanguage = language
	return nil
}

func (m *memProfiles) SetSkillLevel(ctx context.Context, userID string, level int) error {
	m.profile.SkillLevel = level
	return nil
}

type memTranscripts struct {
	entries []models.TranscriptEntry
	deleted int
}

func (m *memTranscripts) Insert(ctx context.Context, entry *models.TranscriptEntry) error {
	m.entries = append(m.entries, *entry)
	return nil
}

func (m *memTranscripts) ListBySession(ctx context.Context, userID, sessionID string, limit int) ([]models.TranscriptEntry, error) {
	var out []models.TranscriptEntry
	for _, e := range m.entries {
		if e.UserID == userID && e.SessionID == sessionID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *memTranscripts) LatestN(ctx context.Context, userID string, n int) ([]models.TranscriptEntry, error) {
	return nil, nil
}

func (m *memTranscripts) DeleteBySession(ctx context.Context, userID, sessionID string) error {
	m.deleted++
	m.entries = nil
	return nil
}

type memSessions struct {
	progress []string
}

func (m *memSessions) Start(ctx context.Context, userID string) (*models.InterviewSession, error) {
	return nil, nil
}

func (m *memSessions) Get(ctx context.Context, sessionID string) (*models.InterviewSession, error) {
	return &models.InterviewSession{SessionID: sessionID}, nil
}

func (m *memSessions) ListByUser(ctx context.Context, userID string, limit int64) ([]models.InterviewSession, error) {
	return nil, nil
}

func (m *memSessions) UpdateProgress(ctx context.Context, sessionID, language string, skillLevel int, questions []models.InterviewQuestion) error {
	m.progress = append(m.progress, language)
	return nil
}

func (m *memSessions) End(ctx context.Context, sessionID string) (*models.InterviewSession, error) {
	return nil, nil
}

func (m *memSessions) Complete(ctx context.Context, sessionID string, endedAt time.Time, durationSeconds int64, overallScore float64, feedback string) error {
	return nil
}

func (m *memSessions) SetStatus(ctx context.Context, sessionID, status string) error {
	return nil
}

func newTestChatService() (ChatService, *memTranscripts, *memSessions) {
	profiles := &memProfiles{profile: models.NewProfile("u1")}
	manager := interview.NewManager(profiles, nil)
	transcripts := &memTranscripts{}
	sessions := &memSessions{}
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return NewChatService(manager, transcripts, sessions, log), transcripts, sessions
}

func TestChatServiceStartChat(t *testing.T) {
	svc, transcripts, _ := newTestChatService()

	welcome, err := svc.StartChat(context.Background(), "u1", "s1")
	if err != nil {
		t.Fatal(err)
	}
	if welcome.Role != models.RoleAssistantMessage || welcome.ID != "welcome" {
		t.Errorf("welcome = %+v", welcome)
	}
	if len(transcripts.entries) != 1 {
		t.Errorf("transcript entries = %d, want 1", len(transcripts.entries))
	}
}

func TestChatServiceValidation(t *testing.T) {
	svc, _, _ := newTestChatService()
	ctx := context.Background()

	if _, err := svc.StartChat(ctx, "", "s1"); err == nil {
		t.Error("expected error for missing user id")
	}
	if _, err := svc.ProcessMessage(ctx, "u1", "s1", ""); err == nil {
		t.Error("expected error for empty message")
	}
}

func TestChatServiceProcessMessagePersistsBothTurns(t *testing.T) {
	svc, transcripts, sessions := newTestChatService()
	ctx := context.Background()

	if _, err := svc.StartChat(ctx, "u1", "s1"); err != nil {
		t.Fatal(err)
	}
	reply, err := svc.ProcessMessage(ctx, "u1", "s1", "javascript")
	if err != nil {
		t.Fatal(err)
	}
	if reply.Role != models.RoleAssistantMessage {
		t.Errorf("reply role = %q", reply.Role)
	}

	// welcome + user turn + assistant turn
	if len(transcripts.entries) != 3 {
		t.Fatalf("transcript entries = %d, want 3", len(transcripts.entries))
	}
	if transcripts.entries[1].Role != "user" || transcripts.entries[1].Content != "javascript" {
		t.Errorf("user entry = %+v", transcripts.entries[1])
	}
	if transcripts.entries[2].Role != "assistant" {
		t.Errorf("assistant entry = %+v", transcripts.entries[2])
	}

	if len(sessions.progress) != 1 || sessions.progress[0] != "JavaScript" {
		t.Errorf("session progress sync = %v", sessions.progress)
	}
}

func TestChatServiceResumeKeepsInterviewState(t *testing.T) {
	svc, transcripts, _ := newTestChatService()
	ctx := context.Background()

	if _, err := svc.StartChat(ctx, "u1", "s1"); err != nil {
		t.Fatal(err)
	}
	reply, err := svc.ProcessMessage(ctx, "u1", "s1", "javascript")
	if err != nil {
		t.Fatal(err)
	}
	before := svc.Status(ctx, "u1", "s1")
	if before.SessionState != interview.StateSkillAssessment {
		t.Fatalf("state before resume = %q", before.SessionState)
	}
	rows := len(transcripts.entries)

	// a reconnect resumes the conversation instead of restarting it
	got, err := svc.Resume(ctx, "u1", "s1")
	if err != nil {
		t.Fatal(err)
	}
	if got.Content != reply.Content {
		t.Errorf("resume message = %q, want last assistant reply", got.Content)
	}
	if st := svc.Status(ctx, "u1", "s1"); st.SessionState != interview.StateSkillAssessment {
		t.Errorf("state after resume = %q, want %q", st.SessionState, interview.StateSkillAssessment)
	}
	if len(transcripts.entries) != rows {
		t.Errorf("transcript entries = %d, want %d (resume must not append)", len(transcripts.entries), rows)
	}
}

func TestChatServiceResumeFreshSession(t *testing.T) {
	svc, transcripts, _ := newTestChatService()

	msg, err := svc.Resume(context.Background(), "u1", "s1")
	if err != nil {
		t.Fatal(err)
	}
	if msg.ID != "welcome" || msg.Role != models.RoleAssistantMessage {
		t.Errorf("fresh resume = %+v, want welcome message", msg)
	}
	if len(transcripts.entries) != 1 {
		t.Errorf("transcript entries = %d, want 1", len(transcripts.entries))
	}
}

func TestChatServiceReset(t *testing.T) {
	svc, transcripts, _ := newTestChatService()
	ctx := context.Background()

	if _, err := svc.StartChat(ctx, "u1", "s1"); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.ProcessMessage(ctx, "u1", "s1", "python"); err != nil {
		t.Fatal(err)
	}

	welcome, err := svc.Reset(ctx, "u1", "s1")
	if err != nil {
		t.Fatal(err)
	}
	if welcome.ID != "welcome" {
		t.Errorf("reset reply = %+v", welcome)
	}
	if transcripts.deleted != 1 {
		t.Errorf("transcript deletes = %d, want 1", transcripts.deleted)
	}
	// only the fresh welcome row remains
	if len(transcripts.entries) != 1 {
		t.Errorf("transcript entries = %d, want 1", len(transcripts.entries))
	}

	st := svc.Status(ctx, "u1", "s1")
	if st.SessionState != interview.StateLanguageSelection {
		t.Errorf("state after reset = %q", st.SessionState)
	}
}
