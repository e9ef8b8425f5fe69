package interview

import (
	"context"
	"sync"

	"github.com/interviewxp/backend/internal/models"
	"github.com/interviewxp/backend/internal/providers/llm"
)

// Status is a pure read composing profile and controller state for the UI.
type Status struct {
	HasProfile   bool         `json:"has_profile"`
	Language     string       `json:"language,omitempty"`
	SkillLevel   int          `json:"skill_level,omitempty"`
	SessionState SessionState `json:"session_state"`
	IsActive     bool         `json:"is_active"`
}

// Manager is the lifecycle coordinator: it owns one Controller per session
// so independent sessions (tabs, tests) coexist in the same process. It has
// no logic of its own beyond sequencing the controller and the profile store.
type Manager struct {
	mu          sync.Mutex
	profiles    ProfileStore
	provider    llm.Provider
	controllers map[string]*Controller
}

func NewManager(profiles ProfileStore, provider llm.Provider) *Manager {
	return &Manager{
		profiles:    profiles,
		provider:    provider,
		controllers: make(map[string]*Controller),
	}
}

// Controller returns the controller for a session, creating it on first use.
func (m *Manager) Controller(userID, sessionID string) *Controller {
	m.mu.Lock()
	defer m.mu.Unlock()

	if c, ok := m.controllers[sessionID]; ok {
		return c
	}
	c := NewController(userID, sessionID, m.profiles, m.provider)
	c.InitializeSession()
	m.controllers[sessionID] = c
	return c
}

// Initialize starts (or restarts) a chat session and returns the welcome
// message.
func (m *Manager) Initialize(userID, sessionID string) models.ChatMessage {
	c := m.Controller(userID, sessionID)
	return c.InitializeSession()
}

// Resume returns the most recent assistant message for a session without
// disturbing its state, so a reconnecting client gets a conversation anchor
// instead of a restart. The boolean reports whether this call created the
// session.
func (m *Manager) Resume(userID, sessionID string) (models.ChatMessage, bool) {
	m.mu.Lock()
	c, ok := m.controllers[sessionID]
	if !ok {
		c = NewController(userID, sessionID, m.profiles, m.provider)
		c.InitializeSession()
		m.controllers[sessionID] = c
	}
	m.mu.Unlock()

	msgs := c.Messages()
	for i := len(msgs) - 1; i >= 0; i-- {
		if msgs[i].Role == models.RoleAssistantMessage {
			return msgs[i], !ok
		}
	}
	return models.ChatMessage{}, !ok
}

// Reset returns a session to language selection with an empty transcript.
func (m *Manager) Reset(sessionID string) {
	m.mu.Lock()
	c, ok := m.controllers[sessionID]
	m.mu.Unlock()
	if ok {
		c.Reset()
	}
}

// Remove drops a session's controller entirely.
func (m *Manager) Remove(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.controllers, sessionID)
}

// Status reports the composed profile + controller state for one session.
func (m *Manager) Status(ctx context.Context, userID, sessionID string) Status {
	m.mu.Lock()
	c, ok := m.controllers[sessionID]
	m.mu.Unlock()

	state := StateLanguageSelection
	if ok {
		state = c.State()
	}

	st := Status{SessionState: state, IsActive: state != StateCompleted}
	if profile, err := m.profiles.Get(ctx, userID); err == nil && profile != nil {
		st.HasProfile = true
		st.Language = profile.SelectedLanguage
		st.SkillLevel = profile.SkillLevel
	}
	return st
}
