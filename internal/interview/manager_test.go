package interview

import (
	"context"
	"testing"
)

func TestManagerControllerPerSession(t *testing.T) {
	m := NewManager(newFakeProfiles(), nil)

	a := m.Controller("u1", "s1")
	b := m.Controller("u1", "s1")
	if a != b {
		t.Fatal("same session should reuse the controller")
	}
	if c := m.Controller("u1", "s2"); c == a {
		t.Fatal("different sessions must get distinct controllers")
	}
}

func TestManagerStatus(t *testing.T) {
	profiles := newFakeProfiles()
	m := NewManager(profiles, nil)
	ctx := context.Background()

	st := m.Status(ctx, "u1", "s1")
	if st.SessionState != StateLanguageSelection || !st.IsActive {
		t.Fatalf("fresh status = %+v", st)
	}
	if !st.HasProfile {
		t.Error("expected profile visibility")
	}

	m.Initialize("u1", "s1")
	m.Controller("u1", "s1").ProcessMessage(ctx, "go")
	st = m.Status(ctx, "u1", "s1")
	if st.SessionState != StateSkillAssessment || st.Language != "Go" {
		t.Fatalf("status after topic pick = %+v", st)
	}

	m.Controller("u1", "s1").Complete()
	st = m.Status(ctx, "u1", "s1")
	if st.IsActive {
		t.Error("completed session should not be active")
	}
}

func TestManagerResumeDoesNotRestart(t *testing.T) {
	m := NewManager(newFakeProfiles(), nil)
	ctx := context.Background()

	c := m.Controller("u1", "s1")
	c.ProcessMessage(ctx, "go")
	want := c.Messages()[len(c.Messages())-1]

	msg, created := m.Resume("u1", "s1")
	if created {
		t.Error("resume of a live session must not report creation")
	}
	if msg.Content != want.Content {
		t.Errorf("resume message = %q, want last assistant message", msg.Content)
	}
	if c.State() != StateSkillAssessment {
		t.Errorf("state after resume = %q, want %q", c.State(), StateSkillAssessment)
	}

	msg, created = m.Resume("u2", "s2")
	if !created || msg.ID != "welcome" {
		t.Errorf("fresh resume = %+v, created=%v; want welcome, true", msg, created)
	}
}

func TestManagerResetAndRemove(t *testing.T) {
	m := NewManager(newFakeProfiles(), nil)
	ctx := context.Background()

	c := m.Controller("u1", "s1")
	c.ProcessMessage(ctx, "python")
	m.Reset("s1")
	if c.State() != StateLanguageSelection {
		t.Errorf("state after reset = %q", c.State())
	}

	m.Remove("s1")
	if m.Controller("u1", "s1") == c {
		t.Error("removed session should get a fresh controller")
	}
}
