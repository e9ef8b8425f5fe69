package handlers

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/interviewxp/backend/internal/models"
)

type stubProfileService struct {
	profile *models.Profile
	saved   *models.Preferences
}

func (s *stubProfileService) Get(ctx context.Context, userID string) (*models.Profile, error) {
	return s.profile, nil
}

func (s *stubProfileService) Ensure(ctx context.Context, userID string) (*models.Profile, error) {
	return s.profile, nil
}

func (s *stubProfileService) SetLanguage(context.Context, string, string) error { return nil }

func (s *stubProfileService) SetSkillLevel(context.Context, string, int) error { return nil }

func (s *stubProfileService) SetPreferences(ctx context.Context, userID string, prefs models.Preferences) error {
	s.saved = &prefs
	s.profile.Preferences = prefs
	return nil
}

func (s *stubProfileService) AppendSession(context.Context, string, models.InterviewSession) error {
	return nil
}

func (s *stubProfileService) Stats(context.Context, string) (*models.ProfileStats, error) {
	return &models.ProfileStats{}, nil
}

func (s *stubProfileService) Clear(context.Context, string) error { return nil }

func newProfileTestRouter(svc *stubProfileService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) { c.Set("user_id", "u1") })
	h := NewProfileHandler(svc)
	r.PUT("/profile/preferences", h.UpdatePreferences)
	return r
}

func TestUpdatePreferences(t *testing.T) {
	svc := &stubProfileService{profile: models.NewProfile("u1")}
	r := newProfileTestRouter(svc)

	body := []byte(`{"interview_style":"behavioral","difficulty":"adaptive","persona":"faang"}`)
	req := httptest.NewRequest(http.MethodPut, "/profile/preferences", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	if svc.saved == nil || svc.saved.InterviewStyle != models.StyleBehavioral {
		t.Errorf("saved preferences = %+v, want behavioral style", svc.saved)
	}
}

func TestUpdatePreferencesRejectsUnknownStyle(t *testing.T) {
	svc := &stubProfileService{profile: models.NewProfile("u1")}
	r := newProfileTestRouter(svc)

	body := []byte(`{"interview_style":"casual","difficulty":"adaptive","persona":"faang"}`)
	req := httptest.NewRequest(http.MethodPut, "/profile/preferences", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if svc.saved != nil {
		t.Errorf("preferences saved despite invalid style: %+v", svc.saved)
	}
}
