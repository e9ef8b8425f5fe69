package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/interviewxp/backend/internal/models"
)

type TranscriptRepo interface {
	Insert(ctx context.Context, entry *models.TranscriptEntry) error
	ListBySession(ctx context.Context, userID, sessionID string, limit int) ([]models.TranscriptEntry, error)
	LatestN(ctx context.Context, userID string, n int) ([]models.TranscriptEntry, error)
	DeleteBySession(ctx context.Context, userID, sessionID string) error
}

type transcriptRepo struct {
	db *gorm.DB
}

func NewTranscriptRepo(db *gorm.DB) TranscriptRepo {
	return &transcriptRepo{db: db}
}

func (r *transcriptRepo) Insert(ctx context.Context, entry *models.TranscriptEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *transcriptRepo) ListBySession(ctx context.Context, userID, sessionID string, limit int) ([]models.TranscriptEntry, error) {
	if limit <= 0 {
		limit = 50
	}

	var rows []models.TranscriptEntry
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND session_id = ?", userID, sessionID).
		Order("timestamp DESC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}

func (r *transcriptRepo) LatestN(ctx context.Context, userID string, n int) ([]models.TranscriptEntry, error) {
	if n <= 0 {
		n = 5
	}
	var rows []models.TranscriptEntry
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("timestamp DESC").
		Limit(n).
		Find(&rows).Error
	return rows, err
}

// DeleteBySession drops a session's transcript rows; used by the explicit
// reset path so a restarted conversation starts from an empty log.
func (r *transcriptRepo) DeleteBySession(ctx context.Context, userID, sessionID string) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND session_id = ?", userID, sessionID).
		Delete(&models.TranscriptEntry{}).Error
}
