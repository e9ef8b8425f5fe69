package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/interviewxp/backend/internal/models"
	"github.com/interviewxp/backend/internal/utils"
)

type SessionRepository interface {
	Create(ctx context.Context, s *models.InterviewSession) error
	GetBySessionID(ctx context.Context, sessionID string) (*models.InterviewSession, error)
	ListByUser(ctx context.Context, userID string, limit int64) ([]models.InterviewSession, error)
	UpdateProgress(ctx context.Context, sessionID, language string, skillLevel int, questions []models.InterviewQuestion) error
	SetStatus(ctx context.Context, sessionID, status string) error
	Complete(ctx context.Context, sessionID string, endedAt time.Time, durationSeconds int64, overallScore float64, feedback string) error
}

type sessionRepo struct {
	col *mongo.Collection
}

func NewSessionRepo(db *mongo.Database) SessionRepository {
	return &sessionRepo{col: db.Collection("sessions")}
}

func (r *sessionRepo) Create(ctx context.Context, s *models.InterviewSession) error {
	if s.StartTime.IsZero() {
		s.StartTime = time.Now().UTC()
	}
	_, err := r.col.InsertOne(ctx, s)
	return err
}

func (r *sessionRepo) GetBySessionID(ctx context.Context, sessionID string) (*models.InterviewSession, error) {
	var s models.InterviewSession
	err := r.col.FindOne(ctx, bson.M{"session_id": sessionID}).Decode(&s)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, utils.ErrNotFound
	}
	return &s, err
}

func (r *sessionRepo) ListByUser(ctx context.Context, userID string, limit int64) ([]models.InterviewSession, error) {
	if limit <= 0 {
		limit = 20
	}

	cur, err := r.col.Find(ctx,
		bson.M{"user_id": userID},
		options.Find().SetSort(bson.D{{Key: "start_time", Value: -1}}).SetLimit(limit),
	)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.InterviewSession
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateProgress refreshes the session's interview snapshot after a turn:
// the topic and level chosen during onboarding plus every scored question.
func (r *sessionRepo) UpdateProgress(ctx context.Context, sessionID, language string, skillLevel int, questions []models.InterviewQuestion) error {
	set := bson.M{"questions": questions}
	if language != "" {
		set["language"] = language
	}
	if skillLevel >= 1 && skillLevel <= 5 {
		set["skill_level"] = skillLevel
	}
	_, err := r.col.UpdateOne(ctx,
		bson.M{"session_id": sessionID},
		bson.M{"$set": set},
	)
	return err
}

func (r *sessionRepo) SetStatus(ctx context.Context, sessionID, status string) error {
	_, err := r.col.UpdateOne(ctx,
		bson.M{"session_id": sessionID},
		bson.M{"$set": bson.M{"status": status}},
	)
	return err
}

func (r *sessionRepo) Complete(ctx context.Context, sessionID string, endedAt time.Time, durationSeconds int64, overallScore float64, feedback string) error {
	_, err := r.col.UpdateOne(ctx,
		bson.M{"session_id": sessionID},
		bson.M{"$set": bson.M{
			"status":           models.SessionCompleted,
			"end_time":         endedAt.UTC(),
			"duration_seconds": durationSeconds,
			"overall_score":    overallScore,
			"feedback":         feedback,
		}},
	)
	return err
}
