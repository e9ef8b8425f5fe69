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

type ProfileRepository interface {
	GetByUserID(ctx context.Context, userID string) (*models.Profile, error)
	Upsert(ctx context.Context, p *models.Profile) error
	SetLanguage(ctx context.Context, userID, language string) error
	SetSkillLevel(ctx context.Context, userID string, level int) error
	AppendSession(ctx context.Context, userID string, s models.InterviewSession) error
	Delete(ctx context.Context, userID string) error
}

type profileRepo struct {
	col *mongo.Collection
}

func NewProfileRepo(db *mongo.Database) ProfileRepository {
	return &profileRepo{col: db.Collection("profiles")}
}

func (r *profileRepo) GetByUserID(ctx context.Context, userID string) (*models.Profile, error) {
	var p models.Profile
	err := r.col.FindOne(ctx, bson.M{"user_id": userID}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, utils.ErrNotFound
	}
	return &p, err
}

func (r *profileRepo) Upsert(ctx context.Context, p *models.Profile) error {
	if p.UpdatedAt.IsZero() {
		p.UpdatedAt = time.Now().UTC()
	}
	_, err := r.col.ReplaceOne(ctx,
		bson.M{"user_id": p.UserID},
		p,
		options.Replace().SetUpsert(true),
	)
	return err
}

func (r *profileRepo) SetLanguage(ctx context.Context, userID, language string) error {
	return r.setFields(ctx, userID, bson.M{"selected_language": language})
}

func (r *profileRepo) SetSkillLevel(ctx context.Context, userID string, level int) error {
	return r.setFields(ctx, userID, bson.M{"skill_level": level})
}

func (r *profileRepo) setFields(ctx context.Context, userID string, fields bson.M) error {
	fields["updated_at"] = time.Now().UTC()
	res, err := r.col.UpdateOne(ctx,
		bson.M{"user_id": userID},
		bson.M{"$set": fields},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return utils.ErrNotFound
	}
	return nil
}

func (r *profileRepo) AppendSession(ctx context.Context, userID string, s models.InterviewSession) error {
	res, err := r.col.UpdateOne(ctx,
		bson.M{"user_id": userID},
		bson.M{
			"$push": bson.M{"history": s},
			"$set":  bson.M{"updated_at": time.Now().UTC()},
		},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return utils.ErrNotFound
	}
	return nil
}

func (r *profileRepo) Delete(ctx context.Context, userID string) error {
	_, err := r.col.DeleteOne(ctx, bson.M{"user_id": userID})
	return err
}
