package workers

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/interviewxp/backend/internal/interview"
	"github.com/interviewxp/backend/internal/models"
	"github.com/interviewxp/backend/internal/services"
)

// SummaryWorkerPool consumes ended sessions from a Redis stream, scores the
// session as a whole (metrics + insights), stamps the session document, and
// appends the finished session to the owner's profile history. Progress is
// published on session:<id>:events for any listening websocket.
type SummaryWorkerPool struct {
	Redis      *redis.Client
	Sessions   services.SessionService
	Profiles   services.ProfileService
	NumWorkers int

	Logger *logrus.Logger

	Stream         string
	Group          string
	ConsumerPrefix string
}

func (p *SummaryWorkerPool) Start(ctx context.Context) error {
	if p.Redis == nil || p.Sessions == nil || p.Profiles == nil {
		return errors.New("SummaryWorkerPool missing dependency: Redis/Sessions/Profiles must be set")
	}
	if p.Stream == "" {
		p.Stream = services.CompletedSessionStream
	}
	if p.Group == "" {
		p.Group = "summary-workers"
	}
	if p.ConsumerPrefix == "" {
		p.ConsumerPrefix = "c"
	}
	if p.NumWorkers <= 0 {
		p.NumWorkers = 2
	}
	if p.Logger == nil {
		p.Logger = logrus.New()
	}

	_ = p.Redis.XGroupCreateMkStream(ctx, p.Stream, p.Group, "0").Err() // ignore BUSYGROUP

	for i := 0; i < p.NumWorkers; i++ {
		consumer := p.ConsumerPrefix + "-" + strconv.Itoa(i+1)
		go p.runConsumer(ctx, consumer)
	}
	return nil
}

func (p *SummaryWorkerPool) runConsumer(ctx context.Context, consumer string) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		res, err := p.Redis.XReadGroup(ctx, &redis.XReadGroupArgs{
			Group:    p.Group,
			Consumer: consumer,
			Streams:  []string{p.Stream, ">"},
			Count:    10,
			Block:    5 * time.Second,
		}).Result()

		if err != nil {
			if err == redis.Nil {
				continue
			}
			time.Sleep(500 * time.Millisecond)
			continue
		}

		for _, stream := range res {
			for _, msg := range stream.Messages {
				p.handleMsg(ctx, msg)
				_ = p.Redis.XAck(ctx, p.Stream, p.Group, msg.ID).Err()
			}
		}
	}
}

func (p *SummaryWorkerPool) handleMsg(ctx context.Context, msg redis.XMessage) {
	getStr := func(k string) string {
		v, ok := msg.Values[k]
		if !ok || v == nil {
			return ""
		}
		s, _ := v.(string)
		return s
	}

	sessionID := getStr("session_id")
	userID := getStr("user_id")
	if sessionID == "" || userID == "" {
		return
	}

	endedAt := time.Now().UTC()
	if t, err := time.Parse(time.RFC3339, getStr("ended_at")); err == nil {
		endedAt = t
	}
	duration, _ := strconv.ParseInt(getStr("duration"), 10, 64)

	log := p.Logger.WithFields(logrus.Fields{
		"redis_id":   msg.ID,
		"session_id": sessionID,
		"user_id":    userID,
	})

	eventsCh := "session:" + sessionID + ":events"

	sess, err := p.Sessions.Get(ctx, sessionID)
	if err != nil {
		log.WithError(err).Error("summary: session load failed")
		return
	}

	metrics := interview.SessionMetrics(sess.Questions)
	insights := interview.PerformanceInsights(metrics, sess.Language)

	if err := p.Sessions.Complete(ctx, sessionID, endedAt, duration, metrics.AverageScore, insights); err != nil {
		log.WithError(err).Error("summary: session complete failed")
		return
	}

	sess.Status = models.SessionCompleted
	sess.EndTime = &endedAt
	sess.DurationSeconds = duration
	sess.OverallScore = metrics.AverageScore
	sess.Feedback = insights

	if err := p.Profiles.AppendSession(ctx, userID, *sess); err != nil {
		log.WithError(err).Warn("summary: history append failed")
	}

	payload, _ := json.Marshal(map[string]any{
		"type":       "session_summary",
		"session_id": sessionID,
		"metrics":    metrics,
		"feedback":   insights,
	})
	_ = p.Redis.Publish(ctx, eventsCh, string(payload)).Err()

	log.WithField("average_score", metrics.AverageScore).Info("session summarized")
}
