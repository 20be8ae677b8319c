// Package repo provides transcript repository implementations for the chat
// surface.
package repo

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	errx "github.com/ticket-triage/server/internal/core/error"
	"github.com/ticket-triage/server/internal/triage/model"
	logx "github.com/ticket-triage/server/pkg/logger"
)

// RedisTranscriptRepository keeps session transcripts in Redis lists with a
// sliding TTL, so abandoned chat sessions expire on their own.
type RedisTranscriptRepository struct {
	rdb redis.Cmdable
	ttl time.Duration
}

func NewRedisTranscriptRepository(rdb redis.Cmdable, ttl time.Duration) *RedisTranscriptRepository {
	return &RedisTranscriptRepository{rdb: rdb, ttl: ttl}
}

func (r *RedisTranscriptRepository) transcriptKey(sessionID string) string {
	return fmt.Sprintf("session:%s:transcript", sessionID)
}

func (r *RedisTranscriptRepository) AddEntry(ctx context.Context, sessionID string, entry model.TranscriptEntry) error {
	b, err := json.Marshal(entry)
	if err != nil {
		logx.Error().Err(err).Str("session_id", sessionID).Msg("failed to marshal transcript entry")
		return fmt.Errorf("marshal transcript entry: %w", err)
	}
	key := r.transcriptKey(sessionID)

	// append entry
	if err := r.rdb.RPush(ctx, key, b).Err(); err != nil {
		logx.Error().Err(err).Str("key", key).Msg("failed to push transcript entry to redis")
		return errx.WrapRedis(err)
	}
	// extend TTL on touch
	if r.ttl > 0 {
		if ok, err := r.rdb.Expire(ctx, key, r.ttl).Result(); err != nil {
			logx.Error().Err(err).Str("key", key).Msg("failed to set expire")
			return errx.WrapRedis(err)
		} else if !ok {
			logx.Warn().Str("key", key).Dur("ttl", r.ttl).Msg("failed to set TTL on transcript key")
		}
	}
	return nil
}

func (r *RedisTranscriptRepository) LoadTranscript(ctx context.Context, sessionID string) ([]model.TranscriptEntry, error) {
	key := r.transcriptKey(sessionID)

	rows, err := r.rdb.LRange(ctx, key, 0, -1).Result()
	if err != nil {
		if err == redis.Nil {
			return []model.TranscriptEntry{}, nil
		}
		logx.Error().Err(err).Str("key", key).Msg("failed to load transcript from redis")
		return nil, errx.WrapRedis(err)
	}

	entries := make([]model.TranscriptEntry, 0, len(rows))
	for i, s := range rows {
		var e model.TranscriptEntry
		if err := json.Unmarshal([]byte(s), &e); err != nil {
			logx.Error().Err(err).Str("session_id", sessionID).Int("index", i).Msg("failed to unmarshal transcript entry")
			return nil, fmt.Errorf("unmarshal transcript entry at index %d: %w", i, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func (r *RedisTranscriptRepository) ClearTranscript(ctx context.Context, sessionID string) error {
	key := r.transcriptKey(sessionID)
	if err := r.rdb.Del(ctx, key).Err(); err != nil {
		logx.Error().Err(err).Str("key", key).Msg("failed to delete transcript from redis")
		return errx.WrapRedis(err)
	}
	return nil
}

func (r *RedisTranscriptRepository) EntryCount(ctx context.Context, sessionID string) (int, error) {
	key := r.transcriptKey(sessionID)
	n, err := r.rdb.LLen(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return 0, nil
		}
		logx.Error().Err(err).Str("key", key).Msg("failed to get transcript length from redis")
		return 0, errx.WrapRedis(err)
	}
	return int(n), nil
}

var _ model.TranscriptRepository = (*RedisTranscriptRepository)(nil)
