// Copyright (c) 2026 Mangabay. All rights reserved.

package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/tranquochuy/mangabay/internal/platform/apperr"
	"github.com/tranquochuy/mangabay/internal/platform/constants"
)

// RedisSessionRepository implements SessionRepository using Redis.
//
// Each session lives under "auth:session:<id>" as a JSON payload with a TTL.
// Expiry is therefore enforced by Redis itself; no sweeper is needed.
type RedisSessionRepository struct {
	client *redis.Client
}

// NewSessionRepository creates a new Redis-backed SessionRepository.
func NewSessionRepository(client *redis.Client) *RedisSessionRepository {
	return &RedisSessionRepository{client: client}
}

// sessionKey builds the namespaced Redis key for a session ID.
func sessionKey(sessionID string) string {
	return constants.RedisPrefixSession + sessionID
}

/*
Set stores (or overwrites) a session payload with the given TTL.

Parameters:
  - context: context.Context
  - sessionID: string
  - payload: *SessionPayload
  - ttl: time.Duration

Returns:
  - error: Serialization or execution errors
*/
func (repository *RedisSessionRepository) Set(context context.Context, sessionID string, payload *SessionPayload, ttl time.Duration) error {

	// Serialize the payload as JSON
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("redis_session_marshal_failed: %w", err)
	}

	// Set the session with TTL
	if err := repository.client.Set(context, sessionKey(sessionID), raw, ttl).Err(); err != nil {
		return fmt.Errorf("redis_session_set_failed: %w", err)
	}

	return nil
}

/*
Get retrieves the payload for a session ID.

Description: Returns apperr.Unauthorized if the session is absent or expired,
so stale cookies degrade to an anonymous request rather than a server error.

Parameters:
  - context: context.Context
  - sessionID: string

Returns:
  - *SessionPayload: Stored session state
  - error: apperr.Unauthorized or connectivity errors
*/
func (repository *RedisSessionRepository) Get(context context.Context, sessionID string) (*SessionPayload, error) {

	raw, err := repository.client.Get(context, sessionKey(sessionID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, apperr.Unauthorized("Session is invalid or expired")
		}
		return nil, fmt.Errorf("redis_session_get_failed: %w", err)
	}

	var payload SessionPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("redis_session_unmarshal_failed: %w", err)
	}

	return &payload, nil
}

/*
Delete removes a session from Redis. Missing keys are ignored, which keeps
logout idempotent.

Parameters:
  - context: context.Context
  - sessionID: string

Returns:
  - error: Execution failures
*/
func (repository *RedisSessionRepository) Delete(context context.Context, sessionID string) error {

	if err := repository.client.Del(context, sessionKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("redis_session_delete_failed: %w", err)
	}

	return nil
}
