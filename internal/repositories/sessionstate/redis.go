package sessionstate

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	redis "github.com/redis/go-redis/v9"
	"github.com/samber/lo"

	"github.com/KirkDiggler/weapon-deck-api/internal/entities/weapons"
	"github.com/KirkDiggler/weapon-deck-api/internal/errors"
	redisclient "github.com/KirkDiggler/weapon-deck-api/internal/redis"
)

const (
	// Key pattern: weapon_deck:session:{session_id}:{part}
	keyPrefix   = "weapon_deck:session:"
	stateSuffix = ":state"
	defaultTTL  = 72 * time.Hour
	scanCount   = 100

	errSessionIDEmpty = "session ID cannot be empty"
	errStateNil       = "state cannot be nil"
)

// Config holds the configuration for the Redis repository
type Config struct {
	Client redisclient.Client
	// TTL is refreshed on every save; zero uses the default
	TTL time.Duration
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if c.Client == nil {
		return errors.InvalidArgument("redis client is required")
	}
	if c.TTL < 0 {
		return errors.InvalidArgument("ttl cannot be negative")
	}
	return nil
}

type redisRepository struct {
	client redisclient.Client
	ttl    time.Duration
}

// NewRedisRepository creates a new Redis repository for session state
func NewRedisRepository(cfg *Config) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	ttl := cfg.TTL
	if ttl == 0 {
		ttl = defaultTTL
	}

	return &redisRepository{
		client: cfg.Client,
		ttl:    ttl,
	}, nil
}

var _ Repository = (*redisRepository)(nil)

func stateKey(sessionID string) string   { return keyPrefix + sessionID + stateSuffix }
func versionKey(sessionID string) string { return fmt.Sprintf("%s%s:version", keyPrefix, sessionID) }
func eventsKey(sessionID string) string  { return fmt.Sprintf("%s%s:events", keyPrefix, sessionID) }

func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.SessionID == "" {
		return nil, errors.InvalidArgument(errSessionIDEmpty)
	}

	raw, err := r.client.Get(ctx, stateKey(input.SessionID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, errors.NotFoundf("session %s not found", input.SessionID)
		}
		return nil, errors.Wrapf(err, "failed to get session %s", input.SessionID)
	}

	var state weapons.SessionState
	if err := json.Unmarshal(raw, &state); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal session %s", input.SessionID)
	}
	state.Normalize()

	return &GetOutput{State: &state}, nil
}

func (r *redisRepository) Save(ctx context.Context, input SaveInput) (*SaveOutput, error) {
	if input.State == nil {
		return nil, errors.InvalidArgument(errStateNil)
	}
	sessionID := input.State.SessionID
	if sessionID == "" {
		return nil, errors.InvalidArgument(errSessionIDEmpty)
	}

	eventPayloads := make([]any, 0, len(input.Events))
	for _, event := range input.Events {
		payload, err := json.Marshal(event)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to marshal event %s", event.ID)
		}
		eventPayloads = append(eventPayloads, payload)
	}

	next := input.ExpectedVersion + 1
	sKey, vKey, eKey := stateKey(sessionID), versionKey(sessionID), eventsKey(sessionID)

	txf := func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, vKey).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return errors.Wrap(err, "failed to read session version")
		}
		if current != input.ExpectedVersion {
			return errors.Abortedf(
				"session %s was modified concurrently: expected version %d, found %d",
				sessionID, input.ExpectedVersion, current)
		}

		// Marshal a copy so a rejected write leaves the caller's version alone
		toStore := *input.State
		toStore.Version = next
		payload, err := json.Marshal(&toStore)
		if err != nil {
			return errors.Wrapf(err, "failed to marshal session %s", sessionID)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, sKey, payload, r.ttl)
			pipe.Set(ctx, vKey, next, r.ttl)
			if len(eventPayloads) > 0 {
				pipe.LPush(ctx, eKey, eventPayloads...)
				pipe.Expire(ctx, eKey, r.ttl)
			}
			return nil
		})
		return err
	}

	if err := r.client.Watch(ctx, txf, vKey); err != nil {
		if errors.Is(err, redis.TxFailedErr) {
			return nil, errors.Abortedf("session %s was modified concurrently", sessionID)
		}
		if errors.IsAborted(err) {
			return nil, err
		}
		return nil, errors.Wrapf(err, "failed to save session %s", sessionID)
	}

	input.State.Version = next
	return &SaveOutput{Version: next}, nil
}

func (r *redisRepository) ListEvents(ctx context.Context, input ListEventsInput) (*ListEventsOutput, error) {
	if input.SessionID == "" {
		return nil, errors.InvalidArgument(errSessionIDEmpty)
	}
	if input.Limit < 0 {
		return nil, errors.InvalidArgument("limit cannot be negative")
	}

	stop := int64(-1)
	if input.Limit > 0 {
		stop = int64(input.Limit) - 1
	}

	raw, err := r.client.LRange(ctx, eventsKey(input.SessionID), 0, stop).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list events for session %s", input.SessionID)
	}

	out := &ListEventsOutput{Events: make([]*weapons.InventoryEvent, 0, len(raw))}
	for _, item := range raw {
		var event weapons.InventoryEvent
		if err := json.Unmarshal([]byte(item), &event); err != nil {
			return nil, errors.Wrap(err, "failed to unmarshal event")
		}
		out.Events = append(out.Events, &event)
	}
	return out, nil
}

func (r *redisRepository) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	if input.SessionID == "" {
		return nil, errors.InvalidArgument(errSessionIDEmpty)
	}

	n, err := r.client.Del(ctx,
		stateKey(input.SessionID),
		versionKey(input.SessionID),
		eventsKey(input.SessionID),
	).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to delete session %s", input.SessionID)
	}

	return &DeleteOutput{Existed: n > 0}, nil
}

func (r *redisRepository) List(ctx context.Context, _ ListInput) (*ListOutput, error) {
	var ids []string
	iter := r.client.Scan(ctx, 0, keyPrefix+"*"+stateSuffix, scanCount).Iterator()
	for iter.Next(ctx) {
		id := strings.TrimSuffix(strings.TrimPrefix(iter.Val(), keyPrefix), stateSuffix)
		ids = append(ids, id)
	}
	if err := iter.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to scan sessions")
	}

	// SCAN may return a key more than once
	ids = lo.Uniq(ids)
	sort.Strings(ids)

	return &ListOutput{SessionIDs: ids}, nil
}
