package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/valkey-io/valkey-go"

	"github.com/spacesedan/datatalks/internal/clients"
)

const (
	VALKEY_SESSION_PREFIX   = "datatalks:session:"
	VALKEY_UPDATE_ATTEMPTS  = 20
	VALKEY_CONFLICT_BACKOFF = 10 * time.Millisecond
)

var ErrUpdateConflict = errors.New("session kept changing during update")

// ValkeyStore shares view states between web replicas. Entries carry the
// session TTL so nothing outlives the session. Updates use WATCH/MULTI so a
// concurrent write from another replica aborts and retries instead of being
// overwritten.
type ValkeyStore struct {
	vc  *clients.ValkeyClient
	ttl time.Duration
}

func NewValkeyStore(vc *clients.ValkeyClient, ttl time.Duration) *ValkeyStore {
	return &ValkeyStore{vc: vc, ttl: ttl}
}

func sessionKey(id string) string {
	return VALKEY_SESSION_PREFIX + id
}

func (s *ValkeyStore) Load(ctx context.Context, id string) (ViewState, error) {
	res := s.vc.DoWithRetry(ctx, s.vc.Client.B().Get().Key(sessionKey(id)).Build(), 3)
	return decodeState(res)
}

func (s *ValkeyStore) Update(ctx context.Context, id string, fn func(*ViewState)) (ViewState, error) {
	for attempt := 1; attempt <= VALKEY_UPDATE_ATTEMPTS; attempt++ {
		state, committed, err := s.tryUpdate(ctx, sessionKey(id), fn)
		if err != nil {
			return ViewState{}, err
		}
		if committed {
			return state, nil
		}

		slog.Debug("[ValkeyStore] Session changed during update, retrying",
			slog.String("session", id),
			slog.Int("attempt", attempt))

		select {
		case <-ctx.Done():
			return ViewState{}, ctx.Err()
		case <-time.After(VALKEY_CONFLICT_BACKOFF * time.Duration(attempt)):
		}
	}
	return ViewState{}, ErrUpdateConflict
}

// tryUpdate runs one optimistic WATCH/GET/MULTI/SET/EXEC round. committed is
// false when EXEC was aborted by a concurrent write.
func (s *ValkeyStore) tryUpdate(ctx context.Context, key string, fn func(*ViewState)) (state ViewState, committed bool, err error) {
	err = s.vc.Client.Dedicated(func(c valkey.DedicatedClient) error {
		if err := c.Do(ctx, c.B().Watch().Key(key).Build()).Error(); err != nil {
			return fmt.Errorf("failed to watch session: %w", err)
		}

		current, err := decodeState(c.Do(ctx, c.B().Get().Key(key).Build()))
		if err != nil {
			c.Do(ctx, c.B().Unwatch().Build())
			return err
		}

		fn(&current)
		raw, err := json.Marshal(current)
		if err != nil {
			c.Do(ctx, c.B().Unwatch().Build())
			return fmt.Errorf("failed to encode session: %w", err)
		}

		resps := c.DoMulti(ctx,
			c.B().Multi().Build(),
			c.B().Set().Key(key).Value(string(raw)).ExSeconds(ttlSeconds(s.ttl)).Build(),
			c.B().Exec().Build(),
		)
		for _, r := range resps[:2] {
			if err := r.Error(); err != nil {
				return fmt.Errorf("failed to save session: %w", err)
			}
		}

		execErr := resps[2].Error()
		if valkey.IsValkeyNil(execErr) {
			return nil
		}
		if execErr != nil {
			return fmt.Errorf("failed to save session: %w", execErr)
		}

		state, committed = current, true
		return nil
	})
	return state, committed, err
}

func decodeState(res valkey.ValkeyResult) (ViewState, error) {
	var state ViewState

	raw, err := res.AsBytes()
	if valkey.IsValkeyNil(err) {
		return state, nil
	}
	if err != nil {
		return state, fmt.Errorf("failed to load session: %w", err)
	}

	if err := json.Unmarshal(raw, &state); err != nil {
		return state, fmt.Errorf("failed to decode session: %w", err)
	}
	return state, nil
}

func ttlSeconds(ttl time.Duration) int64 {
	secs := int64(ttl / time.Second)
	if secs < 1 {
		return 1
	}
	return secs
}
