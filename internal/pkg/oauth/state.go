package oauth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

const (
	statePrefix = "oauth:state:"
	stateTTL    = 10 * time.Minute
)

// ErrStateNotFound state 不存在、已过期或已被使用
var ErrStateNotFound = errors.New("oauth state 无效或已过期")

// StateStore 基于 Redis 的 OAuth state 存储，防止回调被 CSRF 伪造。
// state 一次性消费，过期由 Redis TTL 负责。
type StateStore struct {
	rdb *redis.Client
}

func NewStateStore(rdb *redis.Client) *StateStore {
	return &StateStore{rdb: rdb}
}

// Issue 生成随机 state 并写入 Redis
func (s *StateStore) Issue(ctx context.Context) (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("生成 state 失败: %w", err)
	}
	state := hex.EncodeToString(buf)

	if err := s.rdb.Set(ctx, statePrefix+state, "1", stateTTL).Err(); err != nil {
		return "", fmt.Errorf("存储 state 失败: %w", err)
	}
	return state, nil
}

// Consume 校验并删除 state，重复消费返回 ErrStateNotFound
func (s *StateStore) Consume(ctx context.Context, state string) error {
	if state == "" {
		return ErrStateNotFound
	}

	key := statePrefix + state

	// Watch 保证校验和删除原子执行，杜绝重放
	return s.rdb.Watch(ctx, func(tx *redis.Tx) error {
		if err := tx.Get(ctx, key).Err(); err != nil {
			if errors.Is(err, redis.Nil) {
				return ErrStateNotFound
			}
			return fmt.Errorf("读取 state 失败: %w", err)
		}

		_, err := tx.Pipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Del(ctx, key)
			return nil
		})
		return err
	}, key)
}
