package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"

	"kanban-cli/internal/model"
)

// maxRedisActivity caps the activity list; older entries are trimmed on append.
const maxRedisActivity = 1000

// RedisStore keeps the whole snapshot as one JSON value and the activity log as a capped list.
type RedisStore struct {
	Client *redis.Client
	Prefix string
	Log    *log.Logger
}

var _ Backend = (*RedisStore)(nil)

func NewRedisStore(addr, prefix string, logger *log.Logger) (*RedisStore, error) {
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return nil, errors.New("redis backend requires redis.addr")
	}
	var opts *redis.Options
	if strings.HasPrefix(addr, "redis://") || strings.HasPrefix(addr, "rediss://") {
		o, err := redis.ParseURL(addr)
		if err != nil {
			return nil, fmt.Errorf("parse redis url: %w", err)
		}
		opts = o
	} else {
		opts = &redis.Options{Addr: addr}
	}
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		prefix = DefaultRedisKey
	}
	return &RedisStore{Client: redis.NewClient(opts), Prefix: prefix, Log: logger}, nil
}

func (r *RedisStore) stateKey() string    { return r.Prefix + ":state" }
func (r *RedisStore) activityKey() string { return r.Prefix + ":activity" }

func (r *RedisStore) logger() *log.Logger {
	if r.Log != nil {
		return r.Log
	}
	return log.StandardLogger()
}

func (r *RedisStore) Load(ctx context.Context) (model.State, error) {
	raw, err := r.Client.Get(ctx, r.stateKey()).Bytes()
	if errors.Is(err, redis.Nil) {
		return model.State{Boards: []*model.Board{}}, nil
	}
	if err != nil {
		return model.State{}, fmt.Errorf("redis get %s: %w", r.stateKey(), err)
	}
	var st model.State
	if err := json.Unmarshal(raw, &st); err != nil {
		return model.State{}, fmt.Errorf("decode snapshot: %w", err)
	}
	if st.Boards == nil {
		st.Boards = []*model.Board{}
	}
	r.logger().WithFields(log.Fields{"key": r.stateKey(), "boards": len(st.Boards)}).Debug("loaded snapshot")
	return st, nil
}

func (r *RedisStore) Save(ctx context.Context, st model.State) error {
	raw, err := json.Marshal(st)
	if err != nil {
		return err
	}
	if err := r.Client.Set(ctx, r.stateKey(), raw, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", r.stateKey(), err)
	}
	r.logger().WithFields(log.Fields{"key": r.stateKey(), "bytes": len(raw)}).Debug("saved snapshot")
	return nil
}

func (r *RedisStore) AppendActivity(ctx context.Context, a model.Activity) error {
	if err := validateActivity(a); err != nil {
		return err
	}
	raw, err := json.Marshal(a)
	if err != nil {
		return err
	}
	pipe := r.Client.TxPipeline()
	pipe.LPush(ctx, r.activityKey(), raw)
	pipe.LTrim(ctx, r.activityKey(), 0, maxRedisActivity-1)
	_, err = pipe.Exec(ctx)
	return err
}

func (r *RedisStore) ListActivity(ctx context.Context, limit int) ([]model.Activity, error) {
	if limit <= 0 {
		limit = DefaultActivityLimit
	}
	vals, err := r.Client.LRange(ctx, r.activityKey(), 0, int64(limit-1)).Result()
	if err != nil {
		return nil, err
	}
	out := make([]model.Activity, 0, len(vals))
	for _, v := range vals {
		var a model.Activity
		if err := json.Unmarshal([]byte(v), &a); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, nil
}

func (r *RedisStore) Close() error {
	return r.Client.Close()
}
