package store

import (
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"
)

// Open returns the backend selected by backend ("" means sqlite). The returned close func is
// always non-nil.
func Open(backend, dir string, cfg *GlobalConfig, logger *log.Logger) (Backend, func() error, error) {
	nop := func() error { return nil }
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case "", BackendSQLite:
		return Store{Dir: dir, Log: logger}, nop, nil
	case BackendRedis:
		addr, key := "", DefaultRedisKey
		if cfg != nil {
			addr = cfg.Redis.Addr
			if strings.TrimSpace(cfg.Redis.Key) != "" {
				key = cfg.Redis.Key
			}
		}
		r, err := NewRedisStore(addr, key, logger)
		if err != nil {
			return nil, nop, err
		}
		return r, r.Close, nil
	default:
		return nil, nop, fmt.Errorf("unknown backend: %s", backend)
	}
}
