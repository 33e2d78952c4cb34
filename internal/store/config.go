package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/viper"
)

const (
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"

	DefaultServerAddr = "127.0.0.1:7780"
	DefaultRedisKey   = "kanban"
)

type GlobalConfig struct {
	CurrentWorkspace string `json:"currentWorkspace,omitempty" mapstructure:"currentWorkspace"`

	// Backend selects the snapshot store: "sqlite" (default) or "redis".
	Backend  string `json:"backend,omitempty" mapstructure:"backend"`
	LogLevel string `json:"logLevel,omitempty" mapstructure:"logLevel"`
	// Author is stamped on activity entries; blank means "User".
	Author   string `json:"author,omitempty" mapstructure:"author"`

	Redis  RedisConfig  `json:"redis" mapstructure:"redis"`
	Server ServerConfig `json:"server" mapstructure:"server"`
	TUI    TUIConfig    `json:"tui" mapstructure:"tui"`
}

type RedisConfig struct {
	Addr string `json:"addr,omitempty" mapstructure:"addr"`
	// Key prefixes the state and activity keys; one prefix per workspace is typical.
	Key string `json:"key,omitempty" mapstructure:"key"`
}

type ServerConfig struct {
	Addr string `json:"addr,omitempty" mapstructure:"addr"`
}

type TUIConfig struct {
	// Glyphs selects the glyph set ("unicode" or "ascii").
	Glyphs string `json:"glyphs,omitempty" mapstructure:"glyphs"`
}

func ConfigDir() (string, error) {
	// Test/advanced override (keeps unit tests from touching ~/.kanban).
	if v := strings.TrimSpace(os.Getenv("KANBAN_CONFIG_DIR")); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".kanban"), nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// LoadConfig reads config.json (if present) and applies KANBAN_* environment overrides,
// e.g. KANBAN_BACKEND=redis or KANBAN_REDIS_ADDR=localhost:6379.
func LoadConfig() (*GlobalConfig, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetDefault("currentWorkspace", "")
	v.SetDefault("backend", BackendSQLite)
	v.SetDefault("logLevel", "")
	v.SetDefault("author", "")
	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.key", DefaultRedisKey)
	v.SetDefault("server.addr", DefaultServerAddr)
	v.SetDefault("tui.glyphs", "unicode")

	v.SetConfigFile(path)
	v.SetConfigType("json")
	v.SetEnvPrefix("KANBAN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if _, err := os.Stat(path); err == nil {
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	var cfg GlobalConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.Backend = strings.ToLower(strings.TrimSpace(cfg.Backend))
	return &cfg, nil
}

// writeJSONFile writes v as indented JSON through a temp file in the same dir, so readers never
// see a partial file.
func writeJSONFile(path string, v any, perm os.FileMode) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer func() { _ = os.Remove(tmp) }()
	if _, err := f.Write(b); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp, perm); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

func SaveConfig(cfg *GlobalConfig) error {
	if cfg == nil {
		return errors.New("nil config")
	}
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return writeJSONFile(path, cfg, 0o600)
}

// SetConfigValue updates one dotted key (e.g. "redis.addr") in cfg.
func SetConfigValue(cfg *GlobalConfig, key, value string) error {
	value = strings.TrimSpace(value)
	switch strings.ToLower(strings.TrimSpace(key)) {
	case "currentworkspace", "workspace":
		name, err := NormalizeWorkspaceName(value)
		if err != nil {
			return err
		}
		cfg.CurrentWorkspace = name
	case "backend":
		v := strings.ToLower(value)
		if v != BackendSQLite && v != BackendRedis {
			return fmt.Errorf("unknown backend %q (want %s|%s)", value, BackendSQLite, BackendRedis)
		}
		cfg.Backend = v
	case "loglevel":
		cfg.LogLevel = value
	case "author":
		cfg.Author = value
	case "redis.addr":
		cfg.Redis.Addr = value
	case "redis.key":
		cfg.Redis.Key = value
	case "server.addr":
		cfg.Server.Addr = value
	case "tui.glyphs":
		if value != "unicode" && value != "ascii" {
			return fmt.Errorf("unknown glyph set %q (want unicode|ascii)", value)
		}
		cfg.TUI.Glyphs = value
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}
	return nil
}

// ConfigKeys lists the keys accepted by SetConfigValue.
func ConfigKeys() []string {
	keys := []string{"currentWorkspace", "backend", "logLevel", "author", "redis.addr", "redis.key", "server.addr", "tui.glyphs"}
	sort.Strings(keys)
	return keys
}

func NormalizeWorkspaceName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", errors.New("workspace name is empty")
	}
	if strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return "", fmt.Errorf("invalid workspace name: %q", name)
	}
	return name, nil
}

func WorkspaceDir(name string) (string, error) {
	name, err := NormalizeWorkspaceName(name)
	if err != nil {
		return "", err
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "workspaces", name), nil
}

func ListWorkspaces() ([]string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return nil, err
	}
	ents, err := os.ReadDir(filepath.Join(dir, "workspaces"))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []string{}, nil
		}
		return nil, err
	}
	out := make([]string, 0, len(ents))
	for _, e := range ents {
		if e.IsDir() {
			out = append(out, e.Name())
		}
	}
	sort.Strings(out)
	return out, nil
}
