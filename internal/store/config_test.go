package store

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfig_DefaultsAndEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("KANBAN_CONFIG_DIR", dir)

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Backend != BackendSQLite || cfg.Server.Addr != DefaultServerAddr || cfg.Redis.Key != DefaultRedisKey {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}

	t.Setenv("KANBAN_BACKEND", "redis")
	t.Setenv("KANBAN_REDIS_ADDR", "localhost:6390")
	cfg, err = LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Backend != BackendRedis || cfg.Redis.Addr != "localhost:6390" {
		t.Fatalf("env overrides not applied: %+v", cfg)
	}
}

func TestSaveConfig_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("KANBAN_CONFIG_DIR", dir)

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	for k, v := range map[string]string{"workspace": "work", "backend": "redis", "redis.addr": "r:1", "server.addr": ":9000", "tui.glyphs": "ascii", "logLevel": "debug", "author": "lee"} {
		if err := SetConfigValue(cfg, k, v); err != nil {
			t.Fatalf("SetConfigValue(%s): %v", k, err)
		}
	}
	if err := SaveConfig(cfg); err != nil {
		t.Fatalf("SaveConfig: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "config.json")); err != nil {
		t.Fatalf("config.json not written: %v", err)
	}

	got, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if got.CurrentWorkspace != "work" || got.Backend != BackendRedis || got.Redis.Addr != "r:1" || got.Server.Addr != ":9000" || got.TUI.Glyphs != "ascii" || got.LogLevel != "debug" || got.Author != "lee" {
		t.Fatalf("unexpected config after reload: %+v", got)
	}
}

func TestSetConfigValue_Rejects(t *testing.T) {
	cfg := &GlobalConfig{}
	for _, kv := range [][2]string{{"backend", "etcd"}, {"tui.glyphs", "emoji"}, {"nope", "x"}, {"workspace", "../x"}} {
		if err := SetConfigValue(cfg, kv[0], kv[1]); err == nil {
			t.Fatalf("expected error for %s=%s", kv[0], kv[1])
		}
	}
}

func TestWorkspaceDirs(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("KANBAN_CONFIG_DIR", dir)

	ws, err := WorkspaceDir("default")
	if err != nil {
		t.Fatalf("WorkspaceDir: %v", err)
	}
	if ws != filepath.Join(dir, "workspaces", "default") {
		t.Fatalf("unexpected workspace dir %s", ws)
	}
	if err := os.MkdirAll(ws, 0o755); err != nil {
		t.Fatal(err)
	}
	names, err := ListWorkspaces()
	if err != nil {
		t.Fatalf("ListWorkspaces: %v", err)
	}
	if len(names) != 1 || names[0] != "default" {
		t.Fatalf("unexpected workspaces %v", names)
	}
}
