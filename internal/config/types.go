package config

import "strings"

// Config is the top-level tradescope configuration.
type Config struct {
	App     AppConfig     `toml:"app"`
	Store   StoreConfig   `toml:"store"`
	Insight InsightConfig `toml:"insight"`
	Digest  DigestConfig  `toml:"digest"`
}

type AppConfig struct {
	Env      string `toml:"env"`
	LogLevel string `toml:"log_level"`
	HTTPAddr string `toml:"http_addr"`
	LogPath  string `toml:"log_path"`
}

type StoreConfig struct {
	Path string `toml:"path"`
}

type InsightConfig struct {
	// BenchmarksPath optionally points at a YAML file overriding the
	// built-in benchmark bands. Empty means built-ins only.
	BenchmarksPath string `toml:"benchmarks_path"`
	// StopTargetPercent is the per-trade loss cap used by the stop-loss
	// savings estimate, as a fraction of entry value.
	StopTargetPercent float64 `toml:"stop_target_percent"`
}

type DigestConfig struct {
	Enabled  bool   `toml:"enabled"`
	Interval string `toml:"interval"`
}

// keySet tracks which field paths were explicitly present in the file,
// so zero values written by the user are not clobbered by defaults.
type keySet map[string]struct{}

func (k keySet) mark(path string) {
	path = strings.ToLower(strings.TrimSpace(path))
	if path == "" {
		return
	}
	k[path] = struct{}{}
}

func (k keySet) isSet(path string) bool {
	if len(k) == 0 {
		return false
	}
	path = strings.ToLower(strings.TrimSpace(path))
	if path == "" {
		return false
	}
	_, ok := k[path]
	return ok
}

type fieldDefault struct {
	key   string
	need  func() bool
	apply func()
}
