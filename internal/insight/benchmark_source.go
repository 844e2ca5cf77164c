package insight

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"tradescope/internal/logger"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// BenchmarkSource serves the active benchmark table. Without an override file
// it returns the built-in bands; with one it hot-reloads edits.
type BenchmarkSource struct {
	path string
	v    *viper.Viper

	mu    sync.RWMutex
	table Table
}

// NewBenchmarkSource builds a source. path may be empty, in which case the
// defaults are used and no watcher is started.
func NewBenchmarkSource(path string) (*BenchmarkSource, error) {
	s := &BenchmarkSource{path: strings.TrimSpace(path), table: DefaultTable()}
	if s.path == "" {
		return s, nil
	}
	v := viper.New()
	v.SetConfigFile(s.path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read benchmark override failed: %w", err)
	}
	s.v = v
	if err := s.reload(); err != nil {
		return nil, err
	}
	v.OnConfigChange(func(evt fsnotify.Event) {
		if err := s.reload(); err != nil {
			logger.Errorf("benchmark override reload failed (%s): %v", evt.Name, err)
		}
	})
	v.WatchConfig()
	return s, nil
}

// Table returns the active benchmark table (copy, safe to mutate).
func (s *BenchmarkSource) Table() Table {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(Table, len(s.table))
	for k, v := range s.table {
		out[k] = v
	}
	return out
}

func (s *BenchmarkSource) reload() error {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return err
	}
	var overrides map[string]Bands
	if err := yaml.Unmarshal(raw, &overrides); err != nil {
		return fmt.Errorf("parse benchmark override failed: %w", err)
	}
	table := DefaultTable()
	for name, bands := range overrides {
		m := Metric(strings.TrimSpace(name))
		if _, known := table[m]; !known {
			logger.Warnf("benchmark override ignores unknown metric %q", name)
			continue
		}
		table[m] = bands
	}
	s.mu.Lock()
	s.table = table
	s.mu.Unlock()
	logger.Infof("benchmark table reloaded from %s (%d metrics)", s.path, len(overrides))
	return nil
}
