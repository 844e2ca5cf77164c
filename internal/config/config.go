package config

import (
	"fmt"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"

	"tradescope/internal/scheduler"
)

func Load(path string) (*Config, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("config path cannot be empty")
	}
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config file failed (%s): %w", path, err)
	}
	var cfg Config
	if err := v.Unmarshal(&cfg, func(dc *mapstructure.DecoderConfig) {
		dc.TagName = "toml"
		dc.WeaklyTypedInput = true
	}); err != nil {
		return nil, fmt.Errorf("parsing config failed: %w", err)
	}
	setKeys := make(keySet)
	collectSettingsKeys(v.AllSettings(), setKeys)
	cfg.applyDefaults(setKeys)
	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns the configuration used when no file is supplied.
func Default() *Config {
	var cfg Config
	cfg.applyDefaults(make(keySet))
	return &cfg
}

func collectSettingsKeys(settings map[string]any, dest keySet) {
	if dest == nil || len(settings) == 0 {
		return
	}
	flattenConfigKeys("", settings, dest)
}

func flattenConfigKeys(prefix string, node any, dest keySet) {
	switch val := node.(type) {
	case map[string]any:
		for k, v := range val {
			next := strings.ToLower(strings.TrimSpace(k))
			if next == "" {
				continue
			}
			if prefix != "" {
				next = prefix + "." + next
			}
			flattenConfigKeys(next, v, dest)
		}
	default:
		dest.mark(prefix)
	}
}

const (
	defaultAppEnv            = "dev"
	defaultAppLogLevel       = "info"
	defaultAppHTTPAddr       = ":8870"
	defaultAppLogPath        = "/data/logs/tradescope.log"
	defaultStorePath         = "/data/db/journal.db"
	defaultStopTargetPercent = 0.02
	defaultDigestInterval    = "1d"
)

func (c *Config) applyDefaults(keys keySet) {
	applyFieldDefaults(keys,
		stringFieldDefault("app.env", &c.App.Env, defaultAppEnv),
		stringFieldDefault("app.log_level", &c.App.LogLevel, defaultAppLogLevel),
		stringFieldDefault("app.http_addr", &c.App.HTTPAddr, defaultAppHTTPAddr),
		stringFieldDefault("app.log_path", &c.App.LogPath, defaultAppLogPath),
		stringFieldDefault("store.path", &c.Store.Path, defaultStorePath),
		fieldDefault{
			key:   "insight.stop_target_percent",
			need:  func() bool { return c.Insight.StopTargetPercent == 0 },
			apply: func() { c.Insight.StopTargetPercent = defaultStopTargetPercent },
		},
		stringFieldDefault("digest.interval", &c.Digest.Interval, defaultDigestInterval),
	)
}

func applyFieldDefaults(keys keySet, defs ...fieldDefault) {
	for _, def := range defs {
		if def.apply == nil {
			continue
		}
		if def.key != "" && keys.isSet(def.key) {
			continue
		}
		if def.need != nil && !def.need() {
			continue
		}
		def.apply()
	}
}

func stringFieldDefault(key string, target *string, def string) fieldDefault {
	return fieldDefault{
		key: key,
		need: func() bool {
			return target != nil && strings.TrimSpace(*target) == ""
		},
		apply: func() {
			if target != nil {
				*target = def
			}
		},
	}
}

func validate(c *Config) error {
	if c.Insight.StopTargetPercent < 0 || c.Insight.StopTargetPercent >= 1 {
		return fmt.Errorf("insight.stop_target_percent must be in [0, 1)")
	}
	if c.Digest.Enabled {
		if _, ok := scheduler.ParseIntervalDuration(c.Digest.Interval); !ok {
			return fmt.Errorf("digest.interval is not a valid interval: %q", c.Digest.Interval)
		}
	}
	return nil
}
